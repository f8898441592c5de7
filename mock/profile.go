package mock

import (
	"context"

	"github.com/buzkaaclicker/vitae"
)

type ProfileStore struct {
	SaveFn func(ctx context.Context, doc vitae.ProfileDocument) error

	LoadFn func(ctx context.Context) (vitae.ProfileDocument, error)
}

func (s ProfileStore) Save(ctx context.Context, doc vitae.ProfileDocument) error {
	return s.SaveFn(ctx, doc)
}

func (s ProfileStore) Load(ctx context.Context) (vitae.ProfileDocument, error) {
	return s.LoadFn(ctx)
}
