package mock

import (
	"context"

	"github.com/buzkaaclicker/vitae"
)

type AvatarStore struct {
	UploadFn func(ctx context.Context, key string, avatar vitae.Avatar) (string, error)
}

func (s AvatarStore) Upload(ctx context.Context, key string, avatar vitae.Avatar) (string, error) {
	return s.UploadFn(ctx, key, avatar)
}
