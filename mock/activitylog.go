package mock

import (
	"context"

	"github.com/buzkaaclicker/vitae"
)

type ActivityStore struct {
	AddLogFn func(ctx context.Context, activity vitae.Activity) error

	RecentFn func(ctx context.Context, limit int) ([]vitae.ActivityLog, error)
}

func (s ActivityStore) AddLog(ctx context.Context, activity vitae.Activity) error {
	return s.AddLogFn(ctx, activity)
}

func (s ActivityStore) Recent(ctx context.Context, limit int) ([]vitae.ActivityLog, error) {
	return s.RecentFn(ctx, limit)
}
