package vitae

import (
	"context"
	"time"
)

const (
	ActivityProfileSaved   = "profile_saved"
	ActivityAvatarUploaded = "avatar_uploaded"
)

type Activity struct {
	Name string
	Data map[string]interface{}
}

type ActivityLog struct {
	Id        string
	CreatedAt time.Time
	Name      string
	Data      map[string]interface{}
}

type ActivityStore interface {
	AddLog(ctx context.Context, activity Activity) error

	// Recent returns up to "limit" logs, newest first. Limit lower than 1 returns all logs.
	Recent(ctx context.Context, limit int) ([]ActivityLog, error)
}
