package persistent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/buzkaaclicker/vitae"
	"github.com/google/uuid"
	"github.com/tidwall/buntdb"
)

const activityKeyPrefix = "activity:"

type ActivityLog struct {
	Id        string                 `json:"id"`
	CreatedAt time.Time              `json:"createdAt"`
	Name      string                 `json:"name"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

func (l ActivityLog) ToDomain() vitae.ActivityLog {
	return vitae.ActivityLog{
		Id:        l.Id,
		CreatedAt: l.CreatedAt,
		Name:      l.Name,
		Data:      l.Data,
	}
}

// ActivityStore keeps activity logs in buntdb. Keys are ordered by creation
// time so the most recent logs are found by descending key iteration.
type ActivityStore struct {
	Buntdb *buntdb.DB
	// Logs older than TTL expire. Zero keeps logs forever.
	TTL time.Duration
	// Clock, time.Now if nil.
	Now func() time.Time
}

var _ vitae.ActivityStore = (*ActivityStore)(nil)

func (s *ActivityStore) AddLog(ctx context.Context, activity vitae.Activity) error {
	log := ActivityLog{
		Id:        uuid.New().String(),
		CreatedAt: s.now().UTC(),
		Name:      activity.Name,
		Data:      activity.Data,
	}
	serializedLog, err := json.Marshal(&log)
	if err != nil {
		return fmt.Errorf("activity log serialize: %w", err)
	}
	key := fmt.Sprintf("%s%020d:%s", activityKeyPrefix, log.CreatedAt.UnixNano(), log.Id)

	err = s.Buntdb.Update(func(tx *buntdb.Tx) error {
		var setOptions *buntdb.SetOptions
		if s.TTL > 0 {
			setOptions = &buntdb.SetOptions{Expires: true, TTL: s.TTL}
		}
		_, _, err := tx.Set(key, string(serializedLog), setOptions)
		return err
	})
	if err != nil {
		return fmt.Errorf("bunt update: %w", err)
	}
	return nil
}

func (s *ActivityStore) Recent(ctx context.Context, limit int) ([]vitae.ActivityLog, error) {
	logs := make([]vitae.ActivityLog, 0)
	err := s.Buntdb.View(func(tx *buntdb.Tx) error {
		var decodeErr error
		err := tx.DescendKeys(activityKeyPrefix+"*", func(key, value string) bool {
			var log ActivityLog
			if decodeErr = json.Unmarshal([]byte(value), &log); decodeErr != nil {
				decodeErr = fmt.Errorf("deserialize %s: %w", key, decodeErr)
				return false
			}
			logs = append(logs, log.ToDomain())
			return limit < 1 || len(logs) < limit
		})
		if err != nil {
			return err
		}
		return decodeErr
	})
	if err != nil {
		return nil, fmt.Errorf("bunt view: %w", err)
	}
	return logs, nil
}

func (s *ActivityStore) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
