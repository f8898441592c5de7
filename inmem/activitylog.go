package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/buzkaaclicker/vitae"
	"github.com/google/uuid"
)

type ActivityStore struct {
	logs  []vitae.ActivityLog
	mutex sync.RWMutex
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{
		logs: make([]vitae.ActivityLog, 0, 10),
	}
}

func (s *ActivityStore) AddLog(ctx context.Context, activity vitae.Activity) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.logs = append(s.logs, vitae.ActivityLog{
		Id:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Name:      activity.Name,
		Data:      activity.Data,
	})
	return nil
}

func (s *ActivityStore) Recent(ctx context.Context, limit int) ([]vitae.ActivityLog, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := len(s.logs)
	if limit > 0 && limit < count {
		count = limit
	}
	recent := make([]vitae.ActivityLog, count)
	for i := range recent {
		recent[i] = s.logs[len(s.logs)-1-i]
	}
	return recent, nil
}
