package inmem

import (
	"context"
	"sync"

	"github.com/buzkaaclicker/vitae"
)

type ProfileStore struct {
	doc   vitae.ProfileDocument
	mutex sync.RWMutex
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{}
}

func (s *ProfileStore) Save(ctx context.Context, doc vitae.ProfileDocument) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.doc = append(vitae.ProfileDocument(nil), doc...)
	return nil
}

func (s *ProfileStore) Load(ctx context.Context) (vitae.ProfileDocument, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.doc == nil {
		return nil, vitae.ErrProfileNotFound
	}
	return append(vitae.ProfileDocument(nil), s.doc...), nil
}
