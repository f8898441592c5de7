package inmem

import (
	"context"
	"sync"

	"github.com/buzkaaclicker/vitae"
)

// AvatarStore keeps uploaded avatars in memory and reports them
// as located under BaseUrl.
type AvatarStore struct {
	BaseUrl string

	objects map[string]vitae.Avatar
	mutex   sync.RWMutex
}

func NewAvatarStore(baseUrl string) *AvatarStore {
	return &AvatarStore{
		BaseUrl: baseUrl,
		objects: make(map[string]vitae.Avatar),
	}
}

func (s *AvatarStore) Upload(ctx context.Context, key string, avatar vitae.Avatar) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	avatar.Data = append([]byte(nil), avatar.Data...)
	s.objects[key] = avatar
	return s.BaseUrl + "/" + key, nil
}

// Object returns avatar uploaded under key.
func (s *AvatarStore) Object(key string) (vitae.Avatar, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	avatar, ok := s.objects[key]
	return avatar, ok
}

func (s *AvatarStore) Keys() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}
	return keys
}
