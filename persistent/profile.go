package persistent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/buzkaaclicker/vitae"
	"github.com/google/renameio/v2"
)

const profileFileMode = 0644

// ProfileStore keeps the profile document in a single json file.
// Saves are serialized and replace the file atomically, readers never
// observe a partially written document.
type ProfileStore struct {
	Path string

	mutex sync.Mutex
}

var _ vitae.ProfileStore = (*ProfileStore)(nil)

func (s *ProfileStore) Save(ctx context.Context, doc vitae.ProfileDocument) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// renameio syncs the temp file before renaming it over Path.
	if err := renameio.WriteFile(s.Path, doc, profileFileMode); err != nil {
		return fmt.Errorf("%w: %w", vitae.ErrStorageWrite, err)
	}
	return nil
}

func (s *ProfileStore) Load(ctx context.Context) (vitae.ProfileDocument, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, vitae.ErrProfileNotFound
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return data, nil
}
