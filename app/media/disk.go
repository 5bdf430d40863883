package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// DiskStore keeps files under BasePath.
type DiskStore struct {
	BasePath  string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStore(basePath string) *DiskStore {
	return &DiskStore{
		BasePath: basePath,
		dirs:     make(map[string]bool, 10),
	}
}

func (s *DiskStore) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStore) fullPath(name string) (string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.BasePath, filepath.FromSlash(cleaned)), nil
}

func (s *DiskStore) Save(_ context.Context, name string, r io.Reader, _ string) error {
	fileName, err := s.fullPath(name)
	if err != nil {
		return err
	}
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return errors.Wrap(err, "create media dir")
	}
	file, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create media file")
	}
	_, err = io.Copy(file, r)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return errors.Wrap(err, "write media file")
}

func (s *DiskStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	fileName, err := s.fullPath(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fileName)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if fi, err := file.Stat(); err == nil && fi.IsDir() {
		file.Close()
		return nil, ErrNotFound
	}
	return file, nil
}

func (s *DiskStore) Delete(_ context.Context, name string) error {
	fileName, err := s.fullPath(name)
	if err != nil {
		return err
	}
	err = os.Remove(fileName)
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}
