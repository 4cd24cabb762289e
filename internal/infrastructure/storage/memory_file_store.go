package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"gudang/pkg/errors"
)

// MemoryFileStore keeps uploaded files in process memory. It backs the
// in-memory storage driver so local runs need no cloud credentials.
type MemoryFileStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryFileStore() *MemoryFileStore {
	return &MemoryFileStore{
		files: make(map[string][]byte),
	}
}

func (s *MemoryFileStore) UploadFile(ctx context.Context, file io.Reader, fileType string, folder string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", errors.Internal("Failed to read file", err)
	}

	url := fmt.Sprintf("memory://%s/%s", folder, uuid.New().String())

	s.mu.Lock()
	s.files[url] = data
	s.mu.Unlock()

	return url, nil
}

func (s *MemoryFileStore) DeleteFile(ctx context.Context, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[fileURL]; !ok {
		return errors.NotFound("File", nil)
	}
	delete(s.files, fileURL)
	return nil
}

// Len reports how many files are currently stored.
func (s *MemoryFileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

func (s *MemoryFileStore) Close() error {
	return nil
}
