package store

import (
	"context"
	"sync"

	"github.com/lavida77-ai/currency-converter/pkg/logger"
)

type MemoryStore struct {
	values map[string]string
	mutex  sync.RWMutex
	log    *logger.Logger
}

func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
		log:    log,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, found := s.values[key]
	return value, found, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.values[key] = value
	s.log.Debug("Memory store set", "key", key)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, key := range keys {
		delete(s.values, key)
	}
	s.log.Debug("Memory store delete", "keys", keys)
	return nil
}
