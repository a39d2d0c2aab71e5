// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"os"
	"sync"
	"time"
)

type storedFile struct {
	data     []byte
	modified time.Time
}

// TestStore is an in-memory file store with a settable clock.
type TestStore struct {
	lock  sync.Mutex
	files map[string]storedFile
	Now   func() time.Time
}

func NewTestStore() *TestStore {
	return &TestStore{files: make(map[string]storedFile), Now: time.Now}
}

func (s *TestStore) ReadFile(key string) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	f, ok := s.files[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return append([]byte(nil), f.data...), nil
}

func (s *TestStore) WriteFile(key string, data []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.files[key] = storedFile{data: append([]byte(nil), data...), modified: s.Now()}
	return nil
}

func (s *TestStore) Remove(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.files[key]; !ok {
		return os.ErrNotExist
	}
	delete(s.files, key)
	return nil
}

func (s *TestStore) PurgeKey(key string, maxAge time.Duration) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if f, ok := s.files[key]; ok && s.Now().Sub(f.modified) > maxAge {
		delete(s.files, key)
	}
	return nil
}

func (s *TestStore) Keys() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	keys := make([]string, 0, len(s.files))
	for k := range s.files {
		keys = append(keys, k)
	}
	return keys
}
