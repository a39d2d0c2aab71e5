// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package viewcache

import (
	"time"

	"github.com/lotodore/localcache"
)

// Store keeps small files by key.
type Store interface {
	ReadFile(key string) ([]byte, error)
	WriteFile(key string, data []byte) error
	Remove(key string) error
	// PurgeKey removes the file if it is older than maxAge.
	PurgeKey(key string, maxAge time.Duration) error
}

// NewLocalStore opens a store within the user cache directory.
func NewLocalStore(name string) (Store, error) {
	return localcache.New(name)
}
