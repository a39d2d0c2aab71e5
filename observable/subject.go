// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package observable

import (
	"sync/atomic"

	"github.com/zhangyunhao116/skipmap"
)

// Subject delivers published values to its subscribers in subscription order.
// Subscribing or unsubscribing from within a callback is allowed.
type Subject[T any] struct {
	subscribers *skipmap.Int64Map[func(T)]
	nextId      atomic.Int64
}

type Subscription int64

func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{subscribers: skipmap.NewInt64[func(T)]()}
}

func (s *Subject[T]) Subscribe(fn func(T)) Subscription {
	id := s.nextId.Add(1)
	s.subscribers.Store(id, fn)
	return Subscription(id)
}

func (s *Subject[T]) Unsubscribe(id Subscription) {
	s.subscribers.Delete(int64(id))
}

func (s *Subject[T]) Publish(v T) {
	s.subscribers.Range(func(_ int64, fn func(T)) bool {
		fn(v)
		return true
	})
}

func (s *Subject[T]) Len() int {
	return s.subscribers.Len()
}
