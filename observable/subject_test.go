// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishOrder(t *testing.T) {
	s := NewSubject[int]()
	var got []string
	s.Subscribe(func(v int) { got = append(got, "a") })
	s.Subscribe(func(v int) { got = append(got, "b") })
	s.Subscribe(func(v int) { got = append(got, "c") })
	s.Publish(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestUnsubscribe(t *testing.T) {
	s := NewSubject[string]()
	var got []string
	id := s.Subscribe(func(v string) { got = append(got, v) })
	s.Publish("x")
	s.Unsubscribe(id)
	s.Publish("y")
	assert.Equal(t, []string{"x"}, got)
	assert.Equal(t, 0, s.Len())
}

func TestUnsubscribeWithinCallback(t *testing.T) {
	s := NewSubject[int]()
	count := 0
	var id Subscription
	id = s.Subscribe(func(v int) {
		count++
		s.Unsubscribe(id)
	})
	s.Publish(1)
	s.Publish(2)
	assert.Equal(t, 1, count)
}
