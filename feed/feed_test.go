// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"chartcore/chartval"
	"chartcore/mock"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireCandle(t *testing.T) {
	c := mock.OHLC(0, time.Minute, 1, 3, 0.5, 2, 100)
	w := NewWireCandle(c)
	assert.Equal(t, c.Timestamp, w.Candle().Timestamp)
	assert.Equal(t, 2.0, w.Candle().Close)

	partial := WireCandle{T: mock.Base.UnixMilli(), C: w.C}
	got := partial.Candle()
	assert.True(t, math.IsNaN(got.Open))
	assert.True(t, math.IsNaN(got.Volume))
	assert.Equal(t, 2.0, got.Close)
	assert.Nil(t, NewWireCandle(got).O)
}

func TestCoalescer(t *testing.T) {
	c := NewCoalescer()
	assert.Empty(t, c.Drain())

	c.Add("BBB", []chartval.Candle{mock.Candle(1, time.Minute, 10)})
	c.Add("AAA", []chartval.Candle{mock.Candle(2, time.Minute, 1), mock.Candle(0, time.Minute, 2)})
	c.Add("AAA", []chartval.Candle{mock.Candle(2, time.Minute, 3)})
	c.Add("CCC", nil)
	assert.Equal(t, 3, c.Pending())

	select {
	case <-c.Notify():
	default:
		t.Fatal("missing notification")
	}

	batches := c.Drain()
	require.Len(t, batches, 2)
	assert.Equal(t, "AAA", batches[0].Symbol)
	require.Len(t, batches[0].Candles, 2)
	assert.Equal(t, 2.0, batches[0].Candles[0].Close)
	// The newest update of a candle wins.
	assert.Equal(t, 3.0, batches[0].Candles[1].Close)
	assert.Equal(t, "BBB", batches[1].Symbol)

	assert.Empty(t, c.Drain())
	assert.Equal(t, 0, c.Pending())
}

func TestDispatcherFlush(t *testing.T) {
	hook := mock.NewLogHook(t)
	c := NewCoalescer()
	var got []Batch
	d := NewDispatcher(c, SinkFunc(func(candles []chartval.Candle, symbol string) error {
		got = append(got, Batch{Symbol: symbol, Candles: candles})
		if symbol == "BAD" {
			return errors.New("unknown symbol")
		}
		return nil
	}), 0)

	c.Add("AAA", mock.Range(time.Minute, 0, 3))
	c.Add("BAD", mock.Range(time.Minute, 0, 1))
	assert.Equal(t, 2, d.Flush())
	require.Len(t, got, 2)
	assert.Len(t, got[0].Candles, 3)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "BAD", hook.LastEntry().Data["symbol"])
	assert.Equal(t, 0, d.Flush())
}

func TestDispatcherRun(t *testing.T) {
	c := NewCoalescer()
	received := make(chan Batch, 16)
	d := NewDispatcher(c, SinkFunc(func(candles []chartval.Candle, symbol string) error {
		received <- Batch{Symbol: symbol, Candles: candles}
		return nil
	}), 100)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.Run(ctx)
	}()

	c.Add("AAA", mock.Range(time.Minute, 0, 2))
	select {
	case b := <-received:
		assert.Equal(t, "AAA", b.Symbol)
		assert.Len(t, b.Candles, 2)
	case <-time.After(5 * time.Second):
		t.Fatal("update was not dispatched")
	}
	cancel()
	wg.Wait()
}

type testServer struct {
	connections atomic.Int32
	// Close the first connection right after the subscription.
	dropFirst bool
	subscribed chan []string
}

func (s *testServer) handle(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	n := s.connections.Add(1)

	var sub Message
	if err := conn.ReadJSON(&sub); err != nil || sub.Type != MessageTypeSubscribe {
		return
	}
	s.subscribed <- sub.Symbols
	if s.dropFirst && n == 1 {
		return
	}
	for i, symbol := range sub.Symbols {
		msg := Message{
			Type:    MessageTypeCandles,
			Symbol:  symbol,
			Candles: []WireCandle{NewWireCandle(mock.Candle(i, time.Minute, 100))},
		}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
	_ = conn.WriteJSON(Message{Type: MessageTypeError, Symbol: "ZZZ", Error: "unknown symbol"})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func newTestServer(dropFirst bool) (*testServer, *httptest.Server) {
	s := &testServer{dropFirst: dropFirst, subscribed: make(chan []string, 8)}
	return s, httptest.NewServer(http.HandlerFunc(s.handle))
}

func wsUrl(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestClient(t *testing.T) {
	s, server := newTestServer(false)
	defer server.Close()
	c := NewCoalescer()
	client := NewClient(wsUrl(server), "secret", []string{"AAA", "BBB"}, time.Second, c)
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- client.Run(ctx)
	}()

	select {
	case symbols := <-s.subscribed:
		assert.Equal(t, []string{"AAA", "BBB"}, symbols)
	case <-time.After(5 * time.Second):
		t.Fatal("no subscription")
	}
	assert.Eventually(t, func() bool { return c.Pending() == 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("client did not terminate")
	}
	batches := c.Drain()
	require.Len(t, batches, 2)
	assert.Equal(t, mock.Base.Add(time.Minute), batches[1].Candles[0].Timestamp)
}

func TestClientReconnects(t *testing.T) {
	s, server := newTestServer(true)
	defer server.Close()
	c := NewCoalescer()
	client := NewClient(wsUrl(server), "", []string{"AAA"}, 10*time.Millisecond, c)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = client.Run(ctx)
	}()

	assert.Eventually(t, func() bool { return c.Pending() == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, s.connections.Load(), int32(2))
}

func TestClientWithoutSymbols(t *testing.T) {
	client := NewClient("ws://localhost:1", "", nil, time.Second, NewCoalescer())
	assert.ErrorIs(t, client.Run(context.Background()), ErrNoSymbols)
}

func TestDialUrl(t *testing.T) {
	client := NewClient("wss://feed.example.com/ws?v=2", "key", []string{"AAA"}, time.Second, NewCoalescer())
	u, err := client.dialUrl()
	require.NoError(t, err)
	assert.Equal(t, "wss://feed.example.com/ws?token=key&v=2", u)
}
