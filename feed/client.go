// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"chartcore/chartval"
	"chartcore/logging"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var ErrNoSymbols = errors.New("no symbols to subscribe")

// Client subscribes to candle updates on a websocket server and adds them to a Coalescer.
// The connection is re-established until the context is cancelled.
type Client struct {
	url       string
	apiKey    string
	symbols   []string
	reconnect time.Duration
	coalescer *Coalescer
	dialer    *websocket.Dialer
	log       *logrus.Entry
}

func NewClient(wsUrl, apiKey string, symbols []string, reconnect time.Duration, c *Coalescer) *Client {
	return &Client{
		url:       wsUrl,
		apiKey:    apiKey,
		symbols:   symbols,
		reconnect: reconnect,
		coalescer: c,
		dialer:    websocket.DefaultDialer,
		log:       logging.Component("feed").WithField("url", wsUrl),
	}
}

// Run reads updates until ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	if len(c.symbols) == 0 {
		return ErrNoSymbols
	}
	for {
		err := c.session(ctx)
		if ctx.Err() != nil {
			c.log.Info("feed terminated")
			return nil
		}
		c.log.WithError(err).WithField("retryIn", c.reconnect).Warn("feed connection lost")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.reconnect):
		}
	}
}

func (c *Client) dialUrl() (string, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return "", fmt.Errorf("invalid feed url: %w", err)
	}
	if len(c.apiKey) > 0 {
		q := u.Query()
		q.Set("token", c.apiKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// session handles one connection. It always returns an error, which is the reason for termination.
func (c *Client) session(ctx context.Context) error {
	dialUrl, err := c.dialUrl()
	if err != nil {
		return err
	}
	conn, resp, err := c.dialer.DialContext(ctx, dialUrl, nil)
	if err != nil {
		if resp != nil && resp.StatusCode != http.StatusSwitchingProtocols {
			return fmt.Errorf("could not connect to feed (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("could not connect to feed: %w", err)
	}
	defer conn.Close()
	c.log.Info("feed connected")

	// Unblock the reader when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			conn.Close()
		case <-done:
		}
	}()

	if err := conn.WriteJSON(Message{Type: MessageTypeSubscribe, Symbols: c.symbols}); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("failed to read from feed: %w", err)
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case MessageTypeCandles:
		candles := make([]chartval.Candle, len(msg.Candles))
		for i, w := range msg.Candles {
			candles[i] = w.Candle()
		}
		c.coalescer.Add(msg.Symbol, candles)
	case MessageTypeError:
		c.log.WithField("symbol", msg.Symbol).Warnf("feed error: %s", msg.Error)
	default:
		c.log.WithField("type", msg.Type).Debug("ignoring unknown message")
	}
}
