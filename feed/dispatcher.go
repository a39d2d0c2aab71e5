// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"chartcore/chartval"
	"chartcore/logging"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Sink receives coalesced candle updates. All calls are made from the goroutine running the dispatcher.
type Sink interface {
	UpdateCandles(candles []chartval.Candle, symbol string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(candles []chartval.Candle, symbol string) error

func (f SinkFunc) UpdateCandles(candles []chartval.Candle, symbol string) error {
	return f(candles, symbol)
}

// Dispatcher delivers pending updates of a Coalescer to a Sink, at most flushPerSecond times per second.
type Dispatcher struct {
	coalescer *Coalescer
	sink      Sink
	limiter   *rate.Limiter
	log       *logrus.Entry
}

func NewDispatcher(c *Coalescer, sink Sink, flushPerSecond int) *Dispatcher {
	limit := rate.Inf
	if flushPerSecond > 0 {
		limit = rate.Limit(flushPerSecond)
	}
	return &Dispatcher{
		coalescer: c,
		sink:      sink,
		limiter:   rate.NewLimiter(limit, 1),
		log:       logging.Component("dispatcher"),
	}
}

// Run delivers updates until ctx is cancelled. Pending updates are delivered before returning.
func (d *Dispatcher) Run(ctx context.Context) {
	d.log.Debug("dispatcher started")
	defer d.log.Debug("dispatcher terminated")
	for {
		select {
		case <-ctx.Done():
			d.Flush()
			return
		case <-d.coalescer.Notify():
		}
		if err := d.limiter.Wait(ctx); err != nil {
			d.Flush()
			return
		}
		d.Flush()
	}
}

// Flush delivers all pending updates immediately.
func (d *Dispatcher) Flush() int {
	batches := d.coalescer.Drain()
	for _, b := range batches {
		d.deliver(b)
	}
	return len(batches)
}

func (d *Dispatcher) deliver(b Batch) {
	log := d.log.WithFields(logrus.Fields{
		"batch":   uuid.New().String(),
		"symbol":  b.Symbol,
		"candles": len(b.Candles),
	})
	if err := d.sink.UpdateCandles(b.Candles, b.Symbol); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.WithError(err).Warn("update was not applied")
		return
	}
	log.Debug("update applied")
}
