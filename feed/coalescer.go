// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"chartcore/chartval"
	"sync"

	"github.com/zhangyunhao116/skipmap"
)

// Batch is the coalesced update of one symbol, sorted by timestamp.
type Batch struct {
	Symbol  string
	Candles []chartval.Candle
}

type symbolBuffer struct {
	mutex   sync.Mutex
	candles *skipmap.Int64Map[chartval.Candle]
}

// Coalescer collects candle updates per symbol until they are drained.
// Of several updates of the same candle only the newest is kept.
// Add and Drain may be called from different goroutines.
type Coalescer struct {
	buffers *skipmap.StringMap[*symbolBuffer]
	notify  chan struct{}
}

func NewCoalescer() *Coalescer {
	return &Coalescer{
		buffers: skipmap.NewString[*symbolBuffer](),
		notify:  make(chan struct{}, 1),
	}
}

// Notify receives a value after new candles were added.
func (c *Coalescer) Notify() <-chan struct{} {
	return c.notify
}

func (c *Coalescer) Add(symbol string, candles []chartval.Candle) {
	if len(candles) == 0 {
		return
	}
	b, _ := c.buffers.LoadOrStoreLazy(symbol, func() *symbolBuffer {
		return &symbolBuffer{candles: skipmap.NewInt64[chartval.Candle]()}
	})
	b.mutex.Lock()
	for _, candle := range candles {
		b.candles.Store(candle.Timestamp.UnixNano(), candle)
	}
	b.mutex.Unlock()
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// Drain returns and removes all pending updates, ordered by symbol.
func (c *Coalescer) Drain() []Batch {
	var batches []Batch
	c.buffers.Range(func(symbol string, b *symbolBuffer) bool {
		b.mutex.Lock()
		pending := b.candles
		if pending.Len() > 0 {
			b.candles = skipmap.NewInt64[chartval.Candle]()
		}
		b.mutex.Unlock()
		if pending.Len() == 0 {
			return true
		}
		candles := make([]chartval.Candle, 0, pending.Len())
		pending.Range(func(_ int64, candle chartval.Candle) bool {
			candles = append(candles, candle)
			return true
		})
		batches = append(batches, Batch{Symbol: symbol, Candles: candles})
		return true
	})
	return batches
}

// Pending returns the number of buffered candles of all symbols.
func (c *Coalescer) Pending() int {
	n := 0
	c.buffers.Range(func(_ string, b *symbolBuffer) bool {
		b.mutex.Lock()
		n += b.candles.Len()
		b.mutex.Unlock()
		return true
	})
	return n
}
