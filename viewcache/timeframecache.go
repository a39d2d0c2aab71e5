// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package viewcache

import (
	"chartcore/chart"
	"chartcore/indapi/candles"
	"chartcore/logging"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	cacheKeyPrefix = "timeframe_"
	DefaultMaxAge  = time.Hour * 24 * 30
)

type timeframeEntry struct {
	Symbol     string    `json:"symbol"`
	Resolution string    `json:"resolution"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// TimeframeCache remembers the visible timeframe per symbol and resolution.
type TimeframeCache struct {
	data   Store
	maxAge time.Duration
	lock   sync.Mutex
	log    *logrus.Entry
}

func NewTimeframeCache(data Store, maxAge time.Duration) *TimeframeCache {
	return &TimeframeCache{
		data:   data,
		maxAge: maxAge,
		log:    logging.Component("viewcache"),
	}
}

var keyReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", ".", "_", " ", "_")

// Resolution names differ only in case ("1m" and "1M"), the key uses the numeric value instead.
func cacheKey(symbol string, resolution candles.CandleResolution) string {
	return fmt.Sprintf("%s%s_%d", cacheKeyPrefix, keyReplacer.Replace(strings.ToUpper(symbol)), resolution)
}

// Load returns the stored timeframe, if there is a valid one which is not outdated.
func (c *TimeframeCache) Load(symbol string, resolution candles.CandleResolution) (chart.Timeframe, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	key := cacheKey(symbol, resolution)
	log := c.log.WithField("key", key)
	if err := c.data.PurgeKey(key, c.maxAge); err != nil {
		log.WithError(err).Warn("error purging cache, timeframe may be outdated")
	}
	raw, err := c.data.ReadFile(key)
	if err != nil {
		return chart.Timeframe{}, false
	}
	var e timeframeEntry
	if err := json.Unmarshal(raw, &e); err != nil || e.End.Before(e.Start) || e.Symbol != symbol {
		log.Warn("cache contains invalid data")
		if err := c.data.Remove(key); err != nil {
			log.WithError(err).Warn("error deleting cache, timeframe may be invalid")
		}
		return chart.Timeframe{}, false
	}
	return chart.Timeframe{Start: e.Start, End: e.End}, true
}

func (c *TimeframeCache) Save(symbol string, resolution candles.CandleResolution, tf chart.Timeframe) error {
	if tf.End.Before(tf.Start) {
		return fmt.Errorf("invalid timeframe %v - %v", tf.Start, tf.End)
	}
	text, err := json.Marshal(&timeframeEntry{
		Symbol:     symbol,
		Resolution: resolution.String(),
		Start:      tf.Start.UTC(),
		End:        tf.End.UTC(),
	})
	if err != nil {
		return err
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	key := cacheKey(symbol, resolution)
	if err := c.data.WriteFile(key, text); err != nil {
		return fmt.Errorf("error writing cache %s: %w", key, err)
	}
	c.log.WithField("key", key).Debug("timeframe stored")
	return nil
}
