// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"strconv"
	"strings"
)

const EnvPrefix = "CHARTCORE_"

// ApplyEnv overrides settings from environment variables, e.g. CHARTCORE_LOG_LEVEL.
// Invalid numbers and flags are ignored.
func (a *AppConfig) ApplyEnv(getenv func(string) string) {
	str := func(key string, target *string) {
		if v := getenv(EnvPrefix + key); len(v) > 0 {
			*target = v
		}
	}
	integer := func(key string, target *int) {
		if v, err := strconv.Atoi(getenv(EnvPrefix + key)); err == nil {
			*target = v
		}
	}
	flag := func(key string, target *bool) {
		if v, err := strconv.ParseBool(getenv(EnvPrefix + key)); err == nil {
			*target = v
		}
	}
	str("LOG_LEVEL", &a.Log.Level)
	str("LOG_FORMAT", &a.Log.Format)
	str("LOG_FILE", &a.Log.File)
	str("FEED_URL", &a.Feed.Url)
	str("FEED_API_KEY", &a.Feed.ApiKey)
	integer("FEED_FLUSH_PER_SECOND", &a.Feed.FlushPerSecond)
	str("SYMBOL", &a.Chart.Symbol)
	str("RESOLUTION", &a.Chart.Resolution)
	str("AXIS_TYPE", &a.Chart.AxisType)
	if v := getenv(EnvPrefix + "SECONDARY"); len(v) > 0 {
		a.Chart.Secondary = strings.Split(v, ",")
	}
	flag("TRADING_DAYS", &a.Chart.TradingDays)
	flag("CACHE_TIMEFRAMES", &a.Cache.Timeframes)
	a.Sanitize()
}
