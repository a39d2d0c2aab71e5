// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"chartcore/chartunit"
	"chartcore/indapi/candles"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string {
	return ""
}

func newTestGlobalConfig(t *testing.T) *GlobalConfig {
	g := NewGlobalConfig(t.TempDir())
	g.SetEnv(noEnv)
	return g
}

func TestDefaultsWithoutFile(t *testing.T) {
	g := newTestGlobalConfig(t)
	c, err := g.Copy()
	require.NoError(t, err)
	assert.Equal(t, NewAppConfig(), c)
	_, err = os.Stat(filepath.Join(g.dir, configFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteAndRead(t *testing.T) {
	g := newTestGlobalConfig(t)
	c, err := g.Lock()
	require.NoError(t, err)
	c.Chart.Symbol = "AAPL"
	c.Chart.Secondary = []string{"MSFT"}
	c.Chart.Indicators = []IndicatorConfig{{IndicatorId: "ema", Properties: map[string]string{"Time Periods": "9"}}}
	require.NoError(t, g.Unlock(c))

	content, err := os.ReadFile(filepath.Join(g.dir, configFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "fileversion: 1")
	// The default feed url is not stored.
	assert.NotContains(t, string(content), "localhost")

	reread := NewGlobalConfig(g.dir)
	reread.SetEnv(noEnv)
	r, err := reread.Copy()
	require.NoError(t, err)
	assert.Equal(t, "AAPL", r.Chart.Symbol)
	assert.Equal(t, []string{"MSFT"}, r.Chart.Secondary)
	assert.Equal(t, c.Chart.Indicators, r.Chart.Indicators)
	assert.Equal(t, NewFeedConfig().Url, r.Feed.Url)
}

func TestUnchangedConfigIsNotWritten(t *testing.T) {
	g := newTestGlobalConfig(t)
	c, err := g.Lock()
	require.NoError(t, err)
	require.NoError(t, g.Unlock(c))
	_, err = os.Stat(filepath.Join(g.dir, configFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestNewerVersionIsRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("fileversion: 99\n"), 0600))
	g := NewGlobalConfig(dir)
	_, err := g.Copy()
	assert.ErrorIs(t, err, ErrNewerConfigVersion)
	_, err = g.Lock()
	assert.ErrorIs(t, err, ErrNewerConfigVersion)
}

func TestInvalidValuesAreSanitized(t *testing.T) {
	dir := t.TempDir()
	content := "fileversion: 1\nchart:\n  resolution: 7h\n  axistype: cubic\n  mincandles: -3\n  zoomsensitivity: 2\nfeed:\n  flushpersecond: 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0600))
	g := NewGlobalConfig(dir)
	g.SetEnv(noEnv)
	c, err := g.Copy()
	require.NoError(t, err)
	def := NewAppConfig()
	assert.Equal(t, def.Chart.Resolution, c.Chart.Resolution)
	assert.Equal(t, def.Chart.AxisType, c.Chart.AxisType)
	assert.Equal(t, def.Chart.MinCandles, c.Chart.MinCandles)
	assert.Equal(t, def.Chart.ZoomSensitivity, c.Chart.ZoomSensitivity)
	assert.Equal(t, def.Feed.FlushPerSecond, c.Feed.FlushPerSecond)
	// Missing settings keep their defaults.
	assert.True(t, c.Chart.AutoScale)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CHARTCORE_LOG_LEVEL":    "debug",
		"CHARTCORE_FEED_URL":     "wss://feed.example.com/ws",
		"CHARTCORE_SYMBOL":       "BTCUSD",
		"CHARTCORE_RESOLUTION":   "5m",
		"CHARTCORE_AXIS_TYPE":    "percent",
		"CHARTCORE_SECONDARY":    "ETHUSD,SOLUSD",
		"CHARTCORE_TRADING_DAYS": "true",
		// Ignored, not a number.
		"CHARTCORE_FEED_FLUSH_PER_SECOND": "fast",
	}
	g := NewGlobalConfig(t.TempDir())
	g.SetEnv(func(k string) string { return env[k] })
	c, err := g.Copy()
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "wss://feed.example.com/ws", c.Feed.Url)
	assert.Equal(t, "BTCUSD", c.Chart.Symbol)
	assert.Equal(t, candles.CandleFiveMinutes, c.Chart.CandleResolution())
	assert.Equal(t, chartunit.AxisPercent, c.Chart.Axis())
	assert.Equal(t, []string{"ETHUSD", "SOLUSD"}, c.Chart.Secondary)
	assert.True(t, c.Chart.TradingDays)
	assert.Equal(t, NewFeedConfig().FlushPerSecond, c.Feed.FlushPerSecond)

	// Overrides are not stored.
	l, err := g.Lock()
	require.NoError(t, err)
	assert.Equal(t, NewChartConfig().Symbol, l.Chart.Symbol)
	require.NoError(t, g.Unlock(l))
}

func TestDeepCopy(t *testing.T) {
	a := NewAppConfig()
	c := a.deepCopy()
	c.Chart.Indicators[0].Properties["Time Periods"] = "50"
	assert.Equal(t, "20", a.Chart.Indicators[0].Properties["Time Periods"])
}
