// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package initapp

import (
	"chartcore/chart"
	"chartcore/chartunit"
	"chartcore/chartval"
	"chartcore/config"
	"chartcore/feed"
	"chartcore/indapi/candles"
	"chartcore/logging"
	"chartcore/viewcache"
	"chartcore/viewport"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"gioui.org/unit"
	"github.com/sirupsen/logrus"
)

// Bounds of the chart until a host reports its layout.
var DefaultBounds = viewport.Bounds{Width: 1280, Height: 720}

type InitApp struct {
	config     config.Config
	appConfig  config.AppConfig
	resolution candles.CandleResolution
	// Serialises all chart calls.
	chartLock  sync.Mutex
	chart      *chart.Model
	timeframes *viewcache.TimeframeCache
	log        *logrus.Entry
}

func NewInitApp(c config.Config) *InitApp {
	return &InitApp{
		config: c,
		log:    logging.Component("app"),
	}
}

// Initialize reads the configuration and creates an empty chart.
func (a *InitApp) Initialize() error {
	appConfig, err := a.config.Copy()
	if err != nil {
		return err
	}
	a.appConfig = appConfig
	err = logging.Configure(logging.Options{
		Level:      appConfig.Log.Level,
		Format:     appConfig.Log.Format,
		File:       appConfig.Log.File,
		MaxSizeMb:  appConfig.Log.MaxSizeMb,
		MaxBackups: appConfig.Log.MaxBackups,
		MaxAgeDays: appConfig.Log.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	if appConfig.Cache.Timeframes && a.timeframes == nil {
		store, err := viewcache.NewLocalStore(filepath.Join(config.AppName, "timeframes"))
		if err != nil {
			a.log.WithError(err).Warn("timeframe cache is not available")
		} else {
			a.timeframes = viewcache.NewTimeframeCache(store, viewcache.DefaultMaxAge)
		}
	}

	cfg := appConfig.Chart
	a.resolution = cfg.CandleResolution()
	a.chart = chart.NewModel(cfg, chartunit.NewPixelContext(unit.Metric{PxPerDp: 1, PxPerSp: 1}))
	a.chart.SetBounds(DefaultBounds)
	secondaries := make([]chart.SeriesData, len(cfg.Secondary))
	for i, s := range cfg.Secondary {
		secondaries[i] = chart.SeriesData{Instrument: chartval.Instrument{Symbol: s}}
	}
	a.chart.SetAllSeries(chart.SeriesData{Instrument: chartval.Instrument{Symbol: cfg.Symbol}}, secondaries)
	a.chart.CandlesUpdated().Subscribe(func(e chart.UpdateEvent) {
		a.log.WithFields(logrus.Fields{
			"symbol":    e.Symbol,
			"prepended": e.Prepended,
			"appended":  e.Appended,
		}).Debug("candles updated")
	})
	a.log.WithFields(logrus.Fields{
		"symbol":     cfg.Symbol,
		"resolution": a.resolution.String(),
		"secondary":  cfg.Secondary,
	}).Info("chart initialized")
	return nil
}

// SetTimeframeCache replaces the cache created by Initialize.
func (a *InitApp) SetTimeframeCache(c *viewcache.TimeframeCache) {
	a.timeframes = c
}

// WithChart calls f while no feed update is applied.
func (a *InitApp) WithChart(f func(c *chart.Model)) {
	a.chartLock.Lock()
	defer a.chartLock.Unlock()
	f(a.chart)
}

// UpdateCandles forwards feed updates to the chart.
// The stored timeframe is restored once the main series receives its first candles.
func (a *InitApp) UpdateCandles(update []chartval.Candle, symbol string) error {
	a.chartLock.Lock()
	defer a.chartLock.Unlock()
	wasEmpty := a.chart.MainSeries().IsEmpty()
	if err := a.chart.UpdateCandles(update, symbol); err != nil {
		return err
	}
	if wasEmpty && !a.chart.MainSeries().IsEmpty() && symbol == a.appConfig.Chart.Symbol {
		a.restoreTimeframe()
	}
	return nil
}

func (a *InitApp) restoreTimeframe() {
	if a.timeframes == nil {
		return
	}
	tf, ok := a.timeframes.Load(a.appConfig.Chart.Symbol, a.resolution)
	if !ok {
		return
	}
	if !a.chart.SetTimestampRange(tf.Start, tf.End) {
		a.log.WithField("start", tf.Start).Debug("stored timeframe does not fit")
		return
	}
	a.log.WithFields(logrus.Fields{"start": tf.Start, "end": tf.End}).Info("timeframe restored")
}

func (a *InitApp) saveTimeframe() {
	if a.timeframes == nil {
		return
	}
	a.chartLock.Lock()
	tf, ok := a.chart.VisibleTimeframe()
	a.chartLock.Unlock()
	if !ok {
		return
	}
	if err := a.timeframes.Save(a.appConfig.Chart.Symbol, a.resolution, tf); err != nil {
		a.log.WithError(err).Warn("error saving timeframe")
	}
}

func (a *InitApp) saveConfiguration() error {
	appConfig, err := a.config.Lock()
	if err != nil {
		return err
	}
	a.chartLock.Lock()
	appConfig.Chart.AxisType = a.chart.AxisType().String()
	a.chartLock.Unlock()
	return a.config.Unlock(appConfig)
}

// Run receives feed updates until ctx is cancelled or the feed cannot be started.
func (a *InitApp) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fc := a.appConfig.Feed
	symbols := append([]string{a.appConfig.Chart.Symbol}, a.appConfig.Chart.Secondary...)
	coalescer := feed.NewCoalescer()
	client := feed.NewClient(fc.Url, fc.ApiKey, symbols, time.Duration(fc.ReconnectSeconds)*time.Second, coalescer)
	dispatcher := feed.NewDispatcher(coalescer, a, fc.FlushPerSecond)

	var wg sync.WaitGroup
	var feedErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		dispatcher.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		feedErr = client.Run(ctx)
	}()
	wg.Wait()

	a.saveTimeframe()
	if err := a.saveConfiguration(); err != nil {
		a.log.WithError(err).Warn("error saving configuration")
	}
	if feedErr != nil && !errors.Is(feedErr, context.Canceled) {
		return feedErr
	}
	a.log.Info("terminated")
	return nil
}
