// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"github.com/barkimedes/go-deepcopy"
)

type AppConfig struct {
	Chart ChartConfig
	Log   LogConfig
	Feed  FeedConfig
	Cache CacheConfig
}

type LogConfig struct {
	Level      string
	Format     string `yaml:",omitempty"`
	File       string `yaml:",omitempty"`
	MaxSizeMb  int    `yaml:",omitempty"`
	MaxBackups int    `yaml:",omitempty"`
	MaxAgeDays int    `yaml:",omitempty"`
}

type FeedConfig struct {
	Url    string `yaml:",omitempty"`
	ApiKey string `yaml:",omitempty"`
	// Updates are delivered to the chart at most this often.
	FlushPerSecond int `yaml:",omitempty"`
	// Reconnect delay after the connection was lost.
	ReconnectSeconds int `yaml:",omitempty"`
}

type CacheConfig struct {
	// Persist the visible time range per symbol.
	Timeframes bool
}

var defaultFeedConfig = NewFeedConfig()

func NewAppConfig() AppConfig {
	return AppConfig{
		Chart: NewChartConfig(),
		Log:   LogConfig{Level: "info", Format: "text", MaxSizeMb: 10, MaxBackups: 3, MaxAgeDays: 28},
		Feed:  NewFeedConfig(),
		Cache: CacheConfig{Timeframes: true},
	}
}

func NewFeedConfig() FeedConfig {
	return FeedConfig{
		Url:              "ws://localhost:8080/candles",
		FlushPerSecond:   30,
		ReconnectSeconds: 5,
	}
}

func (a *AppConfig) deepCopy() AppConfig {
	c, err := deepcopy.Anything(a)
	if err != nil {
		panic(err)
	}
	return *c.(*AppConfig)
}

func (a *AppConfig) Sanitize() {
	a.Chart.sanitize()
	if len(a.Log.Level) == 0 {
		a.Log.Level = "info"
	}
	if a.Feed.FlushPerSecond <= 0 {
		a.Feed.FlushPerSecond = defaultFeedConfig.FlushPerSecond
	}
	if a.Feed.ReconnectSeconds <= 0 {
		a.Feed.ReconnectSeconds = defaultFeedConfig.ReconnectSeconds
	}
	a.RestoreDefaults()
}

// We do not want to store certain default values in the configuration file,
// in order to avoid having to patch them.
func (a *AppConfig) RemoveDefaults() {
	if a.Feed.Url == defaultFeedConfig.Url {
		a.Feed.Url = ""
	}
}

// Restore certain default values which are not stored in the configuration file.
func (a *AppConfig) RestoreDefaults() {
	if len(a.Feed.Url) == 0 {
		a.Feed.Url = defaultFeedConfig.Url
	}
}
