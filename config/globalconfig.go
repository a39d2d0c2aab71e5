// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"chartcore/logging"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

const AppName = "chartcore"
const configFileName = "chartcore.yaml"
const configFileVersion = 1

var logger = logging.Component("config")

type GlobalConfig struct {
	dir            string
	getenv         func(string) string
	loaded         bool
	version        VersionConfig
	appConfig      AppConfig
	appConfigMutex sync.Mutex
}

type VersionConfig struct {
	FileVersion int
}

// NewGlobalConfig stores the configuration in dir.
// An empty dir selects the user configuration directory.
func NewGlobalConfig(dir string) *GlobalConfig {
	return &GlobalConfig{
		dir:    dir,
		getenv: os.Getenv,
		version: VersionConfig{
			FileVersion: configFileVersion,
		},
		appConfig: NewAppConfig(),
	}
}

// SetEnv replaces the environment lookup used by Copy.
func (g *GlobalConfig) SetEnv(getenv func(string) string) {
	g.appConfigMutex.Lock()
	g.getenv = getenv
	g.appConfigMutex.Unlock()
}

func (g *GlobalConfig) GetAppName() string {
	return AppName
}

// Locks access to the configuration and returns a copy which can be modified.
// Unlock needs to be called afterwards, if no error was returned.
func (g *GlobalConfig) Lock() (*AppConfig, error) {
	g.appConfigMutex.Lock()
	if !g.loaded {
		err := g.read()
		if err != nil {
			g.appConfigMutex.Unlock()
			return nil, err
		}
	}
	appConfigCopy := g.appConfig.deepCopy()
	return &appConfigCopy, nil
}

// Update the configuration and unlock access.
// If the configuration was changed, the configuration will be written before unlocking.
func (g *GlobalConfig) Unlock(c *AppConfig) error {
	var err error
	if !cmp.Equal(g.appConfig, *c) {
		g.appConfig = *c
		err = g.write()
	}
	g.appConfigMutex.Unlock()
	return err
}

func (g *GlobalConfig) Copy() (AppConfig, error) {
	g.appConfigMutex.Lock()
	defer g.appConfigMutex.Unlock()
	if !g.loaded {
		err := g.read()
		if err != nil {
			return AppConfig{}, err
		}
	}
	c := g.appConfig.deepCopy()
	if g.getenv != nil {
		c.ApplyEnv(g.getenv)
	}
	return c, nil
}

func (g *GlobalConfig) getAppConfigDir() (string, error) {
	if len(g.dir) > 0 {
		return g.dir, nil
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine configuration path: %w", err)
	}
	return filepath.Join(userConfigDir, g.GetAppName()), nil
}

func (g *GlobalConfig) read() error {
	appConfigDir, err := g.getAppConfigDir()
	if err != nil {
		return err
	}
	fileName := filepath.Join(appConfigDir, configFileName)
	file, err := os.ReadFile(fileName)
	if errors.Is(err, os.ErrNotExist) {
		// It is fine if the configuration file does not yet exist.
		logger.WithField("file", fileName).Info("configuration file does not yet exist, using defaults")
		g.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}
	var version VersionConfig
	err = yaml.Unmarshal(file, &version)
	if err != nil {
		return fmt.Errorf("failed to parse configuration version: %w", err)
	}
	// Avoid removing new unknown settings if an old release is started with a newer config file.
	if version.FileVersion > configFileVersion {
		return fmt.Errorf("%w: version %d instead of %d", ErrNewerConfigVersion, version.FileVersion, configFileVersion)
	}
	appConfig := NewAppConfig()
	// Lists are replaced, not merged.
	appConfig.Chart.Indicators = nil
	err = yaml.Unmarshal(file, &appConfig)
	if err != nil {
		return fmt.Errorf("failed to parse app configuration: %w", err)
	}
	appConfig.Sanitize()
	g.appConfig = appConfig
	g.loaded = true
	return nil
}

func (g *GlobalConfig) write() error {
	appConfigDir, err := g.getAppConfigDir()
	if err != nil {
		return err
	}
	err = os.MkdirAll(appConfigDir, 0700)
	if err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}
	g.appConfig.Sanitize()
	g.appConfig.RemoveDefaults()
	fileVersion, err := yaml.Marshal(&g.version)
	if err != nil {
		return fmt.Errorf("error generating configuration version: %w", err)
	}
	fileAppConfig, err := yaml.Marshal(&g.appConfig)
	g.appConfig.RestoreDefaults()
	if err != nil {
		return fmt.Errorf("error generating app configuration: %w", err)
	}

	file := append(fileVersion, fileAppConfig...)
	fileName := filepath.Join(appConfigDir, configFileName)
	tmpFileName := fileName + ".tmp"
	// Writing may fail, so we write to a temporary file and replace afterwards.
	err = os.WriteFile(tmpFileName, file, 0600)
	if err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	err = os.Rename(tmpFileName, fileName)
	if err != nil {
		return fmt.Errorf("failed to replace configuration file: %w", err)
	}
	logger.WithField("file", fileName).Debug("configuration written")
	return nil
}
