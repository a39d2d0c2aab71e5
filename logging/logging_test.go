// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestComponentField(t *testing.T) {
	e := Component("merge")
	assert.Equal(t, "merge", e.Data["component"])
	assert.Same(t, Logger(), e.Logger)
}

func TestConfigure(t *testing.T) {
	defer func() {
		_ = Configure(Options{Level: "info"})
	}()
	assert.NoError(t, Configure(Options{Level: "debug", Format: "json"}))
	assert.Equal(t, logrus.DebugLevel, Logger().GetLevel())
	_, isJson := Logger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJson)

	assert.Error(t, Configure(Options{Level: "loud"}))
	assert.Error(t, Configure(Options{Format: "xml"}))
}

func TestConfigureFile(t *testing.T) {
	defer func() {
		_ = Configure(Options{Level: "info"})
	}()
	fileName := filepath.Join(t.TempDir(), "chart.log")
	assert.NoError(t, Configure(Options{Level: "info", File: fileName, MaxSizeMb: 1}))
	Component("test").Info("written to file")
	content, err := os.ReadFile(fileName)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "written to file")
}
