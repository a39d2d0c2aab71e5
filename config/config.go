// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import "errors"

var ErrNewerConfigVersion = errors.New("configuration file is from a newer release")

type Config interface {
	GetAppName() string
	// Lock returns a copy of the stored configuration for modification. Unlock has to be called afterwards.
	Lock() (*AppConfig, error)
	Unlock(c *AppConfig) error
	// Copy returns the effective configuration, including environment overrides.
	Copy() (AppConfig, error)
}
