// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package main

import (
	"chartcore/config"
	"chartcore/initapp"
	"chartcore/logging"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	log := logging.Component("main")
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warn("error reading .env file")
	}
	c := config.NewGlobalConfig(os.Getenv(config.EnvPrefix + "CONFIG_DIR"))
	a := initapp.NewInitApp(c)
	if err := a.Initialize(); err != nil {
		log.WithError(err).Fatal("initialization failed")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.Run(ctx); err != nil {
		log.WithError(err).Fatal("terminating with error")
	}
}
