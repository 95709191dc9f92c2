// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Panel program

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/aamcrae/config"
	"github.com/aamcrae/panel/cfg"
	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/input"
	"github.com/aamcrae/panel/pins"
	"github.com/aamcrae/panel/screen"
	"github.com/aamcrae/panel/screens"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

const defaultConfig = "panel.conf"

var (
	configFile string
	backend    string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatalf("panel: %v", err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "panel",
		Short:         "Rotary knob controlled display panel",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", defaultConfig, "configuration file")
	root.PersistentFlags().StringVar(&backend, "backend", "", "gpio backend (periph, gpiod, rpio, sysfs, sim), overrides the config")
	root.AddCommand(watchCmd())
	return root
}

// loadConfig reads the configuration file. A missing default
// configuration file is not an error, and all defaults are used.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(configFile); errors.Is(err, os.ErrNotExist) && configFile == defaultConfig {
		log.Printf("panel: %s not found, using defaults", configFile)
		return nil, nil
	}
	return cfg.ParseFile(configFile)
}

// inputConfig reads the input configuration, with any backend override.
func inputConfig(conf *config.Config) (*input.Config, error) {
	ic, err := input.ParseConfig(conf, "input")
	if err != nil {
		return nil, err
	}
	if backend != "" {
		ic.Backend = backend
	}
	return ic, nil
}

// openPoller opens the pins and starts polling the encoder.
// The returned function stops the poller and releases the pins.
func openPoller(ic *input.Config) (*input.Poller, func(), error) {
	src, err := pins.Open(ic.Backend, ic.Chip)
	if err != nil {
		return nil, nil, err
	}
	p, err := input.NewPoller(src, ic)
	if err != nil {
		src.Close()
		return nil, nil, err
	}
	p.Start()
	return p, func() {
		if err := p.Stop(); err != nil {
			log.Printf("panel: %v", err)
		}
		if err := src.Close(); err != nil {
			log.Printf("panel: %s: %v", ic.Backend, err)
		}
	}, nil
}

func run(ctx context.Context) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	ic, err := inputConfig(conf)
	if err != nil {
		return err
	}
	dc, err := display.ParseConfig(conf, "display")
	if err != nil {
		return err
	}
	list, err := screens.Build(conf, dc.Width, dc.Height)
	if err != nil {
		return err
	}
	coord, err := screen.NewCoordinator(list)
	if err != nil {
		return err
	}
	poller, closePoller, err := openPoller(ic)
	if err != nil {
		return err
	}
	defer closePoller()
	d, err := display.Open(dc)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(ctx, unix.SIGINT, unix.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	loop := screen.NewLoop(coord, poller.Events(), d, dc.FPS)
	g.Go(func() error {
		return loop.Run(ctx)
	})
	if srv := d.Server; srv != nil {
		g.Go(srv.ListenAndServe)
		g.Go(func() error {
			<-ctx.Done()
			return srv.Close()
		})
	}
	err = g.Wait()
	log.Printf("panel: shutting down after %d frames", d.Frames)
	return err
}
