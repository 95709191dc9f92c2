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

package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"

	"github.com/aamcrae/panel/input"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

// watchCmd prints the encoder events, one JSON object per line.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print encoder events as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}
			ic, err := inputConfig(conf)
			if err != nil {
				return err
			}
			poller, closePoller, err := openPoller(ic)
			if err != nil {
				return err
			}
			defer closePoller()
			ctx, stop := signal.NotifyContext(cmd.Context(), unix.SIGINT, unix.SIGTERM)
			defer stop()
			return watch(ctx, poller.Events(), os.Stdout)
		},
	}
}

// watch writes each event to w until the context is done
// or the event channel is closed.
func watch(ctx context.Context, events <-chan input.Event, w io.Writer) error {
	enc := json.NewEncoder(w)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := enc.Encode(ev); err != nil {
				return err
			}
		}
	}
}
