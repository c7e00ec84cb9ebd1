// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/foldermove/cmd/foldermove/opts"
	"github.com/walteh/foldermove/pkg/log"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"
)

type rootOpts struct {
	*opts.RootOpts
}

// newRootOpts creates the option set the flags bind to
func newRootOpts(console io.Writer) *rootOpts {
	return &rootOpts{
		RootOpts: &opts.RootOpts{
			Console: console,
			Confirm: promptConfirm,
		},
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *rootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "mapping file path (yaml, hcl, json or toml)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "print every transferred file")
	cmd.PersistentFlags().BoolVarP(&o.Yes, "yes", "y", false, "transfer without asking for confirmation")
	cmd.PersistentFlags().StringArrayVar(&o.Ignore, "ignore", nil, "glob pattern to skip (repeatable)")
}

func levelFor(o *rootOpts) zerolog.Level {
	if o.Debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

// setupLogging puts the console logger, and its zerolog logger, into the command context
func setupLogging(cmd *cobra.Command, o *rootOpts) {
	zerolog.SetGlobalLevel(levelFor(o))
	logger := log.New(o.Console, levelFor(o))
	zerolog.DefaultContextLogger = logger.Zerolog()
	cmd.SetContext(log.NewContext(cmd.Context(), logger))
}

// promptConfirm asks a yes/no question on the terminal, defaulting to no
func promptConfirm(question string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.Errorf("stdin is not a terminal, pass --yes to transfer without confirmation")
	}
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(question)
}
