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
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/walteh/foldermove/cmd/foldermove/commands"
	"github.com/walteh/foldermove/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, opts := newRootCmd()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		if !commands.IsReported(err) {
			log.New(opts.Console, levelFor(opts)).Errorf("%v", err)
		}
		os.Exit(1)
	}
}

// newRootCmd builds the command tree
func newRootCmd() (*cobra.Command, *rootOpts) {
	opts := newRootOpts(os.Stdout)

	rootCmd := &cobra.Command{
		Use:   "foldermove",
		Short: "Copy or move the contents of folders into other folders",
		Long: `foldermove transfers every file below one or more source folders into
matching destination folders, recreating the folder structure and reporting progress.

Mappings come from SRC DST argument pairs, repeated --map SRC=DST flags, or a mapping
file (YAML, HCL, JSON or TOML) given with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, opts)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd, opts)

	// Add commands
	rootCmd.AddCommand(
		commands.NewCopyCmd(opts.RootOpts),
		commands.NewMoveCmd(opts.RootOpts),
		commands.NewRunCmd(opts.RootOpts),
		commands.NewValidateCmd(opts.RootOpts),
	)

	return rootCmd, opts
}
