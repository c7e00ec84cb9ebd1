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

package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/foldermove/cmd/foldermove/opts"
	"github.com/walteh/foldermove/pkg/log"
	"github.com/walteh/foldermove/pkg/operation"
	"github.com/walteh/foldermove/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// NewCopyCmd creates the copy command
func NewCopyCmd(o *opts.RootOpts) *cobra.Command {
	return newTransferCmd(o, transfer.OperationCopy)
}

// NewMoveCmd creates the move command
func NewMoveCmd(o *opts.RootOpts) *cobra.Command {
	return newTransferCmd(o, transfer.OperationMove)
}

func newTransferCmd(o *opts.RootOpts, op transfer.Operation) *cobra.Command {
	var maps []string

	cmd := &cobra.Command{
		Use:   op.String() + " [SRC DST]...",
		Short: fmt.Sprintf("%s the contents of source folders into destination folders", capitalize(op.String())),
		Long: fmt.Sprintf(`%s transfers every file below each source folder into its destination folder.
It will:
1. Validate every mapping before touching any file
2. Count the files to transfer
3. Recreate the folder structure under each destination
4. %s each file, overwriting files that already exist`, capitalize(op.String()), capitalize(op.String())),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := loadPlan(ctx, o, args, maps)
			if err != nil {
				return errors.Errorf("collecting mappings: %w", err)
			}

			return runTransfer(ctx, o, transfer.NewRequest(op, p.mappings...), p.ignore)
		},
	}

	cmd.Flags().StringArrayVarP(&maps, "map", "m", nil, "SRC=DST mapping (repeatable)")

	return cmd
}

// NewRunCmd creates the run command, which takes the operation from the mapping file
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the transfer described by a mapping file",
		Long: `Run loads the mapping file given with --config (or the first .foldermove file found in the
current folder) and performs the operation it names, copy by default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := loadPlan(ctx, o, nil, nil)
			if err != nil {
				return errors.Errorf("collecting mappings: %w", err)
			}
			if p.cfg == nil {
				return errors.Errorf("run needs a mapping file")
			}

			req, err := p.cfg.Request()
			if err != nil {
				return errors.Errorf("building request: %w", err)
			}

			return runTransfer(ctx, o, req, p.ignore)
		},
	}

	return cmd
}

// runTransfer validates req, runs it and renders its events until the result arrives
func runTransfer(ctx context.Context, o *opts.RootOpts, req transfer.Request, ignore []string) error {
	logger := log.FromContext(ctx)

	if err := transfer.Validate(ctx, req.Mappings); err != nil {
		logger.Error(err.Error())
		return reported(err)
	}

	ok, err := confirm(o, req)
	if err != nil {
		return errors.Errorf("asking for confirmation: %w", err)
	}
	if !ok {
		logger.Warning("aborted, nothing was transferred")
		return reported(ErrAborted)
	}

	engine, err := transfer.New(transfer.Options{Ignore: ignore})
	if err != nil {
		return errors.Errorf("creating engine: %w", err)
	}

	runner := operation.NewRunner(zerolog.Ctx(ctx), engine)

	verb := "copying"
	if req.Operation == transfer.OperationMove {
		verb = "moving"
	}
	logger.Header(fmt.Sprintf("%s %d %s", verb, len(req.Mappings), plural(len(req.Mappings), "folder", "folders")))

	events, err := runner.Start(ctx, req)
	if err != nil {
		return errors.Errorf("starting transfer: %w", err)
	}

	var r renderer
	if o.Verbose {
		r = newLineRenderer(ctx, logger, req)
	} else {
		r = newBarRenderer(ctx, verb, o.Console)
	}

	res, err := consume(events, r)
	if err != nil {
		return err
	}

	switch {
	case res.Success:
		logger.Success(res.Message)
		return nil
	case errors.Is(res.Err, transfer.ErrCancelled):
		logger.Warningf("transfer cancelled after %d %s", res.Files, plural(res.Files, "file", "files"))
	default:
		logger.Error(res.Message)
	}

	if res.Err == nil {
		return reported(errors.New(res.Message))
	}
	return reported(res.Err)
}

// confirm asks before touching any file unless --yes was given
func confirm(o *opts.RootOpts, req transfer.Request) (bool, error) {
	if o.Yes || o.Confirm == nil {
		return true, nil
	}

	return o.Confirm(fmt.Sprintf("%s the contents of %d %s?", capitalize(req.Operation.String()), len(req.Mappings), plural(len(req.Mappings), "folder", "folders")))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
