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
	"github.com/spf13/cobra"
	"github.com/walteh/foldermove/cmd/foldermove/opts"
	"github.com/walteh/foldermove/pkg/log"
	"github.com/walteh/foldermove/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// NewValidateCmd creates the validate command
func NewValidateCmd(o *opts.RootOpts) *cobra.Command {
	var maps []string

	cmd := &cobra.Command{
		Use:   "validate [SRC DST]...",
		Short: "Check mappings without transferring anything",
		Long: `Validate runs the same checks as copy and move: every source must be an existing folder,
no destination may equal or sit inside its source, and every ignore pattern must parse.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			p, err := loadPlan(ctx, o, args, maps)
			if err != nil {
				return errors.Errorf("collecting mappings: %w", err)
			}

			if _, err := transfer.New(transfer.Options{Ignore: p.ignore}); err != nil {
				logger.Error(err.Error())
				return reported(err)
			}

			if err := transfer.Validate(ctx, p.mappings); err != nil {
				logger.Error(err.Error())
				return reported(err)
			}

			for i, m := range p.mappings {
				logger.Infof("%d. %s → %s", i+1, m.Source, m.Destination)
			}
			logger.Successf("%d %s valid", len(p.mappings), plural(len(p.mappings), "mapping", "mappings"))

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&maps, "map", "m", nil, "SRC=DST mapping (repeatable)")

	return cmd
}
