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
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/foldermove/cmd/foldermove/opts"
	"github.com/walteh/foldermove/pkg/config"
	"github.com/walteh/foldermove/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// defaultConfigFiles are tried, in order, when no mappings are given at all
var defaultConfigFiles = []string{
	".foldermove",
	".foldermove.yaml",
	".foldermove.yml",
	".foldermove.hcl",
	".foldermove.json",
	".foldermove.toml",
}

// 🗺️ ParseMappings turns SRC DST argument pairs and SRC=DST flag values into mappings.
// Argument pairs come first, in order, followed by the flag values.
func ParseMappings(args []string, flags []string) ([]transfer.Mapping, error) {
	if len(args)%2 != 0 {
		return nil, errors.Errorf("expected SRC DST pairs, got %d arguments", len(args))
	}

	out := make([]transfer.Mapping, 0, len(args)/2+len(flags))
	for i := 0; i < len(args); i += 2 {
		out = append(out, transfer.Mapping{Source: args[i], Destination: args[i+1]})
	}

	for _, f := range flags {
		src, dst, ok := strings.Cut(f, "=")
		if !ok || src == "" || dst == "" {
			return nil, errors.Errorf("invalid --map value %q (want SRC=DST)", f)
		}
		out = append(out, transfer.Mapping{Source: src, Destination: dst})
	}

	return out, nil
}

// findDefaultConfig returns the first default mapping file present in the working directory
func findDefaultConfig() string {
	for _, name := range defaultConfigFiles {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// 📦 plan is everything a command needs to build a request
type plan struct {
	mappings []transfer.Mapping
	ignore   []string
	cfg      *config.Config // nil when no mapping file was read
}

// loadPlan merges command line mappings with the mapping file.
// The file is read when named with --config, or when the command line names no mappings and a
// default file exists.
func loadPlan(ctx context.Context, o *opts.RootOpts, args, maps []string) (*plan, error) {
	mappings, err := ParseMappings(args, maps)
	if err != nil {
		return nil, err
	}

	p := &plan{ignore: append([]string(nil), o.Ignore...)}

	path := o.ConfigFile
	if !o.ConfigExplicit() && len(mappings) == 0 {
		path = findDefaultConfig()
	}

	if path != "" {
		cfg, err := config.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		zerolog.Ctx(ctx).Debug().Str("path", cfg.Location()).Msg("using mapping file")
		p.cfg = cfg
		p.ignore = append(p.ignore, cfg.IgnorePatterns...)
		mappings = append(cfg.TransferMappings(), mappings...)
	}

	if len(mappings) == 0 {
		return nil, errors.Errorf("no mappings given: pass SRC DST pairs, --map SRC=DST or --config FILE")
	}

	p.mappings = mappings
	return p, nil
}
