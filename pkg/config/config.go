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

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/foldermove/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// 📦 MappingArgs is one source folder and where its contents go
type MappingArgs struct {
	Source      string `json:"source" yaml:"source" toml:"source"`
	Destination string `json:"destination" yaml:"destination" toml:"destination"`
}

// 📚 Config represents a mapping file
type Config struct {
	Operation      string        `json:"operation,omitempty" yaml:"operation,omitempty" toml:"operation,omitempty"`
	Mappings       []MappingArgs `json:"mappings" yaml:"mappings" toml:"mappings"`
	IgnorePatterns []string      `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" toml:"ignore_patterns,omitempty"`

	location string
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the config and normalizes its paths.
// Relative paths are resolved against the folder holding the config file.
func (cfg *Config) Validate() error {
	if _, err := transfer.ParseOperation(cfg.Operation); err != nil {
		return errors.Errorf("operation: %w", err)
	}

	if len(cfg.Mappings) == 0 {
		return errors.Errorf("at least one mapping is required")
	}

	base := ""
	if cfg.location != "" {
		base = filepath.Dir(cfg.location)
	}

	for i := range cfg.Mappings {
		m := &cfg.Mappings[i]
		if strings.TrimSpace(m.Source) == "" {
			return errors.Errorf("mappings[%d].source is required", i)
		}
		if strings.TrimSpace(m.Destination) == "" {
			return errors.Errorf("mappings[%d].destination is required", i)
		}
		m.Source = resolve(base, m.Source)
		m.Destination = resolve(base, m.Destination)
	}

	for _, p := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid ignore pattern %q", p)
		}
	}

	if cfg.Operation == "" {
		cfg.Operation = transfer.OperationCopy.String()
	}

	return nil
}

func resolve(base, path string) string {
	path = filepath.Clean(strings.TrimSpace(path))
	if base == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// 🗺️ TransferMappings converts the config mappings for the engine
func (cfg *Config) TransferMappings() []transfer.Mapping {
	out := make([]transfer.Mapping, 0, len(cfg.Mappings))
	for _, m := range cfg.Mappings {
		out = append(out, transfer.Mapping{Source: m.Source, Destination: m.Destination})
	}
	return out
}

// 📦 Request builds the transfer request described by the config
func (cfg *Config) Request() (transfer.Request, error) {
	op, err := transfer.ParseOperation(cfg.Operation)
	if err != nil {
		return transfer.Request{}, errors.Errorf("parsing operation: %w", err)
	}
	return transfer.NewRequest(op, cfg.TransferMappings()...), nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	parts := make([]string, 0, len(cfg.Mappings))
	for _, m := range cfg.Mappings {
		parts = append(parts, m.Source+" -> "+m.Destination)
	}
	return fmt.Sprintf("%s [%s]", cfg.Operation, strings.Join(parts, ", "))
}
