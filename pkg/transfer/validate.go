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

package transfer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// bounds concurrent stat calls while validating
const validateConcurrency = 8

// 🔍 Validate checks mappings the way a caller should before submitting a request:
// paths are set, the source exists and is a directory, and source and destination do not overlap.
// The lowest-index problem is returned as a *ValidationError.
func Validate(ctx context.Context, mappings []Mapping) error {
	if len(mappings) == 0 {
		return &ValidationError{Index: -1, Reason: "at least one mapping is required"}
	}

	problems := make([]error, len(mappings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(validateConcurrency)
	for i, m := range mappings {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			problems[i] = validateMapping(i, m)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Errorf("validating mappings: %w", err)
	}

	for _, p := range problems {
		if p != nil {
			return p
		}
	}
	return nil
}

func validateMapping(idx int, m Mapping) error {
	resolved, err := resolveMapping(idx, m)
	if err != nil {
		return err
	}

	info, err := os.Stat(resolved.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return &ValidationError{Index: idx, Mapping: m, Reason: "source folder does not exist"}
		}
		return &ValidationError{Index: idx, Mapping: m, Reason: "reading source: " + err.Error()}
	}
	if !info.IsDir() {
		return &ValidationError{Index: idx, Mapping: m, Reason: "source is not a folder"}
	}

	if info, err := os.Stat(resolved.Destination); err == nil && !info.IsDir() {
		return &ValidationError{Index: idx, Mapping: m, Reason: "destination exists and is not a folder"}
	}

	return nil
}

// resolveMapping makes both paths absolute and rejects mappings that would feed on themselves
func resolveMapping(idx int, m Mapping) (Mapping, error) {
	if strings.TrimSpace(m.Source) == "" {
		return Mapping{}, &ValidationError{Index: idx, Mapping: m, Reason: "source path is empty"}
	}
	if strings.TrimSpace(m.Destination) == "" {
		return Mapping{}, &ValidationError{Index: idx, Mapping: m, Reason: "destination path is empty"}
	}

	src, err := filepath.Abs(m.Source)
	if err != nil {
		return Mapping{}, &ValidationError{Index: idx, Mapping: m, Reason: "resolving source: " + err.Error()}
	}
	dst, err := filepath.Abs(m.Destination)
	if err != nil {
		return Mapping{}, &ValidationError{Index: idx, Mapping: m, Reason: "resolving destination: " + err.Error()}
	}

	// compare where the paths really lead, so a symlinked alias of the source is caught
	realSrc, realDst := canonical(src), canonical(dst)
	if realSrc == realDst {
		return Mapping{}, &ValidationError{Index: idx, Mapping: m, Reason: "source and destination are the same folder"}
	}
	if isWithin(realSrc, realDst) {
		return Mapping{}, &ValidationError{Index: idx, Mapping: m, Reason: "destination is inside the source folder"}
	}

	return Mapping{Source: src, Destination: dst}, nil
}

// canonical resolves symlinks in the longest existing prefix of an absolute path.
// The part that does not exist yet is appended unchanged.
func canonical(path string) string {
	cur, rest := path, ""
	for {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return path
		}
		rest = filepath.Join(filepath.Base(cur), rest)
		cur = parent
	}
}

// isWithin reports whether child lies strictly below parent
func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
