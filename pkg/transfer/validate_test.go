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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	makeTree(t, src, map[string]string{"a.txt": "a"})
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name      string
		mappings  []Mapping
		wantIndex int
		reason    string
	}{
		{
			name:     "valid",
			mappings: []Mapping{{Source: src, Destination: filepath.Join(dir, "dst")}},
		},
		{
			name:      "no_mappings",
			wantIndex: -1,
			reason:    "at least one mapping is required",
		},
		{
			name:      "empty_source",
			mappings:  []Mapping{{Source: " ", Destination: filepath.Join(dir, "dst")}},
			wantIndex: 0,
			reason:    "source path is empty",
		},
		{
			name:      "empty_destination",
			mappings:  []Mapping{{Source: src, Destination: ""}},
			wantIndex: 0,
			reason:    "destination path is empty",
		},
		{
			name:      "missing_source",
			mappings:  []Mapping{{Source: filepath.Join(dir, "nope"), Destination: filepath.Join(dir, "dst")}},
			wantIndex: 0,
			reason:    "source folder does not exist",
		},
		{
			name:      "source_is_file",
			mappings:  []Mapping{{Source: file, Destination: filepath.Join(dir, "dst")}},
			wantIndex: 0,
			reason:    "source is not a folder",
		},
		{
			name:      "same_folder",
			mappings:  []Mapping{{Source: src, Destination: filepath.Join(dir, ".", "src")}},
			wantIndex: 0,
			reason:    "source and destination are the same folder",
		},
		{
			name:      "nested_destination",
			mappings:  []Mapping{{Source: src, Destination: filepath.Join(src, "inner", "deeper")}},
			wantIndex: 0,
			reason:    "destination is inside the source folder",
		},
		{
			name:      "destination_is_file",
			mappings:  []Mapping{{Source: src, Destination: file}},
			wantIndex: 0,
			reason:    "destination exists and is not a folder",
		},
		{
			name: "lowest_index_reported",
			mappings: []Mapping{
				{Source: src, Destination: filepath.Join(dir, "ok")},
				{Source: filepath.Join(dir, "nope"), Destination: filepath.Join(dir, "dst")},
				{Source: src, Destination: src},
			},
			wantIndex: 1,
			reason:    "source folder does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(context.Background(), tt.mappings)
			if tt.reason == "" {
				require.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T %v", err, err)
			assert.Equal(t, tt.wantIndex, verr.Index)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestValidateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Validate(ctx, []Mapping{{Source: "/a", Destination: "/b"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

// 🔗 symlinkAlias creates dir/alias pointing at target, skipping where symlinks are unavailable
func symlinkAlias(t *testing.T, dir, target string) string {
	t.Helper()
	alias := filepath.Join(dir, "alias")
	if err := os.Symlink(target, alias); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	return alias
}

func TestValidateSymlinkedDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	makeTree(t, src, map[string]string{"a.txt": "a"})
	alias := symlinkAlias(t, dir, src)

	tests := []struct {
		name   string
		m      Mapping
		reason string
	}{
		{
			name:   "destination_below_alias",
			m:      Mapping{Source: src, Destination: filepath.Join(alias, "out")},
			reason: "destination is inside the source folder",
		},
		{
			name:   "destination_deep_below_alias",
			m:      Mapping{Source: src, Destination: filepath.Join(alias, "out", "more")},
			reason: "destination is inside the source folder",
		},
		{
			name:   "destination_is_alias",
			m:      Mapping{Source: src, Destination: alias},
			reason: "source and destination are the same folder",
		},
		{
			name:   "source_is_alias",
			m:      Mapping{Source: alias, Destination: filepath.Join(src, "out")},
			reason: "destination is inside the source folder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(context.Background(), []Mapping{tt.m})

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T %v", err, err)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestCanonical(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	makeTree(t, src, map[string]string{"a.txt": "a"})
	alias := symlinkAlias(t, dir, src)

	realSrc, err := filepath.EvalSymlinks(src)
	require.NoError(t, err)

	assert.Equal(t, realSrc, canonical(alias), "an existing alias should resolve to its target")
	assert.Equal(t, filepath.Join(realSrc, "x", "y"), canonical(filepath.Join(alias, "x", "y")), "missing parts should be kept")
}

func TestIsWithin(t *testing.T) {
	sep := string(filepath.Separator)
	root := filepath.Join(sep, "data", "photos")

	assert.True(t, isWithin(root, filepath.Join(root, "2024")))
	assert.False(t, isWithin(root, root), "a folder is not within itself")
	assert.False(t, isWithin(root, filepath.Join(sep, "data")), "a parent is not within its child")
	assert.False(t, isWithin(root, filepath.Join(sep, "data", "photos-backup")), "a sibling sharing a prefix is not within")
	assert.False(t, isWithin(filepath.Join(root, "2024"), root))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Index: 1, Mapping: Mapping{Source: "/a", Destination: "/b"}, Reason: "source folder does not exist"}
	assert.Equal(t, "mapping 2 (/a -> /b): source folder does not exist", err.Error())

	err = &ValidationError{Index: -1, Reason: "at least one mapping is required"}
	assert.Equal(t, "at least one mapping is required", err.Error())
}
