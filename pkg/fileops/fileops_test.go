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

package fileops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating parent dir should succeed")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640), "writing file should succeed")
}

func TestCopyFile(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, src, dst string)
		wantContent string
		wantErr     bool
		errContains string
	}{
		{
			name: "new_destination",
			setup: func(t *testing.T, src, dst string) {
				writeFile(t, src, "hello world")
			},
			wantContent: "hello world",
		},
		{
			name: "overwrites_existing_destination",
			setup: func(t *testing.T, src, dst string) {
				writeFile(t, src, "new")
				writeFile(t, dst, "a much longer old content")
			},
			wantContent: "new",
		},
		{
			name:        "missing_source",
			setup:       func(t *testing.T, src, dst string) {},
			wantErr:     true,
			errContains: "reading source info",
		},
		{
			name: "source_is_directory",
			setup: func(t *testing.T, src, dst string) {
				require.NoError(t, os.MkdirAll(src, 0o755))
			},
			wantErr:     true,
			errContains: "is a directory",
		},
		{
			name: "missing_destination_parent",
			setup: func(t *testing.T, src, dst string) {
				writeFile(t, src, "content")
				require.NoError(t, os.RemoveAll(filepath.Dir(dst)))
			},
			wantErr:     true,
			errContains: "creating destination file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "src", "file.txt")
			dst := filepath.Join(dir, "dst", "file.txt")
			require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))

			tt.setup(t, src, dst)

			err := CopyFile(src, dst)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)

			got, err := os.ReadFile(dst)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(got), "destination content should match")

			_, err = os.Stat(src)
			assert.NoError(t, err, "source should still exist after copy")
		})
	}
}

func TestCopyFilePreservesModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "content")

	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	require.NoError(t, CopyFile(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "mod time should be carried over, got %s", info.ModTime())
}

func TestCopyFileSetsTimesAfterClose(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "complete content")

	old := chtimesFunc
	called := false
	chtimesFunc = func(name string, atime, mtime time.Time) error {
		called = true
		// the destination must already be fully written and closed
		data, err := os.ReadFile(name)
		require.NoError(t, err)
		assert.Equal(t, "complete content", string(data), "content should be flushed before times are set")
		return old(name, atime, mtime)
	}
	defer func() { chtimesFunc = old }()

	require.NoError(t, CopyFile(src, dst))
	assert.True(t, called, "modification time should be applied")
}

func TestCopyFileThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, target, "linked")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	require.NoError(t, CopyFile(link, dst), "a symlink to a regular file should copy")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "linked", string(data))
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "a.txt")
	dst := filepath.Join(dir, "dst", "a.txt")
	writeFile(t, src, "moving")
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))

	require.NoError(t, MoveFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "moving", string(got))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should be gone after move")
}

func TestMoveFileRenameError(t *testing.T) {
	old := renameFunc
	renameFunc = func(oldpath, newpath string) error {
		return os.ErrPermission
	}
	defer func() { renameFunc = old }()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "stay")

	err := MoveFile(src, filepath.Join(dir, "b.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renaming file")
	assert.False(t, IsCrossDevice(err), "permission error is not a cross-device error")

	_, err = os.Stat(src)
	assert.NoError(t, err, "source should be untouched when rename fails")
}

func TestMkdirAll(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")

	require.NoError(t, MkdirAll(target))
	require.NoError(t, MkdirAll(target), "creating an existing directory should succeed")

	blocker := filepath.Join(dir, "file")
	writeFile(t, blocker, "x")
	err := MkdirAll(filepath.Join(blocker, "sub"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating directory")
}
