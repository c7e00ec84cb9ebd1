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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/foldermove/cmd/foldermove/commands"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) []string
		wantErr  bool
		reported bool
		validate func(t *testing.T, args []string)
	}{
		{
			name: "copy_with_config",
			setup: func(t *testing.T) []string {
				tmpDir := t.TempDir()
				require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "src", "nested"), 0o755), "creating source")
				require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "src", "nested", "f.txt"), []byte("hi"), 0o644), "writing source file")

				configPath := filepath.Join(tmpDir, "mappings.toml")
				configContent := `
[[mappings]]
source = "src"
destination = "dst"
`
				require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644), "writing config file")

				return []string{"run", "--config", configPath, "-v", "-y"}
			},
			validate: func(t *testing.T, args []string) {
				dir := filepath.Dir(args[2])
				data, err := os.ReadFile(filepath.Join(dir, "dst", "nested", "f.txt"))
				require.NoError(t, err, "reading copied file")
				assert.Equal(t, "hi", string(data), "content should match")
				assert.FileExists(t, filepath.Join(dir, "src", "nested", "f.txt"), "source should remain")
			},
		},
		{
			name: "move_with_debug",
			setup: func(t *testing.T) []string {
				src := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(src, "f.txt"), []byte("hi"), 0o644), "writing source file")
				return []string{"move", "--debug", "--yes", src, filepath.Join(t.TempDir(), "out")}
			},
			validate: func(t *testing.T, args []string) {
				assert.FileExists(t, filepath.Join(args[4], "f.txt"), "file should be moved")
				assert.NoFileExists(t, filepath.Join(args[3], "f.txt"), "source file should be gone")
			},
		},
		{
			name: "validate_failure",
			setup: func(t *testing.T) []string {
				return []string{"validate", filepath.Join(t.TempDir(), "missing"), t.TempDir()}
			},
			wantErr:  true,
			reported: true,
		},
		{
			name: "unknown_command",
			setup: func(t *testing.T) []string {
				return []string{"sync"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.setup(t)

			rootCmd, opts := newRootCmd()
			buf := &bytes.Buffer{}
			opts.Console = buf
			rootCmd.SetArgs(args)

			err := rootCmd.ExecuteContext(context.Background())
			if tt.wantErr {
				require.Error(t, err, "command should fail")
				assert.Equal(t, tt.reported, commands.IsReported(err), "reported flag should match")
				return
			}
			require.NoError(t, err, "command should succeed: %s", buf.String())

			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}
