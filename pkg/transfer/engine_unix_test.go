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

//go:build unix

package transfer

import (
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/foldermove/pkg/fileops"
	"gitlab.com/tozd/go/errors"
)

func TestRunFailsOnFifo(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	makeTree(t, src, map[string]string{"a.txt": "a"})
	require.NoError(t, syscall.Mkfifo(filepath.Join(src, "pipe"), 0o644))

	e := newEngine(t, Options{})
	done := make(chan Result, 1)
	go func() {
		done <- e.Run(ctx, NewRequest(OperationCopy, Mapping{Source: src, Destination: dst}), nil)
	}()

	var res Result
	select {
	case res = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run blocked on a fifo")
	}

	require.False(t, res.Success)
	assert.Equal(t, 1, res.Files, "the regular file before the fifo should be copied")
	assert.Contains(t, res.Message, "pipe", "the message should name the fifo")

	var terr *TransferError
	require.True(t, errors.As(res.Err, &terr), "expected TransferError, got %T", res.Err)
	assert.Equal(t, filepath.Join(src, "pipe"), terr.Path)
	assert.ErrorIs(t, res.Err, fileops.ErrSpecialFile)
	assert.FileExists(t, filepath.Join(dst, "a.txt"))
}
