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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNoFiles is reported when no mapping contributed a single file
	ErrNoFiles = errors.New("no files found")

	// ErrCancelled is reported when the run was stopped through its context
	ErrCancelled = errors.New("transfer cancelled")
)

// ❌ TransferError describes the single I/O failure that ended a run
type TransferError struct {
	Op   string // copy, move, mkdir or walk
	Path string // file or directory that failed
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// ⚠️ ValidationError describes a mapping that cannot be run
type ValidationError struct {
	Index   int
	Mapping Mapping
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	return fmt.Sprintf("mapping %d (%s): %s", e.Index+1, e.Mapping, e.Reason)
}

// cancelledError matches both ErrCancelled and the context error that caused it
type cancelledError struct {
	cause error
}

func (e *cancelledError) Error() string {
	return ErrCancelled.Error() + ": " + e.cause.Error()
}

func (e *cancelledError) Is(target error) bool {
	return target == ErrCancelled
}

func (e *cancelledError) Unwrap() error { return e.cause }
