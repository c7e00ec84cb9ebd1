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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔀 Operation selects how every file of a request is transferred
type Operation int

const (
	OperationCopy Operation = iota // duplicate, leave source in place
	OperationMove                  // relocate, remove source
)

func (o Operation) String() string {
	switch o {
	case OperationCopy:
		return "copy"
	case OperationMove:
		return "move"
	default:
		return "unknown"
	}
}

// Past returns the past tense used in result messages
func (o Operation) Past() string {
	switch o {
	case OperationMove:
		return "moved"
	default:
		return "copied"
	}
}

// 🔍 ParseOperation parses "copy" or "move" (case-insensitive)
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copy", "":
		return OperationCopy, nil
	case "move":
		return OperationMove, nil
	default:
		return 0, errors.Errorf("unknown operation %q (want copy or move)", s)
	}
}

// 🗺️ Mapping pairs a source directory with the directory its contents go to
type Mapping struct {
	Source      string
	Destination string
}

func (m Mapping) String() string {
	return m.Source + " -> " + m.Destination
}

// 📦 Request is the unit of work handed to the engine
type Request struct {
	Mappings  []Mapping
	Operation Operation
}

// 🏭 NewRequest builds a request that owns its own copy of mappings
func NewRequest(op Operation, mappings ...Mapping) Request {
	return Request{
		Mappings:  append([]Mapping(nil), mappings...),
		Operation: op,
	}
}

// 📊 Progress is emitted once per transferred file
type Progress struct {
	Percent   int    // floor(Processed / Total * 100)
	Processed int    // files transferred so far
	Total     int    // files found by the counting pass
	Mapping   int    // index of the mapping being processed
	Source    string // absolute source file path
	Target    string // absolute destination file path
	File      string // file name
	Status    string // human-readable status line
}

// 🏁 Result terminates a run
type Result struct {
	Success bool
	Message string
	Files   int
	Err     error
}

// 📨 Event carries exactly one of Progress or Result
type Event struct {
	Progress *Progress
	Result   *Result
}

// IsResult reports whether the event terminates the stream
func (e Event) IsResult() bool {
	return e.Result != nil
}
