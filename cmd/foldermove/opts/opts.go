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

package opts

import (
	"io"
)

// 🔧 RootOpts holds the values of the persistent flags shared by every command
type RootOpts struct {
	ConfigFile string   // mapping file path
	Debug      bool     // zerolog debug level
	Verbose    bool     // one console line per file instead of a progress bar
	Yes        bool     // skip the confirmation prompt
	Ignore     []string // extra doublestar ignore patterns

	Console io.Writer                           // where user-facing output goes
	Confirm func(question string) (bool, error) // asks before a transfer starts, nil never asks
}

// ConfigExplicit reports whether a mapping file was named on the command line
func (o *RootOpts) ConfigExplicit() bool {
	return o.ConfigFile != ""
}
