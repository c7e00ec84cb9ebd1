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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for filename
	opWidth    = 8  // Width for operation name
	countWidth = 12 // Width for the ordinal column
)

// 🎯 FormatFileOperation formats a single transferred (or failed) file for display
func FormatFileOperation(path, operation string, processed, total int, failed bool) string {
	var prefix string
	switch {
	case failed:
		prefix = color.RedString("✗")
	case operation == "move":
		prefix = color.BlueString("→")
	default:
		prefix = color.GreenString("✓")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, path)
	opPart := fmt.Sprintf("%-*s", opWidth, operation)
	countPart := fmt.Sprintf("%*s", countWidth, fmt.Sprintf("%d/%d", processed, total))

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		opPart,
		countPart,
	)
}
