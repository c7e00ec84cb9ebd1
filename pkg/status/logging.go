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
)

// FileFormatter defines how progress and status lines are rendered
type FileFormatter interface {
	// FormatStatus names the file being processed and its ordinal position
	FormatStatus(file string, processed, total int) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatStatus formats the per-file status line
func (f *DefaultFileFormatter) FormatStatus(file string, processed, total int) string {
	return fmt.Sprintf("processing %s (%d/%d)", file, processed, total)
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	pct := Percent(current, total)
	if total > 0 && current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%d%%)", current, total, pct)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%d%%)", current, total, pct)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
