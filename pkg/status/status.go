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
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 📈 Reporter tracks how many files of a run have been processed
type Reporter interface {
	StartOperation(ctx context.Context, total int)
	Advance(ctx context.Context, file string) Snapshot
	FinishOperation(ctx context.Context) Snapshot
	FailOperation(ctx context.Context, err error) Snapshot
	Snapshot() Snapshot
}

// 📸 Snapshot is a point-in-time view of a tracker
type Snapshot struct {
	Processed int
	Total     int
	Percent   int
}

// 🔧 Tracker counts processed files against a total and derives the percentage.
// processed never exceeds total: if more files show up than were counted, total grows with them.
type Tracker struct {
	mu        sync.Mutex
	formatter FileFormatter
	total     int
	processed int
}

var _ Reporter = (*Tracker)(nil)

// 🏭 NewTracker creates a tracker that logs through formatter
func NewTracker(formatter FileFormatter) *Tracker {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Tracker{formatter: formatter}
}

// Percent returns floor(processed / total * 100), clamped to [0,100]
func Percent(processed, total int) int {
	if total <= 0 || processed <= 0 {
		return 0
	}
	if processed >= total {
		return 100
	}
	return processed * 100 / total
}

func (t *Tracker) snapshot() Snapshot {
	return Snapshot{
		Processed: t.processed,
		Total:     t.total,
		Percent:   Percent(t.processed, t.total),
	}
}

func (t *Tracker) StartOperation(ctx context.Context, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	zerolog.Ctx(ctx).Debug().Int("total", total).Msg(t.formatter.FormatProgress(0, total))
}

func (t *Tracker) Advance(ctx context.Context, file string) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed++
	if t.processed > t.total {
		t.total = t.processed
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", file).
		Int("processed", t.processed).
		Int("total", t.total).
		Msg(t.formatter.FormatProgress(t.processed, t.total))

	return t.snapshot()
}

func (t *Tracker) FinishOperation(ctx context.Context) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Int("processed", t.processed).
		Int("total", t.total).
		Msg(t.formatter.FormatProgress(t.processed, t.total))

	return t.snapshot()
}

// FailOperation records that the run stopped on err and returns the counters reached
func (t *Tracker) FailOperation(ctx context.Context, err error) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Int("processed", t.processed).
		Int("total", t.total).
		Msg(t.formatter.FormatError(err))

	return t.snapshot()
}

// Snapshot returns the current counters
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}
