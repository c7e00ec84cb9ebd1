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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/foldermove/pkg/fileops"
	"github.com/walteh/foldermove/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures an Engine
type Options struct {
	// Ignore holds doublestar patterns. Patterns without a slash match file and
	// folder names, the rest match the slash-separated path below the source root.
	Ignore []string
	// Formatter renders status lines, defaults to status.DefaultFileFormatter
	Formatter status.FileFormatter
}

// 🚚 Engine copies or moves the contents of source folders into destination folders
type Engine struct {
	ignore    []string
	formatter status.FileFormatter

	copyFile func(src, dst string) error
	moveFile func(src, dst string) error
	mkdirAll func(path string) error
}

// 🏭 New creates an engine
func New(opts Options) (*Engine, error) {
	for _, p := range opts.Ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid ignore pattern %q", p)
		}
	}

	formatter := opts.Formatter
	if formatter == nil {
		formatter = status.NewDefaultFileFormatter()
	}

	return &Engine{
		ignore:    append([]string(nil), opts.Ignore...),
		formatter: formatter,
		copyFile:  fileops.CopyFile,
		moveFile:  fileops.MoveFile,
		mkdirAll:  fileops.MkdirAll,
	}, nil
}

// 📨 Execute runs req on its own goroutine.
// The returned channel carries zero or more progress events, then exactly one result, then closes.
// Consumers should read until the channel closes. Once ctx is cancelled the engine no longer
// waits on the consumer: unread progress may be dropped and the result stays buffered.
func (e *Engine) Execute(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event, 1)

	go func() {
		defer close(events)

		res := e.Run(ctx, req, func(ev Event) {
			if ctx.Err() != nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		})

		if ctx.Err() != nil {
			// make room for the result; only this goroutine sends
			select {
			case <-events:
			default:
			}
		}

		events <- Event{Result: &res}
	}()

	return events
}

// 🏃 Run executes req on the calling goroutine, handing each progress event to emit.
// Every failure is folded into the returned Result.
func (e *Engine) Run(ctx context.Context, req Request, emit func(Event)) Result {
	if emit == nil {
		emit = func(Event) {}
	}

	logger := zerolog.Ctx(ctx).With().Str("operation", req.Operation.String()).Logger()
	ctx = logger.WithContext(ctx)

	mappings := make([]Mapping, 0, len(req.Mappings))
	for i, m := range req.Mappings {
		resolved, err := resolveMapping(i, m)
		if err != nil {
			return failure(err, 0)
		}
		mappings = append(mappings, resolved)
	}

	logger.Debug().Int("mappings", len(mappings)).Msg("counting files")

	total, err := e.count(ctx, mappings)
	if err != nil {
		return failure(err, 0)
	}
	if total == 0 {
		return failure(ErrNoFiles, 0)
	}

	var tracker status.Reporter = status.NewTracker(e.formatter)
	tracker.StartOperation(ctx, total)

	for i, m := range mappings {
		if err := ctx.Err(); err != nil {
			cerr := &cancelledError{cause: err}
			return failure(cerr, tracker.FailOperation(ctx, cerr).Processed)
		}

		if err := e.transferMapping(ctx, i, m, req.Operation, tracker, emit); err != nil {
			logger.Debug().Err(err).Str("mapping", m.String()).Msg("transfer stopped")
			return failure(err, tracker.FailOperation(ctx, err).Processed)
		}
	}

	snap := tracker.FinishOperation(ctx)

	return Result{
		Success: true,
		Message: fmt.Sprintf("%s %d %s", req.Operation.Past(), snap.Processed, plural(snap.Processed, "file", "files")),
		Files:   snap.Processed,
	}
}

func failure(err error, processed int) Result {
	return Result{
		Success: false,
		Message: err.Error(),
		Files:   processed,
		Err:     err,
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// 🔢 count walks every existing source and sums the files the transfer pass will see
func (e *Engine) count(ctx context.Context, mappings []Mapping) (int, error) {
	total := 0
	for _, m := range mappings {
		if err := ctx.Err(); err != nil {
			return 0, &cancelledError{cause: err}
		}
		if !isDir(m.Source) {
			zerolog.Ctx(ctx).Debug().Str("source", m.Source).Msg("source missing, not counted")
			continue
		}

		err := e.walk(ctx, m.Source, "scan", nil, func(path, rel string) error {
			total++
			return nil
		})
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

// 📂 transferMapping mirrors one source tree under its destination
func (e *Engine) transferMapping(ctx context.Context, idx int, m Mapping, op Operation, tracker status.Reporter, emit func(Event)) error {
	logger := zerolog.Ctx(ctx)

	if !isDir(m.Source) {
		logger.Debug().Str("source", m.Source).Msg("source vanished, skipping mapping")
		return nil
	}

	if err := e.mkdirAll(m.Destination); err != nil {
		return &TransferError{Op: "mkdir", Path: m.Destination, Err: err}
	}

	onDir := func(rel string) error {
		target := m.Destination
		if rel != "." {
			target = filepath.Join(m.Destination, rel)
		}
		if err := e.mkdirAll(target); err != nil {
			return &TransferError{Op: "mkdir", Path: target, Err: err}
		}
		return nil
	}

	onFile := func(path, rel string) error {
		target := filepath.Join(m.Destination, rel)

		if err := e.transferFile(op, path, target); err != nil {
			return &TransferError{Op: op.String(), Path: path, Err: err}
		}

		name := filepath.Base(path)
		snap := tracker.Advance(ctx, path)
		emit(Event{Progress: &Progress{
			Percent:   snap.Percent,
			Processed: snap.Processed,
			Total:     snap.Total,
			Mapping:   idx,
			Source:    path,
			Target:    target,
			File:      name,
			Status:    e.formatter.FormatStatus(name, snap.Processed, snap.Total),
		}})
		return nil
	}

	return e.walk(ctx, m.Source, "walk", onDir, onFile)
}

func (e *Engine) transferFile(op Operation, src, dst string) error {
	switch op {
	case OperationCopy:
		return e.copyFile(src, dst)
	case OperationMove:
		return e.moveFile(src, dst)
	default:
		return errors.Errorf("unknown operation %d", int(op))
	}
}

// 🚶 walk visits the folders and files below root that are not ignored.
// onDir sees every folder including root ("."), onFile every non-folder entry.
// Symlinks to folders are not followed and not reported.
func (e *Engine) walk(ctx context.Context, root, op string, onDir func(rel string) error, onFile func(path, rel string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &TransferError{Op: op, Path: path, Err: err}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return &TransferError{Op: op, Path: path, Err: err}
		}

		if rel != "." && e.ignored(rel) {
			zerolog.Ctx(ctx).Debug().Str("path", rel).Msg("ignored by pattern")
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if onDir == nil {
				return nil
			}
			return onDir(rel)
		}

		if d.Type()&fs.ModeSymlink != 0 && isDir(path) {
			return nil
		}

		if err := ctx.Err(); err != nil {
			return &cancelledError{cause: err}
		}

		return onFile(path, rel)
	})
}

func (e *Engine) ignored(rel string) bool {
	slashed := filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, p := range e.ignore {
		subject := slashed
		if !strings.Contains(p, "/") {
			subject = base
		}
		if ok, _ := doublestar.Match(p, subject); ok {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
