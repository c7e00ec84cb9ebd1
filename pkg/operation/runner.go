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

package operation

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/foldermove/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner hands requests to an Executor and refuses to start a second one while the first is in flight
type Runner struct {
	logger *zerolog.Logger
	exec   Executor

	mu      sync.Mutex
	running bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, exec Executor) *Runner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Runner{
		logger: logger,
		exec:   exec,
	}
}

// Busy reports whether a request is currently running
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Runner) acquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	return true
}

func (r *Runner) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
}

// ⚡ Start runs req in the background.
// The returned channel mirrors the executor's stream; the runner frees up just before it closes.
// After ctx is cancelled progress is no longer forwarded and the result is buffered.
func (r *Runner) Start(ctx context.Context, req transfer.Request) (<-chan transfer.Event, error) {
	if !r.acquire() {
		return nil, ErrBusy
	}

	r.logger.Info().
		Str("operation", req.Operation.String()).
		Int("mappings", len(req.Mappings)).
		Msg("starting transfer")

	events := r.exec.Execute(ctx, req)
	out := make(chan transfer.Event, 1)

	go func() {
		defer close(out)
		defer r.release()

		for ev := range events {
			if !ev.IsResult() {
				if ctx.Err() != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
				}
				continue
			}

			r.logResult(*ev.Result)
			if ctx.Err() != nil {
				// a cancelled consumer may have stopped reading; keep room for the result
				select {
				case <-out:
				default:
				}
			}
			out <- ev
		}
	}()

	return out, nil
}

// 🔄 Run starts req and calls onProgress for every progress event on the calling goroutine.
// It returns once the stream has closed.
func (r *Runner) Run(ctx context.Context, req transfer.Request, onProgress func(transfer.Progress)) (transfer.Result, error) {
	events, err := r.Start(ctx, req)
	if err != nil {
		return transfer.Result{}, err
	}

	var res *transfer.Result
	for ev := range events {
		if ev.IsResult() {
			res = ev.Result
			continue
		}
		if ev.Progress != nil && onProgress != nil {
			onProgress(*ev.Progress)
		}
	}

	if res == nil {
		return transfer.Result{}, errors.Errorf("transfer stream closed without a result")
	}
	return *res, nil
}

func (r *Runner) logResult(res transfer.Result) {
	if res.Success {
		r.logger.Info().Int("files", res.Files).Msg(res.Message)
		return
	}
	r.logger.Error().Err(res.Err).Int("files", res.Files).Msg("transfer failed")
}
