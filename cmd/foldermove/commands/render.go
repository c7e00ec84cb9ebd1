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

package commands

import (
	"context"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/foldermove/pkg/log"
	"github.com/walteh/foldermove/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 🎨 renderer draws progress events on the console.
// Only the goroutine consuming the event stream calls it.
type renderer interface {
	progress(p transfer.Progress)
	failed(res transfer.Result)
	done()
}

// consume drains events through r and returns the result
func consume(events <-chan transfer.Event, r renderer) (transfer.Result, error) {
	var res *transfer.Result
	for ev := range events {
		switch {
		case ev.IsResult():
			res = ev.Result
		case ev.Progress != nil:
			r.progress(*ev.Progress)
		}
	}

	if res != nil && !res.Success {
		r.failed(*res)
	}
	r.done()

	if res == nil {
		return transfer.Result{}, errors.Errorf("transfer stream closed without a result")
	}
	return *res, nil
}

// 📊 barRenderer shows a single pterm progress bar
type barRenderer struct {
	ctx     context.Context
	title   string
	console io.Writer
	bar     *pterm.ProgressbarPrinter
}

func newBarRenderer(ctx context.Context, title string, console io.Writer) *barRenderer {
	return &barRenderer{ctx: ctx, title: title, console: console}
}

func (r *barRenderer) progress(p transfer.Progress) {
	if r.bar == nil {
		printer := pterm.DefaultProgressbar.WithTotal(100).WithTitle(r.title)
		if r.console != nil {
			printer = printer.WithWriter(r.console)
		}
		bar, err := printer.Start()
		if err != nil {
			zerolog.Ctx(r.ctx).Debug().Err(err).Msg("starting progress bar")
			return
		}
		r.bar = bar
	}

	if delta := p.Percent - r.bar.Current; delta > 0 {
		r.bar.Add(delta)
	}
	r.bar.UpdateTitle(p.Status)
}

func (r *barRenderer) failed(res transfer.Result) {}

func (r *barRenderer) done() {
	if r.bar == nil {
		return
	}
	if _, err := r.bar.Stop(); err != nil {
		zerolog.Ctx(r.ctx).Debug().Err(err).Msg("stopping progress bar")
	}
	r.bar = nil
}

// 📝 lineRenderer prints a header per mapping and a line per file
type lineRenderer struct {
	ctx     context.Context
	logger  *log.Logger
	req     transfer.Request
	mapping int
	last    transfer.Progress
}

func newLineRenderer(ctx context.Context, logger *log.Logger, req transfer.Request) *lineRenderer {
	return &lineRenderer{ctx: ctx, logger: logger, req: req, mapping: -1}
}

func (r *lineRenderer) progress(p transfer.Progress) {
	if p.Mapping != r.mapping {
		r.startMapping(p.Mapping)
	}
	r.last = p
	r.logger.LogFile(r.ctx, p.File, r.req.Operation.String(), p.Processed, p.Total, false)
}

func (r *lineRenderer) startMapping(idx int) {
	if r.mapping >= 0 {
		r.logger.EndMapping(r.ctx)
		r.logger.LogNewline()
	}
	r.mapping = idx

	var m transfer.Mapping
	if idx >= 0 && idx < len(r.req.Mappings) {
		m = r.req.Mappings[idx]
	}
	r.logger.StartMapping(r.ctx, log.MappingOperation{
		Index:       idx,
		Count:       len(r.req.Mappings),
		Operation:   r.req.Operation.String(),
		Source:      m.Source,
		Destination: m.Destination,
	})
}

func (r *lineRenderer) failed(res transfer.Result) {
	var te *transfer.TransferError
	if !errors.As(res.Err, &te) || te.Path == "" {
		return
	}
	total := r.last.Total
	if total < res.Files+1 {
		total = res.Files + 1
	}
	r.logger.LogFile(r.ctx, filepath.Base(te.Path), r.req.Operation.String(), res.Files+1, total, true)
}

func (r *lineRenderer) done() {
	if r.mapping >= 0 {
		r.logger.EndMapping(r.ctx)
		r.logger.LogNewline()
	}
}
