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

	"github.com/walteh/foldermove/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// ErrBusy is returned when a request is submitted while another one is still running
var ErrBusy = errors.New("a transfer is already running")

// 🎯 Executor streams the events of a transfer request
type Executor interface {
	// Execute starts req and returns a channel that ends with exactly one result event
	Execute(ctx context.Context, req transfer.Request) <-chan transfer.Event
}

var _ Executor = (*transfer.Engine)(nil)
