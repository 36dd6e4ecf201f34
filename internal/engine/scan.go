// Copyright 2025 The Armada Authors.
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

package engine

import (
	"context"
	"net/netip"
	"time"

	"github.com/google/uuid"

	"github.com/resyncgg/armada/internal/hosts"
	"github.com/resyncgg/armada/internal/ports"
)

// ScanRequest describes one scan to run against the engine: the target
// space, retry/timeout policy, an optional rate limit, and the source
// addresses available for each address family.
type ScanRequest struct {
	Hosts   *hosts.Sequence
	Ports   *ports.Sequence
	Retries uint8
	Timeout time.Duration

	// RateLimit, in packets per second, across both address families
	// combined. Nil means unlimited.
	RateLimit *int

	SourceV4 []netip.Addr
	SourceV6 []netip.Addr
}

// Scan is a ScanRequest bound to a running reporting channel and a
// cancellation context; it is what actually travels through the engine's
// request queue.
type Scan struct {
	ScanRequest

	id   uuid.UUID
	ctx  context.Context
	sink chan Message
}

// send delivers msg to the scan's reporting channel, or reports
// ErrReportingCanceled if the caller's context has been canceled first —
// the Go analogue of "the consumer has dropped the reporting stream".
func (s *Scan) send(msg Message) error {
	if s.ctx.Err() != nil {
		return ErrReportingCanceled
	}

	select {
	case s.sink <- msg:
		return nil
	case <-s.ctx.Done():
		return ErrReportingCanceled
	}
}

// ScanWithHandle submits req and returns the raw reporting stream; the
// caller ranges over it until it closes, which happens once the engine has
// sent the final Stats and Results messages for this scan. Canceling ctx
// aborts the scan at its next internal checkpoint.
func (e *Engine) ScanWithHandle(ctx context.Context, req ScanRequest) <-chan Message {
	scan := &Scan{
		ScanRequest: req,
		id:          uuid.New(),
		ctx:         ctx,
		sink:        make(chan Message, 256),
	}

	e.requests <- scan

	return scan.sink
}

// ScanCollect submits req, awaits completion, and returns the union of every
// Results batch, discarding Stats.
func (e *Engine) ScanCollect(ctx context.Context, req ScanRequest) ([]Probe, error) {
	ch := e.ScanWithHandle(ctx, req)

	var out []Probe

	for msg := range ch {
		if r, ok := msg.(Results); ok {
			out = append(out, r.Probes...)
		}
	}

	return out, ctx.Err()
}
