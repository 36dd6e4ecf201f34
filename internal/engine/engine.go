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
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/resyncgg/armada/internal/rawsock"
)

// requestQueueDepth bounds the number of scans that may be queued ahead of
// the engine before ScanWithHandle blocks. The source language used a truly
// unbounded channel; a generous fixed depth is the pragmatic Go substitute,
// since queuing thousands of whole scans ahead of the engine is not a
// realistic workload for this CLI.
const requestQueueDepth = 64

// Engine is the process-wide scan driver: one dedicated goroutine owns both
// raw sockets and the shared sequence-number counter for as long as the
// process runs, serving scan requests strictly in submission order.
type Engine struct {
	listeningPort uint16
	v4, v6        rawsock.Socket
	log           zerolog.Logger

	requests chan *Scan
	closed   chan struct{}
}

// New opens both raw sockets and starts the engine's dedicated goroutine.
// Opening a raw socket typically requires elevated privileges; failure here
// is fatal to engine construction.
func New(listeningPort uint16, log zerolog.Logger) (*Engine, error) {
	v4, err := rawsock.Open(rawsock.FamilyV4)
	if err != nil {
		return nil, fmt.Errorf("engine: open ipv4 raw socket: %w", err)
	}

	v6, err := rawsock.Open(rawsock.FamilyV6)
	if err != nil {
		v4.Close()
		return nil, fmt.Errorf("engine: open ipv6 raw socket: %w", err)
	}

	e := &Engine{
		listeningPort: listeningPort,
		v4:            v4,
		v6:            v6,
		log:           log.With().Str("component", "engine").Logger(),
		requests:      make(chan *Scan, requestQueueDepth),
		closed:        make(chan struct{}),
	}

	go e.run()

	return e, nil
}

func (e *Engine) run() {
	defer close(e.closed)
	defer e.v4.Close()
	defer e.v6.Close()

	// Seeded once at engine start and shared across every scan the engine
	// ever serves; the engine's single goroutine is its only reader/writer,
	// so no synchronization is needed.
	seq := rand.Uint32()

	for scan := range e.requests {
		if err := e.runScan(scan, &seq); err != nil {
			e.log.Error().Err(err).Msg("scan ended before completion")
		}

		close(scan.sink)
	}
}

// Close stops accepting new scans. Scans already queued still run to
// completion; Wait blocks until the engine goroutine has exited.
func (e *Engine) Close() {
	close(e.requests)
}

// Wait blocks until the engine goroutine has exited (both raw sockets
// closed) after Close.
func (e *Engine) Wait() {
	<-e.closed
}
