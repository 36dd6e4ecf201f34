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

import "github.com/google/uuid"

// Message is one item on a scan's reporting stream: either Results or
// Stats. Consumers type-switch on it.
type Message interface {
	isMessage()
}

// Results carries a batch of newly discovered open sockets. Batches sent
// during the scan are non-empty; the final Results sent at scan end may be
// empty.
type Results struct {
	Probes []Probe
}

func (Results) isMessage() {}

// Stats carries cumulative-since-scan-start counters, emitted on every
// rate-bucket rollover, immediately before a Results batch, and once more at
// scan end. ScanID correlates Stats back to the scan that produced them in
// debug logs; callers driving a single scan at a time can ignore it.
type Stats struct {
	ProcessedPorts   uint64
	InflightCount    int
	TotalPacketsSent uint64
	ScanID           uuid.UUID
}

func (Stats) isMessage() {}
