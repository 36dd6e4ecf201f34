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

// Package engine drives the single cooperative loop that crafts SYN probes,
// interleaves non-blocking send/receive against two raw sockets, tracks
// outstanding probes through retry and expiry, and reports results.
package engine

import "net/netip"

// Probe identifies one (remote host, remote port) pair under scan. It is the
// key used throughout the engine's inflight set and retry tracker.
type Probe struct {
	IP   netip.Addr
	Port uint16
}
