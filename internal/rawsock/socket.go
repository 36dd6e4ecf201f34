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

// Package rawsock provides the non-blocking raw-socket send/receive shim the
// scan engine drives directly. Two sockets exist per engine, one per address
// family; both are opened once at engine construction and owned exclusively
// by the engine's single goroutine for the life of the process.
package rawsock

import (
	"errors"
	"net/netip"

	"github.com/resyncgg/armada/internal/codec"
)

// ErrSocketClosed is returned by TrySend/TryRecv once Close has been called.
var ErrSocketClosed = errors.New("rawsock: socket closed")

// Socket is a non-blocking raw TCP socket for one address family. Every
// method returns immediately: there is no blocking variant.
type Socket interface {
	// TrySend attempts to hand packet to the kernel for delivery to dst.
	// sent=false with err=nil means the kernel buffer is full (EAGAIN) and
	// the caller should retry later; any non-nil err is fatal to the scan.
	TrySend(packet []byte, dst netip.Addr) (sent bool, err error)

	// TryRecv attempts to read one waiting segment. ok=false with err=nil
	// means nothing is available right now. On success, buf[:n] holds the
	// parsed TCP segment with any outer IP header already stripped.
	TryRecv(buf []byte) (n int, src netip.Addr, ok bool, err error)

	Close() error
}

// MinRecvBuffer is the smallest receive buffer callers should allocate; it
// comfortably fits a full Ethernet-sized IPv4 or IPv6 packet.
const MinRecvBuffer = 1500

// Segment is a convenience wrapper pairing a parsed TCP segment with its
// source address, used by callers that want both without re-parsing.
type Segment struct {
	TCP codec.Segment
	Src netip.Addr
}
