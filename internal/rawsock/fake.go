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

package rawsock

import (
	"net/netip"
	"sync"
)

// Fake is an in-memory Socket used by engine tests in place of an actual
// privileged raw socket. Sent packets are recorded; queued replies are
// delivered to TryRecv in FIFO order.
type Fake struct {
	mu     sync.Mutex
	sent   []FakeSent
	replies []FakeReply

	sendLimit int // if > 0, TrySend reports WouldBlock once this many sends have happened
	closed    bool
}

// FakeSent records one accepted TrySend call.
type FakeSent struct {
	Packet []byte
	Dst    netip.Addr
}

// FakeReply is a queued TryRecv result.
type FakeReply struct {
	Data []byte
	Src  netip.Addr
}

var _ Socket = (*Fake)(nil)

// NewFake returns an empty Fake socket.
func NewFake() *Fake {
	return &Fake{}
}

// SetSendLimit makes TrySend start returning WouldBlock after limit accepted
// sends, simulating a full kernel send buffer. Zero (the default) means
// unlimited.
func (f *Fake) SetSendLimit(limit int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sendLimit = limit
}

// QueueReply makes a future TryRecv call return data/src.
func (f *Fake) QueueReply(data []byte, src netip.Addr) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)

	f.replies = append(f.replies, FakeReply{Data: cp, Src: src})
}

// Sent returns every packet accepted by TrySend so far.
func (f *Fake) Sent() []FakeSent {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]FakeSent, len(f.sent))
	copy(out, f.sent)

	return out
}

func (f *Fake) TrySend(packet []byte, dst netip.Addr) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false, ErrSocketClosed
	}

	if f.sendLimit > 0 && len(f.sent) >= f.sendLimit {
		return false, nil
	}

	cp := make([]byte, len(packet))
	copy(cp, packet)

	f.sent = append(f.sent, FakeSent{Packet: cp, Dst: dst})

	return true, nil
}

func (f *Fake) TryRecv(buf []byte) (int, netip.Addr, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, netip.Addr{}, false, ErrSocketClosed
	}

	if len(f.replies) == 0 {
		return 0, netip.Addr{}, false, nil
	}

	reply := f.replies[0]
	f.replies = f.replies[1:]

	n := copy(buf, reply.Data)

	return n, reply.Src, true, nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true

	return nil
}
