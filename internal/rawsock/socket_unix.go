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

//go:build linux || darwin || freebsd

package rawsock

import (
	"fmt"
	"net/netip"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/resyncgg/armada/internal/codec"
)

// Family selects the address family a Socket speaks.
type Family int

const (
	FamilyV4 Family = iota
	FamilyV6
)

// unixSocket wraps a non-blocking SOCK_RAW/IPPROTO_TCP descriptor. It carries
// no IP_HDRINCL: the kernel builds and fills the IP header on send and we
// receive it prepended, matching pnet's Layer4 transport channel that the
// source implementation drove. One instance exists per address family and is
// only ever touched by the engine's single goroutine, but Close is guarded so
// a concurrent shutdown can't race a send.
type unixSocket struct {
	fd     int
	family Family

	mu     sync.Mutex
	closed bool
}

var _ Socket = (*unixSocket)(nil)

// Open creates a non-blocking raw TCP socket for family. The socket is not
// bound to any local address.
func Open(family Family) (Socket, error) {
	domain := unix.AF_INET
	if family == FamilyV6 {
		domain = unix.AF_INET6
	}

	fd, err := unix.Socket(domain, unix.SOCK_RAW, unix.IPPROTO_TCP)
	if err != nil {
		return nil, fmt.Errorf("rawsock: socket: %w", err)
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("rawsock: set nonblock: %w", err)
	}

	// A generous kernel receive buffer keeps short send bursts from dropping
	// SYN-ACKs that arrive before the engine's next receive phase.
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_RCVBUF, 1<<20); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("rawsock: set rcvbuf: %w", err)
	}

	return &unixSocket{fd: fd, family: family}, nil
}

func (s *unixSocket) TrySend(packet []byte, dst netip.Addr) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrSocketClosed
	}

	var sa unix.Sockaddr
	if s.family == FamilyV4 {
		sa = &unix.SockaddrInet4{Addr: dst.As4()}
	} else {
		sa = &unix.SockaddrInet6{Addr: dst.As16()}
	}

	err := unix.Sendto(s.fd, packet, 0, sa)
	if err == nil {
		return true, nil
	}

	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return false, nil
	}

	return false, fmt.Errorf("rawsock: sendto: %w", err)
}

func (s *unixSocket) TryRecv(buf []byte) (int, netip.Addr, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, netip.Addr{}, false, ErrSocketClosed
	}

	n, from, err := unix.Recvfrom(s.fd, buf, 0)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, netip.Addr{}, false, nil
		}

		return 0, netip.Addr{}, false, fmt.Errorf("rawsock: recvfrom: %w", err)
	}

	src, offset, ok := s.stripHeader(buf[:n])
	if !ok {
		// Truncated or malformed delivery; treat as "nothing usable" rather
		// than tearing down the whole scan over one bad datagram.
		return 0, netip.Addr{}, false, nil
	}

	if from != nil {
		if addr, ok := sockaddrToAddr(from); ok {
			src = addr
		}
	}

	copy(buf, buf[offset:n])

	return n - offset, src, true, nil
}

// stripHeader locates the TCP segment inside a raw delivery. On v6 the kernel
// never prepends the IPv6 header to an IPPROTO_TCP raw socket, so the buffer
// already starts at the TCP header. On v4 the IPv4 header (length given by
// its own IHL nibble) is prepended and must be skipped.
func (s *unixSocket) stripHeader(buf []byte) (netip.Addr, int, bool) {
	if s.family == FamilyV6 {
		return netip.Addr{}, 0, len(buf) >= 20
	}

	if len(buf) < 20 {
		return netip.Addr{}, 0, false
	}

	normalizeIPv4TotalLength(buf)

	ihl := int(buf[0]&0x0f) * 4
	if ihl < 20 || len(buf) < ihl+20 {
		return netip.Addr{}, 0, false
	}

	var srcBytes [4]byte
	copy(srcBytes[:], buf[12:16])

	return netip.AddrFrom4(srcBytes), ihl, true
}

func sockaddrToAddr(sa unix.Sockaddr) (netip.Addr, bool) {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		return netip.AddrFrom4(v.Addr), true
	case *unix.SockaddrInet6:
		return netip.AddrFrom16(v.Addr), true
	default:
		return netip.Addr{}, false
	}
}

func (s *unixSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	return unix.Close(s.fd)
}

// ParseSegment is a convenience for going straight from a TryRecv buffer to
// a parsed codec.Segment; it is codec.ParseTCP under another name.
func ParseSegment(buf []byte) (codec.Segment, error) {
	return codec.ParseTCP(buf)
}
