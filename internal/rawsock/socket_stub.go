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

//go:build !linux && !darwin && !freebsd

package rawsock

import (
	"errors"
	"net/netip"
)

// Family selects the address family a Socket speaks.
type Family int

const (
	FamilyV4 Family = iota
	FamilyV6
)

// ErrUnsupportedPlatform is returned by Open on platforms with no raw-socket
// implementation wired up: everything but Linux, macOS (darwin) and FreeBSD.
var ErrUnsupportedPlatform = errors.New("rawsock: raw sockets unsupported on this platform")

type stubSocket struct{}

var _ Socket = (*stubSocket)(nil)

// Open always fails on unsupported platforms.
func Open(Family) (Socket, error) {
	return nil, ErrUnsupportedPlatform
}

func (stubSocket) TrySend([]byte, netip.Addr) (bool, error) {
	return false, ErrUnsupportedPlatform
}

func (stubSocket) TryRecv([]byte) (int, netip.Addr, bool, error) {
	return 0, netip.Addr{}, false, ErrUnsupportedPlatform
}

func (stubSocket) Close() error { return nil }
