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

//go:build darwin || freebsd

package rawsock

// normalizeIPv4TotalLength corrects the BSD-family raw-socket quirk where the
// kernel delivers the IPv4 header's total-length field in host byte order
// instead of network byte order. Header length (IHL, a single nibble) is
// unaffected and needs no correction; this only matters for callers that
// inspect total length for bounds-checking.
func normalizeIPv4TotalLength(buf []byte) {
	if len(buf) < 4 {
		return
	}

	buf[2], buf[3] = buf[3], buf[2]
}
