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

package codec

import "errors"

var (
	// ErrBufferTooSmall is returned by BuildSYN when the destination buffer
	// cannot hold a full TCP header plus the MSS option.
	ErrBufferTooSmall = errors.New("codec: buffer smaller than syn header")

	// ErrMixedFamily is returned when the source and destination addresses
	// of a segment belong to different address families.
	ErrMixedFamily = errors.New("codec: source and destination address families differ")

	// ErrShortSegment is returned by ParseTCP when the input is shorter than
	// a minimal TCP header.
	ErrShortSegment = errors.New("codec: segment shorter than tcp header")
)
