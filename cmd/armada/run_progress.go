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

package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/resyncgg/armada/internal/engine"
)

// runProgress renders a single live bar tracking total packets sent against
// the most packets the scan can send (probe count times 1+retries), folding
// the found/in-flight counters into
// the bar's description. The original's three independent spinners collapse
// into one here since this bar library has no multi-bar layout.
func runProgress(ctx context.Context, e *engine.Engine, req engine.ScanRequest, stream bool) ([]engine.Probe, error) {
	totalProbes := totalProbeCount(req)
	totalPackets := totalProbes * int64(1+req.Retries)

	bar := progressbar.NewOptions64(totalPackets,
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(50*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)

	var found []engine.Probe

	ch := e.ScanWithHandle(ctx, req)

	for msg := range ch {
		switch m := msg.(type) {
		case engine.Stats:
			_ = bar.Set64(int64(m.TotalPacketsSent))
			bar.Describe(fmt.Sprintf("scanning (found: %d, in-flight: %d)", len(found), m.InflightCount))
		case engine.Results:
			if stream {
				for _, p := range m.Probes {
					fmt.Printf("%s:%d\n", p.IP, p.Port)
				}
			}

			found = append(found, m.Probes...)
		}
	}

	_ = bar.Finish()

	if stream {
		return nil, ctx.Err()
	}

	return found, ctx.Err()
}

// totalProbeCount multiplies the host and port sequence sizes, clamping to
// math.MaxInt64 for scans too large for the progress bar's counter to hold.
func totalProbeCount(req engine.ScanRequest) int64 {
	hostCount := req.Hosts.Size()
	portCount := new(big.Int).SetUint64(req.Ports.Size())

	total := new(big.Int).Mul(hostCount, portCount)

	maxInt64 := big.NewInt(int64(^uint64(0) >> 1))
	if total.Cmp(maxInt64) > 0 {
		return maxInt64.Int64()
	}

	return total.Int64()
}
