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

	"github.com/resyncgg/armada/internal/engine"
)

// runQuiet suppresses all progress reporting. If streaming, it prints each
// result line as it arrives and returns no accumulated slice; otherwise it
// collects the whole scan and returns it for the caller to print once.
func runQuiet(ctx context.Context, e *engine.Engine, req engine.ScanRequest, stream bool) ([]engine.Probe, error) {
	if !stream {
		return e.ScanCollect(ctx, req)
	}

	ch := e.ScanWithHandle(ctx, req)

	for msg := range ch {
		results, ok := msg.(engine.Results)
		if !ok {
			continue
		}

		for _, p := range results.Probes {
			fmt.Printf("%s:%d\n", p.IP, p.Port)
		}
	}

	return nil, ctx.Err()
}
