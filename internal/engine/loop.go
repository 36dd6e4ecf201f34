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

import (
	"net/netip"
	"time"

	"github.com/resyncgg/armada/internal/codec"
	"github.com/resyncgg/armada/internal/rawsock"
)

const (
	batchSendSize       = 32
	batchRecvSize       = 32
	rateLimitResolution = 100 * time.Millisecond
	requeueSoftCap      = batchSendSize * 16 // 512
)

// expiryBatch is one send batch's worth of probes sharing a single
// deadline; the expiry queue holds these in strictly non-decreasing
// deadline order since each is stamped with now+timeout at send time.
type expiryBatch struct {
	deadline time.Time
	probes   []Probe
}

// runScan drives a single scan to completion: refill, rate-limit tick, send,
// receive, emit, expire, repeat, in that fixed order every iteration.
func (e *Engine) runScan(scan *Scan, seq *uint32) error {
	e.log.Debug().Stringer("scan_id", scan.id).Msg("scan starting")
	defer e.log.Debug().Stringer("scan_id", scan.id).Msg("scan finished")

	cart := newCartesian(scan.Hosts, scan.Ports)

	requeue := make([]Probe, 0, requeueSoftCap)
	inflight := make(map[Probe]struct{}, 1024)
	retries := make(map[Probe]uint8, 1024)
	expiry := make([]expiryBatch, 0, 64)

	var openPorts []Probe

	v4Cycle := &addrCycle{addrs: scan.SourceV4}
	v6Cycle := &addrCycle{addrs: scan.SourceV6}

	sendBuf := make([]byte, codec.SegmentSize)
	recvBuf := make([]byte, rawsock.MinRecvBuffer)

	var totalSent, processedPorts uint64

	bucketCount := 0
	bucketDeadline := time.Now().Add(rateLimitResolution)

	for {
		// 1. Refill the requeue buffer from upstream up to the soft cap.
		for len(requeue) < requeueSoftCap {
			p, ok := cart.next()
			if !ok {
				break
			}

			requeue = append(requeue, p)
		}

		if cart.done && len(inflight) == 0 && len(requeue) == 0 {
			break
		}

		srcV4, hasV4 := v4Cycle.pick()
		srcV6, hasV6 := v6Cycle.pick()

		// 2. Rate-limit tick.
		now := time.Now()
		rateOK := true

		if !now.Before(bucketDeadline) {
			bucketCount = 0
			bucketDeadline = now.Add(rateLimitResolution)

			if err := scan.send(Stats{processedPorts, len(inflight), totalSent, scan.id}); err != nil {
				return err
			}
		}

		sendLimit := batchSendSize

		if scan.RateLimit != nil {
			bucketCap := *scan.RateLimit / int(time.Second/rateLimitResolution)
			rateOK = bucketCount < bucketCap
			sendLimit = min(sendLimit, bucketCap-bucketCount)
		}

		// 3. Send phase.
		if rateOK {
			sent, err := e.sendBatch(&requeue, srcV4, hasV4, srcV6, hasV6, seq, sendBuf, sendLimit)
			if err != nil {
				return err
			}

			totalSent += uint64(len(sent))

			if len(sent) > 0 {
				bucketCount += len(sent)

				for _, p := range sent {
					inflight[p] = struct{}{}
				}

				expiry = append(expiry, expiryBatch{
					deadline: time.Now().Add(scan.Timeout),
					probes:   sent,
				})
			}
		} else {
			time.Sleep(time.Until(bucketDeadline))
		}

		// 4. Receive phase.
		if err := e.receiveBatch(e.v4, recvBuf, inflight, retries, &openPorts, &processedPorts); err != nil {
			return err
		}

		if err := e.receiveBatch(e.v6, recvBuf, inflight, retries, &openPorts, &processedPorts); err != nil {
			return err
		}

		// 5. Emit results.
		if len(openPorts) > 0 {
			if err := scan.send(Stats{processedPorts, len(inflight), totalSent, scan.id}); err != nil {
				return err
			}

			if err := scan.send(Results{Probes: openPorts}); err != nil {
				return err
			}

			openPorts = nil
		}

		// 6. Expiry phase: pop whole batches from the head while the head's
		// deadline has passed.
		now = time.Now()

		for len(expiry) > 0 && !expiry[0].deadline.After(now) {
			batch := expiry[0]
			expiry = expiry[1:]

			for _, p := range batch.probes {
				if _, ok := inflight[p]; !ok {
					continue // already resolved by a reply
				}

				delete(inflight, p)

				if retries[p] == scan.Retries {
					delete(retries, p)
					processedPorts++
				} else {
					retries[p]++
					requeue = append(requeue, p)
				}
			}
		}
	}

	if err := scan.send(Stats{processedPorts, len(inflight), totalSent, scan.id}); err != nil {
		return err
	}

	return scan.send(Results{Probes: openPorts})
}

// sendBatch draws up to limit (at most batchSendSize) probes from the tail of
// requeue (LIFO), builds and sends a SYN for each, and reports which were
// actually accepted by the kernel.
func (e *Engine) sendBatch(
	requeue *[]Probe,
	srcV4 netip.Addr, hasV4 bool,
	srcV6 netip.Addr, hasV6 bool,
	seq *uint32,
	buf []byte,
	limit int,
) ([]Probe, error) {
	q := *requeue
	sent := make([]Probe, 0, batchSendSize)

	for i := 0; i < limit; i++ {
		if len(q) == 0 {
			break
		}

		p := q[len(q)-1]
		q = q[:len(q)-1]

		var sock rawsock.Socket

		var src netip.Addr

		switch {
		case p.IP.Is4():
			if !hasV4 {
				e.log.Warn().Stringer("ip", p.IP).Msg("no ipv4 source address configured, dropping probe")
				continue
			}

			sock, src = e.v4, srcV4
		default:
			if !hasV6 {
				e.log.Warn().Stringer("ip", p.IP).Msg("no ipv6 source address configured, dropping probe")
				continue
			}

			sock, src = e.v6, srcV6
		}

		n, err := codec.BuildSYN(src, p.IP, e.listeningPort, p.Port, seq, buf)
		if err != nil {
			e.log.Warn().Err(err).Stringer("ip", p.IP).Uint16("port", p.Port).Msg("failed to build syn packet, skipping probe")
			continue
		}

		ok, err := sock.TrySend(buf[:n], p.IP)
		if err != nil {
			*requeue = q
			return sent, err
		}

		if !ok {
			q = append(q, p)
			break
		}

		sent = append(sent, p)
	}

	*requeue = q

	return sent, nil
}

// receiveBatch drains up to batchRecvSize segments from sock, resolving any
// that match an outstanding probe as open.
func (e *Engine) receiveBatch(
	sock rawsock.Socket,
	buf []byte,
	inflight map[Probe]struct{},
	retries map[Probe]uint8,
	openPorts *[]Probe,
	processedPorts *uint64,
) error {
	for i := 0; i < batchRecvSize; i++ {
		n, src, ok, err := sock.TryRecv(buf)
		if err != nil {
			return err
		}

		if !ok {
			break
		}

		seg, err := codec.ParseTCP(buf[:n])
		if err != nil {
			continue // truncated or malformed; discard
		}

		if seg.DstPort != e.listeningPort || !codec.IsSYNACK(seg.Flags) {
			continue
		}

		probe := Probe{IP: src, Port: seg.SrcPort}

		if _, ok := inflight[probe]; !ok {
			continue // unsolicited, or already resolved; discard
		}

		delete(inflight, probe)
		delete(retries, probe)
		*processedPorts++
		*openPorts = append(*openPorts, probe)
	}

	return nil
}
