/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package workerpool splits a sieving range across independent SegSieve
// instances, one per goroutine, following the same fan-out-then-wait
// shape kanzi-go's block codec uses to encode concurrent blocks: a
// sync.WaitGroup, one result slot per task, errors collected after Wait
// rather than raced over a shared channel.
package workerpool

import (
	"fmt"
	"sync"

	"github.com/flanglet/primesieve-go/internal/segsieve"
)

// taskResult holds one range's outcome: either its primes, in
// increasing order, or the error that stopped it.
type taskResult struct {
	primes []uint64
	err    error
}

type task struct {
	low, high    uint64
	segmentBytes uint64
	memPerAlloc  int
	wg           *sync.WaitGroup
}

func (t *task) run(res *taskResult) {
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("workerpool: task for range [%d,%d] panicked: %v", t.low, t.high, r)
		}
		t.wg.Done()
	}()

	if t.low > t.high {
		return // empty shard, e.g. more jobs requested than there is range to cover
	}

	ss, err := segsieve.New(t.low, t.high, t.segmentBytes, t.memPerAlloc)
	if err != nil {
		res.err = err
		return
	}

	res.err = ss.ForEach(func(p uint64) error {
		res.primes = append(res.primes, p)
		return nil
	})
}

// ForEach sieves [low, high] using up to jobs goroutines, each an
// independent SegSieve over its own sub-range, and calls visit with
// every prime found, in increasing order. jobs <= 1 sieves with a
// single SegSieve directly, skipping goroutine setup entirely.
//
// With jobs > 1 it waits for every shard to finish first. If any shard
// reports an error, it returns the first such error in range order
// without calling visit at all; otherwise it calls visit with each
// shard's primes in range order, stopping at the first error visit
// returns.
func ForEach(low, high uint64, jobs int, segmentBytes uint64, memPerAlloc int, visit func(uint64) error) error {
	if jobs <= 1 {
		ss, err := segsieve.New(low, high, segmentBytes, memPerAlloc)
		if err != nil {
			return err
		}
		return ss.ForEach(visit)
	}

	ranges := splitRange(low, high, jobs)
	wg := sync.WaitGroup{}
	results := make([]taskResult, len(ranges))

	for i, r := range ranges {
		wg.Add(1)
		t := &task{low: r.low, high: r.high, segmentBytes: segmentBytes, memPerAlloc: memPerAlloc, wg: &wg}
		go t.run(&results[i])
	}

	wg.Wait()

	for _, res := range results {
		if res.err != nil {
			return res.err
		}
	}

	for _, res := range results {
		for _, p := range res.primes {
			if err := visit(p); err != nil {
				return err
			}
		}
	}

	return nil
}

type subrange struct {
	low, high uint64
}

// splitRange divides [low, high] into up to n contiguous, roughly
// equal, 30-aligned shards so each shard's own SegSieve sees a clean
// segment boundary.
func splitRange(low, high uint64, n int) []subrange {
	total := high - low + 1
	if uint64(n) > total {
		n = int(total)
	}
	if n < 1 {
		n = 1
	}

	chunk := total / uint64(n)
	if chunk == 0 {
		chunk = 1
	}
	// round up to a multiple of 30 so shard boundaries fall on wheel
	// byte boundaries; the last shard absorbs any remainder.
	chunk = ((chunk + 29) / 30) * 30

	ranges := make([]subrange, 0, n)
	cur := low
	for cur <= high {
		end := cur + chunk - 1
		if end > high || len(ranges) == n-1 {
			end = high
		}
		ranges = append(ranges, subrange{low: cur, high: end})
		cur = end + 1
	}
	return ranges
}
