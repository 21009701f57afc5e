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

// Package eratbig implements the large-prime crossing-off engine: the
// segmented-sieve subsystem that eliminates multiples of sieving primes
// larger than the segment size, each of which has at most one multiple
// per segment and must be parked, via a bucket/arena allocator and a
// modulo-210 wheel, until the segment containing its next strike comes
// around.
package eratbig

import (
	"fmt"

	"github.com/flanglet/primesieve-go/internal/bucket"
	"github.com/flanglet/primesieve-go/internal/wheel"
)

// EratBig orchestrates the large-prime crossing-off pass of a segmented
// sieve. It is single-threaded and non-reentrant: callers that want
// parallelism instantiate one independent EratBig per worker instead of
// sharing one across goroutines.
type EratBig struct {
	stop            uint64
	base            uint64 // lower bound of the segment CrossOff will next process; must stay a multiple of 30
	segmentBytes    uint64
	minSievingPrime uint64
	maxSievingPrime uint64

	seg segmentIndex

	pool    *bucket.Pool
	lists   []*bucket.Bucket // physical slots; logical slot i lives at (baseSlot+i) % len(lists)
	baseSlot int

	addedCount   int64
	droppedCount int64
}

// New creates an EratBig ready to sieve [base, stop]. segmentBytes is the
// sieve buffer size in bytes and must be a power of two in [2^14, 2^23].
// minSievingPrime is the largest prime handled by the small-prime sieve
// instead (every prime AddPrime accepts must be strictly greater than
// it); maxSievingPrime is normally floor(sqrt(stop)). memPerAlloc <= 0
// selects bucket.MemoryPerAlloc.
func New(base, stop, segmentBytes, minSievingPrime, maxSievingPrime uint64, memPerAlloc int) (*EratBig, error) {
	if !isPowerOfTwo(segmentBytes) || segmentBytes < 1<<14 || segmentBytes > 1<<23 {
		return nil, fmt.Errorf("%w: segment size %d must be a power of two in [2^14, 2^23]", ErrPrecondition, segmentBytes)
	}
	if base%30 != 0 {
		return nil, fmt.Errorf("%w: base %d must be a multiple of 30", ErrPrecondition, base)
	}

	// A WheelPrime can jump up to 10*p in absolute terms (the largest
	// wheel-210 gap) before its next strike, i.e. at most
	// ceil(10*p/(30*segmentBytes)) segments ahead. lists_ only ever needs
	// to hold re-filing distances: AddPrime is never called with a prime
	// whose first qualifying multiple is farther out than this same bound,
	// because callers seed primes incrementally (see SeedHorizon) rather
	// than all at once from base 0, so one formula covers both seeding and
	// re-filing.
	l := maxSievingPrime/segmentBytes + 8
	if l < 4 {
		l = 4
	}

	return &EratBig{
		stop:            stop,
		base:            base,
		segmentBytes:    segmentBytes,
		minSievingPrime: minSievingPrime,
		maxSievingPrime: maxSievingPrime,
		seg:             newSegmentIndex(segmentBytes),
		pool:            bucket.NewPool(memPerAlloc),
		lists:           make([]*bucket.Bucket, l),
	}, nil
}

// Base returns the lower bound of the segment the next CrossOff call will
// process.
func (eb *EratBig) Base() uint64 {
	return eb.base
}

// Added returns the number of sieving primes accepted by AddPrime.
func (eb *EratBig) Added() int64 {
	return eb.addedCount
}

// Dropped returns the number of sieving primes (initial or re-filed)
// whose next multiple exceeded stop and were therefore retired instead of
// filed into a list.
func (eb *EratBig) Dropped() int64 {
	return eb.droppedCount
}

// Pool exposes the bucket pool for diagnostics and accounting tests.
func (eb *EratBig) Pool() *bucket.Pool {
	return eb.pool
}

// SeedHorizon returns the largest value of p*p a caller may safely pass to
// AddPrime right now. AddPrime routes a prime's first multiple into
// lists_ by how many segments ahead it falls, and that routing is only
// guaranteed to fit within lists_ for distances within one re-filing hop;
// a prime seeded from much farther out (p*p far beyond the current base)
// would route past the end of lists_ and panic. Callers that hold primes
// larger than sqrt(base) must wait until this horizon reaches p*p before
// calling AddPrime(p), advancing the horizon by draining segments via
// CrossOff in the meantime.
func (eb *EratBig) SeedHorizon() uint64 {
	margin := uint64(len(eb.lists)) / 2
	if margin == 0 {
		margin = 1
	}
	return eb.base + margin*eb.segmentBytes*30
}

// numberAt reconstructs the absolute integer a bit offset, measured from
// the current segment's base, represents.
func (eb *EratBig) numberAt(bitOffset uint64) uint64 {
	byteIdx := bitOffset >> 3
	bitPos := bitOffset & 7
	return eb.base + byteIdx*30 + uint64(wheel.Residues30[bitPos])
}

// AddPrime registers a sieving prime with the engine. It computes the
// first multiple of p at or beyond the current base using the
// modulo-210 wheel, routes it to the appropriate future-segment list via
// SegmentIndex, and appends it to that list's head bucket (acquiring a
// fresh bucket from the pool if needed). If p's first qualifying
// multiple already exceeds stop, p is silently dropped: this is normal
// operation, not an error.
func (eb *EratBig) AddPrime(p uint64) error {
	if p <= eb.minSievingPrime || p > eb.maxSievingPrime {
		return fmt.Errorf("%w: sieving prime %d outside (%d, %d]", ErrPrecondition, p, eb.minSievingPrime, eb.maxSievingPrime)
	}

	bitOffset, wheelIdx := wheel.FirstMultiple(p, eb.base)

	if eb.numberAt(bitOffset) > eb.stop {
		eb.droppedCount++
		return nil
	}

	segAhead, localBitOffset := eb.seg.route(bitOffset)
	eb.file(segAhead, wheel.PackWheelPrime(p, wheelIdx, localBitOffset))
	eb.addedCount++
	return nil
}

// file pushes w into the bucket chain segAhead segments ahead of the
// current one, acquiring a new bucket from the pool when the chain's head
// is absent or full.
func (eb *EratBig) file(segAhead int, w wheel.WheelPrime) {
	if segAhead < 0 || segAhead >= len(eb.lists) {
		panic(fmt.Sprintf("eratbig: segment routing produced slot %d outside [0,%d) -- lists_ undersized", segAhead, len(eb.lists)))
	}

	physIdx := (eb.baseSlot + segAhead) % len(eb.lists)
	head := eb.lists[physIdx]

	if head == nil || head.IsFull() {
		nb := eb.pool.Acquire()
		nb.SetNext(head)
		head = nb
		eb.lists[physIdx] = head
	}

	head.Push(w)
}

// CrossOff drains the list of primes striking the current segment,
// clearing their bits in sieve, and re-files each prime into whichever
// future list its next strike falls in. sieve must be exactly
// segmentBytes long; calling CrossOff with a differently-sized buffer, or
// before the engine has a valid base, is a programming error.
//
// After draining, CrossOff advances the engine's notion of "current
// segment" by segmentBytes*30 and rotates the logical list window by one
// slot, in O(1), without physically moving any bucket.
func (eb *EratBig) CrossOff(sieve []byte) error {
	if uint64(len(sieve)) != eb.segmentBytes {
		panic(fmt.Sprintf("eratbig: CrossOff called with a %d-byte sieve, want %d", len(sieve), eb.segmentBytes))
	}

	head := eb.lists[eb.baseSlot]
	eb.lists[eb.baseSlot] = nil

	segmentBits := eb.segmentBytes * 8

	for b := head; b != nil; b = b.Next() {
		b.Each(func(w wheel.WheelPrime) {
			eb.strike(w, sieve, segmentBits)
		})
	}

	eb.pool.Release(head)

	eb.baseSlot = (eb.baseSlot + 1) % len(eb.lists)
	eb.base += eb.segmentBytes * 30

	return nil
}

// strike unrolls the wheel-210 state machine for one WheelPrime: clears
// every bit it strikes within the current segment, then re-files it
// (unless its next multiple now exceeds stop) into the list for whichever
// future segment its next strike lands in.
func (eb *EratBig) strike(w wheel.WheelPrime, sieve []byte, segmentBits uint64) {
	p := w.Prime()
	wheelIdx := w.WheelIndex()
	bitOffset := w.MultipleIndex()

	for bitOffset < segmentBits {
		byteIdx, mask := wheel.BitMask(bitOffset)
		sieve[byteIdx] &= mask
		bitOffset, wheelIdx = wheel.Advance(p, bitOffset, wheelIdx)
	}

	if eb.numberAt(bitOffset) > eb.stop {
		eb.droppedCount++
		return
	}

	segAhead, localBitOffset := eb.seg.route(bitOffset)
	eb.file(segAhead, wheel.PackWheelPrime(p, wheelIdx, localBitOffset))
}
