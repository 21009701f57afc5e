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

// Package eratsmall handles what EratBig leaves out: the sieve of sieving
// primes p <= sqrt(segment range), which strike many times per segment
// and so need no bucket routing at all -- each is simply re-struck in
// place every segment with a running bit offset, the textbook
// segmented-sieve inner loop.
package eratsmall

import "github.com/flanglet/primesieve-go/internal/wheel"

// sievingPrime tracks one small prime's position as an absolute bit
// offset from the engine's current segment base, plus its wheel-210
// state, mirroring the fields EratBig packs into a WheelPrime but kept
// unpacked here since there is no bucket/list machinery to economize for.
type sievingPrime struct {
	prime      uint64
	bitOffset  uint64
	wheelIndex int
}

// EratSmall crosses off multiples of every sieving prime registered with
// AddPrime, once per segment, in place. Like EratBig it strikes only the
// multiples p*t with t coprime to 210, so p must itself be coprime to 210
// (p > 7); multiples of 7 are not struck here.
type EratSmall struct {
	stop    uint64
	base    uint64
	primes  []sievingPrime
}

// New creates an EratSmall ready to sieve starting at base (a multiple of
// 30) up to stop.
func New(base, stop uint64) *EratSmall {
	return &EratSmall{stop: stop, base: base}
}

// AddPrime registers p, computing its first strike position at or beyond
// the current base via the shared modulo-210 wheel. If that first strike
// already exceeds stop, p is silently dropped.
func (es *EratSmall) AddPrime(p uint64) {
	bitOffset, idx := wheel.FirstMultiple(p, es.base)
	if es.numberAt(bitOffset) > es.stop {
		return
	}
	es.primes = append(es.primes, sievingPrime{prime: p, bitOffset: bitOffset, wheelIndex: idx})
}

func (es *EratSmall) numberAt(bitOffset uint64) uint64 {
	byteIdx := bitOffset >> 3
	bitPos := bitOffset & 7
	return es.base + byteIdx*30 + uint64(wheel.Residues30[bitPos])
}

// CrossOff clears every bit struck by a registered small prime within
// sieve, then advances each prime's bit offset to its first strike in the
// following segment. sieve must be segmentBytes long; segmentBytes is
// fixed for the lifetime of the EratSmall (every AddPrime/CrossOff call
// must agree on it).
func (es *EratSmall) CrossOff(sieve []byte, segmentBytes uint64) {
	segmentBits := segmentBytes * 8

	live := es.primes[:0]
	for _, sp := range es.primes {
		bitOffset, wheelIdx := sp.bitOffset, sp.wheelIndex

		for bitOffset < segmentBits {
			byteIdx, mask := wheel.BitMask(bitOffset)
			sieve[byteIdx] &= mask
			bitOffset, wheelIdx = wheel.Advance(sp.prime, bitOffset, wheelIdx)
		}

		bitOffset -= segmentBits

		if es.base+segmentBytes*30+uint64(bitOffset>>3)*30 > es.stop {
			continue // dropped: next strike would exceed stop
		}

		live = append(live, sievingPrime{prime: sp.prime, bitOffset: bitOffset, wheelIndex: wheelIdx})
	}
	es.primes = live

	es.base += segmentBytes * 30
}

// Len returns the number of sieving primes still active.
func (es *EratSmall) Len() int {
	return len(es.primes)
}
