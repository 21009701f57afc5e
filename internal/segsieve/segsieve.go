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

// Package segsieve wires the presieve, eratsmall and eratbig stages into
// one segment-by-segment pipeline: for every segment in [low, high] it
// pre-clears 7/11/13 multiples, strikes the small sieving primes in
// place, drains eratbig's bucket lists for this segment, and finally
// walks the resulting bitmap to report the primes it found.
package segsieve

import (
	"fmt"
	"math"

	"github.com/flanglet/primesieve-go/internal/eratbig"
	"github.com/flanglet/primesieve-go/internal/eratsmall"
	"github.com/flanglet/primesieve-go/internal/presieve"
	"github.com/flanglet/primesieve-go/internal/wheel"
)

// DefaultSegmentBytes is used when a caller does not express an opinion
// about segment size. It is sized to fit comfortably in L1 cache on most
// hardware, the same rationale EratBig's own [2^14, 2^23] range enforces.
const DefaultSegmentBytes = 1 << 16

// tinyPrimes are the primes the modulo-30 bit layout cannot represent at
// all (2, 3, 5) plus the ones the presieve pattern clears instead of
// sieving (7, 11, 13): all six must be reported explicitly since no
// segment's bitmap ever sets a bit for them.
var tinyPrimes = [6]uint64{2, 3, 5, 7, 11, 13}

// SegSieve sieves every integer in [low, high] and reports the primes
// among them, in increasing order, to a caller-supplied visitor.
type SegSieve struct {
	low, high    uint64
	segmentBytes uint64
	alignedLow   uint64

	pattern *presieve.Pattern
	small   *eratsmall.EratSmall
	big     *eratbig.EratBig

	// bigPrimes holds every sieving prime too large for the small-prime
	// sieve, in increasing order. Each is only handed to big.AddPrime once
	// big's seed horizon reaches p*p (see seedReadyBigPrimes): handing them
	// all over up front, from base 0, would make a large p's first
	// multiple (p*p) route far beyond what big's bucket lists can hold.
	bigPrimes []uint64
	bigCursor int
}

// New prepares a SegSieve over [low, high]. segmentBytes <= 0 selects
// DefaultSegmentBytes. memPerAlloc <= 0 selects the bucket pool's own
// default.
func New(low, high, segmentBytes uint64, memPerAlloc int) (*SegSieve, error) {
	if high < 2 {
		return nil, fmt.Errorf("segsieve: high=%d must be >= 2", high)
	}
	if low > high {
		return nil, fmt.Errorf("segsieve: low=%d must be <= high=%d", low, high)
	}
	if segmentBytes == 0 {
		segmentBytes = DefaultSegmentBytes
	}

	alignedLow := low - low%30
	maxSievingPrime := isqrt(high) + 1
	smallPrimeThreshold := isqrt(segmentBytes*30) + 1

	small := eratsmall.New(alignedLow, high)
	big, err := eratbig.New(alignedLow, high, segmentBytes, smallPrimeThreshold, maxSievingPrime, memPerAlloc)
	if err != nil {
		return nil, fmt.Errorf("segsieve: %w", err)
	}

	var bigPrimes []uint64
	for _, p := range sieveUpTo(maxSievingPrime) {
		if p < 17 {
			continue // covered by the presieve pattern (7, 11, 13) or unrepresentable (2, 3, 5)
		}
		if p <= smallPrimeThreshold {
			small.AddPrime(p)
		} else {
			bigPrimes = append(bigPrimes, p)
		}
	}

	s := &SegSieve{
		low:          low,
		high:         high,
		segmentBytes: segmentBytes,
		alignedLow:   alignedLow,
		pattern:      presieve.New(),
		small:        small,
		big:          big,
		bigPrimes:    bigPrimes,
	}

	if err := s.seedReadyBigPrimes(); err != nil {
		return nil, err
	}

	return s, nil
}

// seedReadyBigPrimes hands every not-yet-seeded prime in bigPrimes whose
// square now lies within big's seed horizon over to big.AddPrime,
// advancing bigCursor past each one. Called once at construction and
// again before every segment, so a prime is seeded the moment the
// sieve's current base gets close enough to p*p for big's routing to
// place it correctly, never sooner.
func (s *SegSieve) seedReadyBigPrimes() error {
	horizon := s.big.SeedHorizon()
	for s.bigCursor < len(s.bigPrimes) {
		p := s.bigPrimes[s.bigCursor]
		if p*p > horizon {
			break
		}
		if err := s.big.AddPrime(p); err != nil {
			return fmt.Errorf("segsieve: seeding %d: %w", p, err)
		}
		s.bigCursor++
	}
	return nil
}

// ForEach calls visit, in increasing order, with every prime in [low,
// high]. It stops and returns visit's error the first time visit returns
// one.
func (s *SegSieve) ForEach(visit func(uint64) error) error {
	for _, p := range tinyPrimes {
		if p < s.low || p > s.high {
			continue
		}
		if err := visit(p); err != nil {
			return err
		}
	}

	buf := make([]byte, s.segmentBytes)
	segmentRange := s.segmentBytes * 30

	for base := s.alignedLow; base <= s.high; base += segmentRange {
		if err := s.seedReadyBigPrimes(); err != nil {
			return err
		}

		for i := range buf {
			buf[i] = 0xFF
		}

		s.pattern.Apply(buf, base)
		s.small.CrossOff(buf, s.segmentBytes)
		if err := s.big.CrossOff(buf); err != nil {
			return fmt.Errorf("segsieve: %w", err)
		}

		for byteIdx := uint64(0); byteIdx < s.segmentBytes; byteIdx++ {
			b := buf[byteIdx]
			if b == 0 {
				continue
			}
			for bit, r := range wheel.Residues30 {
				if b&(1<<uint(bit)) == 0 {
					continue
				}
				n := base + byteIdx*30 + uint64(r)
				if n < 2 || n < s.low || n > s.high {
					continue // 1 has a bit in the first byte but is not prime
				}
				if err := visit(n); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func isqrt(n uint64) uint64 {
	return uint64(math.Sqrt(float64(n)))
}

// sieveUpTo returns every prime in [2, limit] via a plain sieve of
// Eratosthenes. Used once, at construction, to bootstrap the sieving
// primes themselves: limit is sqrt(high) at most, small enough that a
// dedicated segmented bootstrap would only add complexity.
func sieveUpTo(limit uint64) []uint64 {
	if limit < 2 {
		return nil
	}
	composite := make([]bool, limit+1)
	var primes []uint64
	for n := uint64(2); n <= limit; n++ {
		if composite[n] {
			continue
		}
		primes = append(primes, n)
		for m := n * n; m <= limit && m >= n; m += n {
			composite[m] = true
		}
	}
	return primes
}
