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

package eratbig

import (
	"math"
	"testing"

	"github.com/flanglet/primesieve-go/internal/wheel"
)

// trialDivisionPrimes returns every prime in [2, limit] by trial
// division. Only used as a test oracle for small bounds (seeding
// AddPrime); the engine under test never calls this.
func trialDivisionPrimes(limit uint64) []uint64 {
	var primes []uint64
	for n := uint64(2); n <= limit; n++ {
		isPrime := true
		for d := uint64(2); d*d <= n; d++ {
			if n%d == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, n)
		}
	}
	return primes
}

// referenceSieve returns every prime in [2, limit] via a plain O(n log
// log n) sieve of Eratosthenes. Used as the test oracle for the larger
// reference ranges, where trial division per candidate would be too slow.
func referenceSieve(limit uint64) map[uint64]bool {
	composite := make([]bool, limit+1)
	primes := make(map[uint64]bool)

	for n := uint64(2); n <= limit; n++ {
		if composite[n] {
			continue
		}
		primes[n] = true
		for m := n * n; m <= limit && m >= n; m += n {
			composite[m] = true
		}
	}
	return primes
}

func isqrt(n uint64) uint64 {
	return uint64(math.Sqrt(float64(n)))
}

// harness is a trivial outer sieve, built directly in the test: it marks
// multiples of small primes by direct nested loops (standing in for
// EratSmall, out of scope here) and defers every sieving prime above
// smallPrimeBound to the EratBig instance under test.
type harness struct {
	t               *testing.T
	stop            uint64
	segmentBytes    uint64
	smallPrimeBound uint64
	eb              *EratBig
	bits            map[uint64]bool // number -> still-candidate, across the whole run
}

func newHarness(t *testing.T, stop, segmentBytes, smallPrimeBound uint64) *harness {
	t.Helper()

	maxSievingPrime := isqrt(stop) + 1
	eb, err := New(0, stop, segmentBytes, smallPrimeBound, maxSievingPrime, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	h := &harness{
		t:               t,
		stop:            stop,
		segmentBytes:    segmentBytes,
		smallPrimeBound: smallPrimeBound,
		eb:              eb,
		bits:            make(map[uint64]bool),
	}

	for _, p := range trialDivisionPrimes(maxSievingPrime) {
		if p > smallPrimeBound {
			if err := h.eb.AddPrime(p); err != nil {
				t.Fatalf("AddPrime(%d): %v", p, err)
			}
		}
	}

	return h
}

// run sieves every segment from 0 to stop, applying small-prime direct
// marking and the engine's CrossOff, and records which coprime-to-30
// candidates remain set at the end.
func (h *harness) run() {
	smallPrimes := trialDivisionPrimes(h.smallPrimeBound)
	segmentRange := h.segmentBytes * 30

	for base := uint64(0); base <= h.stop; base += segmentRange {
		buf := make([]byte, h.segmentBytes)
		for i := range buf {
			buf[i] = 0xFF
		}

		for byteIdx := uint64(0); byteIdx < h.segmentBytes; byteIdx++ {
			for bit, r := range wheel.Residues30 {
				n := base + byteIdx*30 + uint64(r)
				if n < 2 || n > h.stop {
					continue
				}
				for _, p := range smallPrimes {
					if p*p > n {
						break
					}
					if n != p && n%p == 0 {
						buf[byteIdx] &^= 1 << uint(bit)
						break
					}
				}
			}
		}

		if err := h.eb.CrossOff(buf); err != nil {
			h.t.Fatalf("CrossOff: %v", err)
		}

		for byteIdx := uint64(0); byteIdx < h.segmentBytes; byteIdx++ {
			for bit, r := range wheel.Residues30 {
				n := base + byteIdx*30 + uint64(r)
				if n > h.stop {
					continue
				}
				if buf[byteIdx]&(1<<uint(bit)) != 0 {
					h.bits[n] = true
				}
			}
		}
	}
}

func (h *harness) countChainBuckets() int {
	n := 0
	for _, head := range h.eb.lists {
		for b := head; b != nil; b = b.Next() {
			n++
		}
	}
	return n
}

func TestEratBigCoverageAndNonDamage(t *testing.T) {
	const stop = 3_000_000
	const segmentBytes = 1 << 14
	const smallPrimeBound = 100

	h := newHarness(t, stop, segmentBytes, smallPrimeBound)
	h.run()

	reference := referenceSieve(stop)

	for n := uint64(2); n <= stop; n++ {
		if n%2 == 0 || n%3 == 0 || n%5 == 0 {
			continue // not represented in the mod-30 bit domain at all
		}

		isPrime := reference[n]
		set := h.bits[n]

		if isPrime && !set {
			t.Fatalf("non-damage violated: prime %d was cleared", n)
		}
		if !isPrime && set {
			t.Fatalf("coverage violated: composite %d was not cleared", n)
		}
	}
}

func TestEratBigConservation(t *testing.T) {
	const stop = 2_000_000
	const segmentBytes = 1 << 14
	const smallPrimeBound = 50

	h := newHarness(t, stop, segmentBytes, smallPrimeBound)
	h.run()

	resident := h.countChainBuckets()
	_ = resident // informational; the authoritative count is per-WheelPrime below

	var stillFiled int64
	for _, head := range h.eb.lists {
		for b := head; b != nil; b = b.Next() {
			stillFiled += int64(b.Count())
		}
	}

	if got, want := stillFiled+h.eb.Dropped(), h.eb.Added(); got != want {
		t.Fatalf("conservation violated: filed(%d)+dropped(%d) = %d, want added() = %d",
			stillFiled, h.eb.Dropped(), got, want)
	}
}

func TestEratBigBucketAccounting(t *testing.T) {
	const stop = 2_000_000
	const segmentBytes = 1 << 14
	const smallPrimeBound = 50

	h := newHarness(t, stop, segmentBytes, smallPrimeBound)
	h.run()

	inChains := h.countChainBuckets()
	inStock := h.eb.pool.StockLen()
	total := h.eb.pool.TotalBuckets()

	if inChains+inStock != total {
		t.Fatalf("bucket accounting violated: chains(%d)+stock(%d) = %d, want total(%d)",
			inChains, inStock, inChains+inStock, total)
	}
}

func TestEratBigRoutingCorrectness(t *testing.T) {
	const stop = 2_000_000
	const segmentBytes = 1 << 14
	const smallPrimeBound = 50

	h := newHarness(t, stop, segmentBytes, smallPrimeBound)

	// Run everything except the very last segment so some primes remain
	// filed, then check each resident WheelPrime's absolute next strike
	// falls within the segment range its list slot claims.
	segmentRange := h.segmentBytes * 30
	lastBase := (h.stop / segmentRange) * segmentRange

	for base := uint64(0); base < lastBase; base += segmentRange {
		buf := make([]byte, h.segmentBytes)
		for i := range buf {
			buf[i] = 0xFF
		}
		if err := h.eb.CrossOff(buf); err != nil {
			t.Fatalf("CrossOff: %v", err)
		}
	}

	slots := len(h.eb.lists)
	for i := 0; i < slots; i++ {
		head := h.eb.lists[(h.eb.baseSlot+i)%slots]
		lo := h.eb.base + uint64(i)*segmentRange
		hi := lo + segmentRange

		for b := head; b != nil; b = b.Next() {
			b.Each(func(w wheel.WheelPrime) {
				n := lo + (w.MultipleIndex()>>3)*30 + uint64(wheel.Residues30[w.MultipleIndex()&7])
				if n < lo || n >= hi || n%w.Prime() != 0 {
					t.Fatalf("routing violated: WheelPrime %d in logical slot %d has next strike %d, want a multiple of it in [%d,%d)", w.Prime(), i, n, lo, hi)
				}
			})
		}
	}
}

// TestEratBigSingleLargePrimeStrikeCount checks a single large prime's
// strike count over a span of segments anchored around p*p, where
// AddPrime actually starts it (composites below p*p always carry a
// smaller prime factor, so nothing sieves them there). Anchoring base at
// p*p instead of 0 keeps the run's length proportional to the number of
// segments it covers rather than to p*p itself, while still exercising
// real cross-segment re-filing: p's strikes land roughly every nine
// segments at this segment size, so 200 segments carries upwards of
// twenty of them.
func TestEratBigSingleLargePrimeStrikeCount(t *testing.T) {
	const segmentBytes = 1 << 14
	const segments = 200
	p := uint64(1_000_003)

	segmentRange := uint64(segmentBytes) * 30
	base := (p * p / segmentRange) * segmentRange
	stop := base + segments*segmentRange

	eb, err := New(base, stop, segmentBytes, p-1, p+1, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := eb.AddPrime(p); err != nil {
		t.Fatalf("AddPrime: %v", err)
	}

	cleared := 0
	for b := base; b <= stop; b += segmentRange {
		buf := make([]byte, segmentBytes)
		for i := range buf {
			buf[i] = 0xFF
		}
		if err := eb.CrossOff(buf); err != nil {
			t.Fatalf("CrossOff: %v", err)
		}
		for _, by := range buf {
			for bit := 0; bit < 8; bit++ {
				if by&(1<<uint(bit)) == 0 {
					cleared++
				}
			}
		}
	}

	// The wheel-210 strikes p*t only for t coprime to 210; p is coprime to
	// 7, so m%7 != 0 exactly when t%7 != 0.
	want := 0
	for m := p * p; m <= stop; m += p {
		if m%2 != 0 && m%3 != 0 && m%5 != 0 && m%7 != 0 {
			want++
		}
	}

	if cleared != want {
		t.Fatalf("cleared %d bits for multiples of %d, want %d", cleared, p, want)
	}
}

func TestEratBigExhaustion(t *testing.T) {
	const stop = 500_000
	const segmentBytes = 1 << 14
	const smallPrimeBound = 50

	h := newHarness(t, stop, segmentBytes, smallPrimeBound)
	h.run()

	for _, head := range h.eb.lists {
		if head != nil {
			t.Fatalf("expected all lists empty after sieving past stop, found a non-empty chain")
		}
	}

	if h.eb.pool.StockLen() != h.eb.pool.TotalBuckets() {
		t.Fatalf("expected every allocated bucket back in stock: stock=%d total=%d",
			h.eb.pool.StockLen(), h.eb.pool.TotalBuckets())
	}
}

func TestNewRejectsBadSegmentSize(t *testing.T) {
	if _, err := New(0, 1000, 100, 7, 31, 0); err == nil {
		t.Fatal("expected error for non-power-of-two segment size")
	}
	if _, err := New(0, 1000, 1<<10, 7, 31, 0); err == nil {
		t.Fatal("expected error for segment size below 2^14")
	}
}

func TestAddPrimeRejectsOutOfRange(t *testing.T) {
	eb, err := New(0, 1_000_000, 1<<14, 100, 2000, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := eb.AddPrime(97); err == nil {
		t.Fatal("expected precondition error for prime <= minSievingPrime")
	}
	if err := eb.AddPrime(3000); err == nil {
		t.Fatal("expected precondition error for prime > maxSievingPrime")
	}
}
