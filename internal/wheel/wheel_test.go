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

package wheel

import (
	"math/rand"
	"testing"
)

func TestGapsSumTo210(t *testing.T) {
	var sum uint64
	for _, g := range gaps {
		sum += g
	}
	if sum != 210 {
		t.Fatalf("gaps sum = %d, want 210", sum)
	}
}

func TestResiduesCoprimeTo210(t *testing.T) {
	for i, r := range residues210 {
		if gcd210(r) != 1 {
			t.Fatalf("residues210[%d] = %d is not coprime to 210", i, r)
		}
	}
	if len(residues210) != States {
		t.Fatalf("expected %d residues, got %d", States, len(residues210))
	}
}

func TestIndexOfResidue210RoundTrips(t *testing.T) {
	for i, r := range residues210 {
		if got := IndexOfResidue210(r); got != i {
			t.Fatalf("IndexOfResidue210(%d) = %d, want %d", r, got, i)
		}
	}
}

func TestPackUnpackWheelPrime(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 10000; i++ {
		prime := uint64(rng.Int63n(int64(MaxPrime)))
		wi := rng.Intn(States)
		mi := uint64(rng.Int63n(int64(MaxMultipleIndex) + 1))

		w := PackWheelPrime(prime, wi, mi)

		if got := w.Prime(); got != prime {
			t.Fatalf("Prime() = %d, want %d", got, prime)
		}
		if got := w.WheelIndex(); got != wi {
			t.Fatalf("WheelIndex() = %d, want %d", got, wi)
		}
		if got := w.MultipleIndex(); got != mi {
			t.Fatalf("MultipleIndex() = %d, want %d", got, mi)
		}
	}
}

func TestWithPositionPreservesPrime(t *testing.T) {
	w := PackWheelPrime(1000003, 5, 42)
	w2 := w.WithPosition(99, 10)

	if w2.Prime() != 1000003 {
		t.Fatalf("prime not preserved across WithPosition: got %d", w2.Prime())
	}
	if w2.MultipleIndex() != 99 || w2.WheelIndex() != 10 {
		t.Fatalf("WithPosition did not update fields: %+v", w2)
	}
}

// TestAdvanceStaysOnValidResidues checks that repeatedly advancing a
// WheelPrime always lands on a bit position whose underlying residue mod
// 30 is one of the eight coprime-to-30 values, and that the corresponding
// absolute number is always coprime to 210 (the wheel's whole purpose).
func TestAdvanceStaysOnValidResidues(t *testing.T) {
	primes := []uint64{11, 13, 1000003, 999999937}

	for _, p := range primes {
		base := uint64(0)
		bitOffset, idx := FirstMultiple(p, base)

		for step := 0; step < 500; step++ {
			byteIdx := bitOffset >> 3
			bitPos := bitOffset & 7
			number := base + byteIdx*30 + uint64(Residues30[bitPos])

			if number%p != 0 {
				t.Fatalf("prime %d: step %d: number %d is not a multiple of p", p, step, number)
			}
			if gcd210(uint32(number%210)) != 1 {
				t.Fatalf("prime %d: step %d: number %d is not coprime to 210", p, step, number)
			}

			bitOffset, idx = Advance(p, bitOffset, idx)
		}
	}
}

func TestFirstMultipleAtLeastPSquared(t *testing.T) {
	for _, p := range []uint64{11, 13, 17, 1009, 7919} {
		bitOffset, _ := FirstMultiple(p, 0)
		byteIdx := bitOffset >> 3
		bitPos := bitOffset & 7
		number := byteIdx*30 + uint64(Residues30[bitPos])

		if number < p*p {
			t.Fatalf("prime %d: first multiple %d is below p*p = %d", p, number, p*p)
		}
		if number%p != 0 {
			t.Fatalf("prime %d: first multiple %d is not a multiple of p", p, number)
		}
	}
}

func TestFirstMultipleRespectsLowerBound(t *testing.T) {
	p := uint64(1000003)
	low := uint64(900) // must be a multiple of 30

	bitOffset, _ := FirstMultiple(p, low)
	byteIdx := bitOffset >> 3
	bitPos := bitOffset & 7
	number := low + byteIdx*30 + uint64(Residues30[bitPos])

	if number < low {
		t.Fatalf("first multiple %d below the requested low bound %d", number, low)
	}
	if number%p != 0 {
		t.Fatalf("first multiple %d is not a multiple of p = %d", number, p)
	}
}

func TestBitMask(t *testing.T) {
	byteIdx, mask := BitMask(17) // byte 2, bit 1
	if byteIdx != 2 {
		t.Fatalf("byteIdx = %d, want 2", byteIdx)
	}
	if mask != ^byte(1<<1) {
		t.Fatalf("mask = %08b, want %08b", mask, ^byte(1<<1))
	}
}
