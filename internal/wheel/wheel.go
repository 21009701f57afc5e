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

// Package wheel implements the modulo-210 wheel factorization shared by
// EratBig: the 48 residues coprime to 2*3*5*7, the packed WheelPrime
// record, and the table-driven strike/advance used by the hot loop.
//
// The sieve bit array itself uses the coarser modulo-30 wheel: one byte
// represents 30 consecutive integers, one bit per residue coprime to
// 2*3*5 (the eight values in Residues30). A sieving prime's multiples
// land on a subset of those eight bit positions; the 48-state wheel-210
// table determines, in O(1), how far to jump to the *next* multiple that
// is also coprime to 7, skipping composites that a smaller sieving prime
// (7 itself) will clear on its own pass.
package wheel

// Residues30 lists, in bit order, the eight residues mod 30 a sieve byte
// encodes: bit b of a byte at segment offset i represents the candidate
// base + 30*i + Residues30[b].
var Residues30 = [8]uint32{1, 7, 11, 13, 17, 19, 23, 29}

// bitOfResidue30 maps a residue mod 30 back to its bit index, or -1 if
// the residue shares a factor with 2, 3 or 5 and therefore has no bit.
var bitOfResidue30 = buildBitOfResidue30()

func buildBitOfResidue30() [30]int8 {
	var t [30]int8
	for i := range t {
		t[i] = -1
	}
	for b, r := range Residues30 {
		t[r] = int8(b)
	}
	return t
}

// BitOfResidue30 returns the bit index within a sieve byte that
// represents residue r (0 <= r < 30), or -1 if r shares a factor with
// 2, 3 or 5 and so has no bit at all.
func BitOfResidue30(r uint32) int8 {
	return bitOfResidue30[r]
}

// States is the number of residues mod 210 coprime to 2*3*5*7.
const States = 48

// residues210 lists, in increasing order, the 48 residues mod 210 that
// are coprime to 210. WheelIndex values are indices into this table.
var residues210 = [States]uint32{
	1, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97, 101, 103,
	107, 109, 113, 121, 127, 131, 137, 139, 143, 149, 151, 157,
	163, 167, 169, 173, 179, 181, 187, 191, 193, 197, 199, 209,
}

// gaps holds, per wheel state i, the distance (in units of the sieving
// prime) from residues210[i] to residues210[(i+1)%States], wrapping by
// +210 at the end of the cycle. Shared process-wide, read-only, built
// once at package init from the literal residue list above.
var gaps = buildGaps()

func buildGaps() [States]uint64 {
	var g [States]uint64
	for i := 0; i < States; i++ {
		next := residues210[(i+1)%States]
		if i == States-1 {
			next += 210
		}
		g[i] = uint64(next - residues210[i])
	}
	return g
}

// IndexOfResidue210 returns the wheel index i such that residues210[i]
// equals r, for r in [1, 209] coprime to 210. Used when seeding a new
// WheelPrime: callers compute the phase of the first multiple directly
// rather than walking the table.
func IndexOfResidue210(r uint32) int {
	// residues210 is small (48 entries) and only consulted once per
	// sieving prime at seed time, so a linear scan is simpler than a
	// second lookup table and never shows up in the per-segment hot loop.
	for i, v := range residues210 {
		if v == r {
			return i
		}
	}
	return -1
}

// Advance computes the next strike position for a WheelPrime currently
// sitting at absolute bit offset bitOffset within (or past) the sieve
// domain, with sieving prime p and current wheel state idx.
//
// It returns the new absolute bit offset and the next wheel state. The
// bit mask to clear at the current position is derived by the caller
// from bitOffset before calling Advance (Advance only computes where to
// go next, it does not touch the sieve buffer).
func Advance(p uint64, bitOffset uint64, idx int) (nextBitOffset uint64, nextIdx int) {
	byteIdx := bitOffset >> 3
	bitPos := uint32(bitOffset & 7)
	oldResidue := Residues30[bitPos]

	inc := p * gaps[idx]
	total := uint64(oldResidue) + inc
	byteAdvance := total / 30
	newResidue := uint32(total % 30)

	newBitPos := bitOfResidue30[newResidue]
	if newBitPos < 0 {
		// Unreachable for a correctly seeded WheelPrime: the new position
		// is p*t with p and t both coprime to 30, so it is too.
		panic("wheel: advanced to a residue not coprime to 30")
	}

	nextBitOffset = (byteIdx+byteAdvance)*8 + uint64(newBitPos)
	nextIdx = (idx + 1) % States
	return nextBitOffset, nextIdx
}

// BitMask returns the bitmask (with the single bit for bitOffset's
// position within its byte set) used to clear that candidate in a sieve
// buffer, along with the byte index to clear it in.
func BitMask(bitOffset uint64) (byteIndex uint64, mask byte) {
	return bitOffset >> 3, ^(byte(1) << (bitOffset & 7))
}

// FirstMultiple returns the bit offset (relative to low) and wheel index
// of the smallest multiple of p that is >= max(low, p*p), expressed as p*t
// for some t coprime to 210.
//
// p must be coprime to 210 (true for every sieving prime handled by
// EratBig, since those primes are always > 7). low must be a multiple of
// 30 (a segment base), since the returned bit offset is only meaningful
// relative to a byte-aligned block boundary.
func FirstMultiple(p uint64, low uint64) (bitOffset uint64, idx int) {
	// Start at p*p: classic sieve optimization, no smaller sieving prime
	// can have already eliminated a multiple of p below p*p.
	m := p * p
	if low > m {
		m = low
		// Round m up to the next multiple of p.
		if rem := m % p; rem != 0 {
			m += p - rem
		}
	}

	t := m / p
	tr := uint32(t % 210)

	// Walk forward (at most 47 steps) until t is coprime to 210.
	for i := 0; i < States; i++ {
		if gcd210(tr) == 1 {
			idx = IndexOfResidue210(tr)
			if idx >= 0 {
				break
			}
		}
		m += p
		tr = uint32((uint64(tr) + 1) % 210)
	}

	residue := uint32(m % 30)
	bitPos := bitOfResidue30[residue]
	if bitPos < 0 {
		panic("wheel: FirstMultiple landed on a residue not coprime to 30")
	}

	byteIdx := (m - low) / 30
	bitOffset = byteIdx*8 + uint64(bitPos)
	return bitOffset, idx
}

func gcd210(r uint32) uint32 {
	a, b := r, uint32(210)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
