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

// Package presieve pre-clears multiples of the smallest sieving primes
// (7, 11, 13) before EratSmall and EratBig ever run, by tiling a
// precomputed repeating byte pattern across a segment buffer instead of
// striking each prime's multiples individually. Multiples of 2, 3 and 5
// need no pattern at all: the modulo-30 bit layout already excludes them
// from every byte.
package presieve

import "github.com/flanglet/primesieve-go/internal/wheel"

// primes is the fixed set this package pre-sieves. 7*11*13 = 1001, a
// period short enough to precompute once and tile cheaply; primesieve
// implementations typically stop the pre-sieve set here for the same
// reason -- the next prime, 17, would push the pattern period past
// 17,000 bytes for a gain too small to be worth the memory.
var primes = [3]uint64{7, 11, 13}

// periodBytes is the repeat period of the combined pattern, in bytes:
// product(primes) since each byte already represents 30 consecutive
// integers and 30 is coprime to 7, 11 and 13.
const periodBytes = 7 * 11 * 13

// Pattern holds one period of pre-sieved bits, computed once per SegSieve
// and reused across every segment it sieves.
type Pattern struct {
	bytes [periodBytes]byte
}

// New builds the pre-sieve pattern: a periodBytes-long tile with every
// bit cleared that corresponds to a multiple of 7, 11 or 13.
//
// This walks multiples of each prime directly rather than going through
// wheel.FirstMultiple/wheel.Advance: those assume the sieving prime is
// itself coprime to 210, which lets them track a multiple's phase as a
// residue mod 210, and they only visit p*t with t coprime to 210. 7
// divides 210, so that assumption fails for 7 outright; for 11 and 13 the
// walk would skip multiples such as 77 (= 7*11), which this pattern must
// still clear.
func New() *Pattern {
	p := &Pattern{}
	for i := range p.bytes {
		p.bytes[i] = 0xFF
	}

	limit := uint64(periodBytes) * 30

	for _, prime := range primes {
		for m := prime; m < limit; m += prime {
			residue := uint32(m % 30)
			bitPos := wheel.BitOfResidue30(residue)
			if bitPos < 0 {
				continue // m shares a factor with 2, 3 or 5: no bit represents it
			}
			byteIdx := m / 30
			p.bytes[byteIdx] &^= 1 << uint(bitPos)
		}
	}

	return p
}

// Apply ANDs the pattern into sieve, a segment buffer covering
// [base, base+len(sieve)*30), clearing every bit representing a multiple
// of 7, 11 or 13. base must be a multiple of 30, matching every other
// component's segment alignment.
func (p *Pattern) Apply(sieve []byte, base uint64) {
	offset := int((base / 30) % periodBytes)

	for i := range sieve {
		sieve[i] &= p.bytes[offset]
		offset++
		if offset == periodBytes {
			offset = 0
		}
	}
}
