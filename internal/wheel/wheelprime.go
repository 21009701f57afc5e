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

// Packed field widths: multiple_index gets 26 bits (up to 64M bits, i.e.
// an 8MB segment -- EratBig's largest accepted segment size), wheel_index
// gets 6 bits (0..47), the remaining 32 bits of the uint64 hold the
// sieving prime itself.
//
// A reference packing could store sieving_prime/30 rather than the full
// prime, saving roughly five bits at the cost of needing a per-residue
// correction table to recover exact strike positions. This implementation
// keeps the full prime instead: Advance needs the exact value to compute
// p*gap with no rounding. 32 bits (~4.29 billion) still comfortably covers
// every sieving prime EratBig will ever see, since a sieving prime is at
// most sqrt(stop) and EratBig's accepted stop values stay well under
// 2^64 in practice.
const (
	multipleIndexBits = 26
	wheelIndexBits    = 6

	multipleIndexMask = (uint64(1) << multipleIndexBits) - 1
	wheelIndexMask    = (uint64(1) << wheelIndexBits) - 1

	wheelIndexShift = multipleIndexBits
	primeShift      = multipleIndexBits + wheelIndexBits

	// MaxMultipleIndex is the largest bit offset a WheelPrime can encode,
	// i.e. the largest supported segment size in bits.
	MaxMultipleIndex = multipleIndexMask

	// MaxPrime is the largest sieving prime a WheelPrime can encode.
	MaxPrime = (uint64(1) << (64 - primeShift)) - 1
)

// WheelPrime is the packed record EratBig stores per bucket slot: the
// sieving prime, its current wheel-210 state, and the bit offset of its
// next strike within whichever future segment it is currently filed
// under.
type WheelPrime uint64

// PackWheelPrime encodes (prime, wheelIndex, multipleIndex) into a
// WheelPrime. Panics if any field does not fit -- a caller bug, since
// EratBig is responsible for keeping multipleIndex within segment bounds
// and prime within MaxPrime before packing.
func PackWheelPrime(prime uint64, wheelIndex int, multipleIndex uint64) WheelPrime {
	if multipleIndex > multipleIndexMask {
		panic("wheel: multiple_index overflows its packed field")
	}
	if wheelIndex < 0 || uint64(wheelIndex) > wheelIndexMask {
		panic("wheel: wheel_index overflows its packed field")
	}
	if prime > MaxPrime {
		panic("wheel: sieving prime overflows its packed field")
	}
	return WheelPrime(multipleIndex&multipleIndexMask |
		(uint64(wheelIndex)&wheelIndexMask)<<wheelIndexShift |
		prime<<primeShift)
}

// MultipleIndex returns the packed bit offset field.
func (w WheelPrime) MultipleIndex() uint64 {
	return uint64(w) & multipleIndexMask
}

// WheelIndex returns the packed wheel-210 state field.
func (w WheelPrime) WheelIndex() int {
	return int((uint64(w) >> wheelIndexShift) & wheelIndexMask)
}

// Prime returns the packed sieving prime field.
func (w WheelPrime) Prime() uint64 {
	return uint64(w) >> primeShift
}

// WithPosition returns a copy of w with its multiple_index and
// wheel_index fields replaced, preserving the prime field. Used by
// cross_off to re-file a WheelPrime after striking it forward.
func (w WheelPrime) WithPosition(multipleIndex uint64, wheelIndex int) WheelPrime {
	return PackWheelPrime(w.Prime(), wheelIndex, multipleIndex)
}
