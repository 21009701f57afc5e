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

// Package primes implements a segmented sieve of Eratosthenes over a
// modulo-30 bit layout and a modulo-210 wheel. The implementation of its
// stages lives in sub-packages: internal/wheel carries the wheel state
// machine, internal/bucket the arena allocator backing large-prime
// carry-forward, internal/eratbig/internal/eratsmall/internal/presieve
// the three crossing-off stages, and internal/segsieve/internal/workerpool
// the single- and multi-goroutine orchestration built on top of them.
package primes

import (
	"errors"

	"github.com/flanglet/primesieve-go/internal/eratbig"
)

const (
	ErrInvalidRange   = 1 // low > high, or high < 2
	ErrBadSegmentSize = 2 // segment size not a power of two in [2^14, 2^23]
	ErrOutOfMemory    = 3 // bucket pool failed to grow
	ErrBadJobCount    = 4 // jobs < 0
	ErrUnknown        = 127
)

// Sentinel errors GeneratePrimes, CountPrimes and NthPrime wrap their
// directly-raised errors against, so ExitCode can recognize them with
// errors.Is regardless of how many layers of fmt.Errorf("%w", ...) sit
// between the originating call and the caller.
var (
	errInvalidRange   = errors.New("primes: invalid range")
	errBadSegmentSize = errors.New("primes: bad segment size")
	errOutOfMemory    = errors.New("primes: out of memory")
	errBadJobCount    = errors.New("primes: bad job count")
)

// ExitCode classifies an error returned by this package's functions into
// one of the Err* constants above, for callers (the CLI in particular)
// that want a stable process exit code rather than parsing error text.
// A nil err or one this package doesn't recognize maps to ErrUnknown's
// absence and 0/ErrUnknown respectively.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch {
	case errors.Is(err, errInvalidRange):
		return ErrInvalidRange
	case errors.Is(err, errBadSegmentSize), errors.Is(err, eratbig.ErrPrecondition):
		return ErrBadSegmentSize
	case errors.Is(err, errOutOfMemory), errors.Is(err, eratbig.ErrOutOfMemory):
		return ErrOutOfMemory
	case errors.Is(err, errBadJobCount):
		return ErrBadJobCount
	default:
		return ErrUnknown
	}
}

// Range describes the closed interval [Low, High] a sieve run covers.
type Range struct {
	Low, High uint64
}

// Sieve produces every prime in a Range, in increasing order, without
// requiring the whole range to be materialized in memory at once.
type Sieve interface {
	// ForEach calls visit with every prime in the range, in increasing
	// order, stopping early and returning visit's error the first time
	// it returns one.
	ForEach(visit func(uint64) error) error
}
