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

package primes

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/flanglet/primesieve-go/internal/segsieve"
	"github.com/flanglet/primesieve-go/internal/workerpool"
)

// Options configures how a sieve run is decomposed and reported.
// The zero value is valid: Jobs of 0 or 1 sieves single-threaded (a
// negative Jobs is an error) and SegmentBytes == 0 selects
// segsieve.DefaultSegmentBytes.
type Options struct {
	Jobs         int
	SegmentBytes uint64
	MemPerAlloc  int
	Listener     Listener // receives progress events; nil disables reporting
}

// GeneratePrimes calls visit with every prime in [low, high], in
// increasing order, stopping early if visit returns an error. It decomposes
// the range across opts.Jobs goroutines when that is greater than one.
func GeneratePrimes(low, high uint64, opts Options, visit func(uint64) error) error {
	if high < 2 || low > high {
		return fmt.Errorf("%w: [%d,%d]", errInvalidRange, low, high)
	}

	jobs := opts.Jobs
	if jobs < 0 {
		return fmt.Errorf("%w: %d", errBadJobCount, jobs)
	}

	notify(opts.Listener, EVT_SIEVE_START, low, high)

	err := workerpool.ForEach(low, high, jobs, opts.SegmentBytes, opts.MemPerAlloc, visit)

	notify(opts.Listener, EVT_SIEVE_END, low, high)
	return err
}

// CountPrimes returns the number of primes in [low, high].
func CountPrimes(low, high uint64, opts Options) (uint64, error) {
	var count uint64
	err := GeneratePrimes(low, high, opts, func(uint64) error {
		count++
		return nil
	})
	return count, err
}

// errNthFound is the sentinel GeneratePrimes's visitor returns to stop
// early once the nth prime has been located; it never escapes NthPrime.
var errNthFound = errors.New("primes: nth prime found")

// NthPrime returns the n'th prime (1-indexed: NthPrime(1) is 2), sieving
// the range [0, upperBound]. Callers must supply an upperBound known to
// contain at least n primes; a bound too small returns an error.
// opts.Jobs is ignored: NthPrime always sieves on a single goroutine, so
// it stops as soon as the n'th prime is visited.
func NthPrime(n uint64, upperBound uint64, opts Options) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("primes: n must be >= 1")
	}

	opts.Jobs = 1
	var count uint64
	var found uint64

	err := GeneratePrimes(0, upperBound, opts, func(p uint64) error {
		count++
		if count == n {
			found = p
			return errNthFound
		}
		return nil
	})

	if errors.Is(err, errNthFound) {
		return found, nil
	}
	if err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("primes: fewer than %d primes in [0,%d]", n, upperBound)
}

// PrintPrimes writes every prime in [low, high], one per line, to w.
func PrintPrimes(w io.Writer, low, high uint64, opts Options) error {
	return GeneratePrimes(low, high, opts, func(p uint64) error {
		_, err := io.WriteString(w, strconv.FormatUint(p, 10)+"\n")
		return err
	})
}

// segSieveSingle is a thin Sieve adapter over segsieve.SegSieve, letting
// callers that don't need workerpool's fan-out use the Sieve interface
// directly.
type segSieveSingle struct {
	ss *segsieve.SegSieve
}

// NewSieve returns a single-goroutine Sieve over [low, high].
func NewSieve(low, high, segmentBytes uint64, memPerAlloc int) (Sieve, error) {
	ss, err := segsieve.New(low, high, segmentBytes, memPerAlloc)
	if err != nil {
		return nil, err
	}
	return segSieveSingle{ss: ss}, nil
}

func (s segSieveSingle) ForEach(visit func(uint64) error) error {
	return s.ss.ForEach(visit)
}
