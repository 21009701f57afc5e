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

package main

import (
	primes "github.com/flanglet/primesieve-go"

	flag "github.com/spf13/pflag"
)

func countCmd() *Command {
	fs := flag.NewFlagSet("count", flag.ContinueOnError)
	low := fs.Uint64("low", 0, "lower bound of the range, inclusive")
	high := fs.Uint64("high", 0, "upper bound of the range, inclusive (required)")
	jobs := fs.Int("jobs", 1, "number of goroutines to sieve with")
	segmentBytes := fs.Uint64("segment-bytes", 0, "sieve segment size in bytes (0 selects the default)")

	return &Command{
		Flags: fs,
		Usage: "count --high=N [--low=N] [--jobs=N]",
		Short: "Print the number of primes in [low, high]",
		Exec: func(io *IO, args []string) int {
			if *high == 0 {
				io.ErrPrintln("error: --high is required")
				return 1
			}

			count, err := primes.CountPrimes(*low, *high, primes.Options{Jobs: *jobs, SegmentBytes: *segmentBytes})
			if err != nil {
				io.ErrPrintln("error:", err)
				return primes.ExitCode(err)
			}

			io.Println(count)
			return 0
		},
	}
}
