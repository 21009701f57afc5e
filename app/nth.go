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

func nthCmd() *Command {
	fs := flag.NewFlagSet("nth", flag.ContinueOnError)
	n := fs.Uint64("n", 0, "which prime to find, 1-indexed (required)")
	upperBound := fs.Uint64("upper-bound", 0, "an upper bound known to contain at least n primes (required)")

	return &Command{
		Flags: fs,
		Usage: "nth --n=N --upper-bound=N",
		Short: "Print the n'th prime",
		Exec: func(io *IO, args []string) int {
			if *n == 0 {
				io.ErrPrintln("error: --n is required")
				return 1
			}
			if *upperBound == 0 {
				io.ErrPrintln("error: --upper-bound is required")
				return 1
			}

			p, err := primes.NthPrime(*n, *upperBound, primes.Options{})
			if err != nil {
				io.ErrPrintln("error:", err)
				return primes.ExitCode(err)
			}

			io.Println(p)
			return 0
		},
	}
}
