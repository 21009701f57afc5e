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
	"os"
	"runtime/pprof"

	primes "github.com/flanglet/primesieve-go"
	"github.com/flanglet/primesieve-go/internal/logprint"

	flag "github.com/spf13/pflag"
)

func generateCmd() *Command {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	low := fs.Uint64("low", 0, "lower bound of the range, inclusive")
	high := fs.Uint64("high", 0, "upper bound of the range, inclusive (required)")
	jobs := fs.Int("jobs", 1, "number of goroutines to sieve with")
	segmentBytes := fs.Uint64("segment-bytes", 0, "sieve segment size in bytes (0 selects the default)")
	output := fs.String("output", "", "output file path (default: stdout)")
	verbose := fs.Bool("verbose", false, "print progress to stderr")
	cpuProf := fs.String("cpu-prof", "", "write a CPU profile to this path")

	return &Command{
		Flags: fs,
		Usage: "generate --high=N [--low=N] [--jobs=N] [--segment-bytes=N] [--output=PATH]",
		Short: "Print every prime in [low, high]",
		Exec: func(io *IO, args []string) int {
			return runGenerate(io, *low, *high, *jobs, *segmentBytes, *output, *verbose, *cpuProf)
		},
	}
}

func runGenerate(io *IO, low, high uint64, jobs int, segmentBytes uint64, output string, verbose bool, cpuProf string) int {
	if high == 0 {
		io.ErrPrintln("error: --high is required")
		return 1
	}

	if cpuProf != "" {
		f, err := os.Create(cpuProf)
		if err != nil {
			io.ErrPrintln("warning: cpu profile unavailable:", err)
		} else {
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				io.ErrPrintln("warning: cpu profile unavailable:", err)
			} else {
				defer pprof.StopCPUProfile()
			}
		}
	}

	w := io.Out
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			io.ErrPrintln("error:", err)
			return 1
		}
		defer f.Close()
		w = f
	}

	errOut := logprint.New(io.ErrOut)
	listener := newPrintListener(errOut, verbose)

	opts := primes.Options{Jobs: jobs, SegmentBytes: segmentBytes, Listener: listener}

	if err := primes.PrintPrimes(w, low, high, opts); err != nil {
		io.ErrPrintln("error:", err)
		return primes.ExitCode(err)
	}

	return 0
}
