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

// Command primesieve is the CLI front end for the segmented sieve: it
// exposes generate, count and nth subcommands driven by the root primes
// package; generate and count can be decomposed across goroutines via
// --jobs, nth always sieves on one goroutine.
package main

import (
	"os"
	"runtime"
)

const version = "1.0"

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	io := &IO{Out: os.Stdout, ErrOut: os.Stderr}
	commands := []*Command{
		generateCmd(),
		countCmd(),
		nthCmd(),
	}

	if len(os.Args) < 2 {
		printUsage(io, commands)
		os.Exit(1)
	}

	name := os.Args[1]

	if name == "-h" || name == "--help" {
		printUsage(io, commands)
		os.Exit(0)
	}

	for _, cmd := range commands {
		if cmd.Name() == name {
			os.Exit(cmd.Run(io, os.Args[2:]))
		}
	}

	io.ErrPrintln("unknown command:", name)
	printUsage(io, commands)
	os.Exit(1)
}

func printUsage(io *IO, commands []*Command) {
	io.Println("primesieve " + version + " (c) Frederic Langlet")
	io.Println()
	io.Println("Usage: primesieve <command> [flags]")
	io.Println()
	io.Println("Commands:")
	for _, cmd := range commands {
		io.Println(cmd.HelpLine())
	}
}
