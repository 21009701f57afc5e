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
	"errors"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines one sieve subcommand with unified help generation.
type Command struct {
	// Flags defines command-specific flags. The FlagSet name is not
	// used -- command identity comes from Usage.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "primesieve" in
	// help, e.g. "generate --low=0 --high=1000".
	Usage string

	// Short is a one-line description for the global help listing.
	Short string

	// Exec runs the command after flags are parsed.
	Exec func(io *IO, args []string) int
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the top-level usage display.
func (c *Command) HelpLine() string {
	return "  " + c.Usage + "\n      " + c.Short
}

// PrintHelp prints full help for "primesieve <cmd> --help".
func (c *Command) PrintHelp(io *IO) {
	io.Println("Usage: primesieve", c.Usage)
	io.Println()
	io.Println(c.Short)

	if c.Flags.HasFlags() {
		io.Println()
		io.Println("Flags:")
		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		io.Printf("%s", buf.String())
	}
}

// Run parses flags and executes the command, returning an exit code.
func (c *Command) Run(io *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag's own error output

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(io)
			return 0
		}
		io.ErrPrintln("error:", err)
		c.PrintHelp(io)
		return 1
	}

	return c.Exec(io, c.Flags.Args())
}
