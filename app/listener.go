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
	"fmt"

	primes "github.com/flanglet/primesieve-go"
	"github.com/flanglet/primesieve-go/internal/logprint"
)

// printListener reports sieve progress through a logprint.Printer,
// passing its verbose flag to the Printer's Println, which drops the
// line when verbose is false.
type printListener struct {
	printer *logprint.Printer
	verbose bool
}

func newPrintListener(p *logprint.Printer, verbose bool) *printListener {
	return &printListener{printer: p, verbose: verbose}
}

func (l *printListener) ProcessEvent(evt *primes.Event) {
	switch evt.Type() {
	case primes.EVT_SIEVE_START:
		l.printer.Println(fmt.Sprintf("sieving [%d, %d]", evt.Low(), evt.High()), l.verbose)
	case primes.EVT_SIEVE_END:
		l.printer.Println(fmt.Sprintf("done [%d, %d]", evt.Low(), evt.High()), l.verbose)
	}
}
