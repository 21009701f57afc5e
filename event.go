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
	"fmt"
	"time"
)

const (
	EVT_SIEVE_START = 0 // a GeneratePrimes/CountPrimes/NthPrime run starts
	EVT_SIEVE_END   = 1 // a run ends, successfully or not
)

// Event reports progress of a sieve run to a Listener.
type Event struct {
	eventType int
	low, high uint64
	eventTime time.Time
}

// NewEvent creates an Event instance describing the range a run covers.
func NewEvent(evtType int, low, high uint64, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}
	return &Event{eventType: evtType, low: low, high: high, eventTime: evtTime}
}

// Type returns EVT_SIEVE_START or EVT_SIEVE_END.
func (this *Event) Type() int {
	return this.eventType
}

// Low returns the lower bound of the range this event describes.
func (this *Event) Low() uint64 {
	return this.low
}

// High returns the upper bound of the range this event describes.
func (this *Event) High() uint64 {
	return this.high
}

// Time returns the time info.
func (this *Event) Time() time.Time {
	return this.eventTime
}

// String returns a JSON-ish string representation of this event.
func (this *Event) String() string {
	t := ""

	switch this.eventType {
	case EVT_SIEVE_START:
		t = "SIEVE_START"
	case EVT_SIEVE_END:
		t = "SIEVE_END"
	}

	return fmt.Sprintf("{ \"type\":\"%s\", \"low\":%d, \"high\":%d, \"time\":%d }",
		t, this.low, this.high, this.eventTime.UnixNano()/1000000)
}

// Listener is an interface implemented by event processors.
type Listener interface {
	// ProcessEvent is the method called whenever a Listener receives an event.
	ProcessEvent(evt *Event)
}

// notify is a no-op when l is nil, sparing every call site a nil check.
func notify(l Listener, evtType int, low, high uint64) {
	if l == nil {
		return
	}
	l.ProcessEvent(NewEvent(evtType, low, high, time.Time{}))
}
