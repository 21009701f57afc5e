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

package bucket

import (
	"testing"

	"github.com/flanglet/primesieve-go/internal/wheel"
)

func TestBucketPushAndIterate(t *testing.T) {
	var b Bucket

	for i := 0; i < 5; i++ {
		b.Push(wheel.PackWheelPrime(uint64(1000+i), 0, 0))
	}

	if b.Count() != 5 {
		t.Fatalf("Count() = %d, want 5", b.Count())
	}

	seen := 0
	b.Each(func(w wheel.WheelPrime) {
		if w.Prime() != uint64(1000+seen) {
			t.Fatalf("entry %d: prime = %d, want %d", seen, w.Prime(), 1000+seen)
		}
		seen++
	})
	if seen != 5 {
		t.Fatalf("Each visited %d entries, want 5", seen)
	}
}

func TestBucketFullAndClear(t *testing.T) {
	var b Bucket

	for i := 0; i < Capacity; i++ {
		b.Push(wheel.PackWheelPrime(11, 0, 0))
	}
	if !b.IsFull() {
		t.Fatal("bucket should report full at Capacity entries")
	}

	b.Clear()
	if b.Count() != 0 || b.IsFull() {
		t.Fatal("Clear() did not reset the bucket")
	}
}

func TestBucketPushPastCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic pushing past capacity")
		}
	}()

	var b Bucket
	for i := 0; i <= Capacity; i++ {
		b.Push(wheel.PackWheelPrime(11, 0, 0))
	}
}

func TestBucketChainLinking(t *testing.T) {
	var a, c Bucket
	a.SetNext(&c)

	if a.Next() != &c {
		t.Fatal("SetNext/Next did not round-trip")
	}
}
