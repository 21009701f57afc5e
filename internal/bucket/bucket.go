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

// Package bucket provides the fixed-capacity, intrusively-linked Bucket
// and the slab-backed BucketPool that EratBig uses to park WheelPrimes
// until the segment containing their next strike comes around.
package bucket

import "github.com/flanglet/primesieve-go/internal/wheel"

// Capacity is the number of WheelPrimes a single Bucket holds. Chosen so
// sizeof(Bucket) sits near 8 KiB (two 4 KiB pages): 1024 entries * 8
// bytes plus the count/next bookkeeping.
const Capacity = 1024

// Bucket is a fixed-capacity array of WheelPrimes with a next-link to
// form singly-linked chains. It never allocates beyond its own storage;
// chains are spliced together and apart by moving the next pointer, the
// same intrusive-list approach kanzi uses for its bucket-array slabs.
type Bucket struct {
	count int
	next  *Bucket
	data  [Capacity]wheel.WheelPrime
}

// IsFull reports whether the bucket has no room for another WheelPrime.
func (b *Bucket) IsFull() bool {
	return b.count == Capacity
}

// Push appends w to the bucket. Panics if the bucket is full; callers
// must check IsFull first (EratBig always does, acquiring a fresh bucket
// from the pool before pushing into a full one).
func (b *Bucket) Push(w wheel.WheelPrime) {
	if b.count == Capacity {
		panic("bucket: push on a full bucket")
	}
	b.data[b.count] = w
	b.count++
}

// Count returns the number of WheelPrimes currently stored.
func (b *Bucket) Count() int {
	return b.count
}

// Next returns the next bucket in the chain, or nil at the tail.
func (b *Bucket) Next() *Bucket {
	return b.next
}

// SetNext relinks the bucket's successor. Used by BucketPool and EratBig
// to splice chains without touching bucket contents.
func (b *Bucket) SetNext(next *Bucket) {
	b.next = next
}

// At returns the WheelPrime stored at index i (0 <= i < Count()).
func (b *Bucket) At(i int) wheel.WheelPrime {
	return b.data[i]
}

// Clear resets the bucket to empty, ready for reuse. The next link is
// left untouched; BucketPool.Release manages chain membership.
func (b *Bucket) Clear() {
	b.count = 0
}

// Each calls fn for every WheelPrime currently stored, in insertion
// order.
func (b *Bucket) Each(fn func(wheel.WheelPrime)) {
	for i := 0; i < b.count; i++ {
		fn(b.data[i])
	}
}
