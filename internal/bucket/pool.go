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

import "fmt"

// sizeofBucket approximates sizeof(Bucket) in bytes: the Capacity array
// of 8-byte WheelPrimes plus the count/next fields. Used only to size
// slabs, not for any on-disk or wire layout.
const sizeofBucket = Capacity*8 + 16

// MemoryPerAlloc is the default slab size in bytes (8 MiB). A slab holds
// MemoryPerAlloc/sizeofBucket buckets.
const MemoryPerAlloc = 8 << 20

// Pool is a slab allocator for Buckets. It owns every Bucket it has ever
// produced for the lifetime of the owning EratBig instance: Acquire pulls
// from a free list (stock), refilling the stock with a freshly allocated
// slab when it runs dry, and Release returns a whole chain to stock in
// O(chain length).
//
// Pool is not safe for concurrent use; EratBig (and therefore Pool) is
// single-threaded by design: parallelism comes from running one
// independent EratBig (and Pool) per goroutine, never from sharing one.
type Pool struct {
	stock        *Bucket
	slabs        [][]Bucket
	memPerAlloc  int
	totalBuckets int
}

// NewPool creates a Pool that allocates slabs of memPerAlloc bytes at a
// time. A memPerAlloc <= 0 selects MemoryPerAlloc.
func NewPool(memPerAlloc int) *Pool {
	if memPerAlloc <= 0 {
		memPerAlloc = MemoryPerAlloc
	}
	return &Pool{memPerAlloc: memPerAlloc}
}

// Acquire returns a zero-count Bucket with no successor, allocating a new
// slab (recorded for the pool's lifetime) if the stock is empty.
func (p *Pool) Acquire() *Bucket {
	if p.stock == nil {
		p.grow()
	}
	b := p.stock
	p.stock = b.next
	b.next = nil
	b.count = 0
	return b
}

// grow allocates one more slab of Buckets, pushes every one of them onto
// stock (Acquire then pops one), and keeps the slab's base slice alive in p.slabs for the life of
// the pool (Buckets are never individually freed, only ever recycled).
func (p *Pool) grow() {
	n := p.memPerAlloc / sizeofBucket
	if n < 1 {
		n = 1
	}

	slab := make([]Bucket, n)
	p.slabs = append(p.slabs, slab)
	p.totalBuckets += n

	for i := range slab {
		slab[i].next = p.stock
		p.stock = &slab[i]
	}
}

// Release detaches the chain starting at head (length count), clears
// every bucket in it, and concatenates the cleared chain onto stock. It
// walks the chain once to clear counts and find the tail, then splices in
// O(1); overall cost is O(chain length).
func (p *Pool) Release(head *Bucket) {
	if head == nil {
		return
	}

	tail := head
	tail.count = 0

	for tail.next != nil {
		tail = tail.next
		tail.count = 0
	}

	tail.next = p.stock
	p.stock = head
}

// TotalBuckets returns the number of Buckets ever allocated across every
// slab, for accounting tests and diagnostics.
func (p *Pool) TotalBuckets() int {
	return p.totalBuckets
}

// StockLen walks the free list and counts its buckets. O(n); intended
// for tests and diagnostics, never the hot path.
func (p *Pool) StockLen() int {
	n := 0
	for b := p.stock; b != nil; b = b.next {
		n++
	}
	return n
}

// String implements fmt.Stringer for diagnostics.
func (p *Pool) String() string {
	return fmt.Sprintf("bucket.Pool{slabs=%d, totalBuckets=%d, stock=%d}",
		len(p.slabs), p.totalBuckets, p.StockLen())
}
