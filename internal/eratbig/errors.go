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

package eratbig

import "errors"

// ErrPrecondition is returned when a construction or AddPrime argument
// violates one of EratBig's preconditions: a non-power-of-two segment
// size out of [2^14, 2^23], or a sieving prime outside
// (minSievingPrime, maxSievingPrime].
var ErrPrecondition = errors.New("eratbig: precondition violation")

// ErrOutOfMemory is the error kind for a bucket pool that cannot grow.
// Nothing in this package returns it: bucket.Pool allocates
// slabs with make and does not recover from a failed allocation, which
// aborts the process instead.
var ErrOutOfMemory = errors.New("eratbig: out of memory")
