package arith

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Parallelize splits v into near-equal contiguous chunks, one per worker, and
// runs f over each chunk on its own goroutine. f receives the chunk and its
// starting offset in v; chunks never overlap, so f may mutate its chunk
// without synchronization. The call blocks until every chunk is done.
//
// Chunk sizes differ by at most one. With fewer elements than workers each
// element becomes its own chunk. A panic inside f fails the whole call: it is
// captured on the worker and re-raised on the calling goroutine, so a failing
// chunk can never yield a partial result.
func Parallelize[T any](v []T, f func(chunk []T, offset int)) {
	parallelizeWith(v, runtime.GOMAXPROCS(0), f)
}

func parallelizeWith[T any](v []T, workers int, f func(chunk []T, offset int)) {
	n := len(v)
	if n == 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}

	// The first n%workers chunks carry one extra element, so sizes stay
	// within one of each other instead of leaving a long remainder chunk.
	base := n / workers
	cutoff := n % workers
	split := cutoff * (base + 1)

	var g errgroup.Group
	spawn := func(chunk []T, offset int) {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("parallel worker at offset %d: %v", offset, r)
				}
			}()
			f(chunk, offset)
			return nil
		})
	}

	for i := 0; i < cutoff; i++ {
		offset := i * (base + 1)
		spawn(v[offset:offset+base+1], offset)
	}
	if base > 0 {
		for offset := split; offset < n; offset += base {
			spawn(v[offset:offset+base], offset)
		}
	}

	if err := g.Wait(); err != nil {
		panic(err)
	}
}

// chunkBounds returns the half-open range covered by chunk idx when n
// elements are divided into numChunks balanced parts, matching the split
// performed by Parallelize.
func chunkBounds(n, numChunks, idx int) (start, end int) {
	base := n / numChunks
	cutoff := n % numChunks
	start = idx * base
	if idx < cutoff {
		start += idx
	} else {
		start += cutoff
	}
	end = start + base
	if idx < cutoff {
		end++
	}
	return start, end
}

func log2Floor(n int) int {
	if n < 1 {
		return 0
	}
	pow := 0
	for (1 << (pow + 1)) <= n {
		pow++
	}
	return pow
}
