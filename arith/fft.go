package arith

import (
	"math/bits"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// FFT performs an in-place radix-2 Cooley-Tukey transform of a, where
// len(a) == 2^logN and omega has multiplicative order exactly 2^logN.
// Interpreted as polynomial coefficients, a becomes the evaluations of that
// polynomial at the successive powers of omega. The transform is inverted by
// calling FFT again with omega^{-1} and dividing every element by 2^logN;
// this function never normalizes. Panics if len(a) != 2^logN.
func FFT(a []fr.Element, omega fr.Element, logN uint32) {
	FFTWithWorkers(a, omega, logN, runtime.GOMAXPROCS(0))
}

// FFTWithWorkers is FFT with an explicit worker count.
func FFTWithWorkers(a []fr.Element, omega fr.Element, logN uint32, workers int) {
	n := len(a)
	if n != 1<<logN {
		panic("fft: len(a) is not 2^logN")
	}
	if workers < 1 {
		workers = 1
	}

	bitReverseFr(a, logN)

	twiddles := Powers(omega, n/2)

	logWorkers := log2Floor(workers)
	if logN <= uint32(logWorkers) {
		// Flat iterative passes; chunk size doubles each round and the
		// twiddle stride halves. Blocks within a round never overlap, so
		// each is handed to the splitter as an independent unit.
		chunk := 2
		twiddleChunk := n / 2
		for r := uint32(0); r < logN; r++ {
			starts := blockStarts(n, chunk)
			parallelizeWith(starts, workers, func(blocks []int, _ int) {
				for _, start := range blocks {
					butterflyBlockFr(a[start:start+chunk], twiddleChunk, twiddles)
				}
			})
			chunk *= 2
			twiddleChunk /= 2
		}
	} else {
		recursiveButterflyFr(a, 1, twiddles, logWorkers, nil)
	}
}

func bitReverseFr(a []fr.Element, logN uint32) {
	n := len(a)
	for k := 0; k < n; k++ {
		rk := int(bits.Reverse64(uint64(k)) >> (64 - logN))
		if k < rk {
			a[k], a[rk] = a[rk], a[k]
		}
	}
}

func blockStarts(n, chunk int) []int {
	starts := make([]int, 0, n/chunk)
	for s := 0; s < n; s += chunk {
		starts = append(starts, s)
	}
	return starts
}

// butterflyBlockFr combines the two halves of one block with
// (a, b) -> (a + b*w, a - b*w); the first pair has twiddle one.
func butterflyBlockFr(block []fr.Element, twiddleChunk int, twiddles []fr.Element) {
	half := len(block) / 2
	left, right := block[:half], block[half:]

	t := right[0]
	right[0].Sub(&left[0], &t)
	left[0].Add(&left[0], &t)

	for i := 1; i < half; i++ {
		t.Mul(&right[i], &twiddles[i*twiddleChunk])
		right[i].Sub(&left[i], &t)
		left[i].Add(&left[i], &t)
	}
}

// recursiveButterflyFr transforms a in place, forking the right half onto its
// own goroutine while splits remain, so the fan-out is bounded by the worker
// count. The twiddle stride doubles at each level of the recursion.
func recursiveButterflyFr(a []fr.Element, twiddleChunk int, twiddles []fr.Element, splits int, done chan struct{}) {
	if done != nil {
		defer close(done)
	}
	n := len(a)
	if n == 2 {
		t := a[1]
		a[1].Sub(&a[0], &t)
		a[0].Add(&a[0], &t)
		return
	}

	half := n / 2
	if splits > 0 {
		childDone := make(chan struct{})
		go recursiveButterflyFr(a[half:], twiddleChunk*2, twiddles, splits-1, childDone)
		recursiveButterflyFr(a[:half], twiddleChunk*2, twiddles, splits-1, nil)
		<-childDone
	} else {
		recursiveButterflyFr(a[:half], twiddleChunk*2, twiddles, 0, nil)
		recursiveButterflyFr(a[half:], twiddleChunk*2, twiddles, 0, nil)
	}

	butterflyBlockFr(a, twiddleChunk, twiddles)
}
