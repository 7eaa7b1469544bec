package arith

import (
	"math/big"
	"math/bits"
	"runtime"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// FFTG1 is FFT over G1 points in Jacobian form: the same radix-2 transform
// with the twiddle action realized as scalar multiplication. Used to move
// commitment key vectors between coefficient and evaluation basis. Panics if
// len(a) != 2^logN.
func FFTG1(a []curve.G1Jac, omega fr.Element, logN uint32) {
	FFTG1WithWorkers(a, omega, logN, runtime.GOMAXPROCS(0))
}

// FFTG1WithWorkers is FFTG1 with an explicit worker count.
func FFTG1WithWorkers(a []curve.G1Jac, omega fr.Element, logN uint32, workers int) {
	n := len(a)
	if n != 1<<logN {
		panic("fft: len(a) is not 2^logN")
	}
	if workers < 1 {
		workers = 1
	}

	for k := 0; k < n; k++ {
		rk := int(bits.Reverse64(uint64(k)) >> (64 - logN))
		if k < rk {
			a[k], a[rk] = a[rk], a[k]
		}
	}

	// ScalarMultiplication wants the canonical integer, so the twiddle table
	// is precomputed as big.Ints once per call.
	pows := Powers(omega, n/2)
	twiddles := make([]big.Int, len(pows))
	for i := range pows {
		pows[i].BigInt(&twiddles[i])
	}

	logWorkers := log2Floor(workers)
	if logN <= uint32(logWorkers) {
		chunk := 2
		twiddleChunk := n / 2
		for r := uint32(0); r < logN; r++ {
			starts := blockStarts(n, chunk)
			parallelizeWith(starts, workers, func(blocks []int, _ int) {
				for _, start := range blocks {
					butterflyBlockG1(a[start:start+chunk], twiddleChunk, twiddles)
				}
			})
			chunk *= 2
			twiddleChunk /= 2
		}
	} else {
		recursiveButterflyG1(a, 1, twiddles, logWorkers, nil)
	}
}

func butterflyBlockG1(block []curve.G1Jac, twiddleChunk int, twiddles []big.Int) {
	half := len(block) / 2
	left, right := block[:half], block[half:]

	t := right[0]
	right[0].Set(&left[0])
	right[0].SubAssign(&t)
	left[0].AddAssign(&t)

	var tp curve.G1Jac
	for i := 1; i < half; i++ {
		tp.ScalarMultiplication(&right[i], &twiddles[i*twiddleChunk])
		right[i].Set(&left[i])
		right[i].SubAssign(&tp)
		left[i].AddAssign(&tp)
	}
}

func recursiveButterflyG1(a []curve.G1Jac, twiddleChunk int, twiddles []big.Int, splits int, done chan struct{}) {
	if done != nil {
		defer close(done)
	}
	n := len(a)
	if n == 2 {
		t := a[1]
		a[1].Set(&a[0])
		a[1].SubAssign(&t)
		a[0].AddAssign(&t)
		return
	}

	half := n / 2
	if splits > 0 {
		childDone := make(chan struct{})
		go recursiveButterflyG1(a[half:], twiddleChunk*2, twiddles, splits-1, childDone)
		recursiveButterflyG1(a[:half], twiddleChunk*2, twiddles, splits-1, nil)
		<-childDone
	} else {
		recursiveButterflyG1(a[:half], twiddleChunk*2, twiddles, 0, nil)
		recursiveButterflyG1(a[half:], twiddleChunk*2, twiddles, 0, nil)
	}

	butterflyBlockG1(a, twiddleChunk, twiddles)
}
