package arith

import (
	"math/big"
	"testing"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

func domainGenerator(t *testing.T, n int) fr.Element {
	t.Helper()
	omega, err := fft.Generator(uint64(n))
	if err != nil {
		t.Fatalf("fft.Generator(%d): %v", n, err)
	}
	return omega
}

func TestFFTRoundTrip(t *testing.T) {
	// forward, inverse, then scale by 1/n must reproduce the input exactly
	for _, logN := range []uint32{1, 2, 5, 10} {
		n := 1 << logN
		omega := domainGenerator(t, n)
		var omegaInv fr.Element
		omegaInv.Inverse(&omega)

		orig := randomScalars(t, n)
		a := make([]fr.Element, n)
		copy(a, orig)

		FFT(a, omega, logN)
		FFT(a, omegaInv, logN)

		var nInv fr.Element
		nInv.SetUint64(uint64(n))
		nInv.Inverse(&nInv)
		for i := range a {
			a[i].Mul(&a[i], &nInv)
			if !a[i].Equal(&orig[i]) {
				t.Fatalf("logN=%d: index %d does not round-trip", logN, i)
			}
		}
	}
}

func TestFFTMatchesNaiveEvaluation(t *testing.T) {
	const logN, n = 3, 8
	omega := domainGenerator(t, n)

	poly := randomScalars(t, n)
	a := make([]fr.Element, n)
	copy(a, poly)
	FFT(a, omega, logN)

	var x fr.Element
	x.SetOne()
	for i := 0; i < n; i++ {
		want := hornerEval(poly, x)
		if !a[i].Equal(&want) {
			t.Fatalf("fft[%d] != poly(omega^%d)", i, i)
		}
		x.Mul(&x, &omega)
	}
}

func TestFFTPathEquivalence(t *testing.T) {
	// workers=1 forces the serial recursive path; a large worker count
	// forces the flat iterative path for the same logN
	const logN, n = 4, 16
	omega := domainGenerator(t, n)

	orig := randomScalars(t, n)
	recursive := make([]fr.Element, n)
	iterative := make([]fr.Element, n)
	copy(recursive, orig)
	copy(iterative, orig)

	FFTWithWorkers(recursive, omega, logN, 1)
	FFTWithWorkers(iterative, omega, logN, 64)

	for i := range orig {
		if !recursive[i].Equal(&iterative[i]) {
			t.Fatalf("index %d: recursive and iterative paths disagree", i)
		}
	}
}

func TestFFTWorkerInvariance(t *testing.T) {
	const logN, n = 6, 64
	omega := domainGenerator(t, n)
	orig := randomScalars(t, n)

	want := make([]fr.Element, n)
	copy(want, orig)
	FFTWithWorkers(want, omega, logN, 1)

	for _, workers := range []int{2, 4, 8, 128} {
		got := make([]fr.Element, n)
		copy(got, orig)
		FFTWithWorkers(got, omega, logN, workers)
		for i := range got {
			if !got[i].Equal(&want[i]) {
				t.Fatalf("workers=%d: index %d differs", workers, i)
			}
		}
	}
}

func TestFFTSizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("bad length did not panic")
		}
	}()
	omega := domainGenerator(t, 8)
	FFT(make([]fr.Element, 7), omega, 3)
}

func TestFFTG1RoundTrip(t *testing.T) {
	const logN, n = 3, 8
	omega := domainGenerator(t, n)
	var omegaInv fr.Element
	omegaInv.Inverse(&omega)

	pts := randomPoints(t, n)
	orig := make([]curve.G1Jac, n)
	a := make([]curve.G1Jac, n)
	for i := range pts {
		orig[i].FromAffine(&pts[i])
		a[i].FromAffine(&pts[i])
	}

	FFTG1(a, omega, logN)
	FFTG1(a, omegaInv, logN)

	var nInv fr.Element
	nInv.SetUint64(n)
	nInv.Inverse(&nInv)
	var nInvBig big.Int
	nInv.BigInt(&nInvBig)
	for i := range a {
		a[i].ScalarMultiplication(&a[i], &nInvBig)
		if !a[i].Equal(&orig[i]) {
			t.Fatalf("index %d does not round-trip", i)
		}
	}
}

func TestFFTG1MatchesScalarTransform(t *testing.T) {
	// transforming [c_i]G must equal [f_i]G where f = FFT(c)
	const logN, n = 3, 8
	omega := domainGenerator(t, n)
	_, _, g1, _ := curve.Generators()

	coeffs := randomScalars(t, n)
	pts := make([]curve.G1Jac, n)
	var b big.Int
	for i := range pts {
		coeffs[i].BigInt(&b)
		var aff curve.G1Affine
		aff.ScalarMultiplication(&g1, &b)
		pts[i].FromAffine(&aff)
	}

	FFTG1(pts, omega, logN)
	FFT(coeffs, omega, logN)

	var g1Jac curve.G1Jac
	g1Jac.FromAffine(&g1)
	for i := range pts {
		var want curve.G1Jac
		coeffs[i].BigInt(&b)
		want.ScalarMultiplication(&g1Jac, &b)
		if !pts[i].Equal(&want) {
			t.Fatalf("index %d: group transform disagrees with scalar transform", i)
		}
	}
}
