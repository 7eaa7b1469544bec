package arith

import (
	"testing"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

func TestGToLagrangeRoundTrip(t *testing.T) {
	const k = 3
	const n = 1 << k

	aff := randomPoints(t, n)
	orig := make([]curve.G1Jac, n)
	g := make([]curve.G1Jac, n)
	for i := range aff {
		orig[i].FromAffine(&aff[i])
		g[i].FromAffine(&aff[i])
	}
	lag := GToLagrange(g, k)
	if len(lag) != n {
		t.Fatalf("lagrange vector has length %d, want %d", len(lag), n)
	}

	// forward FFT over the same domain undoes the conversion
	back := make([]curve.G1Jac, n)
	for i := range lag {
		back[i].FromAffine(&lag[i])
	}
	omega, err := fft.Generator(uint64(n))
	if err != nil {
		t.Fatal(err)
	}
	FFTG1(back, omega, k)

	for i := range back {
		if !back[i].Equal(&orig[i]) {
			t.Fatalf("round trip differs at index %d", i)
		}
	}
}

func TestGToLagrangeSizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("wrong vector length did not panic")
		}
	}()
	GToLagrange(make([]curve.G1Jac, 3), 2)
}
