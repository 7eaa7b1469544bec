package arith

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func TestEvalPolynomialMatchesSerial(t *testing.T) {
	point := randomScalars(t, 1)[0]
	for _, n := range []int{0, 1, 2, 17, 1000, 4096} {
		poly := randomScalars(t, n)
		got := EvalPolynomial(poly, point)
		want := hornerEval(poly, point)
		if !got.Equal(&want) {
			t.Fatalf("n=%d: parallel evaluation differs from Horner", n)
		}
	}
}

func TestLagrangeInterpolate(t *testing.T) {
	points := randomScalars(t, 5)
	evals := randomScalars(t, 5)

	for m := 0; m <= 5; m++ {
		poly := LagrangeInterpolate(points[:m], evals[:m])
		if len(poly) != m {
			t.Fatalf("m=%d: polynomial has length %d", m, len(poly))
		}
		for i := 0; i < m; i++ {
			got := EvalPolynomial(poly, points[i])
			if !got.Equal(&evals[i]) {
				t.Fatalf("m=%d: poly(points[%d]) != evals[%d]", m, i, i)
			}
		}
	}
}

func TestKateDivision(t *testing.T) {
	// a = q * (x - b) so the division must recover q exactly
	q := randomScalars(t, 6)
	b := randomScalars(t, 1)[0]

	a := make([]fr.Element, len(q)+1)
	var negB, tmp fr.Element
	negB.Neg(&b)
	for i := range q {
		tmp.Mul(&q[i], &negB)
		a[i].Add(&a[i], &tmp)
		a[i+1].Add(&a[i+1], &q[i])
	}

	atB := EvalPolynomial(a, b)
	if !atB.IsZero() {
		t.Fatal("constructed dividend does not vanish at b")
	}

	got := KateDivision(a, b)
	if len(got) != len(q) {
		t.Fatalf("quotient has length %d, want %d", len(got), len(q))
	}
	for i := range q {
		if !got[i].Equal(&q[i]) {
			t.Fatalf("quotient coefficient %d differs", i)
		}
	}
}

func TestKateDivisionEmptyDividendPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("empty dividend did not panic")
		}
	}()
	var b fr.Element
	KateDivision(nil, b)
}

func TestEvaluateVanishingPolynomial(t *testing.T) {
	z := randomScalars(t, 1)[0]

	for _, n := range []int{0, 1, 3, 10, 100} {
		roots := randomScalars(t, n)
		got := EvaluateVanishingPolynomial(roots, z)

		var want, term fr.Element
		want.SetOne()
		for i := range roots {
			term.Sub(&z, &roots[i])
			want.Mul(&want, &term)
		}
		if !got.Equal(&want) {
			t.Fatalf("n=%d: vanishing evaluation differs from direct product", n)
		}
	}
}

func TestInnerProduct(t *testing.T) {
	a := randomScalars(t, 20)
	b := randomScalars(t, 20)

	got := InnerProduct(a, b)

	var want, term fr.Element
	for i := range a {
		term.Mul(&a[i], &b[i])
		want.Add(&want, &term)
	}
	if !got.Equal(&want) {
		t.Fatal("inner product differs from direct sum")
	}
}

func TestInnerProductLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("mismatched lengths did not panic")
		}
	}()
	InnerProduct(make([]fr.Element, 2), make([]fr.Element, 3))
}

func TestPowers(t *testing.T) {
	base := randomScalars(t, 1)[0]
	pows := Powers(base, 10)

	var want fr.Element
	for i := range pows {
		want.Exp(base, big.NewInt(int64(i)))
		if !pows[i].Equal(&want) {
			t.Fatalf("powers[%d] != base^%d", i, i)
		}
	}
}
