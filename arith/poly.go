package arith

import (
	"math/big"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// EvalPolynomial evaluates a coefficient-form polynomial at point using
// Horner's rule. Large polynomials are split into chunks evaluated in
// parallel; each chunk's local sum is weighted by point^offset before the
// chunk contributions are added, so the result matches the serial evaluation
// exactly.
func EvalPolynomial(poly []fr.Element, point fr.Element) fr.Element {
	n := len(poly)
	workers := runtime.GOMAXPROCS(0)
	if n*2 < workers {
		return hornerEval(poly, point)
	}

	chunkSize := (n + workers - 1) / workers
	numChunks := (n + chunkSize - 1) / chunkSize
	parts := make([]fr.Element, numChunks)
	Parallelize(parts, func(chunk []fr.Element, offset int) {
		var shift fr.Element
		for i := range chunk {
			start := (offset + i) * chunkSize
			end := min(start+chunkSize, n)
			shift.Exp(point, big.NewInt(int64(start)))
			chunk[i] = hornerEval(poly[start:end], point)
			chunk[i].Mul(&chunk[i], &shift)
		}
	})

	var acc fr.Element
	for i := range parts {
		acc.Add(&acc, &parts[i])
	}
	return acc
}

func hornerEval(poly []fr.Element, point fr.Element) fr.Element {
	var acc fr.Element
	for i := len(poly) - 1; i >= 0; i-- {
		acc.Mul(&acc, &point).Add(&acc, &poly[i])
	}
	return acc
}

// EvaluateVanishingPolynomial evaluates prod (z - root_i) over the given
// roots, in parallel chunks for large root sets. An empty root set yields
// one.
func EvaluateVanishingPolynomial(roots []fr.Element, z fr.Element) fr.Element {
	n := len(roots)
	workers := runtime.GOMAXPROCS(0)
	if n*2 < workers {
		return vanishingEval(roots, z)
	}

	chunkSize := (n + workers - 1) / workers
	numChunks := (n + chunkSize - 1) / chunkSize
	parts := make([]fr.Element, numChunks)
	Parallelize(parts, func(chunk []fr.Element, offset int) {
		for i := range chunk {
			start := (offset + i) * chunkSize
			end := min(start+chunkSize, n)
			chunk[i] = vanishingEval(roots[start:end], z)
		}
	})

	var acc fr.Element
	acc.SetOne()
	for i := range parts {
		acc.Mul(&acc, &parts[i])
	}
	return acc
}

func vanishingEval(roots []fr.Element, z fr.Element) fr.Element {
	var acc, t fr.Element
	acc.SetOne()
	for i := range roots {
		t.Sub(&z, &roots[i])
		acc.Mul(&acc, &t)
	}
	return acc
}

// InnerProduct computes sum a[i]*b[i]. Panics if the lengths differ.
func InnerProduct(a, b []fr.Element) fr.Element {
	if len(a) != len(b) {
		panic("inner_product: mismatched vector lengths")
	}
	var acc, t fr.Element
	for i := range a {
		t.Mul(&a[i], &b[i])
		acc.Add(&acc, &t)
	}
	return acc
}

// KateDivision divides the polynomial a by the linear factor (x - b),
// assuming a(b) == 0; the caller guarantees the zero remainder. The quotient
// has length len(a)-1. Each quotient coefficient is the current leading
// coefficient minus a carry, and the carry advances by multiplying the new
// coefficient by -b. Panics on an empty dividend.
func KateDivision(a []fr.Element, b fr.Element) []fr.Element {
	if len(a) == 0 {
		panic("kate_division: empty dividend")
	}
	var negB fr.Element
	negB.Neg(&b)

	q := make([]fr.Element, len(a)-1)
	var carry, lead fr.Element
	for i := len(a) - 1; i >= 1; i-- {
		lead.Sub(&a[i], &carry)
		q[i-1] = lead
		carry.Mul(&lead, &negB)
	}
	return q
}

// LagrangeInterpolate returns the coefficients of the unique polynomial of
// degree < len(points) that evaluates to evals[i] at points[i]. The points
// must be pairwise distinct; this is a documented precondition, not checked
// here. Denominator inverses are batched into a single field inversion.
func LagrangeInterpolate(points, evals []fr.Element) []fr.Element {
	if len(points) != len(evals) {
		panic("lagrange_interpolate: mismatched points and evals lengths")
	}
	n := len(points)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []fr.Element{evals[0]}
	}

	// denoms holds, flattened row by row, points[j]-points[k] for all k != j.
	denoms := make([]fr.Element, 0, n*(n-1))
	for j := range points {
		for k := range points {
			if k == j {
				continue
			}
			var d fr.Element
			d.Sub(&points[j], &points[k])
			denoms = append(denoms, d)
		}
	}
	denoms = fr.BatchInvert(denoms)

	final := make([]fr.Element, n)
	tmp := make([]fr.Element, 1, n)
	product := make([]fr.Element, 0, n)
	for j := range points {
		row := denoms[j*(n-1) : (j+1)*(n-1)]

		// Build the j-th Lagrange basis polynomial one linear factor at a
		// time: tmp *= (x - points[k]) / (points[j] - points[k]).
		tmp = tmp[:1]
		tmp[0].SetOne()
		ri := 0
		for k := range points {
			if k == j {
				continue
			}
			denom := row[ri]
			ri++

			var c fr.Element
			c.Mul(&denom, &points[k])
			c.Neg(&c)

			product = product[:len(tmp)+1]
			for i := range product {
				var lo, hi fr.Element
				if i < len(tmp) {
					lo.Mul(&tmp[i], &c)
				}
				if i > 0 {
					hi.Mul(&tmp[i-1], &denom)
				}
				product[i].Add(&lo, &hi)
			}
			tmp, product = product, tmp
		}

		var t fr.Element
		for i := range final {
			t.Mul(&tmp[i], &evals[j])
			final[i].Add(&final[i], &t)
		}
	}
	return final
}

// Powers returns the first n powers of base, starting at base^0 = 1.
func Powers(base fr.Element, n int) []fr.Element {
	out := make([]fr.Element, n)
	if n == 0 {
		return out
	}
	out[0].SetOne()
	for i := 1; i < n; i++ {
		out[i].Mul(&out[i-1], &base)
	}
	return out
}
