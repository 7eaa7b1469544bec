package arith

import (
	"math/big"
	"runtime"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

// GToLagrange converts a coefficient-form vector of 2^k group elements to
// Lagrange (evaluation) basis: inverse FFT over the canonical 2^k domain,
// scale by 2^-k, then batch-normalize to affine. g is consumed as scratch
// space. Re-applying the forward FFT over the same domain recovers the
// original vector. Panics if len(g) != 2^k.
func GToLagrange(g []curve.G1Jac, k uint32) []curve.G1Affine {
	return GToLagrangeWithWorkers(g, k, runtime.GOMAXPROCS(0))
}

// GToLagrangeWithWorkers is GToLagrange with an explicit worker count.
func GToLagrangeWithWorkers(g []curve.G1Jac, k uint32, workers int) []curve.G1Affine {
	n := 1 << k
	if len(g) != n {
		panic("g_to_lagrange: len(g) is not 2^k")
	}

	omega, err := fft.Generator(uint64(n))
	if err != nil {
		panic(err)
	}
	var omegaInv fr.Element
	omegaInv.Inverse(&omega)

	FFTG1WithWorkers(g, omegaInv, k, workers)

	var nInv fr.Element
	nInv.SetUint64(uint64(n))
	nInv.Inverse(&nInv)
	var nInvBig big.Int
	nInv.BigInt(&nInvBig)
	parallelizeWith(g, workers, func(chunk []curve.G1Jac, _ int) {
		for i := range chunk {
			chunk[i].ScalarMultiplication(&chunk[i], &nInvBig)
		}
	})

	return curve.BatchJacobianToAffineG1(g)
}
