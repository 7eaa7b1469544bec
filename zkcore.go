// Package zkcore is the arithmetic core of a polynomial-commitment proof
// system: multi-scalar multiplication and radix-2 FFT over BLS12-381, plus
// the polynomial utilities a prover invokes around them. Each entry point
// selects a CPU or accelerator strategy per call; both strategies produce
// bit-identical results.
//
// The CPU implementations live in the arith subpackage and can be used
// directly; these wrappers add strategy dispatch, telemetry, and logging.
package zkcore

import (
	"time"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/logger"

	"github.com/eon-protocol/zkcore/arith"
	"github.com/eon-protocol/zkcore/gpu"
	"github.com/eon-protocol/zkcore/telemetry"
)

// MSM computes sum coeffs[i]*bases[i]. The CPU path is the parallel windowed
// bucket method; WithAccelerator or WithEngine delegate the identical
// operation to a device. Panics if the slice lengths differ.
func MSM(coeffs []fr.Element, bases []curve.G1Affine, opts ...Option) (curve.G1Jac, error) {
	cfg := newConfig(opts...)
	start := time.Now()

	if cfg.useAccelerator() {
		eng, owned, initTime, err := cfg.acquireEngine()
		if err != nil {
			return curve.G1Jac{}, err
		}
		if owned {
			defer eng.Close()
		}
		log := logger.Logger()
		log.Debug().Str("device", cfg.deviceName()).Int("elements", len(bases)).Msg("msm dispatch")

		opStart := time.Now()
		res, err := eng.MSM(coeffs, bases)
		if err != nil {
			return curve.G1Jac{}, err
		}
		cfg.stats.Record(telemetry.Record{
			Op:       "msm",
			Device:   cfg.deviceName(),
			Workers:  1,
			Elements: len(bases),
			Init:     initTime,
			Duration: time.Since(opStart),
			Total:    time.Since(start),
		})
		return res, nil
	}

	workers := cfg.workerCount()
	res := arith.MSMWithWorkers(coeffs, bases, workers)
	cfg.stats.Record(telemetry.Record{
		Op:       "msm",
		Device:   "cpu",
		Workers:  workers,
		Elements: len(bases),
		Duration: time.Since(start),
		Total:    time.Since(start),
	})
	return res, nil
}

// MSMSmall is the non-windowed double-and-add reference for very small
// inputs, value-equivalent to MSM. It always runs on the CPU.
func MSMSmall(coeffs []fr.Element, bases []curve.G1Affine) curve.G1Jac {
	return arith.MSMSmall(coeffs, bases)
}

// FFT transforms a in place, where len(a) == 2^logN and omega has
// multiplicative order exactly 2^logN. The inverse transform is the same
// call with omega^{-1}; the caller divides every element by 2^logN
// afterwards. Panics if len(a) != 2^logN.
func FFT(a []fr.Element, omega fr.Element, logN uint32, opts ...Option) error {
	cfg := newConfig(opts...)
	start := time.Now()

	if cfg.useAccelerator() {
		eng, owned, initTime, err := cfg.acquireEngine()
		if err != nil {
			return err
		}
		if owned {
			defer eng.Close()
		}
		log := logger.Logger()
		log.Debug().Str("device", cfg.deviceName()).Uint32("degree", logN).Msg("fft dispatch")

		opStart := time.Now()
		if err := eng.FFT(a, omega, logN); err != nil {
			return err
		}
		cfg.stats.Record(telemetry.Record{
			Op:       "fft",
			Device:   cfg.deviceName(),
			Workers:  1,
			Elements: len(a),
			Degree:   logN,
			Init:     initTime,
			Duration: time.Since(opStart),
			Total:    time.Since(start),
		})
		return nil
	}

	workers := cfg.workerCount()
	arith.FFTWithWorkers(a, omega, logN, workers)
	cfg.stats.Record(telemetry.Record{
		Op:       "fft",
		Device:   "cpu",
		Workers:  workers,
		Elements: len(a),
		Degree:   logN,
		Duration: time.Since(start),
		Total:    time.Since(start),
	})
	return nil
}

// FFTG1 is the same transform over G1 points in Jacobian form. No
// accelerator exposes a group-element transform, so requesting one fails
// with gpu.ErrNoDevice rather than silently running on the CPU.
func FFTG1(a []curve.G1Jac, omega fr.Element, logN uint32, opts ...Option) error {
	cfg := newConfig(opts...)
	if cfg.useAccelerator() {
		return gpu.ErrNoDevice
	}

	start := time.Now()
	workers := cfg.workerCount()
	arith.FFTG1WithWorkers(a, omega, logN, workers)
	cfg.stats.Record(telemetry.Record{
		Op:       "fft_g1",
		Device:   "cpu",
		Workers:  workers,
		Elements: len(a),
		Degree:   logN,
		Duration: time.Since(start),
		Total:    time.Since(start),
	})
	return nil
}

// GToLagrange converts a coefficient-form commitment key of 2^k group
// elements to Lagrange basis. g is consumed as scratch space. Runs on the
// CPU; see FFTG1 for why no accelerator path exists.
func GToLagrange(g []curve.G1Jac, k uint32, opts ...Option) ([]curve.G1Affine, error) {
	cfg := newConfig(opts...)
	if cfg.useAccelerator() {
		return nil, gpu.ErrNoDevice
	}

	start := time.Now()
	workers := cfg.workerCount()
	res := arith.GToLagrangeWithWorkers(g, k, workers)
	cfg.stats.Record(telemetry.Record{
		Op:       "g_to_lagrange",
		Device:   "cpu",
		Workers:  workers,
		Elements: len(res),
		Degree:   k,
		Duration: time.Since(start),
		Total:    time.Since(start),
	})
	return res, nil
}
