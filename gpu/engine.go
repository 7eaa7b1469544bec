// Package gpu exposes the accelerator capability for MSM and FFT. The icicle
// backend is compiled in with the "icicle" build tag; without it NewEngine
// reports ErrNoDevice and every operation stays on the CPU path.
package gpu

import (
	"errors"
	"fmt"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

var (
	// ErrNoDevice means no accelerator backend is compiled in, or no
	// suitable device is available at runtime.
	ErrNoDevice = errors.New("gpu: no accelerator device available")

	// ErrKernelUninitialized means device or NTT-domain setup failed before
	// the operation could run.
	ErrKernelUninitialized = errors.New("gpu: kernel not initialized")
)

// DeviceError wraps a failure reported by the accelerator runtime while an
// operation was in flight.
type DeviceError struct {
	Op     string
	Status string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("gpu: %s: %s", e.Op, e.Status)
}

// Engine runs MSM and radix-2 FFT on an accelerator device. Results are
// exactly equal to the CPU path for identical inputs; the choice of engine
// only affects latency. An Engine holds device state and is an exclusive-use
// resource: it is not safe for concurrent calls. Close releases device
// resources.
type Engine interface {
	// MSM computes sum coeffs[i]*bases[i] on the device. Panics if the
	// lengths differ; device faults are returned as *DeviceError.
	MSM(coeffs []fr.Element, bases []curve.G1Affine) (curve.G1Jac, error)

	// FFT transforms a in place given omega of order exactly 2^logN, with
	// the same contract as the CPU transform (no 1/n normalization).
	FFT(a []fr.Element, omega fr.Element, logN uint32) error

	Close() error
}
