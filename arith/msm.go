package arith

import (
	"encoding/binary"
	"math"
	"runtime"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// scalarBits is the width of the little-endian scalar representation used for
// window extraction. Derived from the representation so the window count
// follows the field instead of assuming 256 bits.
const scalarBits = fr.Bytes * 8

// MSM computes sum coeffs[i]*bases[i] with the windowed bucket method,
// splitting the input across workers when beneficial. The result is identical
// for any worker count. Panics if the slice lengths differ.
func MSM(coeffs []fr.Element, bases []curve.G1Affine) curve.G1Jac {
	return MSMWithWorkers(coeffs, bases, runtime.GOMAXPROCS(0))
}

// MSMWithWorkers is MSM with an explicit worker count.
func MSMWithWorkers(coeffs []fr.Element, bases []curve.G1Affine, workers int) curve.G1Jac {
	if len(coeffs) != len(bases) {
		panic("msm: mismatched coeffs and bases lengths")
	}
	var acc curve.G1Jac
	n := len(coeffs)
	if n == 0 {
		return acc
	}
	if workers < 1 {
		workers = 1
	}

	if n <= workers {
		msmSerial(coeffs, bases, &acc)
		return acc
	}

	numChunks := workers
	partials := make([]curve.G1Jac, numChunks)
	parallelizeWith(partials, workers, func(chunk []curve.G1Jac, offset int) {
		for i := range chunk {
			start, end := chunkBounds(n, numChunks, offset+i)
			msmSerial(coeffs[start:end], bases[start:end], &chunk[i])
		}
	})
	for i := range partials {
		acc.AddAssign(&partials[i])
	}
	return acc
}

// MSMSmall is the non-windowed reference: plain double-and-add over explicit
// bit positions, with doublings shared across points. It is value-equivalent
// to MSM for all inputs and cheaper for very small ones. Panics if the slice
// lengths differ.
func MSMSmall(coeffs []fr.Element, bases []curve.G1Affine) curve.G1Jac {
	if len(coeffs) != len(bases) {
		panic("msm: mismatched coeffs and bases lengths")
	}
	reprs := scalarReprs(coeffs)

	var acc curve.G1Jac
	for byteIdx := fr.Bytes - 1; byteIdx >= 0; byteIdx-- {
		for bitIdx := 7; bitIdx >= 0; bitIdx-- {
			acc.DoubleAssign()
			for i := range reprs {
				if (reprs[i][byteIdx]>>uint(bitIdx))&1 != 0 {
					acc.AddMixed(&bases[i])
				}
			}
		}
	}
	return acc
}

// msmSerial reduces one chunk with the windowed bucket method, accumulating
// into acc. Windows are processed most-significant first; each pass shifts
// the accumulator up by c doublings, fills 2^c-1 buckets from the window
// digits, then folds the buckets in with a running-sum sweep.
func msmSerial(coeffs []fr.Element, bases []curve.G1Affine, acc *curve.G1Jac) {
	reprs := scalarReprs(coeffs)

	c := windowSize(len(bases))
	segments := scalarBits/c + 1

	for segment := segments - 1; segment >= 0; segment-- {
		for i := 0; i < c; i++ {
			acc.DoubleAssign()
		}

		buckets := make([]bucket, (1<<c)-1)
		for i := range reprs {
			if d := digitAt(&reprs[i], segment, c); d != 0 {
				buckets[d-1].addAffine(&bases[i])
			}
		}

		// Summation by parts:
		// 3a + 2b + 1c = a + (a + b) + (a + b + c)
		var runningSum curve.G1Jac
		for i := len(buckets) - 1; i >= 0; i-- {
			buckets[i].addInto(&runningSum)
			acc.AddAssign(&runningSum)
		}
	}
}

// windowSize picks the bucket window width in bits for n points.
func windowSize(n int) int {
	switch {
	case n < 4:
		return 1
	case n < 32:
		return 3
	default:
		return int(math.Ceil(math.Log(float64(n))))
	}
}

func scalarReprs(coeffs []fr.Element) [][fr.Bytes]byte {
	reprs := make([][fr.Bytes]byte, len(coeffs))
	for i := range coeffs {
		fr.LittleEndian.PutElement(&reprs[i], coeffs[i])
	}
	return reprs
}

// digitAt reads the c-bit digit at window index segment from a little-endian
// scalar representation. Bits past the end of the representation read as
// zero.
func digitAt(repr *[fr.Bytes]byte, segment, c int) int {
	skipBits := segment * c
	skipBytes := skipBits / 8
	if skipBytes >= fr.Bytes {
		return 0
	}

	var buf [8]byte
	copy(buf[:], repr[skipBytes:])
	v := binary.LittleEndian.Uint64(buf[:])
	v >>= uint(skipBits - skipBytes*8)
	return int(v & (1<<uint(c) - 1))
}

type bucketState uint8

const (
	bucketEmpty bucketState = iota
	bucketAffine
	bucketJac
)

// bucket is the tri-state per-window accumulator: empty, a single affine
// point, or a running Jacobian sum. Buckets live only for one window pass and
// are never shared across goroutines.
type bucket struct {
	state bucketState
	aff   curve.G1Affine
	jac   curve.G1Jac
}

func (b *bucket) addAffine(p *curve.G1Affine) {
	switch b.state {
	case bucketEmpty:
		b.aff = *p
		b.state = bucketAffine
	case bucketAffine:
		b.jac.FromAffine(&b.aff)
		b.jac.AddMixed(p)
		b.state = bucketJac
	default:
		b.jac.AddMixed(p)
	}
}

func (b *bucket) addInto(sum *curve.G1Jac) {
	switch b.state {
	case bucketAffine:
		sum.AddMixed(&b.aff)
	case bucketJac:
		sum.AddAssign(&b.jac)
	}
}
