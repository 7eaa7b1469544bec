// arithbench sweeps MSM and FFT over power-of-two sizes and appends one CSV
// row per run, suitable for plotting with tools/plotstats. Inputs are derived
// deterministically from the seed so runs on different machines and devices
// are comparable.
package main

import (
	"encoding/binary"
	"flag"
	"log"
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/crypto/blake2b"

	"github.com/eon-protocol/zkcore"
	"github.com/eon-protocol/zkcore/telemetry"
)

func deriveScalars(seed string, n int) []fr.Element {
	out := make([]fr.Element, n)
	msg := make([]byte, len(seed)+8)
	copy(msg, seed)
	for i := range out {
		binary.LittleEndian.PutUint64(msg[len(seed):], uint64(i))
		h := blake2b.Sum256(msg)
		out[i].SetBytes(h[:])
	}
	return out
}

func deriveBases(seed string, n int) []curve.G1Affine {
	_, _, g1, _ := curve.Generators()
	scalars := deriveScalars(seed+"/bases", n)
	jac := make([]curve.G1Jac, n)
	var b big.Int
	var g1Jac curve.G1Jac
	g1Jac.FromAffine(&g1)
	for i := range jac {
		scalars[i].BigInt(&b)
		jac[i].ScalarMultiplication(&g1Jac, &b)
	}
	return curve.BatchJacobianToAffineG1(jac)
}

func runMSM(k int, seed string, opts []zkcore.Option) error {
	n := 1 << k
	coeffs := deriveScalars(seed+"/coeffs", n)
	bases := deriveBases(seed, n)
	_, err := zkcore.MSM(coeffs, bases, opts...)
	return err
}

func runFFT(k int, seed string, opts []zkcore.Option) error {
	n := 1 << k
	a := deriveScalars(seed+"/evals", n)
	omega, err := fft.Generator(uint64(n))
	if err != nil {
		return err
	}
	return zkcore.FFT(a, omega, uint32(k), opts...)
}

func main() {
	op := flag.String("op", "msm", "operation to sweep: msm or fft")
	minK := flag.Int("min", 10, "smallest log2 input size")
	maxK := flag.Int("max", 18, "largest log2 input size")
	csvPath := flag.String("csv", "arith_stats.csv", "CSV file to append stats to")
	accelerator := flag.String("accelerator", "", "accelerator name, empty for CPU")
	seed := flag.String("seed", "arithbench", "seed string for deterministic inputs")
	flag.Parse()

	if *minK < 1 || *maxK < *minK {
		log.Fatalln("invalid size range:", *minK, "..", *maxK)
	}

	sink, err := telemetry.NewCSVSink(*csvPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer sink.Close()

	opts := []zkcore.Option{zkcore.WithStats(sink)}
	if *accelerator != "" {
		opts = append(opts, zkcore.WithAccelerator(*accelerator))
	}

	bar := progressbar.Default(int64(*maxK-*minK+1), *op+" sweep")
	for k := *minK; k <= *maxK; k++ {
		switch *op {
		case "msm":
			err = runMSM(k, *seed, opts)
		case "fft":
			err = runFFT(k, *seed, opts)
		default:
			log.Fatalln("unknown op:", *op)
		}
		if err != nil {
			log.Fatalln(*op, "at 2^", k, ":", err)
		}
		if err := bar.Add(1); err != nil {
			log.Fatalln(err)
		}
	}
}
