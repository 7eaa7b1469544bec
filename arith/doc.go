// Package arith implements the CPU arithmetic core: multi-scalar
// multiplication and radix-2 FFT over BLS12-381, plus the polynomial
// utilities built on them. Everything here is deterministic and free of
// ambient configuration; results do not depend on the worker count. Length
// preconditions are programming errors and panic, they are never reported as
// recoverable errors.
package arith
