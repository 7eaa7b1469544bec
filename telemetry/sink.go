// Package telemetry records per-call performance metadata for the arithmetic
// core. Sinks are injected by the caller; nothing here may fail, block, or
// otherwise influence the operation being measured, and the default
// configuration records nothing.
package telemetry

import (
	"time"

	"github.com/rs/zerolog"
)

// Record describes one completed operation.
type Record struct {
	Op       string // "msm", "fft", "fft_g1", "g_to_lagrange"
	Device   string // "cpu" or the accelerator name
	Workers  int
	Elements int
	Degree   uint32        // log2 size, transforms only
	Init     time.Duration // kernel or device initialization
	Duration time.Duration // the operation itself
	Total    time.Duration
}

// Sink consumes records. Implementations swallow or log their own errors;
// they never surface them to the measured operation.
type Sink interface {
	Record(Record)
}

// Nop discards every record.
type Nop struct{}

func (Nop) Record(Record) {}

// Logger emits each record as a structured debug event.
type Logger struct {
	Log zerolog.Logger
}

func (l Logger) Record(r Record) {
	l.Log.Debug().
		Str("op", r.Op).
		Str("device", r.Device).
		Int("workers", r.Workers).
		Int("elements", r.Elements).
		Uint32("degree", r.Degree).
		Dur("init", r.Init).
		Dur("duration", r.Duration).
		Dur("total", r.Total).
		Msg("arith op")
}
