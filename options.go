package zkcore

import (
	"fmt"
	"runtime"
	"time"

	"github.com/eon-protocol/zkcore/gpu"
	"github.com/eon-protocol/zkcore/telemetry"
)

// AcceleratorIcicle names the icicle CUDA backend for WithAccelerator.
const AcceleratorIcicle = "icicle"

type config struct {
	accelerator string
	engine      gpu.Engine
	stats       telemetry.Sink
	workers     int
}

// Option configures one call into the arithmetic core. The strategy is
// resolved once per call; it never changes the mathematical result, only
// where and how fast it is computed.
type Option func(*config)

// WithAccelerator requests the named accelerator strategy. If it is
// unavailable or fails to initialize, the call returns a gpu error; there is
// no silent fallback to the CPU path.
func WithAccelerator(name string) Option {
	return func(c *config) { c.accelerator = name }
}

// WithEngine injects an already-initialized accelerator engine, bypassing
// engine construction. The call does not close the engine; the caller keeps
// ownership. Useful both for amortizing device setup across calls and for
// substituting a mock in tests.
func WithEngine(e gpu.Engine) Option {
	return func(c *config) { c.engine = e }
}

// WithStats registers a telemetry sink for this call. Recording is
// best-effort and never affects the result.
func WithStats(s telemetry.Sink) Option {
	return func(c *config) { c.stats = s }
}

// WithWorkers caps the CPU worker count for this call. Values below one fall
// back to runtime.GOMAXPROCS(0). Accelerator strategies ignore it. The result
// is identical for any worker count.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

func newConfig(opts ...Option) config {
	c := config{stats: telemetry.Nop{}}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func (c *config) useAccelerator() bool {
	return c.engine != nil || c.accelerator != ""
}

func (c *config) workerCount() int {
	if c.workers > 0 {
		return c.workers
	}
	return runtime.GOMAXPROCS(0)
}

// deviceName labels stats rows and dispatch logs. An explicitly named
// accelerator wins; an injected engine without a name is reported as
// "engine" since its actual backend is opaque here.
func (c *config) deviceName() string {
	if c.accelerator != "" {
		return c.accelerator
	}
	if c.engine != nil {
		return "engine"
	}
	return AcceleratorIcicle
}

// acquireEngine resolves the accelerator strategy for this call. owned
// reports whether the call must close the engine afterwards.
func (c *config) acquireEngine() (eng gpu.Engine, owned bool, initTime time.Duration, err error) {
	if c.engine != nil {
		return c.engine, false, 0, nil
	}
	if c.accelerator != AcceleratorIcicle {
		return nil, false, 0, fmt.Errorf("%w: unknown accelerator %q", gpu.ErrNoDevice, c.accelerator)
	}
	start := time.Now()
	eng, err = gpu.NewEngine()
	if err != nil {
		return nil, false, 0, err
	}
	return eng, true, time.Since(start), nil
}
