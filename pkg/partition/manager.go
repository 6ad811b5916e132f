package partition

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
)

// Progress receives the sweep's progress: Start with the number of samples,
// Increment after each sample with its loop index, End once the sweep stops.
type Progress interface {
	Start(total int)
	Increment(current int)
	End()
}

type options struct {
	logger  *slog.Logger
	workers int
}

// Option configures a Manager.
type Option func(*options)

// WithLogger sets the logger used for sweep diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWorkers computes up to n samples concurrently. n <= 1 keeps the sweep
// sequential.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Manager owns one Parameters and one Sample per temperature step.
type Manager[T hpmath.Number[T]] struct {
	params  *Parameters[T]
	samples []Sample[T]
	opts    options
}

// NewManager returns a Manager whose values use the precision of proto.
func NewManager[T hpmath.Number[T]](proto T, opts ...Option) *Manager[T] {
	o := options{logger: slog.Default(), workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[T]{params: NewParameters(proto), opts: o}
}

// Initialize populates the parameters from src and allocates one empty
// sample per temperature step. A failure from src or from validation is
// returned as is and leaves the Manager uninitialized.
func (m *Manager[T]) Initialize(src Source[T]) error {
	if err := m.params.Populate(src); err != nil {
		return err
	}
	n := m.params.Samples()
	m.samples = make([]Sample[T], n)
	for i := range m.samples {
		m.samples[i].Initialize(m.params.States())
	}
	m.opts.logger.Debug("sweep initialized",
		"states", m.params.States(),
		"samples", n,
		"potentials", m.params.HasPotentials(),
	)
	return nil
}

// Parameters returns the owned parameters.
func (m *Manager[T]) Parameters() *Parameters[T] { return m.params }

// Samples is the number of samples in the sweep.
func (m *Manager[T]) Samples() int { return len(m.samples) }

// Sample returns sample i, or nil outside the sweep.
func (m *Manager[T]) Sample(i int) *Sample[T] {
	if i < 0 || i >= len(m.samples) {
		return nil
	}
	return &m.samples[i]
}

// Step calculates sample i at temperature t. A sample is calculated at most
// once.
func (m *Manager[T]) Step(i int, t T) error {
	if i < 0 || i >= len(m.samples) {
		return fmt.Errorf("%w: %d of %d", ErrIndex, i, len(m.samples))
	}
	if m.samples[i].Calculated() {
		return fmt.Errorf("%w: %d", ErrCalculated, i)
	}
	m.samples[i].Calculate(t, m.params)
	return nil
}

// Sweep calculates every sample. Sequentially the temperature starts one step
// below TMin and advances by Step before each sample, so sample i sits at
// TMin + i*Step. With several workers each sample is evaluated at
// TemperatureAt(i) directly; the parameters are only read meanwhile.
//
// progress may be nil. ctx is checked between samples. Sweep refuses to run
// once any sample holds a result, including after a cancelled sweep;
// Initialize again to start over.
func (m *Manager[T]) Sweep(ctx context.Context, progress Progress) error {
	if len(m.samples) == 0 {
		return ErrNotInitialized
	}
	for i := range m.samples {
		if m.samples[i].Calculated() {
			return fmt.Errorf("sweep: %w: %d", ErrCalculated, i)
		}
	}
	if progress == nil {
		progress = nopProgress{}
	}
	start := time.Now()
	progress.Start(len(m.samples))
	defer progress.End()

	var err error
	if m.opts.workers > 1 {
		err = m.sweepParallel(ctx, progress)
	} else {
		err = m.sweepSequential(ctx, progress)
	}
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	degraded := 0
	for i := range m.samples {
		if m.samples[i].Degraded() > 0 {
			degraded++
		}
	}
	if degraded > 0 {
		m.opts.logger.Warn("exponential series hit the iteration ceiling",
			"samples", degraded, "ceiling", hpmath.MaxSeriesTerms)
	}
	m.opts.logger.Debug("sweep finished",
		"samples", len(m.samples),
		"workers", m.opts.workers,
		"elapsed", time.Since(start),
	)
	return nil
}

func (m *Manager[T]) sweepSequential(ctx context.Context, progress Progress) error {
	t := m.params.TMin().Sub(m.params.Step())
	for i := range m.samples {
		if err := ctx.Err(); err != nil {
			return err
		}
		t = t.Add(m.params.Step())
		m.params.SetTemperature(t)
		m.samples[i].Calculate(t, m.params)
		progress.Increment(i)
	}
	return nil
}

func (m *Manager[T]) sweepParallel(ctx context.Context, progress Progress) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.workers)

	var (
		mu   sync.Mutex
		done int
	)
	for i := range m.samples {
		t := m.params.TemperatureAt(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m.samples[i].Calculate(t, m.params)

			mu.Lock()
			progress.Increment(done)
			done++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	m.params.SetTemperature(m.params.TemperatureAt(len(m.samples) - 1))
	return nil
}

type nopProgress struct{}

func (nopProgress) Start(int)     {}
func (nopProgress) Increment(int) {}
func (nopProgress) End()          {}
