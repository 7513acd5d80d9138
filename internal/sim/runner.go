// Package sim replays scripted action scenarios through a frame-batched
// dispatcher pipeline, logging every flush. It exists to exercise the
// library against a real clock; correctness lives in the package tests,
// which use the deterministic scheduler instead.
package sim

import (
	"context"
	"errors"
	"time"

	"github.com/reflow-ui/reflow/pkg/batch"
	"github.com/reflow-ui/reflow/pkg/dispatch"
	"github.com/reflow-ui/reflow/pkg/log"
	"github.com/reflow-ui/reflow/pkg/sched"
)

// Event is the action value replayed by the runner.
type Event struct {
	Kind    string
	Payload string
}

// Options configures a Runner.
type Options struct {
	// FrameInterval is the simulated display refresh interval.
	FrameInterval time.Duration

	// TimeScale divides step offsets: 2.0 replays a scenario twice as fast.
	TimeScale float64

	// Drain is how long to keep the loop running after the last step so
	// trailing frames can flush. Defaults to five frame intervals.
	Drain time.Duration
}

// Runner replays scenarios against a wall-clock Ticker scheduler.
type Runner struct {
	opts   Options
	logger log.Logger
}

// NewRunner creates a Runner. A nil logger discards all output.
func NewRunner(opts Options, logger log.Logger) *Runner {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = sched.DefaultFrameInterval
	}
	if opts.TimeScale <= 0 {
		opts.TimeScale = 1.0
	}
	if opts.Drain <= 0 {
		opts.Drain = 5 * opts.FrameInterval
	}
	return &Runner{opts: opts, logger: logger}
}

// Run replays sc once and blocks until the run drains or ctx is
// cancelled.
func (r *Runner) Run(ctx context.Context, sc Scenario) error {
	ticker := sched.NewTicker(r.opts.FrameInterval)
	batcher := batch.New(ticker, batch.WithLogger(r.logger))

	applied := 0
	notified := 0
	buses := make(map[string]*dispatch.Bus)
	bus := func(name string) *dispatch.Bus {
		if b, ok := buses[name]; ok {
			return b
		}
		b := dispatch.NewBus(func(a dispatch.Action) {
			switch v := a.(type) {
			case batch.FrameStamp:
				r.logger.Debug("frame stamp", log.String("bus", name), log.Duration("frame_ts", v.Time))
			case Event:
				applied++
				r.logger.Info("apply",
					log.String("bus", name),
					log.String("kind", v.Kind),
					log.String("payload", v.Payload))
			}
		},
			dispatch.WithName(name),
			dispatch.WithProcessors(batcher),
			dispatch.WithLogger(r.logger),
		)
		b.Subscribe(func() { notified++ })
		buses[name] = b
		return b
	}

	for _, step := range sc.Steps {
		step := step
		target := bus(step.Target)
		at := time.Duration(float64(step.At) / r.opts.TimeScale)
		ticker.After(at, func() {
			a := dispatch.Action(Event{Kind: step.Kind, Payload: step.Payload})
			if step.Deferred {
				a = batch.Deferred(a)
			}
			target.Dispatch(a)
		})
	}

	runtime := time.Duration(float64(sc.Runtime())/r.opts.TimeScale) + r.opts.Drain
	runCtx, cancel := context.WithTimeout(ctx, runtime)
	defer cancel()

	r.logger.Info("scenario start",
		log.String("name", sc.Name),
		log.Int("steps", len(sc.Steps)),
		log.Duration("runtime", runtime))

	err := ticker.Run(runCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	r.logger.Info("scenario done",
		log.String("name", sc.Name),
		log.Int("applied", applied),
		log.Int("notifications", notified))
	return nil
}
