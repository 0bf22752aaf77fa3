// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yug2601/plc/internal/poller"
	"github.com/yug2601/plc/internal/status"
	"github.com/yug2601/plc/internal/writer"
)

// Geometry is what assembly needs to know about the register block.
type Geometry struct {
	RegisterBase int
	UpperBound   int
}

type Config struct {
	Interval time.Duration // delay after each tick, not compensated for tick time
	Geometry Geometry
}

// Poller is the one operation the scheduler needs from the poll side.
type Poller interface {
	PollOnce() poller.Result
}

// Scheduler drives read -> decode -> assemble -> publish on one goroutine.
// No failure of a tick ends the loop.
type Scheduler struct {
	cfg     Config
	poller  Poller
	writer  writer.Writer
	log     *zap.Logger
	tracker status.Tracker
	now     func() time.Time
}

func New(cfg Config, p Poller, w writer.Writer, log *zap.Logger) (*Scheduler, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("scheduler: interval must be > 0")
	}
	if p == nil || w == nil {
		return nil, errors.New("scheduler: poller and writer required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cfg:    cfg,
		poller: p,
		writer: w,
		log:    log.Named("scheduler"),
		now:    time.Now,
	}, nil
}

// Run ticks until ctx is cancelled. A tick in progress always completes;
// cancellation is observed only during the delay.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		s.Tick(ctx)
		if ctx.Err() != nil {
			return
		}

		t := time.NewTimer(s.cfg.Interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}

// Tick performs one full cycle and returns what it published.
func (s *Scheduler) Tick(ctx context.Context) Decision {
	res := s.poll()
	d := Decide(res, s.cfg.Geometry, s.now())
	s.publish(context.WithoutCancel(ctx), d)
	s.observe(d)
	return d
}

// poll converts a panic in the poll path into a transport fault.
func (s *Scheduler) poll() (res poller.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = poller.Result{
				At:      s.now(),
				Outcome: poller.OutcomeTransportFault,
				Err:     errors.Errorf("poll panicked: %v", r),
			}
		}
	}()
	return s.poller.PollOnce()
}

func (s *Scheduler) publish(ctx context.Context, d Decision) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("publish panicked", zap.Any("panic", r), zap.Stringer("status", d.Status))
		}
	}()

	switch d.Outcome {
	case poller.OutcomeOK:
		if err := s.writer.WriteDocument(ctx, *d.Document); err != nil {
			s.log.Error("upload failed", zap.Error(err))
			return
		}
		s.log.Info("uploaded registers successfully", zap.Int("registers", len(d.Document.Values)))

	case poller.OutcomeProtocolFault:
		s.log.Error("read error: PLC did not respond correctly",
			zap.Error(d.Err),
			zap.Uint16("exception", exceptionCode(d.Err)),
		)
		if err := s.writer.WriteStatus(ctx, d.Status); err != nil {
			s.log.Error("failed to update status", zap.Stringer("status", d.Status), zap.Error(err))
		}

	default:
		s.log.Error("connection error", zap.Error(d.Err))
		if err := s.writer.WriteStatus(ctx, d.Status); err != nil {
			s.log.Error("failed to update status", zap.Stringer("status", d.Status), zap.Error(err))
		}
	}
}

func (s *Scheduler) observe(d Decision) {
	prev, changed := s.tracker.Observe(d.Status, s.now())
	if changed {
		s.log.Info("status changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", d.Status),
		)
		return
	}
	s.log.Debug("status unchanged",
		zap.Stringer("status", d.Status),
		zap.Int("consecutive_faults", s.tracker.Snapshot().ConsecutiveFaults),
	)
}

// Status returns the scheduler's current status snapshot.
// Only meaningful from the scheduler goroutine or after Run returns.
func (s *Scheduler) Status() status.Snapshot {
	return s.tracker.Snapshot()
}

// exceptionCode extracts a best-effort Modbus exception code without
// assuming concrete types. 0 if the error carries none.
func exceptionCode(err error) uint16 {
	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return 0
}
