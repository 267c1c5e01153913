// internal/bridge/runner.go
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/toyotomi-remote/internal/poller"
	"github.com/tamzrod/toyotomi-remote/internal/status"
	"github.com/tamzrod/toyotomi-remote/internal/writer"
)

// Runner owns one unit: it feeds polled register blocks to the Applier and
// mirrors the controller into the status block.
// All runner state is owned by the Run goroutine.
type Runner struct {
	id      string
	ctrl    Controller
	poller  *poller.Poller      // nil: no desired-state source
	applier *Applier
	status  writer.StatusWriter // nil: status disabled
	logger  *slog.Logger

	snap      status.Snapshot
	polled    bool
	pollErr   error
	statusErr bool
}

// NewRunner wires a unit. p and sw are optional.
func NewRunner(id string, ctrl Controller, p *poller.Poller, sw writer.StatusWriter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		id:      id,
		ctrl:    ctrl,
		poller:  p,
		applier: NewApplier(ctrl, logger),
		status:  sw,
		logger:  logger,
		snap:    status.Snapshot{Health: status.HealthUnknown},
	}
}

// Run blocks until ctx is cancelled and the poller goroutine has stopped,
// so the poller may be closed as soon as Run returns.
func (r *Runner) Run(ctx context.Context) {
	results := make(chan poller.PollResult)
	if r.poller != nil {
		pollDone := make(chan struct{})
		go func() {
			defer close(pollDone)
			r.poller.Run(ctx, results)
		}()
		defer func() { <-pollDone }()
	}

	// 1 Hz: seconds_in_error, and picks up changes made over HTTP
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	// Full block write on start (identity re-assert) if enabled.
	r.publish()

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-results:
			r.handlePoll(res)
			r.publish()

		case <-secTicker.C:
			r.tick()
			r.publish()
		}
	}
}

// handlePoll applies a successful poll and records a failed one.
func (r *Runner) handlePoll(res poller.PollResult) {
	r.polled = true

	if res.Err != nil {
		if r.pollErr == nil {
			r.logger.Warn("desired-state poll failed", "err", res.Err)
		}
		r.pollErr = res.Err
		return
	}
	if r.pollErr != nil {
		r.logger.Info("desired-state poll recovered")
	}
	r.pollErr = nil

	if err := r.applier.Apply(res.Registers); err != nil {
		r.logger.Error("desired-state apply failed", "err", err)
		r.pollErr = err
	}
}

// tick advances seconds_in_error while unhealthy. It never wraps.
func (r *Runner) tick() {
	if r.snap.Health == status.HealthError && r.snap.SecondsInError < status.MaxSecondsInError {
		r.snap.SecondsInError++
	}
}

// refresh recomputes health and copies the controller state into the
// snapshot.
func (r *Runner) refresh() {
	txErr := r.ctrl.Err()

	switch {
	case r.pollErr != nil:
		r.snap.Health = status.HealthError
		r.snap.LastErrorCode = errorCode(r.pollErr)
	case txErr != nil:
		r.snap.Health = status.HealthError
		r.snap.LastErrorCode = status.ErrorTransmit
	case r.poller != nil && !r.polled:
		r.snap.Health = status.HealthUnknown
	default:
		// Recovery / OK
		r.snap.Health = status.HealthOK
		r.snap.LastErrorCode = status.ErrorNone
		r.snap.SecondsInError = 0
	}

	st := r.ctrl.State()
	last := r.ctrl.LastFrame()

	r.snap.Power = st.Powered
	r.snap.Mode = uint16(st.Mode)
	r.snap.Temperature = uint16(st.Temperature)
	r.snap.FanSpeed = uint16(st.FanSpeed)
	r.snap.TimerOn = uint16(st.TimerOn)
	r.snap.TimerOff = uint16(st.TimerOff)
	r.snap.Normal = uint32(last.Frame.Normal)
	r.snap.Inverted = uint32(last.Frame.Inverted)
	r.snap.Frames = uint32(last.Frames)
}

func (r *Runner) publish() {
	r.refresh()

	if r.status == nil {
		return
	}
	if err := r.status.WriteStatus(r.snap); err != nil {
		if !r.statusErr {
			r.logger.Error("status write failed", "err", err)
		}
		r.statusErr = true
		return
	}
	if r.statusErr {
		r.logger.Info("status write recovered")
	}
	r.statusErr = false
}

// errorCode maps a poll error to a status error code. Modbus exceptions
// keep their exception code.
func errorCode(err error) uint16 {
	if err == nil {
		return status.ErrorNone
	}

	var mbErr *modbus.ModbusError
	if errors.As(err, &mbErr) {
		return status.ErrorPollException | uint16(mbErr.ExceptionCode)
	}

	return status.ErrorPoll
}
