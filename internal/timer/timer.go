// Package timer owns one countdown run: it decides how long to count,
// runs the one-tick-per-second loop, and on stop persists, logs, and
// notifies.
package timer

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/pomo/internal/history"
)

const (
	symbolFresh    = "🍅"
	symbolContinue = "🍏"

	startLayout = "Monday, 02-Jan-2006 at 15:04:05"
	clockLayout = "15:04:05"
)

// Config carries the per-run CLI inputs. Minutes follows the sign
// convention of the original tool: positive values are minutes,
// zero/negative values are a literal number of seconds (for short test
// runs).
type Config struct {
	Minutes int
	Restart bool
}

// Result describes how a run ended.
type Result struct {
	Completed bool
	Resumed   bool
	Duration  time.Duration
	Remaining time.Duration
	EndedAt   time.Time
}

// StateStore persists the seconds remaining between invocations.
type StateStore interface {
	Save(secondsRemaining uint64) error
}

// Recorder keeps the session history. May be nil.
type Recorder interface {
	StartSession(durationSecs int64, resumed bool) (*history.Session, error)
	FinishSession(id int64, status string, remainingSecs int64) error
}

// Notifier fires the completion alert. May be nil.
type Notifier interface {
	Completed() error
}

// Display renders countdown progress. May be nil.
type Display interface {
	Start(total time.Duration, resumed bool)
	Tick(elapsed, total time.Duration)
	Stop()
}

// Controller runs the countdown. All collaborators are passed in
// explicitly so a run can be exercised without process-level side
// effects.
type Controller struct {
	Config      Config
	State       StateStore
	History     Recorder
	Notifier    Notifier
	Display     Display
	Logger      *log.Logger
	Out         io.Writer
	Interrupted *atomic.Bool

	// Interval defaults to one second; tests shrink it.
	Interval time.Duration
}

// EffectiveDuration picks the duration for this run. Saved state wins
// unless a restart was requested; then positive minutes; then the
// literal-seconds escape hatch. The second return reports whether the
// run continues a previous one.
func EffectiveDuration(saved uint64, cfg Config) (time.Duration, bool) {
	if saved > 0 && !cfg.Restart {
		return time.Duration(saved) * time.Second, true
	}
	if cfg.Minutes > 0 {
		return time.Duration(cfg.Minutes) * time.Minute, false
	}
	return time.Duration(-cfg.Minutes) * time.Second, false
}

// Run counts down and, on stop, persists the remaining seconds (zero on
// natural completion), appends a status line to the log and stdout,
// closes the history record, and fires the notifier if and only if the
// run completed naturally.
func (c *Controller) Run(saved uint64) (Result, error) {
	total, resumed := EffectiveDuration(saved, c.Config)

	symbol := symbolFresh
	verb := "Starting new"
	if resumed {
		symbol = symbolContinue
		verb = "Continuing"
	}

	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}

	start := time.Now()
	c.Logger.Info(fmt.Sprintf("%s %s %s Pomodoro on %s",
		symbol, verb, humanDuration(total), start.Format(startLayout)))

	var sessionID int64
	if c.History != nil {
		sess, err := c.History.StartSession(int64(total/time.Second), resumed)
		if err != nil {
			return Result{}, fmt.Errorf("record session start: %w", err)
		}
		sessionID = sess.ID
	}

	if c.Display != nil {
		c.Display.Start(total, resumed)
	}

	// Elapsed time is measured against the start instant, not counted
	// in ticks, so sleep drift cannot desynchronize the clock.
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	interrupted := false
	for time.Since(start) < total && !interrupted {
		<-ticker.C
		if c.Display != nil {
			c.Display.Tick(time.Since(start), total)
		}
		if c.Interrupted != nil && c.Interrupted.Load() {
			interrupted = true
		}
	}

	if c.Display != nil {
		c.Display.Stop()
	}

	end := time.Now()
	res := Result{
		Completed: !interrupted,
		Resumed:   resumed,
		Duration:  total,
		EndedAt:   end,
	}

	if interrupted {
		remaining := total - end.Sub(start)
		if remaining < 0 {
			remaining = 0
		}
		res.Remaining = remaining
		c.infoAndPrint(fmt.Sprintf("Interrupted at %s with %s remaining.",
			end.Format(clockLayout), humanDuration(remaining)))
	} else {
		c.infoAndPrint(fmt.Sprintf("Finished at %s", end.Format(clockLayout)))
	}

	if err := c.State.Save(RemainingSeconds(res.Remaining)); err != nil {
		return res, err
	}

	if c.History != nil {
		status := history.StatusCompleted
		if interrupted {
			status = history.StatusInterrupted
		}
		if err := c.History.FinishSession(sessionID, status, int64(RemainingSeconds(res.Remaining))); err != nil {
			return res, fmt.Errorf("record session end: %w", err)
		}
	}

	// An interrupted run never alerts: the work is not actually done.
	if res.Completed && c.Notifier != nil {
		if err := c.Notifier.Completed(); err != nil {
			return res, fmt.Errorf("completion notification: %w", err)
		}
	}

	return res, nil
}

func (c *Controller) infoAndPrint(msg string) {
	c.Logger.Info(msg)
	if c.Out != nil {
		fmt.Fprintln(c.Out, msg)
	}
}

// RemainingSeconds converts a remaining duration to the persisted
// integer. Wall-clock elapsed time at tick k is a hair past k seconds,
// so rounding to the nearest second keeps the invariant that an
// interrupt at tick k of an N-second timer stores N-k.
func RemainingSeconds(remaining time.Duration) uint64 {
	if remaining <= 0 {
		return 0
	}
	return uint64((remaining + time.Second/2) / time.Second)
}

func humanDuration(d time.Duration) string {
	ref := time.Now()
	return strings.TrimSpace(humanize.RelTime(ref, ref.Add(d), "", ""))
}
