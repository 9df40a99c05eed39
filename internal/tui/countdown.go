package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
)

const (
	symbolFresh    = "🍅"
	symbolContinue = "🍏"
)

// Countdown renders the single-line inline progress display for a run.
// It is driven by the timer loop, one frame per tick, rather than
// running its own program.
type Countdown struct {
	out    io.Writer
	bar    progress.Model
	symbol string
}

func NewCountdown(out io.Writer) *Countdown {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	return &Countdown{out: out, bar: bar}
}

func (c *Countdown) Start(total time.Duration, resumed bool) {
	c.symbol = symbolFresh
	if resumed {
		c.symbol = symbolContinue
	}
	c.Tick(0, total)
}

func (c *Countdown) Tick(elapsed, total time.Duration) {
	pct := 1.0
	if total > 0 {
		pct = float64(elapsed) / float64(total)
	}
	if pct > 1 {
		pct = 1
	}
	remaining := total - elapsed
	fmt.Fprintf(c.out, "\r%s %s %s ",
		c.symbol, timerStyle.Render(formatClock(remaining)), c.bar.ViewAs(pct))
}

func (c *Countdown) Stop() {
	// Erase the progress line so the status line prints cleanly.
	fmt.Fprint(c.out, "\r\x1b[2K")
}
