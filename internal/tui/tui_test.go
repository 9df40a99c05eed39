package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/pomo/internal/history"
)

func newTestStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Countdown display
// ============================================================

func TestCountdownFrames(t *testing.T) {
	var buf bytes.Buffer
	c := NewCountdown(&buf)

	c.Start(25*time.Minute, false)
	if !strings.Contains(buf.String(), symbolFresh) {
		t.Fatal("fresh run should show the tomato")
	}
	if !strings.Contains(buf.String(), "25:00") {
		t.Fatalf("first frame should show the full clock: %q", buf.String())
	}

	buf.Reset()
	c.Tick(10*time.Second, 25*time.Minute)
	if !strings.Contains(buf.String(), "24:50") {
		t.Fatalf("tick should show remaining time: %q", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "\r") {
		t.Fatal("frames should redraw in place")
	}
}

func TestCountdownResumedSymbol(t *testing.T) {
	var buf bytes.Buffer
	c := NewCountdown(&buf)

	c.Start(10*time.Second, true)
	if !strings.Contains(buf.String(), symbolContinue) {
		t.Fatal("resumed run should show the green apple")
	}
}

func TestCountdownStopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	c := NewCountdown(&buf)

	c.Start(time.Minute, false)
	buf.Reset()
	c.Stop()
	if !strings.Contains(buf.String(), "\r") {
		t.Fatal("stop should return the cursor to column zero")
	}
}

func TestCountdownOverrunClamps(t *testing.T) {
	var buf bytes.Buffer
	c := NewCountdown(&buf)

	// Elapsed past total must not render a negative clock.
	c.Tick(70*time.Second, time.Minute)
	if !strings.Contains(buf.String(), "00:00") {
		t.Fatalf("overrun should clamp to 00:00: %q", buf.String())
	}
}

// ============================================================
// Formatting helpers
// ============================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{time.Second, "00:01"},
		{time.Minute, "01:00"},
		{25 * time.Minute, "25:00"},
		{90 * time.Minute, "90:00"},
		{5*time.Minute + 30*time.Second, "05:30"},
		{-time.Second, "00:00"}, // negative should clamp to 0
	}
	for _, tt := range tests {
		got := formatClock(tt.d)
		if got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3600, "01:00:00"},
		{-10, "00:00:00"},
	}
	for _, tt := range tests {
		got := formatSeconds(tt.secs)
		if got != tt.want {
			t.Errorf("formatSeconds(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "0.0h"},
		{3600, "1.0h"},
		{5400, "1.5h"},
	}
	for _, tt := range tests {
		got := formatHours(tt.secs)
		if got != tt.want {
			t.Errorf("formatHours(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

// ============================================================
// Stats model
// ============================================================

func TestStatsDateRange(t *testing.T) {
	m := newStatsModel(newTestStore(t))

	from, to := m.dateRange()
	if !to.After(from) {
		t.Fatal("range end should be after start")
	}
	if to.Sub(from) != 7*24*time.Hour {
		t.Fatalf("expected a 7-day window, got %v", to.Sub(from))
	}

	m.offset = 1
	olderFrom, _ := m.dateRange()
	if !olderFrom.Before(from) {
		t.Fatal("paging back should move the window earlier")
	}
}

func TestStatsViewLoading(t *testing.T) {
	m := newStatsModel(newTestStore(t))
	if m.View() != "Loading..." {
		t.Fatal("unsized model should render the loading placeholder")
	}
}

func TestStatsViewRenders(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.StartSession(1500, false)
	s.FinishSession(sess.ID, history.StatusCompleted, 0)

	m := newStatsModel(s)
	m.width = 100
	m.height = 40

	msg := m.refresh()()
	data, ok := msg.(statsDataMsg)
	if !ok {
		t.Fatalf("refresh should produce statsDataMsg, got %T", msg)
	}
	updated, _ := m.Update(data)
	m = updated.(statsModel)

	out := m.View()
	if out == "" {
		t.Fatal("view rendered empty")
	}
	if !strings.Contains(out, "Pomodoro Stats") {
		t.Fatal("view missing title")
	}
	if !strings.Contains(out, "1 pomodoros completed all time") {
		t.Fatalf("view missing totals: %q", out)
	}
}

func TestStatsViewEmptyHistory(t *testing.T) {
	m := newStatsModel(newTestStore(t))
	m.width = 100
	m.height = 40
	m.buildChart()

	out := m.View()
	if !strings.Contains(out, "No sessions in this period") {
		t.Fatal("empty history should say so")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
	for i, g := range keys.FullHelp() {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}
