package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sadopc/pomo/internal/export"
	"github.com/sadopc/pomo/internal/history"
	"github.com/sadopc/pomo/internal/notify"
	"github.com/sadopc/pomo/internal/state"
	"github.com/sadopc/pomo/internal/timer"
	"github.com/sadopc/pomo/internal/tui"
)

const logFileName = "pomodoros.log"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "stats":
			return runStats()
		case "settings":
			return runSettings()
		case "export":
			return runExport(args[1:])
		default:
			return fmt.Errorf("unknown command %q (expected stats, settings, or export)", args[0])
		}
	}
	return runTimer(args)
}

func openHistory() (*history.Store, error) {
	dbPath, err := history.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve history path: %w", err)
	}
	h, err := history.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return h, nil
}

func runTimer(args []string) error {
	fs := flag.NewFlagSet("pomo", flag.ExitOnError)
	duration := fs.Int("d", 0, "duration in minutes (non-positive values are literal seconds), defaults to 25")
	restart := fs.Bool("r", false, "restart a new pomodoro, discarding any saved state")
	fs.Parse(args)

	durationSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "d" {
			durationSet = true
		}
	})

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	h, err := openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	minutes := *duration
	if !durationSet {
		minutes = h.GetSettingInt("default_minutes", 25)
	}

	var notifier timer.Notifier = notify.Desktop{}
	if !h.NotifyEnabled() {
		notifier = notify.Silent{}
	}

	// The signal handler writes the flag exactly once and then stops
	// listening, so a second Ctrl-C kills the process the normal way.
	interrupted := &atomic.Bool{}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		interrupted.Store(true)
		signal.Stop(sigCh)
	}()

	st := state.New(state.DefaultPath)
	saved := st.Load()

	ctrl := &timer.Controller{
		Config:      timer.Config{Minutes: minutes, Restart: *restart},
		State:       st,
		History:     h,
		Notifier:    notifier,
		Display:     tui.NewCountdown(os.Stdout),
		Logger:      logger,
		Out:         os.Stdout,
		Interrupted: interrupted,
	}

	_, err = ctrl.Run(saved.SecondsRemaining)
	return err
}

func runStats() error {
	h, err := openHistory()
	if err != nil {
		return err
	}
	defer h.Close()
	return tui.RunStats(h)
}

func runSettings() error {
	h, err := openHistory()
	if err != nil {
		return err
	}
	defer h.Close()
	return tui.RunSettingsForm(h)
}

func runExport(args []string) error {
	format := "csv"
	if len(args) > 0 {
		format = args[0]
	}

	h, err := openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	sessions, err := h.RecentSessions(0)
	if err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	dateStr := time.Now().Format("2006-01-02")
	path := filepath.Join(home, fmt.Sprintf("pomo-export-%s.%s", dateStr, format))

	switch format {
	case "csv":
		err = export.ToCSV(sessions, path)
	case "json":
		err = export.ToJSON(sessions, path)
	default:
		return fmt.Errorf("unknown export format %q (expected csv or json)", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}
