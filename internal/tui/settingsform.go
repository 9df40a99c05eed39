package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/sadopc/pomo/internal/history"
)

// RunSettingsForm edits the persisted settings interactively and saves
// them back to the store. Aborting the form leaves everything as it
// was.
func RunSettingsForm(s *history.Store) error {
	minutes := getVal(s, "default_minutes", "25")
	goal := getVal(s, "daily_goal", "8")
	notifyOn := s.NotifyEnabled()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Default duration (min)").Value(&minutes),
			huh.NewInput().Title("Daily goal (pomodoros)").Value(&goal),
			huh.NewConfirm().Title("Notify on completion").Value(&notifyOn),
		).Title("Pomodoro"),
	).WithShowHelp(true).WithShowErrors(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("settings form: %w", err)
	}

	notify := "on"
	if !notifyOn {
		notify = "off"
	}
	if err := s.SetSetting("default_minutes", minutes); err != nil {
		return err
	}
	if err := s.SetSetting("daily_goal", goal); err != nil {
		return err
	}
	return s.SetSetting("notify", notify)
}

func getVal(s *history.Store, k, fallback string) string {
	v, err := s.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}
