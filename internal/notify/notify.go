// Package notify owns the platform completion alert.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

const (
	title = "Pomodoro finished!"
	body  = "Your pomodoro has finished."
)

// Desktop fires a desktop notification with a sound.
type Desktop struct{}

func (Desktop) Completed() error {
	if err := beeep.Alert(title, body, ""); err != nil {
		return fmt.Errorf("desktop alert: %w", err)
	}
	return nil
}

// Silent is used when notifications are turned off.
type Silent struct{}

func (Silent) Completed() error { return nil }
