// Package remind sets a release reminder from the command line.
package remind

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/cinetime/pkg/app"
	"tableflip.dev/cinetime/pkg/reminder"
)

// Remind runs the reminder state machine for one movie to completion.
type Remind struct {
	Service *app.Service
	ID      string
	// Email defaults to the last address that worked.
	Email string
	// Force resubmits a reminder the local cache already lists.
	Force bool
}

func (n *Remind) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not set a reminder, no service")
	}
	snap, err := n.Service.Remind(ctx, n.ID, n.Email, n.Force)
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen, color.Bold)
	switch snap.State {
	case reminder.Success:
		_, _ = ok.Fprintf(color.Output, "Reminder set for %s\n", snap.MovieID)
	case reminder.Existing:
		_, _ = ok.Fprintf(color.Output, "Reminder already set for %s\n", snap.MovieID)
	default:
		return fmt.Errorf("reminder for %s is %s", snap.MovieID, snap.State)
	}
	return nil
}
