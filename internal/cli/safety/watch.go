package safety

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/memento-care/memento/internal/cli"
	apperrors "github.com/memento-care/memento/internal/errors"
	"github.com/memento-care/memento/internal/logger"
	"github.com/memento-care/memento/internal/notify"
)

// WatchCmd runs the monitoring daemon in the foreground: routine reminders
// and home-distance alerts until interrupted.
type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// In-process reminders are lost across restarts; re-register them
	if err := ctx.Routines.RestoreReminders(); err != nil {
		logger.Warn("Failed to restore routine reminders", "error", err)
	}

	if scheduler, ok := ctx.Dispatcher.(*notify.Scheduler); ok {
		go scheduler.Run(runCtx)
		fmt.Printf("Reminder scheduler running (%d reminders)\n", scheduler.Pending())
	}

	err := ctx.Monitor.Start(runCtx)
	switch {
	case errors.Is(err, apperrors.ErrNoHomeLocation):
		fmt.Println("Safety monitoring is off: no home location set. Routine reminders still run.")
		fmt.Println("Set one with 'memento safety home set' to enable it.")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		fmt.Println("Safety monitoring is off: location permission denied. Routine reminders still run.")
	case err != nil:
		fmt.Printf("Safety monitoring is off: %v. Routine reminders still run.\n", err)
	default:
		profile, perr := ctx.Store.GetSafetyProfile()
		if perr == nil {
			fmt.Printf("Safety monitoring running (every %s)\n", profile.Interval())
		} else {
			fmt.Println("Safety monitoring running")
		}
	}

	fmt.Println("Press Ctrl+C to stop.")
	<-runCtx.Done()

	if stopErr := ctx.Monitor.Stop(); stopErr != nil {
		logger.Warn("Failed to stop safety monitoring cleanly", "error", stopErr)
	}

	fmt.Println("\nStopped.")
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetSafetyProfile()
	if err != nil {
		return err
	}

	if profile.MonitoringEnabled {
		fmt.Println("Monitoring: on")
	} else {
		fmt.Println("Monitoring: off")
	}

	if profile.HomeLocation == nil {
		fmt.Println("Home:       (not set)")
		return nil
	}
	fmt.Printf("Home:       %s (%s)\n", profile.HomeLocation.Name, profile.HomeLocation.Address)

	if profile.LastKnownLocation != nil {
		fix := profile.LastKnownLocation
		fmt.Printf("Last seen:  %.5f, %.5f (±%.0fm) at %s\n",
			fix.Latitude, fix.Longitude, fix.Accuracy, fix.Timestamp.Format("Jan 2 15:04:05"))
	} else {
		fmt.Println("Last seen:  (no fix yet)")
	}
	return nil
}
