package safety

import (
	"context"
	"fmt"

	"github.com/memento-care/memento/internal/cli"
)

// LocateCmd fetches a single location fix and reports the distance from home.
type LocateCmd struct{}

func (c *LocateCmd) Run(ctx *cli.Context) error {
	fix, err := ctx.Monitor.Refresh(context.Background())
	if err != nil {
		return fmt.Errorf("could not get current location: %w", err)
	}

	fmt.Printf("Current location: %.5f, %.5f (±%.0fm)\n", fix.Latitude, fix.Longitude, fix.Accuracy)

	if distance := ctx.Monitor.DistanceFromHome(); distance != nil {
		fmt.Printf("Distance from home: %.0fm\n", *distance)
		if ctx.Monitor.IsOutsideHome() {
			fmt.Println("Status: outside home")
		} else {
			fmt.Println("Status: at home")
		}
	} else {
		fmt.Println("Distance from home: unknown (no home location set)")
	}
	return nil
}

// TestAlertCmd sends one home-reminder notification immediately.
type TestAlertCmd struct{}

func (c *TestAlertCmd) Run(ctx *cli.Context) error {
	if err := ctx.Monitor.TestAlert(); err != nil {
		return err
	}
	fmt.Println("Test alert sent")
	return nil
}

// DirectionsCmd prints a maps link pointing home.
type DirectionsCmd struct{}

func (c *DirectionsCmd) Run(ctx *cli.Context) error {
	url, err := ctx.Monitor.DirectionsURL()
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}
