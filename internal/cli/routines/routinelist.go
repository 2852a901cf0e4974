package routines

import (
	"fmt"
	"time"

	"github.com/memento-care/memento/internal/cli"
	"github.com/memento-care/memento/internal/constants"
	"github.com/memento-care/memento/internal/utils"
)

type RoutineListCmd struct {
	Category string `short:"c" help:"Only show routines in this category."`
	All      bool   `short:"a" help:"Include disabled routines."`
}

func (c *RoutineListCmd) Run(ctx *cli.Context) error {
	routines, err := ctx.Routines.List()
	if err != nil {
		return err
	}

	shown := 0
	for _, r := range routines {
		if c.Category != "" && string(r.Category) != c.Category {
			continue
		}
		if !c.All && !r.Enabled {
			continue
		}
		fmt.Printf("%s\n    %s  days: %s  id: %s\n",
			cli.RoutineLine(r, ctx.Routines.IsCompletedToday(r.ID)),
			r.CategoryInfo().Label, r.FormatDays(), r.ID)
		shown++
	}

	if shown == 0 {
		fmt.Println("No routines. Add one with 'memento routine add'.")
	}
	return nil
}

type RoutineTodayCmd struct{}

func (c *RoutineTodayCmd) Run(ctx *cli.Context) error {
	routines, err := ctx.Routines.Today()
	if err != nil {
		return err
	}

	if len(routines) == 0 {
		fmt.Println("Nothing scheduled for today.")
		return nil
	}

	now := time.Now()
	nowMinutes := utils.MinutesSinceMidnight(now)

	fmt.Printf("Today (%s):\n", now.Format("Monday, Jan 2"))
	for _, r := range routines {
		fmt.Printf("%s  %s\n", cli.RoutineLine(r, ctx.Routines.IsCompletedToday(r.ID)), cli.FormatStatus(r.StatusAt(nowMinutes)))
	}
	return nil
}

type RoutineCompleteCmd struct {
	ID string `arg:"" help:"Routine ID."`
}

func (c *RoutineCompleteCmd) Run(ctx *cli.Context) error {
	routine, err := ctx.Routines.Get(c.ID)
	if err != nil {
		return fmt.Errorf("no routine found with ID %s", c.ID)
	}

	if err := ctx.Routines.Complete(c.ID); err != nil {
		return err
	}

	fmt.Printf("✓ Completed %s\n", routine.Title)
	return nil
}

type RoutineStatsCmd struct {
	Window int `short:"w" help:"Window in days for the completion rate."`
}

func (c *RoutineStatsCmd) Run(ctx *cli.Context) error {
	window := c.Window
	if window <= 0 {
		window = constants.DefaultStatsWindowDays
	}

	rate, err := ctx.Routines.CompletionRate(window)
	if err != nil {
		return err
	}

	routines, err := ctx.Routines.List()
	if err != nil {
		return err
	}

	enabled := 0
	completedToday := 0
	for _, r := range routines {
		if r.Enabled {
			enabled++
		}
		if ctx.Routines.IsCompletedToday(r.ID) {
			completedToday++
		}
	}

	fmt.Printf("Routines:        %d (%d enabled)\n", len(routines), enabled)
	fmt.Printf("Completed today: %d\n", completedToday)
	fmt.Printf("%d-day rate:      %d%%\n", window, rate)
	return nil
}
