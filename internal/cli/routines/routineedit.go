package routines

import (
	"fmt"

	"github.com/memento-care/memento/internal/cli"
	"github.com/memento-care/memento/internal/models"
	routinesvc "github.com/memento-care/memento/internal/routines"
	"github.com/memento-care/memento/internal/utils"
)

type RoutineEditCmd struct {
	ID          string `arg:"" help:"Routine ID."`
	Title       string `help:"New title."`
	Time        string `short:"t" help:"New time of day (HH:MM)."`
	Days        string `short:"d" help:"New comma-separated weekdays, or 'daily'."`
	Category    string `short:"c" help:"New category."`
	Description string `short:"D" help:"New reminder text."`
}

func (c *RoutineEditCmd) Validate() error {
	if c.Time != "" && !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid time format (expected HH:MM): %s", c.Time)
	}
	if c.Category != "" {
		if _, err := models.ParseCategory(c.Category); err != nil {
			return err
		}
	}
	return nil
}

func (c *RoutineEditCmd) Run(ctx *cli.Context) error {
	var update routinesvc.Update

	if c.Title != "" {
		update.Title = &c.Title
	}
	if c.Time != "" {
		update.Time = &c.Time
	}
	if c.Description != "" {
		update.Description = &c.Description
	}
	if c.Category != "" {
		category, err := models.ParseCategory(c.Category)
		if err != nil {
			return err
		}
		update.Category = &category
	}
	if c.Days != "" {
		days, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		update.Days = &days
	}

	if err := ctx.Routines.UpdateFields(c.ID, update); err != nil {
		return err
	}

	fmt.Printf("Updated routine %s\n", c.ID)
	return nil
}

type RoutineToggleCmd struct {
	ID string `arg:"" help:"Routine ID."`
}

func (c *RoutineToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Routines.ToggleEnabled(c.ID); err != nil {
		return err
	}

	routine, err := ctx.Routines.Get(c.ID)
	if err != nil {
		// Unknown id toggles are ignored upstream; report nothing changed
		fmt.Printf("No routine found with ID %s\n", c.ID)
		return nil
	}

	state := "disabled"
	if routine.Enabled {
		state = "enabled"
	}
	fmt.Printf("Routine %s is now %s\n", routine.Title, state)
	return nil
}

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Routine ID."`
}

func (c *RoutineDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Routines.Remove(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted routine %s\n", c.ID)
	return nil
}
