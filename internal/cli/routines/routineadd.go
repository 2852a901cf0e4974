package routines

import (
	"fmt"

	"github.com/memento-care/memento/internal/cli"
	"github.com/memento-care/memento/internal/models"
	routinesvc "github.com/memento-care/memento/internal/routines"
	"github.com/memento-care/memento/internal/utils"
)

type RoutineAddCmd struct {
	Title       string `arg:"" help:"Routine title."`
	Time        string `short:"t" help:"Time of day (HH:MM)." required:""`
	Days        string `short:"d" help:"Comma-separated weekdays (e.g. mon,wed,fri), or 'daily'." default:"daily"`
	Category    string `short:"c" help:"Category (medication|meal|exercise|appointment|hygiene|social|other)." default:"other"`
	Description string `short:"D" help:"Optional reminder text shown in the notification."`
	Disabled    bool   `help:"Create the routine disabled (no reminders)."`
}

func (c *RoutineAddCmd) Validate() error {
	if !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid time format (expected HH:MM): %s", c.Time)
	}
	if _, err := models.ParseCategory(c.Category); err != nil {
		return err
	}
	return nil
}

func (c *RoutineAddCmd) Run(ctx *cli.Context) error {
	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}

	days, err := cli.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	routine, err := ctx.Routines.Add(routinesvc.NewRoutine{
		Title:       c.Title,
		Description: c.Description,
		Category:    category,
		Time:        c.Time,
		Days:        days,
		Enabled:     !c.Disabled,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added routine: %s %s at %s on %s (ID: %s)\n",
		routine.CategoryInfo().Icon, routine.Title, routine.Time, routine.FormatDays(), routine.ID)
	return nil
}
