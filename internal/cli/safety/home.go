// Package safety holds the safety monitoring CLI commands.
package safety

import (
	"fmt"

	"github.com/memento-care/memento/internal/cli"
	"github.com/memento-care/memento/internal/models"
)

type HomeSetCmd struct {
	Latitude  float64 `arg:"" help:"Home latitude."`
	Longitude float64 `arg:"" help:"Home longitude."`
	Address   string  `short:"a" help:"Street address shown in reminders." required:""`
	Name      string  `short:"n" help:"Display name for the home (e.g. 'My Home')." default:"Home"`
}

func (c *HomeSetCmd) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

func (c *HomeSetCmd) Run(ctx *cli.Context) error {
	err := ctx.Monitor.SetHomeLocation(models.HomeLocation{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Address:   c.Address,
		Name:      c.Name,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Home location set: %s (%s) at %.5f, %.5f\n", c.Name, c.Address, c.Latitude, c.Longitude)
	return nil
}

type HomeShowCmd struct{}

func (c *HomeShowCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetSafetyProfile()
	if err != nil {
		return err
	}

	if profile.HomeLocation == nil {
		fmt.Println("No home location set. Use 'memento safety home set'.")
		return nil
	}

	home := profile.HomeLocation
	fmt.Printf("%s\n%s\n%.5f, %.5f\n", home.Name, home.Address, home.Latitude, home.Longitude)
	return nil
}
