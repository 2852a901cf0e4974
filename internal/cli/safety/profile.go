package safety

import (
	"fmt"

	"github.com/memento-care/memento/internal/cli"
)

type ProfileSetCmd struct {
	Name      string `help:"Patient's full name."`
	Phone     string `help:"Patient's phone number."`
	Emergency string `help:"Emergency contact phone number."`
	Interval  int    `short:"i" help:"Reminder polling interval in minutes."`
}

func (c *ProfileSetCmd) Validate() error {
	if c.Interval < 0 {
		return fmt.Errorf("interval cannot be negative")
	}
	return nil
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Monitor.UpdateProfile(c.Name, c.Phone, c.Emergency, c.Interval); err != nil {
		return err
	}
	fmt.Println("Safety profile updated")
	return nil
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetSafetyProfile()
	if err != nil {
		return err
	}

	name := profile.FullName
	if name == "" {
		name = "(not set)"
	}
	fmt.Printf("Name:              %s\n", name)
	if profile.PhoneNumber != "" {
		fmt.Printf("Phone:             %s\n", profile.PhoneNumber)
	}
	if profile.EmergencyContact != "" {
		fmt.Printf("Emergency contact: %s\n", profile.EmergencyContact)
	}
	fmt.Printf("Reminder interval: %s\n", profile.Interval())

	monitoring := "off"
	if profile.MonitoringEnabled {
		monitoring = "on"
	}
	fmt.Printf("Monitoring:        %s\n", monitoring)

	if profile.HomeLocation != nil {
		fmt.Printf("Home:              %s (%s)\n", profile.HomeLocation.Name, profile.HomeLocation.Address)
	} else {
		fmt.Println("Home:              (not set)")
	}

	if profile.LastKnownLocation != nil {
		fix := profile.LastKnownLocation
		fmt.Printf("Last seen:         %.5f, %.5f at %s\n",
			fix.Latitude, fix.Longitude, fix.Timestamp.Format("15:04:05"))
	}
	return nil
}
