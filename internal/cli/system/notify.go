package system

import (
	"fmt"

	"github.com/memento-care/memento/internal/cli"
	"github.com/memento-care/memento/internal/notify"
)

// NotifyCmd sends a single notification through the companion agent. Used to
// verify delivery end to end.
type NotifyCmd struct {
	Title  string `arg:"" help:"Notification title."`
	Body   string `arg:"" optional:"" help:"Notification body."`
	DryRun bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	payload := notify.Payload{Title: c.Title, Body: c.Body}

	if c.DryRun {
		return notify.NewStdoutSender().Send(payload)
	}

	if err := notify.NewTraySender().Send(payload); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	fmt.Println("Notification sent")
	return nil
}
