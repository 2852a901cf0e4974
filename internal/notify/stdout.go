package notify

import (
	"fmt"
	"io"
	"os"
)

// StdoutSender prints notifications instead of delivering them. Used for dry
// runs and environments without the companion agent.
type StdoutSender struct {
	Out io.Writer
}

func NewStdoutSender() *StdoutSender {
	return &StdoutSender{Out: os.Stdout}
}

func (s *StdoutSender) Send(payload Payload) error {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintf(out, "[notification] %s: %s\n", payload.Title, payload.Body)
	return err
}
