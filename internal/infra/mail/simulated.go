package mail

import (
	"context"
	"errors"
	"log"
)

// SimulatedSender logs instead of delivering. FailFunc is a fault-injection
// hook: when it returns true for a recipient the send fails, which keeps
// partial-failure paths testable without a flaky random stub. Nil means every
// send succeeds.
type SimulatedSender struct {
	FailFunc func(to string) bool
}

func NewSimulatedSender() *SimulatedSender {
	return &SimulatedSender{}
}

func (s *SimulatedSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if s.FailFunc != nil && s.FailFunc(to) {
		return errors.New("simulated email delivery failure")
	}

	log.Printf("mail: simulated send to %s (subject: %s)", to, subject)
	return nil
}
