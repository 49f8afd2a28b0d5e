package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("no recipient address")

// Message is a simulated email.
type Message struct {
	To      string
	Subject string
	Body    string
}

func ConfirmationMessage(ev OrderPlaced) Message {
	return Message{
		To:      ev.Email,
		Subject: "Order Confirmation - " + ev.OrderNumber,
		Body:    fmt.Sprintf("Your order has been processed. Total: $%s", ev.Total.StringFixed(2)),
	}
}

// EmailSink emits confirmation emails as log entries. Nothing leaves the
// process.
type EmailSink struct {
	logger *zap.Logger
}

func NewEmailSink(logger *zap.Logger) *EmailSink {
	return &EmailSink{logger: logger}
}

func (s *EmailSink) Name() string { return "email" }

func (s *EmailSink) OrderPlaced(_ context.Context, ev OrderPlaced) error {
	if ev.Email == "" {
		return ErrNoRecipient
	}
	msg := ConfirmationMessage(ev)
	s.logger.Info("sending confirmation email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
