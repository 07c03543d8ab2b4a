package notification

import (
	"context"
	"log/slog"
)

const (
	// KindBalanceDrift flags a wallet whose cached balance diverged from
	// the balance replayed out of the ledger.
	KindBalanceDrift = "balance_drift"
)

// Message describes a notification payload.
type Message struct {
	Kind    string
	Subject string
	Body    string
}

// Notifier delivers operational signals to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Warn("notification", "kind", message.Kind, "subject", message.Subject, "body", message.Body)
	return nil
}
