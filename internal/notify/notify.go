package notify

import (
	"go.uber.org/zap"

	"storefront-be/internal/logger"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier is the user-facing acknowledgment sink. State containers
// push display strings here ("Added to cart", "Removed from cart");
// what renders them is up to the wiring.
type Notifier interface {
	Notify(severity Severity, message string)
}

// Log forwards notifications to the application logger. It is the
// default sink on the server, where there is no toast surface.
type Log struct{}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Notify(severity Severity, message string) {
	switch severity {
	case SeverityError:
		logger.L().Warn("notification", zap.String("severity", string(severity)), zap.String("message", message))
	default:
		logger.L().Info("notification", zap.String("severity", string(severity)), zap.String("message", message))
	}
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) Notify(Severity, string) {}
