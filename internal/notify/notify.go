// Package notify carries the user-facing event taxonomy produced by the
// wallet core and consumed by the presentation layer.
package notify

import (
	"time"

	"go.uber.org/zap"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/logging"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a single user-facing event. Duration is a display hint.
type Notification struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Severity    Severity      `json:"severity"`
	Duration    time.Duration `json:"durationHint"`
}

// Notifier receives notifications as they are emitted.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the log. The default sink when no
// presentation layer is attached.
type LogNotifier struct {
	log *zap.SugaredLogger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logging.Named("notify")}
}

func (l *LogNotifier) Notify(n Notification) {
	if n.Severity == SeverityError {
		l.log.Errorw(n.Title, "description", n.Description)
		return
	}
	l.log.Infow(n.Title, "description", n.Description)
}
