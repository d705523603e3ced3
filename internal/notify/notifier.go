package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
)

// Notifier is the delivery boundary for expiry reminders. Actual channels
// (email, SMS) live outside this service; they receive the computed values.
type Notifier interface {
	PolicyExpiring(ctx context.Context, policy core.Policy, daysLeft int) error
}

// LogNotifier writes reminders to the log. It stands in for a real delivery
// channel in development and tests.
type LogNotifier struct {
	Log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{Log: log}
}

func (n *LogNotifier) PolicyExpiring(_ context.Context, policy core.Policy, daysLeft int) error {
	n.Log.Info("policy expiring soon",
		"policy_number", policy.Number,
		"end_date", policy.EndDate.Format(time.DateOnly),
		"days_left", daysLeft,
	)
	return nil
}
