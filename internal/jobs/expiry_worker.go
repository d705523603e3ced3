package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/notify"
)

// ExpiryWorker scans for policies approaching their end date and
// notifies about each one.
type ExpiryWorker struct {
	BaseWorker
	policies core.PolicyRepo
	notifier notify.Notifier
	window   time.Duration
	clock    func() time.Time
}

// NewExpiryWorker creates a worker that checks for expiring policies.
func NewExpiryWorker(policies core.PolicyRepo, notifier notify.Notifier, window, interval time.Duration, log *slog.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		BaseWorker: NewBaseWorker("policy-expiry", interval, log),
		policies:   policies,
		notifier:   notifier,
		window:     window,
		clock:      time.Now,
	}
}

// Name returns the worker name.
func (w *ExpiryWorker) Name() string {
	return w.name
}

// Start begins the polling loop.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.Poll(ctx, w.processExpiring)
}

func (w *ExpiryWorker) processExpiring(ctx context.Context) error {
	now := w.clock()
	expiring, err := w.policies.FindExpiring(ctx, now, now.Add(w.window))
	if err != nil {
		return err
	}

	if len(expiring) == 0 {
		return nil
	}

	w.log.Info("found expiring policies", "count", len(expiring))

	for _, p := range expiring {
		daysLeft := int(p.EndDate.Sub(now).Hours() / 24)
		if err := w.notifier.PolicyExpiring(ctx, p, daysLeft); err != nil {
			w.log.Error("notify failed", "policy_number", p.Number, "err", err)
		}
	}
	return nil
}
