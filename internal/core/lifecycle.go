package core

import (
	"strings"
	"time"
)

// ExpiringSoonWindow is how close to the end date a policy is flagged as
// expiring soon.
const ExpiringSoonWindow = 30 * 24 * time.Hour

// ResolveStatus derives the effective status of a policy from its stored
// status, end date and the current time:
//
//	cancelled                      → cancelled (absorbing)
//	active, now > endDate          → expired
//	active, endDate − now < 30d    → expiring_soon
//	active otherwise               → active
func ResolveStatus(stored StoredStatus, endDate, now time.Time) EffectiveStatus {
	if stored == StoredStatusCancelled {
		return StatusCancelled
	}
	if now.After(endDate) {
		return StatusExpired
	}
	if endDate.Sub(now) < ExpiringSoonWindow {
		return StatusExpiringSoon
	}
	return StatusActive
}

// EffectiveStatus resolves the policy's status as of now.
func (p Policy) EffectiveStatus(now time.Time) EffectiveStatus {
	return ResolveStatus(p.Status, p.EndDate, now)
}

// Cancel applies the only legal explicit transition, active → cancelled, and
// records the mandatory reason. The policy is untouched on failure.
func (p *Policy) Cancel(reason string) error {
	if p.Status == StoredStatusCancelled {
		return ErrAlreadyCancelled
	}
	if strings.TrimSpace(reason) == "" {
		return ErrMissingReason
	}
	p.Status = StoredStatusCancelled
	p.Notes = reason
	return nil
}
