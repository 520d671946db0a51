package lifecycle

import (
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

// Eligibility is computed on day granularity: all comparisons use start or
// end of day boundaries in UTC, so batch runs triggered at different times of
// the same day are deterministic.

func startOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

// IsAttestable reports whether the submitter can attest the application as of
// now. Attestation opens daysToAttestation days before the attestation
// anniversary (approval date plus the attestation period) and stays open
// until the application is attested.
func IsAttestable(app *appTypes.Application, cfg appTypes.LifecycleConfig, now time.Time) bool {
	if app.AttestedAtUtc != nil {
		return false
	}
	if app.State != appTypes.APPLICATION_STATE_APPROVED && app.State != appTypes.APPLICATION_STATE_PAUSED {
		return false
	}
	if app.ApprovedAtUtc == nil {
		return false
	}

	anniversary := cfg.Durations.Attestation.AddTo(*app.ApprovedAtUtc)
	windowStart := startOfDay(anniversary.AddDate(0, 0, -cfg.Durations.Attestation.DaysToAttestation))
	return !now.UTC().Before(windowStart)
}

// AttestationByUtc returns the attestation anniversary of an application, nil
// if it was never approved.
func AttestationByUtc(app *appTypes.Application, cfg appTypes.LifecycleConfig) *time.Time {
	if app.ApprovedAtUtc == nil {
		return nil
	}
	deadline := startOfDay(cfg.Durations.Attestation.AddTo(*app.ApprovedAtUtc))
	return &deadline
}

// IsRenewable reports whether a renewal can be created from the application
// as of now. The window opens daysToExpiry1 days before expiry and closes
// daysPostExpiry days after it. An application that already has a linked
// renewal is never renewable again.
func IsRenewable(app *appTypes.Application, cfg appTypes.LifecycleConfig, now time.Time) bool {
	if !app.EverApproved() || app.ExpiresAtUtc == nil {
		return false
	}
	if app.RenewalAppID != "" {
		return false
	}
	switch app.State {
	case appTypes.APPLICATION_STATE_APPROVED,
		appTypes.APPLICATION_STATE_PAUSED,
		appTypes.APPLICATION_STATE_EXPIRED:
	default:
		return false
	}

	windowStart := startOfDay(app.ExpiresAtUtc.AddDate(0, 0, -cfg.Durations.Expiry.DaysToExpiry1))
	windowEnd := endOfDay(app.ExpiresAtUtc.AddDate(0, 0, cfg.Durations.Expiry.DaysPostExpiry))
	ts := now.UTC()
	return !ts.Before(windowStart) && !ts.After(windowEnd)
}

// IsExpirable reports whether the access period has elapsed as of now.
func IsExpirable(app *appTypes.Application, now time.Time) bool {
	if !app.EverApproved() || app.ExpiresAtUtc == nil {
		return false
	}
	return !startOfDay(now).Before(startOfDay(*app.ExpiresAtUtc))
}

// ExpiresAtFromApproval computes the expiry date from an approval date and
// the configured access period.
func ExpiresAtFromApproval(approvedAt time.Time, cfg appTypes.LifecycleConfig) time.Time {
	return endOfDay(cfg.Durations.Expiry.AddTo(approvedAt))
}
