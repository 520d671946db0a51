package types

import "time"

// duration units accepted in lifecycle config
const (
	DURATION_UNIT_DAYS   = "days"
	DURATION_UNIT_MONTHS = "months"
	DURATION_UNIT_YEARS  = "years"
)

// DurationSpec is a count with a calendar unit.
type DurationSpec struct {
	Count int    `json:"count" yaml:"count"`
	Unit  string `json:"unit" yaml:"unit"`
}

// AddTo applies the duration to a reference time using calendar arithmetic.
func (d DurationSpec) AddTo(t time.Time) time.Time {
	switch d.Unit {
	case DURATION_UNIT_YEARS:
		return t.AddDate(d.Count, 0, 0)
	case DURATION_UNIT_MONTHS:
		return t.AddDate(0, d.Count, 0)
	default:
		return t.AddDate(0, 0, d.Count)
	}
}

// ExpiryDurations configures the access period and the day offsets used by
// the expiry related batch checks.
type ExpiryDurations struct {
	DurationSpec   `json:",inline" yaml:",inline"`
	DaysToExpiry1  int `json:"daysToExpiry1" yaml:"daysToExpiry1"`
	DaysToExpiry2  int `json:"daysToExpiry2" yaml:"daysToExpiry2"`
	DaysPostExpiry int `json:"daysPostExpiry" yaml:"daysPostExpiry"`
}

// AttestationDurations configures the attestation anniversary and the size of
// the window before it in which attestation becomes possible.
type AttestationDurations struct {
	DurationSpec      `json:",inline" yaml:",inline"`
	DaysToAttestation int `json:"daysToAttestation" yaml:"daysToAttestation"`
}

// LifecycleConfig is the immutable per-run configuration of the lifecycle
// rules. It is read once at startup and threaded as a parameter into every
// component that needs durations or feature flags.
type LifecycleConfig struct {
	Durations struct {
		Expiry      ExpiryDurations      `json:"expiry" yaml:"expiry"`
		Attestation AttestationDurations `json:"attestation" yaml:"attestation"`
	} `json:"durations" yaml:"durations"`

	FeatureFlags struct {
		RenewalEnabled    bool `json:"renewal_enabled" yaml:"renewal_enabled"`
		AdminPauseEnabled bool `json:"admin_pause_enabled" yaml:"admin_pause_enabled"`
	} `json:"feature_flags" yaml:"feature_flags"`
}

// DefaultLifecycleConfig returns the production defaults: two year access
// period, yearly attestation with a 45 day window, expiry warnings at 90 and
// 45 days before expiry and a 90 day post-expiry renewal period.
func DefaultLifecycleConfig() LifecycleConfig {
	cfg := LifecycleConfig{}
	cfg.Durations.Expiry = ExpiryDurations{
		DurationSpec:   DurationSpec{Count: 2, Unit: DURATION_UNIT_YEARS},
		DaysToExpiry1:  90,
		DaysToExpiry2:  45,
		DaysPostExpiry: 90,
	}
	cfg.Durations.Attestation = AttestationDurations{
		DurationSpec:      DurationSpec{Count: 1, Unit: DURATION_UNIT_YEARS},
		DaysToAttestation: 45,
	}
	cfg.FeatureFlags.RenewalEnabled = true
	cfg.FeatureFlags.AdminPauseEnabled = true
	return cfg
}
