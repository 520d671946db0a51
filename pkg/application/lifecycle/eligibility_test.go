package lifecycle

import (
	"testing"
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

func TestIsAttestable(t *testing.T) {
	approvedAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	app := approvedApplication(t, approvedAt)
	cfg := testConfig()

	t.Run("before the window opens", func(t *testing.T) {
		if IsAttestable(&app, cfg, time.Date(2026, 11, 30, 23, 0, 0, 0, time.UTC)) {
			t.Error("should not be attestable before the window opens")
		}
	})

	t.Run("on the first day of the window", func(t *testing.T) {
		if !IsAttestable(&app, cfg, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("should be attestable on the first day of the window")
		}
	})

	t.Run("after the deadline while unattested", func(t *testing.T) {
		if !IsAttestable(&app, cfg, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("window stays open until attestation")
		}
	})

	t.Run("already attested", func(t *testing.T) {
		attested := cloneApplication(&app)
		attestedAt := time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC)
		attested.AttestedAtUtc = &attestedAt
		if IsAttestable(&attested, cfg, time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC)) {
			t.Error("an attested application is not attestable again")
		}
	})

	t.Run("paused application", func(t *testing.T) {
		paused := cloneApplication(&app)
		paused.State = appTypes.APPLICATION_STATE_PAUSED
		if !IsAttestable(&paused, cfg, time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("a paused application should be attestable")
		}
	})

	t.Run("never approved", func(t *testing.T) {
		draft := draftApplication(approvedAt)
		if IsAttestable(&draft, cfg, time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC)) {
			t.Error("a draft is never attestable")
		}
	})
}

func TestAttestationDeadline(t *testing.T) {
	approvedAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	app := approvedApplication(t, approvedAt)

	deadline := AttestationByUtc(&app, testConfig())
	want := time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)
	if deadline == nil || !deadline.Equal(want) {
		t.Errorf("expected deadline %v, got %v", want, deadline)
	}

	draft := draftApplication(approvedAt)
	if AttestationByUtc(&draft, testConfig()) != nil {
		t.Error("an unapproved application has no attestation deadline")
	}
}

func TestIsRenewable(t *testing.T) {
	approvedAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	app := approvedApplication(t, approvedAt)
	cfg := testConfig()

	// expiry falls on 2028-01-15; the window runs from 90 days before to
	// 90 days after it
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before the window", time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"day before the window opens", time.Date(2027, 10, 16, 23, 0, 0, 0, time.UTC), false},
		{"first day of the window", time.Date(2027, 10, 17, 0, 0, 0, 0, time.UTC), true},
		{"on the expiry day", time.Date(2028, 1, 15, 12, 0, 0, 0, time.UTC), true},
		{"twenty days past expiry", time.Date(2028, 2, 4, 12, 0, 0, 0, time.UTC), true},
		{"last day of the window", time.Date(2028, 4, 14, 23, 0, 0, 0, time.UTC), true},
		{"after the window closes", time.Date(2028, 4, 15, 0, 0, 0, 0, time.UTC), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsRenewable(&app, cfg, c.now); got != c.want {
				t.Errorf("at %v expected %v, got %v", c.now, c.want, got)
			}
		})
	}

	t.Run("with a linked renewal", func(t *testing.T) {
		linked := cloneApplication(&app)
		linked.RenewalAppID = "DACO-2000"
		if IsRenewable(&linked, cfg, time.Date(2028, 1, 15, 12, 0, 0, 0, time.UTC)) {
			t.Error("an application with a renewal is not renewable again")
		}
	})

	t.Run("in expired state", func(t *testing.T) {
		expired := cloneApplication(&app)
		expired.State = appTypes.APPLICATION_STATE_EXPIRED
		if !IsRenewable(&expired, cfg, time.Date(2028, 2, 1, 12, 0, 0, 0, time.UTC)) {
			t.Error("an expired application inside the window should be renewable")
		}
	})

	t.Run("in rejected state", func(t *testing.T) {
		rejected := cloneApplication(&app)
		rejected.State = appTypes.APPLICATION_STATE_REJECTED
		if IsRenewable(&rejected, cfg, time.Date(2028, 1, 15, 12, 0, 0, 0, time.UTC)) {
			t.Error("a rejected application is not renewable")
		}
	})
}

func TestIsExpirable(t *testing.T) {
	approvedAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	app := approvedApplication(t, approvedAt)

	t.Run("before the expiry day", func(t *testing.T) {
		if IsExpirable(&app, time.Date(2028, 1, 14, 23, 59, 0, 0, time.UTC)) {
			t.Error("should not be expirable before the expiry day")
		}
	})

	t.Run("on the expiry day", func(t *testing.T) {
		if !IsExpirable(&app, time.Date(2028, 1, 15, 0, 0, 1, 0, time.UTC)) {
			t.Error("should be expirable on the expiry day")
		}
	})

	t.Run("never approved", func(t *testing.T) {
		draft := draftApplication(approvedAt)
		if IsExpirable(&draft, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("a draft is never expirable")
		}
	})
}

func TestExpiresAtFromApproval(t *testing.T) {
	approvedAt := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	got := ExpiresAtFromApproval(approvedAt, testConfig())
	want := time.Date(2028, 1, 15, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
