package types

import (
	"testing"
	"time"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name string
		info PersonalInfo
		want string
	}{
		{"full name", PersonalInfo{FirstName: "Ada", MiddleName: "King", LastName: "Lovelace"}, "Ada King Lovelace"},
		{"no middle name", PersonalInfo{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"whitespace parts skipped", PersonalInfo{FirstName: " Ada ", MiddleName: "  ", LastName: "Lovelace"}, "Ada Lovelace"},
		{"empty", PersonalInfo{}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.info.DisplayName(); got != c.want {
				t.Errorf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestRecomputeSearchValues(t *testing.T) {
	app := Application{
		AppID: "DACO-1001",
		State: APPLICATION_STATE_APPROVED,
	}
	app.Sections.Applicant.Info = PersonalInfo{
		FirstName:          "Ada",
		LastName:           "Lovelace",
		GoogleEmail:        "Ada.Lovelace@gmail.com",
		PrimaryAffiliation: "University of Example",
	}
	app.Sections.ProjectInfo.Title = "Somatic mutation signatures"

	app.RecomputeSearchValues()

	want := []string{
		"daco-1001",
		"approved",
		"ada lovelace",
		"ada.lovelace@gmail.com",
		"university of example",
		"somatic mutation signatures",
	}
	if len(app.SearchValues) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), app.SearchValues)
	}
	for i, token := range want {
		if app.SearchValues[i] != token {
			t.Errorf("token %d: expected %q, got %q", i, token, app.SearchValues[i])
		}
	}

	t.Run("duplicates collapse", func(t *testing.T) {
		dup := Application{AppID: "daco-1", State: "DACO-1"}
		dup.RecomputeSearchValues()
		if len(dup.SearchValues) != 1 {
			t.Errorf("expected one token, got %v", dup.SearchValues)
		}
	})

	t.Run("empty fields are skipped", func(t *testing.T) {
		empty := Application{}
		empty.RecomputeSearchValues()
		if len(empty.SearchValues) != 0 {
			t.Errorf("expected no tokens, got %v", empty.SearchValues)
		}
	})
}

func TestRevisionRequestsHasRequested(t *testing.T) {
	t.Run("empty map", func(t *testing.T) {
		if (RevisionRequests{}).HasRequested() {
			t.Error("empty map should not report requested")
		}
	})

	t.Run("unflagged entries only", func(t *testing.T) {
		rr := RevisionRequests{REVISION_SECTION_APPLICANT: {Details: "old note"}}
		if rr.HasRequested() {
			t.Error("unflagged entries should not report requested")
		}
	})

	t.Run("one flagged entry", func(t *testing.T) {
		rr := RevisionRequests{
			REVISION_SECTION_APPLICANT:    {},
			REVISION_SECTION_PROJECT_INFO: {Requested: true, Details: "expand the aims"},
		}
		if !rr.HasRequested() {
			t.Error("a flagged entry should report requested")
		}
	})
}

func TestDurationSpecAddTo(t *testing.T) {
	ref := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		spec DurationSpec
		want time.Time
	}{
		{"two years", DurationSpec{Count: 2, Unit: DURATION_UNIT_YEARS}, time.Date(2028, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"three months", DurationSpec{Count: 3, Unit: DURATION_UNIT_MONTHS}, time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)},
		{"ninety days", DurationSpec{Count: 90, Unit: DURATION_UNIT_DAYS}, time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.spec.AddTo(ref); !got.Equal(c.want) {
				t.Errorf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestNewUpdateEvent(t *testing.T) {
	author := EventAuthor{ID: "user-1", Role: ROLE_SUBMITTER}

	t.Run("first event has zero days elapsed", func(t *testing.T) {
		app := Application{State: APPLICATION_STATE_DRAFT}
		event := NewUpdateEvent(&app, author, EVENT_TYPE_CREATED, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
		if event.DaysElapsed != 0 {
			t.Errorf("expected 0 days elapsed, got %d", event.DaysElapsed)
		}
		if event.Snapshot.AppType != "NEW" {
			t.Errorf("expected NEW app type, got %s", event.Snapshot.AppType)
		}
	})

	t.Run("days elapsed since the previous event", func(t *testing.T) {
		app := Application{State: APPLICATION_STATE_REVIEW}
		app.UpdateEvents = []UpdateEvent{
			{EventType: EVENT_TYPE_SUBMITTED, Date: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)},
		}
		event := NewUpdateEvent(&app, author, EVENT_TYPE_APPROVED, time.Date(2026, 1, 22, 10, 0, 0, 0, time.UTC))
		if event.DaysElapsed != 7 {
			t.Errorf("expected 7 days elapsed, got %d", event.DaysElapsed)
		}
	})

	t.Run("renewal app type", func(t *testing.T) {
		app := Application{State: APPLICATION_STATE_DRAFT, IsRenewal: true}
		event := NewUpdateEvent(&app, author, EVENT_TYPE_CREATED, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
		if event.Snapshot.AppType != "RENEWAL" {
			t.Errorf("expected RENEWAL app type, got %s", event.Snapshot.AppType)
		}
	})
}

func TestCurrentApprovedPackage(t *testing.T) {
	t.Run("none attached", func(t *testing.T) {
		app := Application{}
		if app.CurrentApprovedPackage() != nil {
			t.Error("expected nil without documents")
		}
	})

	t.Run("one current among snapshots", func(t *testing.T) {
		app := Application{Documents: []UploadedDocument{
			{ObjectID: "pkg-1", Type: DOCUMENT_TYPE_APPROVED_PACKAGE},
			{ObjectID: "pkg-2", Type: DOCUMENT_TYPE_APPROVED_PACKAGE, IsCurrent: true},
			{ObjectID: "ethics-1", Type: DOCUMENT_TYPE_ETHICS_LETTER},
		}}
		got := app.CurrentApprovedPackage()
		if got == nil || got.ObjectID != "pkg-2" {
			t.Errorf("expected pkg-2, got %v", got)
		}
	})
}

func TestDocumentsOfType(t *testing.T) {
	app := Application{Documents: []UploadedDocument{
		{ObjectID: "ethics-1", Type: DOCUMENT_TYPE_ETHICS_LETTER},
		{ObjectID: "signed-1", Type: DOCUMENT_TYPE_SIGNED_APP},
		{ObjectID: "ethics-2", Type: DOCUMENT_TYPE_ETHICS_LETTER},
	}}
	ids := app.DocumentsOfType(DOCUMENT_TYPE_ETHICS_LETTER)
	if len(ids) != 2 || ids[0] != "ethics-1" || ids[1] != "ethics-2" {
		t.Errorf("unexpected ids %v", ids)
	}
}
