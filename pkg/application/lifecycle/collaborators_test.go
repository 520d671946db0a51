package lifecycle

import (
	"testing"
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

func testCollaborator(googleEmail string) appTypes.Collaborator {
	return appTypes.Collaborator{
		Type: appTypes.COLLABORATOR_TYPE_PERSONNEL,
		Info: appTypes.PersonalInfo{
			FirstName:          "Grace",
			LastName:           "Hopper",
			PrimaryAffiliation: "University of Example",
			PositionTitle:      "Research Associate",
			InstitutionEmail:   "grace@uni.example.org",
			GoogleEmail:        googleEmail,
		},
	}
}

func TestAddCollaborator(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("assigns a server side id", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		result, err := AddCollaborator(&app, testCollaborator("grace.hopper@gmail.com"), testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		list := result.Application.Sections.Collaborators.List
		if len(list) != 1 {
			t.Fatalf("expected one collaborator, got %d", len(list))
		}
		if list[0].ID == "" {
			t.Error("collaborator id should be assigned")
		}
		if len(app.Sections.Collaborators.List) != 0 {
			t.Error("input snapshot must not be mutated")
		}
	})

	t.Run("rejects the applicant's own email", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		_, err := AddCollaborator(&app, testCollaborator("ada.lovelace@gmail.com"), testSubmitter, now)
		conflict, ok := err.(*appTypes.ConflictError)
		if !ok {
			t.Fatalf("expected ConflictError, got %v", err)
		}
		if conflict.Code != appTypes.CONFLICT_CODE_COLLABORATOR_IS_APPLICANT {
			t.Errorf("unexpected conflict code %s", conflict.Code)
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		first, err := AddCollaborator(&app, testCollaborator("grace.hopper@gmail.com"), testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = AddCollaborator(&first.Application, testCollaborator("Grace.Hopper@gmail.com"), testSubmitter, now)
		conflict, ok := err.(*appTypes.ConflictError)
		if !ok {
			t.Fatalf("expected ConflictError, got %v", err)
		}
		if conflict.Code != appTypes.CONFLICT_CODE_DUPLICATE_COLLABORATOR {
			t.Errorf("unexpected conflict code %s", conflict.Code)
		}
		if len(first.Application.Sections.Collaborators.List) != 1 {
			t.Error("failed add must leave the list unchanged")
		}
	})

	t.Run("not permitted during review", func(t *testing.T) {
		app := reviewApplication(t, now)
		_, err := AddCollaborator(&app, testCollaborator("grace.hopper@gmail.com"), testSubmitter, now)
		if _, ok := err.(*appTypes.StateError); !ok {
			t.Errorf("expected StateError, got %v", err)
		}
	})

	t.Run("not permitted for admins", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		_, err := AddCollaborator(&app, testCollaborator("grace.hopper@gmail.com"), testAdmin, now)
		if _, ok := err.(*appTypes.ForbiddenError); !ok {
			t.Errorf("expected ForbiddenError, got %v", err)
		}
	})

	t.Run("resolves a collaborators revision request", func(t *testing.T) {
		app := reviewApplication(t, now)
		flagged, err := UpdateApplication(&app, &ApplicationUpdate{
			State: strPtr(appTypes.APPLICATION_STATE_REVISIONS_REQUESTED),
			RevisionRequests: appTypes.RevisionRequests{
				appTypes.REVISION_SECTION_COLLABORATORS: {Requested: true, Details: "collaborator affiliation is unclear"},
			},
		}, testAdmin, now, testConfig())
		if err != nil {
			t.Fatalf("unexpected error flagging collaborators: %v", err)
		}

		result, err := AddCollaborator(&flagged.Application, testCollaborator("grace.hopper@gmail.com"), testSubmitter, now.AddDate(0, 0, 2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		next := result.Application
		if next.State != appTypes.APPLICATION_STATE_SIGN_AND_SUBMIT {
			t.Errorf("expected SIGN AND SUBMIT after resolving the only flagged section, got %s", next.State)
		}
		if next.Sections.Collaborators.Meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("collaborators section should be COMPLETE again, got %s", next.Sections.Collaborators.Meta.Status)
		}
		if entry := next.RevisionRequests[appTypes.REVISION_SECTION_COLLABORATORS]; entry.Requested {
			t.Error("revision flag should be cleared")
		}
	})

	t.Run("permitted on an approved application", func(t *testing.T) {
		app := approvedApplication(t, now)
		_, err := AddCollaborator(&app, testCollaborator("grace.hopper@gmail.com"), testSubmitter, now.AddDate(0, 1, 0))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestUpdateCollaborator(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("replaces the entry", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		added, err := AddCollaborator(&app, testCollaborator("grace.hopper@gmail.com"), testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		changed := added.Application.Sections.Collaborators.List[0]
		changed.Info.PositionTitle = "Senior Research Associate"

		result, err := UpdateCollaborator(&added.Application, changed, testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := result.Application.Sections.Collaborators.List[0]
		if got.Info.PositionTitle != "Senior Research Associate" {
			t.Errorf("update not applied, got %q", got.Info.PositionTitle)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		missing := testCollaborator("grace.hopper@gmail.com")
		missing.ID = "no-such-id"
		_, err := UpdateCollaborator(&app, missing, testSubmitter, now)
		if _, ok := err.(*appTypes.NotFoundError); !ok {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})
}

func TestDeleteCollaborator(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("removes the entry", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		added, err := AddCollaborator(&app, testCollaborator("grace.hopper@gmail.com"), testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		id := added.Application.Sections.Collaborators.List[0].ID

		result, err := DeleteCollaborator(&added.Application, id, testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Application.Sections.Collaborators.List) != 0 {
			t.Errorf("expected empty list, got %d entries", len(result.Application.Sections.Collaborators.List))
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		_, err := DeleteCollaborator(&app, "no-such-id", testSubmitter, now)
		if _, ok := err.(*appTypes.NotFoundError); !ok {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})
}
