package lifecycle

import (
	"testing"
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

func TestAddDocument(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("signed document completes the signature section", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		result, err := AddDocument(&app, appTypes.UploadedDocument{
			ObjectID: "obj-signed-1",
			Type:     appTypes.DOCUMENT_TYPE_SIGNED_APP,
			Name:     "signed-application.pdf",
		}, testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Application.Sections.Signature.Meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("signature section should be COMPLETE, got %s", result.Application.Sections.Signature.Meta.Status)
		}
		if len(result.DocumentsToDelete) != 0 {
			t.Errorf("nothing to clean up on first upload, got %v", result.DocumentsToDelete)
		}
	})

	t.Run("new signed document replaces the previous one", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		first, err := AddDocument(&app, appTypes.UploadedDocument{
			ObjectID: "obj-signed-1",
			Type:     appTypes.DOCUMENT_TYPE_SIGNED_APP,
			Name:     "signed-application.pdf",
		}, testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := AddDocument(&first.Application, appTypes.UploadedDocument{
			ObjectID: "obj-signed-2",
			Type:     appTypes.DOCUMENT_TYPE_SIGNED_APP,
			Name:     "signed-application-v2.pdf",
		}, testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		signed := []string{}
		for _, doc := range second.Application.Documents {
			if doc.Type == appTypes.DOCUMENT_TYPE_SIGNED_APP {
				signed = append(signed, doc.ObjectID)
			}
		}
		if len(signed) != 1 || signed[0] != "obj-signed-2" {
			t.Errorf("expected only the new signed document, got %v", signed)
		}
		if len(second.DocumentsToDelete) != 1 || second.DocumentsToDelete[0] != "obj-signed-1" {
			t.Errorf("replaced document should be a cleanup candidate, got %v", second.DocumentsToDelete)
		}
	})

	t.Run("approved package snapshots keep one current", func(t *testing.T) {
		app := approvedApplication(t, now)
		first, err := AddDocument(&app, appTypes.UploadedDocument{
			ObjectID: "obj-pkg-1",
			Type:     appTypes.DOCUMENT_TYPE_APPROVED_PACKAGE,
			Name:     "approved-package.pdf",
		}, testAdmin, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := AddDocument(&first.Application, appTypes.UploadedDocument{
			ObjectID: "obj-pkg-2",
			Type:     appTypes.DOCUMENT_TYPE_APPROVED_PACKAGE,
			Name:     "approved-package-v2.pdf",
		}, testAdmin, now.AddDate(0, 0, 1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		current := []string{}
		packages := 0
		for _, doc := range second.Application.Documents {
			if doc.Type != appTypes.DOCUMENT_TYPE_APPROVED_PACKAGE {
				continue
			}
			packages++
			if doc.IsCurrent {
				current = append(current, doc.ObjectID)
			}
		}
		if packages != 2 {
			t.Errorf("both snapshots should be kept, got %d", packages)
		}
		if len(current) != 1 || current[0] != "obj-pkg-2" {
			t.Errorf("only the newest snapshot should be current, got %v", current)
		}
		if len(second.DocumentsToDelete) != 0 {
			t.Errorf("snapshots are never cleanup candidates, got %v", second.DocumentsToDelete)
		}
	})

	t.Run("approved package is admin only", func(t *testing.T) {
		app := approvedApplication(t, now)
		_, err := AddDocument(&app, appTypes.UploadedDocument{
			ObjectID: "obj-pkg-1",
			Type:     appTypes.DOCUMENT_TYPE_APPROVED_PACKAGE,
			Name:     "approved-package.pdf",
		}, testSubmitter, now)
		if _, ok := err.(*appTypes.ForbiddenError); !ok {
			t.Errorf("expected ForbiddenError, got %v", err)
		}
	})

	t.Run("signed document cannot be attached to a draft", func(t *testing.T) {
		app := draftApplication(now)
		_, err := AddDocument(&app, appTypes.UploadedDocument{
			ObjectID: "obj-signed-1",
			Type:     appTypes.DOCUMENT_TYPE_SIGNED_APP,
			Name:     "signed-application.pdf",
		}, testSubmitter, now)
		if _, ok := err.(*appTypes.StateError); !ok {
			t.Errorf("expected StateError, got %v", err)
		}
	})

	t.Run("ethics letter document moves a completed draft forward", func(t *testing.T) {
		app := draftApplication(now)
		upd := completeSectionsUpdate()
		upd.EthicsLetter = &EthicsLetterUpdate{DeclaredAsRequired: boolPtr(true)}
		partial, err := UpdateApplication(&app, upd, testSubmitter, now, testConfig())
		if err != nil {
			t.Fatalf("unexpected error completing sections: %v", err)
		}
		if partial.Application.State != appTypes.APPLICATION_STATE_DRAFT {
			t.Fatalf("ethics letter still missing, expected DRAFT, got %s", partial.Application.State)
		}

		result, err := AddDocument(&partial.Application, appTypes.UploadedDocument{
			ObjectID: "obj-ethics-1",
			Type:     appTypes.DOCUMENT_TYPE_ETHICS_LETTER,
			Name:     "ethics-letter.pdf",
		}, testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Application.Sections.EthicsLetter.Meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("ethics letter section should be COMPLETE, got %s", result.Application.Sections.EthicsLetter.Meta.Status)
		}
		if result.Application.State != appTypes.APPLICATION_STATE_SIGN_AND_SUBMIT {
			t.Errorf("expected SIGN AND SUBMIT once the last section completed, got %s", result.Application.State)
		}
	})

	t.Run("signed document resolves a signature revision request", func(t *testing.T) {
		app := reviewApplication(t, now)
		flagged, err := UpdateApplication(&app, &ApplicationUpdate{
			State: strPtr(appTypes.APPLICATION_STATE_REVISIONS_REQUESTED),
			RevisionRequests: appTypes.RevisionRequests{
				appTypes.REVISION_SECTION_SIGNATURE: {Requested: true, Details: "signature page is missing a date"},
			},
		}, testAdmin, now, testConfig())
		if err != nil {
			t.Fatalf("unexpected error flagging signature: %v", err)
		}

		result, err := AddDocument(&flagged.Application, appTypes.UploadedDocument{
			ObjectID: "obj-signed-2",
			Type:     appTypes.DOCUMENT_TYPE_SIGNED_APP,
			Name:     "signed-application-v2.pdf",
		}, testSubmitter, now.AddDate(0, 0, 2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		next := result.Application
		if next.State != appTypes.APPLICATION_STATE_SIGN_AND_SUBMIT {
			t.Errorf("expected SIGN AND SUBMIT after resolving the only flagged section, got %s", next.State)
		}
		if next.Sections.Signature.Meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("signature section should be COMPLETE again, got %s", next.Sections.Signature.Meta.Status)
		}
		if entry := next.RevisionRequests[appTypes.REVISION_SECTION_SIGNATURE]; entry.Requested {
			t.Error("revision flag should be cleared")
		}
	})

	t.Run("ethics letter can be attached after approval", func(t *testing.T) {
		app := approvedApplication(t, now)
		result, err := AddDocument(&app, appTypes.UploadedDocument{
			ObjectID: "obj-ethics-1",
			Type:     appTypes.DOCUMENT_TYPE_ETHICS_LETTER,
			Name:     "ethics-approval.pdf",
		}, testSubmitter, now.AddDate(0, 1, 0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Application.State != appTypes.APPLICATION_STATE_APPROVED {
			t.Errorf("state should stay APPROVED, got %s", result.Application.State)
		}
	})
}

func TestDeleteDocument(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("removes the reference and reports the object", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		added, err := AddDocument(&app, appTypes.UploadedDocument{
			ObjectID: "obj-signed-1",
			Type:     appTypes.DOCUMENT_TYPE_SIGNED_APP,
			Name:     "signed-application.pdf",
		}, testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := DeleteDocument(&added.Application, "obj-signed-1", testSubmitter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Application.Documents) != 0 {
			t.Errorf("expected no documents, got %d", len(result.Application.Documents))
		}
		if len(result.DocumentsToDelete) != 1 || result.DocumentsToDelete[0] != "obj-signed-1" {
			t.Errorf("deleted object should be reported, got %v", result.DocumentsToDelete)
		}
		if result.Application.Sections.Signature.Meta.Status == appTypes.SECTION_STATUS_COMPLETE {
			t.Error("signature section should no longer be COMPLETE")
		}
	})

	t.Run("unknown object is not found", func(t *testing.T) {
		app := signAndSubmitApplication(t, now)
		_, err := DeleteDocument(&app, "no-such-object", testSubmitter, now)
		if _, ok := err.(*appTypes.NotFoundError); !ok {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})
}
