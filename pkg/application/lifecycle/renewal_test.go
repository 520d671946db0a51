package lifecycle

import (
	"testing"
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

func TestBuildRenewal(t *testing.T) {
	approvedAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	renewedAt := time.Date(2028, 1, 20, 9, 0, 0, 0, time.UTC)

	t.Run("creates a linked renewal", func(t *testing.T) {
		source := approvedApplication(t, approvedAt)
		withEthics, err := UpdateApplication(&source, &ApplicationUpdate{
			EthicsLetter: &EthicsLetterUpdate{DeclaredAsRequired: boolPtr(true)},
		}, testSubmitter, approvedAt.AddDate(0, 1, 0), testConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		withDoc, err := AddDocument(&withEthics.Application, appTypes.UploadedDocument{
			ObjectID: "obj-ethics-1",
			Type:     appTypes.DOCUMENT_TYPE_ETHICS_LETTER,
			Name:     "ethics-approval.pdf",
		}, testSubmitter, approvedAt.AddDate(0, 1, 0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		source = withDoc.Application

		result, err := BuildRenewal(&source, 2000, testSubmitter, renewedAt, testConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		renewal := result.Renewal
		if !renewal.IsRenewal {
			t.Error("renewal flag should be set")
		}
		if renewal.SourceAppID != source.AppID {
			t.Errorf("sourceAppId should be %s, got %s", source.AppID, renewal.SourceAppID)
		}
		if renewal.State != appTypes.APPLICATION_STATE_DRAFT {
			t.Errorf("a renewal starts in DRAFT, got %s", renewal.State)
		}
		wantPeriodEnd := time.Date(2028, 4, 14, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
		if renewal.RenewalPeriodEndDateUtc == nil || !renewal.RenewalPeriodEndDateUtc.Equal(wantPeriodEnd) {
			t.Errorf("expected renewal period end %v, got %v", wantPeriodEnd, renewal.RenewalPeriodEndDateUtc)
		}

		if result.Source.RenewalAppID != renewal.AppID {
			t.Errorf("source should link the renewal, got %q", result.Source.RenewalAppID)
		}
		if source.RenewalAppID != "" {
			t.Error("input snapshot must not be mutated")
		}
		if len(result.Notifications) != 1 || result.Notifications[0] != NOTIFY_RENEWAL_CREATED {
			t.Errorf("expected renewal notification, got %v", result.Notifications)
		}

		if len(renewal.Documents) != 1 || renewal.Documents[0].Type != appTypes.DOCUMENT_TYPE_ETHICS_LETTER {
			t.Errorf("only the ethics letter should carry over, got %v", renewal.Documents)
		}
	})

	t.Run("carries sections over as complete", func(t *testing.T) {
		source := approvedApplication(t, approvedAt)
		result, err := BuildRenewal(&source, 2000, testSubmitter, renewedAt, testConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		renewal := result.Renewal

		if renewal.Sections.Applicant.Info.FirstName != source.Sections.Applicant.Info.FirstName {
			t.Error("applicant content should carry over")
		}
		if renewal.Sections.ProjectInfo.Title != source.Sections.ProjectInfo.Title {
			t.Error("project info content should carry over")
		}
		for name, status := range map[string]string{
			"applicant":      renewal.Sections.Applicant.Meta.Status,
			"representative": renewal.Sections.Representative.Meta.Status,
			"projectInfo":    renewal.Sections.ProjectInfo.Meta.Status,
			"ethicsLetter":   renewal.Sections.EthicsLetter.Meta.Status,
			"collaborators":  renewal.Sections.Collaborators.Meta.Status,
		} {
			if status != appTypes.SECTION_STATUS_COMPLETE {
				t.Errorf("carried section %s should be COMPLETE, got %s", name, status)
			}
		}
	})

	t.Run("agreements and signature start fresh", func(t *testing.T) {
		source := approvedApplication(t, approvedAt)
		result, err := BuildRenewal(&source, 2000, testSubmitter, renewedAt, testConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		renewal := result.Renewal

		for _, agreement := range renewal.Sections.DataAccessAgreement.Agreements {
			if agreement.Accepted {
				t.Errorf("agreement %s should not carry over as accepted", agreement.Name)
			}
		}
		if renewal.Sections.Signature.Meta.Status == appTypes.SECTION_STATUS_COMPLETE {
			t.Error("signature must be redone on a renewal")
		}
		for _, doc := range renewal.Documents {
			if doc.Type == appTypes.DOCUMENT_TYPE_SIGNED_APP {
				t.Error("the signed application document must not carry over")
			}
		}
	})

	t.Run("second renewal conflicts", func(t *testing.T) {
		source := approvedApplication(t, approvedAt)
		first, err := BuildRenewal(&source, 2000, testSubmitter, renewedAt, testConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = BuildRenewal(&first.Source, 2001, testSubmitter, renewedAt, testConfig())
		conflict, ok := err.(*appTypes.ConflictError)
		if !ok {
			t.Fatalf("expected ConflictError, got %v", err)
		}
		if conflict.Code != appTypes.CONFLICT_CODE_RENEWAL_EXISTS {
			t.Errorf("expected renewal exists code, got %s", conflict.Code)
		}
	})

	t.Run("outside the eligibility window", func(t *testing.T) {
		source := approvedApplication(t, approvedAt)
		_, err := BuildRenewal(&source, 2000, testSubmitter, time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC), testConfig())
		if _, ok := err.(*appTypes.StateError); !ok {
			t.Errorf("expected StateError, got %v", err)
		}
	})

	t.Run("with renewals disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.FeatureFlags.RenewalEnabled = false
		source := approvedApplication(t, approvedAt)
		_, err := BuildRenewal(&source, 2000, testSubmitter, renewedAt, cfg)
		if _, ok := err.(*appTypes.StateError); !ok {
			t.Errorf("expected StateError, got %v", err)
		}
	})

	t.Run("admin cannot renew", func(t *testing.T) {
		source := approvedApplication(t, approvedAt)
		_, err := BuildRenewal(&source, 2000, testAdmin, renewedAt, testConfig())
		if _, ok := err.(*appTypes.ForbiddenError); !ok {
			t.Errorf("expected ForbiddenError, got %v", err)
		}
	})
}
