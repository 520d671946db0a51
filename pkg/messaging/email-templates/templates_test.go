package emailtemplates

import (
	"strings"
	"testing"
)

func TestGenerateEmailContent(t *testing.T) {
	payload := map[string]string{
		"appId":         "DACO-1001",
		"applicantName": "Ada Lovelace",
		"expiresAt":     "2028-01-15",
		"portalUrl":     "https://daco.example.org",
	}

	t.Run("renders subject and body", func(t *testing.T) {
		subject, content, err := GenerateEmailContent("application-approved", payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(subject, "DACO-1001") {
			t.Errorf("subject should contain the app id: %s", subject)
		}
		if !strings.Contains(content, "Ada Lovelace") {
			t.Errorf("body should contain the applicant name")
		}
		if !strings.Contains(content, "2028-01-15") {
			t.Errorf("body should contain the expiry date")
		}
	})

	t.Run("unknown message type", func(t *testing.T) {
		_, _, err := GenerateEmailContent("no-such-message", payload)
		if err == nil {
			t.Error("should return error for unknown message type")
		}
	})

	t.Run("conditional denial reason", func(t *testing.T) {
		withReason := map[string]string{
			"appId":         "DACO-1001",
			"applicantName": "Ada Lovelace",
			"denialReason":  "scope of access not justified",
			"portalUrl":     "https://daco.example.org",
		}
		_, content, err := GenerateEmailContent("application-rejected", withReason)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(content, "scope of access not justified") {
			t.Error("body should contain the denial reason")
		}

		_, content, err = GenerateEmailContent("application-rejected", payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(content, "Reason:") {
			t.Error("body should omit the reason block when no reason is given")
		}
	})

	t.Run("every lifecycle notification has a template", func(t *testing.T) {
		for _, messageType := range []string{
			"application-submitted",
			"application-revisions-requested",
			"application-approved",
			"application-rejected",
			"application-attested",
			"attestation-required",
			"application-paused",
			"first-expiry-warning",
			"second-expiry-warning",
			"application-expired",
			"application-closed",
			"renewal-created",
		} {
			if !HasTemplate(messageType) {
				t.Errorf("missing template for %s", messageType)
			}
		}
	})
}
