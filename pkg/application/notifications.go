package application

import (
	"log/slog"
	"time"

	"github.com/icgc-argo/dac-api-sub000/pkg/application/lifecycle"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	emailsending "github.com/icgc-argo/dac-api-sub000/pkg/messaging/email-sending"
)

const notificationDateFormat = "January 2, 2006"

// SendApplicationNotifications dispatches the notification kinds produced by
// a transition. Failures are logged and never surfaced to the caller, the
// messaging job retries queued messages later.
func SendApplicationNotifications(app *types.Application, notifications []string) {
	for _, messageType := range notifications {
		payload := notificationPayload(app)
		to := notificationRecipients(app, messageType)
		if len(to) == 0 {
			slog.Warn("no recipients for notification", slog.String("appId", app.AppID), slog.String("messageType", messageType))
			continue
		}

		err := emailsending.SendInstantEmailByTemplate(
			app.AppID,
			to,
			messageType,
			payload,
			false,
		)
		if err != nil {
			slog.Error("failed to send notification",
				slog.String("appId", app.AppID),
				slog.String("messageType", messageType),
				slog.String("error", err.Error()))
		}
	}
}

func notificationPayload(app *types.Application) map[string]string {
	payload := map[string]string{
		"appId":         app.AppID,
		"applicantName": app.Sections.Applicant.Info.DisplayName(),
		"state":         app.State,
		"pauseReason":   app.PauseReason,
		"denialReason":  app.DenialReason,
		"sourceAppId":   app.SourceAppID,
	}
	if payload["applicantName"] == "" {
		payload["applicantName"] = "applicant"
	}
	if app.ExpiresAtUtc != nil {
		payload["expiresAt"] = formatNotificationDate(*app.ExpiresAtUtc)
	}
	if app.AttestationByUtc != nil {
		payload["attestationBy"] = formatNotificationDate(*app.AttestationByUtc)
	}
	if app.RenewalPeriodEndDateUtc != nil {
		payload["renewalPeriodEnd"] = formatNotificationDate(*app.RenewalPeriodEndDateUtc)
	}
	return payload
}

func formatNotificationDate(t time.Time) string {
	return t.UTC().Format(notificationDateFormat)
}

// notificationRecipients picks the addresses for one message kind. The
// submitter always hears about their application; reviewers additionally get
// the submission notice.
func notificationRecipients(app *types.Application, messageType string) []string {
	recipients := []string{}
	seen := map[string]bool{}

	addRecipient := func(address string) {
		if address == "" || seen[address] {
			return
		}
		seen[address] = true
		recipients = append(recipients, address)
	}

	addRecipient(app.SubmitterEmail)
	addRecipient(app.Sections.Applicant.Info.GoogleEmail)

	if messageType == lifecycle.NOTIFY_APPLICATION_SUBMITTED {
		for _, address := range adminRecipients {
			addRecipient(address)
		}
	}
	return recipients
}
