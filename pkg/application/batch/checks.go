package batch

import (
	"time"

	appService "github.com/icgc-argo/dac-api-sub000/pkg/application"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/lifecycle"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

const (
	CHECK_ATTESTATION_REMINDERS      = "attestation-reminders"
	CHECK_PAUSE_PENDING_ATTESTATION  = "pause-pending-attestation"
	CHECK_FIRST_EXPIRY_WARNINGS      = "first-expiry-warnings"
	CHECK_SECOND_EXPIRY_WARNINGS     = "second-expiry-warnings"
	CHECK_EXPIRE_APPLICATIONS        = "expire-applications"
	CHECK_CLOSE_UNSUBMITTED_RENEWALS = "close-unsubmitted-renewals"
)

// RunAllJobs executes the six scheduled checks sequentially against one
// fixed reference time. A failing check never prevents the following ones
// from running.
func RunAllJobs(now time.Time) []JobReport {
	return []JobReport{
		SendAttestationReminders(now),
		PausePendingAttestation(now),
		SendFirstExpiryWarnings(now),
		SendSecondExpiryWarnings(now),
		ExpireApplications(now),
		CloseUnsubmittedRenewals(now),
	}
}

// SendAttestationReminders notifies submitters whose attestation window has
// opened, once per approval period.
func SendAttestationReminders(now time.Time) JobReport {
	filter := attestationReminderFilter(now, lifecycleConfig)

	return runCheck(CHECK_ATTESTATION_REMINDERS, filter, func(app types.Application) error {
		appService.SendApplicationNotifications(&app, []string{lifecycle.NOTIFY_ATTESTATION_REQUIRED})
		app.EmailNotifications.AttestationRequiredNotificationSent = true
		_, err := applicationDBService.SaveApplicationWithVersion(app, app.Version)
		return err
	})
}

// PausePendingAttestation pauses approved applications whose attestation
// deadline has elapsed without an attestation.
func PausePendingAttestation(now time.Time) JobReport {
	filter := pausePendingAttestationFilter(now)

	return runCheck(CHECK_PAUSE_PENDING_ATTESTATION, filter, func(app types.Application) error {
		if app.State == types.APPLICATION_STATE_APPROVED {
			targetState := types.APPLICATION_STATE_PAUSED
			pauseReason := types.PAUSE_REASON_PENDING_ATTESTATION
			result, err := lifecycle.UpdateApplication(&app, &lifecycle.ApplicationUpdate{
				State:       &targetState,
				PauseReason: &pauseReason,
			}, types.SystemPrincipal{}, now, lifecycleConfig)
			if err != nil {
				return err
			}
			saved, err := applicationDBService.SaveApplicationWithVersion(result.Application, app.Version)
			if err != nil {
				return err
			}
			app = saved
		}

		if app.EmailNotifications.ApplicationPausedNotificationSent {
			return nil
		}
		appService.SendApplicationNotifications(&app, []string{lifecycle.NOTIFY_APPLICATION_PAUSED})
		app.EmailNotifications.ApplicationPausedNotificationSent = true
		_, err := applicationDBService.SaveApplicationWithVersion(app, app.Version)
		return err
	})
}

// SendFirstExpiryWarnings sends the early expiry warning once access enters
// the renewal window.
func SendFirstExpiryWarnings(now time.Time) JobReport {
	return sendExpiryWarnings(
		CHECK_FIRST_EXPIRY_WARNINGS,
		now,
		lifecycleConfig.Durations.Expiry.DaysToExpiry1,
		"emailNotifications.firstExpiryNotificationSent",
		lifecycle.NOTIFY_FIRST_EXPIRY_WARNING,
		func(app *types.Application) *bool { return &app.EmailNotifications.FirstExpiryNotificationSent },
	)
}

// SendSecondExpiryWarnings sends the late expiry warning shortly before the
// expiry date.
func SendSecondExpiryWarnings(now time.Time) JobReport {
	return sendExpiryWarnings(
		CHECK_SECOND_EXPIRY_WARNINGS,
		now,
		lifecycleConfig.Durations.Expiry.DaysToExpiry2,
		"emailNotifications.secondExpiryNotificationSent",
		lifecycle.NOTIFY_SECOND_EXPIRY_WARNING,
		func(app *types.Application) *bool { return &app.EmailNotifications.SecondExpiryNotificationSent },
	)
}

func sendExpiryWarnings(
	checkName string,
	now time.Time,
	daysBefore int,
	flagField string,
	messageType string,
	flag func(app *types.Application) *bool,
) JobReport {
	filter := expiryWarningFilter(now, daysBefore, flagField)

	return runCheck(checkName, filter, func(app types.Application) error {
		appService.SendApplicationNotifications(&app, []string{messageType})
		*flag(&app) = true
		_, err := applicationDBService.SaveApplicationWithVersion(app, app.Version)
		return err
	})
}

// ExpireApplications transitions approved and paused applications whose
// expiry date has passed.
func ExpireApplications(now time.Time) JobReport {
	filter := expireApplicationsFilter(now)

	return runCheck(CHECK_EXPIRE_APPLICATIONS, filter, func(app types.Application) error {
		if app.State != types.APPLICATION_STATE_EXPIRED {
			targetState := types.APPLICATION_STATE_EXPIRED
			result, err := lifecycle.UpdateApplication(&app, &lifecycle.ApplicationUpdate{
				State: &targetState,
			}, types.SystemPrincipal{}, now, lifecycleConfig)
			if err != nil {
				return err
			}
			saved, err := applicationDBService.SaveApplicationWithVersion(result.Application, app.Version)
			if err != nil {
				return err
			}
			app = saved
		}

		if app.EmailNotifications.ApplicationExpiredNotificationSent {
			return nil
		}
		appService.SendApplicationNotifications(&app, []string{lifecycle.NOTIFY_APPLICATION_EXPIRED})
		app.EmailNotifications.ApplicationExpiredNotificationSent = true
		_, err := applicationDBService.SaveApplicationWithVersion(app, app.Version)
		return err
	})
}

// CloseUnsubmittedRenewals closes renewal drafts whose renewal period ended
// without a submission.
func CloseUnsubmittedRenewals(now time.Time) JobReport {
	filter := closeUnsubmittedRenewalsFilter(now)

	return runCheck(CHECK_CLOSE_UNSUBMITTED_RENEWALS, filter, func(app types.Application) error {
		if app.State != types.APPLICATION_STATE_CLOSED {
			targetState := types.APPLICATION_STATE_CLOSED
			result, err := lifecycle.UpdateApplication(&app, &lifecycle.ApplicationUpdate{
				State: &targetState,
			}, types.SystemPrincipal{}, now, lifecycleConfig)
			if err != nil {
				return err
			}
			saved, err := applicationDBService.SaveApplicationWithVersion(result.Application, app.Version)
			if err != nil {
				return err
			}
			app = saved
		}

		if app.EmailNotifications.ApplicationClosedNotificationSent {
			return nil
		}
		appService.SendApplicationNotifications(&app, []string{lifecycle.NOTIFY_APPLICATION_CLOSED})
		app.EmailNotifications.ApplicationClosedNotificationSent = true
		_, err := applicationDBService.SaveApplicationWithVersion(app, app.Version)
		return err
	})
}
