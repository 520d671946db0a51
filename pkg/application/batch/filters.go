package batch

import (
	"time"

	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	"go.mongodb.org/mongo-driver/bson"
)

// Candidate selection for the six checks. Every filter excludes records a
// previous run already handled, so running a check twice against the same
// data selects nothing the second time.

func attestationReminderFilter(now time.Time, cfg types.LifecycleConfig) bson.M {
	windowEnd := endOfDayUTC(now.AddDate(0, 0, cfg.Durations.Attestation.DaysToAttestation))
	return bson.M{
		"state":            types.APPLICATION_STATE_APPROVED,
		"attestedAtUtc":    bson.M{"$exists": false},
		"attestationByUtc": bson.M{"$lte": windowEnd},
		"emailNotifications.attestationRequiredNotificationSent": false,
	}
}

func pausePendingAttestationFilter(now time.Time) bson.M {
	return bson.M{
		"$or": []bson.M{
			{
				"state":            types.APPLICATION_STATE_APPROVED,
				"attestedAtUtc":    bson.M{"$exists": false},
				"attestationByUtc": bson.M{"$lte": now},
			},
			{
				// pause already applied but the notification still owed
				"state":       types.APPLICATION_STATE_PAUSED,
				"pauseReason": types.PAUSE_REASON_PENDING_ATTESTATION,
				"emailNotifications.applicationPausedNotificationSent": false,
			},
		},
	}
}

func expiryWarningFilter(now time.Time, daysBefore int, flagField string) bson.M {
	windowEnd := endOfDayUTC(now.AddDate(0, 0, daysBefore))
	return bson.M{
		"state": bson.M{"$in": []string{
			types.APPLICATION_STATE_APPROVED,
			types.APPLICATION_STATE_PAUSED,
		}},
		"expiresAtUtc": bson.M{"$gt": now, "$lte": windowEnd},
		flagField:      false,
	}
}

func expireApplicationsFilter(now time.Time) bson.M {
	return bson.M{
		"$or": []bson.M{
			{
				"state": bson.M{"$in": []string{
					types.APPLICATION_STATE_APPROVED,
					types.APPLICATION_STATE_PAUSED,
				}},
				"expiresAtUtc": bson.M{"$lte": endOfDayUTC(now)},
			},
			{
				"state": types.APPLICATION_STATE_EXPIRED,
				"emailNotifications.applicationExpiredNotificationSent": false,
			},
		},
	}
}

func closeUnsubmittedRenewalsFilter(now time.Time) bson.M {
	inProgressStates := []string{
		types.APPLICATION_STATE_DRAFT,
		types.APPLICATION_STATE_SIGN_AND_SUBMIT,
		types.APPLICATION_STATE_REVISIONS_REQUESTED,
	}
	return bson.M{
		"isRenewal":               true,
		"renewalPeriodEndDateUtc": bson.M{"$lt": now},
		"$or": []bson.M{
			{"state": bson.M{"$in": inProgressStates}},
			{
				"state":          types.APPLICATION_STATE_CLOSED,
				"submittedAtUtc": bson.M{"$exists": false},
				"emailNotifications.applicationClosedNotificationSent": false,
			},
		},
	}
}

func endOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, time.UTC)
}
