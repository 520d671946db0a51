package lifecycle

import (
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

// RenewalResult is the output of BuildRenewal. Both applications must be
// persisted atomically: if either write fails, neither is visible.
type RenewalResult struct {
	Renewal       appTypes.Application
	Source        appTypes.Application
	Notifications []string
}

// BuildRenewal creates the linked renewal application from an approved
// source and updates the source's renewal linkage. Pure: persistence and the
// surrounding transaction are the caller's concern.
func BuildRenewal(
	source *appTypes.Application,
	renewalAppNumber int64,
	principal appTypes.Principal,
	now time.Time,
	cfg appTypes.LifecycleConfig,
) (*RenewalResult, error) {
	if principal.Role() != appTypes.ROLE_SUBMITTER {
		return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "renew the application"}
	}
	if !cfg.FeatureFlags.RenewalEnabled {
		return nil, &appTypes.StateError{State: source.State, Message: "renewals are disabled"}
	}
	if source.RenewalAppID != "" {
		return nil, &appTypes.ConflictError{
			Code:    appTypes.CONFLICT_CODE_RENEWAL_EXISTS,
			Message: "a renewal application already exists for " + source.AppID,
		}
	}
	if !IsRenewable(source, cfg, now) {
		return nil, &appTypes.StateError{State: source.State, Message: "renewal attempted outside the eligibility window"}
	}

	renewal := NewApplication(renewalAppNumber, source.SubmitterID, source.SubmitterEmail, now)
	renewal.IsRenewal = true
	renewal.SourceAppID = source.AppID

	renewalPeriodEnd := endOfDay(source.ExpiresAtUtc.AddDate(0, 0, cfg.Durations.Expiry.DaysPostExpiry))
	renewal.RenewalPeriodEndDateUtc = &renewalPeriodEnd

	copyCarriedSections(&renewal, source, now)
	renewal.RecomputeSearchValues()

	updatedSource := cloneApplication(source)
	updatedSource.RenewalAppID = renewal.AppID
	finalize(&updatedSource, principal, appTypes.EVENT_TYPE_RENEWED, now)

	return &RenewalResult{
		Renewal:       renewal,
		Source:        updatedSource,
		Notifications: []string{NOTIFY_RENEWAL_CREATED},
	}, nil
}

// copyCarriedSections copies the approved content that carries over into a
// renewal verbatim, marked complete. Agreements and the signature have to be
// redone, so those sections keep their fresh defaults.
func copyCarriedSections(renewal *appTypes.Application, source *appTypes.Application, now time.Time) {
	src := cloneApplication(source)

	renewal.Sections.Applicant = src.Sections.Applicant
	renewal.Sections.Representative = src.Sections.Representative
	renewal.Sections.ProjectInfo = src.Sections.ProjectInfo
	renewal.Sections.EthicsLetter = src.Sections.EthicsLetter
	renewal.Sections.Collaborators = src.Sections.Collaborators

	complete := appTypes.SectionMeta{Status: appTypes.SECTION_STATUS_COMPLETE, Errors: []appTypes.FieldError{}}
	stamped := stampMeta(complete, now)

	renewal.Sections.Applicant.Meta = stamped
	renewal.Sections.Representative.Meta = stamped
	renewal.Sections.ProjectInfo.Meta = stamped
	renewal.Sections.EthicsLetter.Meta = stamped
	renewal.Sections.Collaborators.Meta = stamped

	// ethics letter documents carry over as references
	for _, doc := range src.Documents {
		if doc.Type == appTypes.DOCUMENT_TYPE_ETHICS_LETTER {
			renewal.Documents = append(renewal.Documents, doc)
		}
	}
}
