package lifecycle

import (
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

// notification kinds a transition can emit; dispatching them is the service
// layer's concern and never blocks the state write
const (
	NOTIFY_APPLICATION_SUBMITTED = "application-submitted"
	NOTIFY_REVISIONS_REQUESTED   = "application-revisions-requested"
	NOTIFY_APPLICATION_APPROVED  = "application-approved"
	NOTIFY_APPLICATION_REJECTED  = "application-rejected"
	NOTIFY_ATTESTATION_RECEIVED  = "application-attested"
	NOTIFY_ATTESTATION_REQUIRED  = "attestation-required"
	NOTIFY_APPLICATION_PAUSED    = "application-paused"
	NOTIFY_FIRST_EXPIRY_WARNING  = "first-expiry-warning"
	NOTIFY_SECOND_EXPIRY_WARNING = "second-expiry-warning"
	NOTIFY_APPLICATION_EXPIRED   = "application-expired"
	NOTIFY_APPLICATION_CLOSED    = "application-closed"
	NOTIFY_RENEWAL_CREATED       = "renewal-created"
)

// Result is the outcome of a successful transition. DocumentsToDelete lists
// object ids that became orphaned; the deletion I/O itself happens outside
// the pure core, best effort.
type Result struct {
	Application       appTypes.Application
	Notifications     []string
	DocumentsToDelete []string
}

// UpdateApplication applies a partial update to the application snapshot and
// returns the next snapshot, or a typed error if any guard fails. The input
// snapshot is never modified: on error nothing is partially mutated.
func UpdateApplication(
	current *appTypes.Application,
	update *ApplicationUpdate,
	principal appTypes.Principal,
	now time.Time,
	cfg appTypes.LifecycleConfig,
) (*Result, error) {
	if current.State == appTypes.APPLICATION_STATE_CLOSED {
		return nil, &appTypes.StateError{State: current.State, Message: "application is closed, no further updates are permitted"}
	}

	next := cloneApplication(current)

	switch current.State {
	case appTypes.APPLICATION_STATE_DRAFT,
		appTypes.APPLICATION_STATE_REVISIONS_REQUESTED:
		return updateInProgress(&next, update, principal, now, cfg)
	case appTypes.APPLICATION_STATE_SIGN_AND_SUBMIT:
		return updateSignAndSubmit(&next, update, principal, now, cfg)
	case appTypes.APPLICATION_STATE_REVIEW:
		return applyReviewerDecision(&next, update, principal, now, cfg)
	case appTypes.APPLICATION_STATE_APPROVED:
		return updateApproved(&next, update, principal, now, cfg)
	case appTypes.APPLICATION_STATE_PAUSED:
		return updatePaused(&next, update, principal, now, cfg)
	case appTypes.APPLICATION_STATE_EXPIRED:
		return updateExpired(&next, update, principal, now)
	default:
		return nil, &appTypes.StateError{State: current.State, Message: "no updates are permitted in this state"}
	}
}

// updateInProgress handles DRAFT and REVISIONS REQUESTED: broad section
// edits, automatic progression to SIGN AND SUBMIT, and the system close of
// renewals left unsubmitted past their deadline.
func updateInProgress(next *appTypes.Application, update *ApplicationUpdate, principal appTypes.Principal, now time.Time, cfg appTypes.LifecycleConfig) (*Result, error) {
	if update.State != nil {
		if *update.State == appTypes.APPLICATION_STATE_CLOSED {
			return closeUnsubmittedRenewal(next, principal, now)
		}
		return nil, &appTypes.StateError{State: next.State, Message: "state cannot be set directly from " + next.State}
	}

	if principal.Role() != appTypes.ROLE_SUBMITTER {
		return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "edit application sections"}
	}
	if !update.hasSectionUpdates() {
		return nil, &appTypes.StateError{State: next.State, Message: "update contains no applicable changes"}
	}

	edited := applySectionUpdates(next, update, now)
	revalidateSections(next, edited, now)
	progressToSignAndSubmit(next, edited)

	finalize(next, principal, appTypes.EVENT_TYPE_UPDATED, now)
	return &Result{Application: *next}, nil
}

// progressToSignAndSubmit advances a DRAFT or REVISIONS REQUESTED
// application once every required section is satisfied. Any operation that
// can change section completeness goes through here, document attachment
// and collaborator edits included.
func progressToSignAndSubmit(next *appTypes.Application, edited map[string]bool) {
	if next.State != appTypes.APPLICATION_STATE_DRAFT &&
		next.State != appTypes.APPLICATION_STATE_REVISIONS_REQUESTED {
		return
	}

	wasRevisions := next.State == appTypes.APPLICATION_STATE_REVISIONS_REQUESTED
	if wasRevisions {
		markRevisionsMade(next, edited)
	}

	if !requiredSectionsSatisfied(next) {
		return
	}

	next.State = appTypes.APPLICATION_STATE_SIGN_AND_SUBMIT
	if next.Sections.Collaborators.Meta.Status == appTypes.SECTION_STATUS_PRISTINE {
		next.Sections.Collaborators.Meta.Status = appTypes.SECTION_STATUS_COMPLETE
	}
	if wasRevisions {
		clearRevisionRequests(next)
	}
}

// updateSignAndSubmit only allows the submit transition; the signature
// section itself changes through document attachment.
func updateSignAndSubmit(next *appTypes.Application, update *ApplicationUpdate, principal appTypes.Principal, now time.Time, cfg appTypes.LifecycleConfig) (*Result, error) {
	if update.State == nil {
		return nil, &appTypes.StateError{State: next.State, Message: "only submission is possible in this state"}
	}

	switch *update.State {
	case appTypes.APPLICATION_STATE_CLOSED:
		return closeUnsubmittedRenewal(next, principal, now)
	case appTypes.APPLICATION_STATE_REVIEW:
		if principal.Role() != appTypes.ROLE_SUBMITTER {
			return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "submit the application"}
		}
		if next.Sections.Signature.Meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			return nil, &appTypes.StateError{State: next.State, Message: "signed application document must be attached before submission"}
		}
		next.State = appTypes.APPLICATION_STATE_REVIEW
		next.SubmittedAtUtc = &now
		finalize(next, principal, appTypes.EVENT_TYPE_SUBMITTED, now)
		return &Result{Application: *next, Notifications: []string{NOTIFY_APPLICATION_SUBMITTED}}, nil
	default:
		return nil, &appTypes.StateError{State: next.State, Message: "transition to " + *update.State + " is not valid"}
	}
}

// applyReviewerDecision handles the three REVIEW outcomes, all gated on the
// ADMIN role.
func applyReviewerDecision(next *appTypes.Application, update *ApplicationUpdate, principal appTypes.Principal, now time.Time, cfg appTypes.LifecycleConfig) (*Result, error) {
	if principal.Role() != appTypes.ROLE_ADMIN {
		return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "review the application"}
	}
	if update.State == nil {
		return nil, &appTypes.StateError{State: next.State, Message: "a reviewer decision requires a target state"}
	}

	switch *update.State {
	case appTypes.APPLICATION_STATE_APPROVED:
		approvedAt := now
		next.State = appTypes.APPLICATION_STATE_APPROVED
		next.ApprovedAtUtc = &approvedAt

		expiresAt := ExpiresAtFromApproval(approvedAt, cfg)
		if update.CustomExpiresAtUtc != nil {
			expiresAt = endOfDay(*update.CustomExpiresAtUtc)
		}
		next.ExpiresAtUtc = &expiresAt
		next.AttestationByUtc = AttestationByUtc(next, cfg)

		finalize(next, principal, appTypes.EVENT_TYPE_APPROVED, now)
		return &Result{Application: *next, Notifications: []string{NOTIFY_APPLICATION_APPROVED}}, nil

	case appTypes.APPLICATION_STATE_REJECTED:
		if update.DenialReason == nil || *update.DenialReason == "" {
			return nil, &appTypes.ValidationError{
				Section: "general",
				Errors:  []appTypes.FieldError{{Field: "denialReason", Message: "a denial reason is required to reject"}},
			}
		}
		next.State = appTypes.APPLICATION_STATE_REJECTED
		next.DenialReason = *update.DenialReason
		finalize(next, principal, appTypes.EVENT_TYPE_REJECTED, now)
		return &Result{Application: *next, Notifications: []string{NOTIFY_APPLICATION_REJECTED}}, nil

	case appTypes.APPLICATION_STATE_REVISIONS_REQUESTED:
		if err := validateRevisionRequests(update.RevisionRequests); err != nil {
			return nil, err
		}
		next.State = appTypes.APPLICATION_STATE_REVISIONS_REQUESTED
		applyRevisionRequests(next, update.RevisionRequests)
		finalize(next, principal, appTypes.EVENT_TYPE_REVISIONS_REQUESTED, now)
		return &Result{Application: *next, Notifications: []string{NOTIFY_REVISIONS_REQUESTED}}, nil

	default:
		return nil, &appTypes.StateError{State: next.State, Message: "reviewer cannot set state " + *update.State}
	}
}

func updateApproved(next *appTypes.Application, update *ApplicationUpdate, principal appTypes.Principal, now time.Time, cfg appTypes.LifecycleConfig) (*Result, error) {
	if update.State != nil {
		switch *update.State {
		case appTypes.APPLICATION_STATE_PAUSED:
			return pauseApplication(next, update, principal, now, cfg)
		case appTypes.APPLICATION_STATE_EXPIRED:
			return expireApplication(next, principal, now)
		case appTypes.APPLICATION_STATE_CLOSED:
			return closeApprovedApplication(next, principal, now)
		default:
			return nil, &appTypes.StateError{State: next.State, Message: "transition to " + *update.State + " is not valid"}
		}
	}

	if update.Attesting != nil && *update.Attesting {
		return attestApplication(next, principal, now, cfg)
	}

	if update.EthicsLetter != nil {
		if principal.Role() != appTypes.ROLE_SUBMITTER {
			return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "update the ethics letter"}
		}
		mergeEthicsLetter(&next.Sections.EthicsLetter, update.EthicsLetter)
		revalidateSections(next, map[string]bool{appTypes.REVISION_SECTION_ETHICS_LETTER: true}, now)
		finalize(next, principal, appTypes.EVENT_TYPE_UPDATED, now)
		return &Result{Application: *next}, nil
	}

	return nil, &appTypes.StateError{State: next.State, Message: "only ethics letter updates and lifecycle triggers are permitted after approval"}
}

// Policy note on the PAUSED state: an application leaves PAUSED either back
// to APPROVED through attestation, or directly to EXPIRED/CLOSED. There is no
// other re-entry into APPROVED.
func updatePaused(next *appTypes.Application, update *ApplicationUpdate, principal appTypes.Principal, now time.Time, cfg appTypes.LifecycleConfig) (*Result, error) {
	if update.State != nil {
		switch *update.State {
		case appTypes.APPLICATION_STATE_EXPIRED:
			return expireApplication(next, principal, now)
		case appTypes.APPLICATION_STATE_CLOSED:
			return closeApprovedApplication(next, principal, now)
		default:
			return nil, &appTypes.StateError{State: next.State, Message: "transition to " + *update.State + " is not valid"}
		}
	}

	if update.Attesting != nil && *update.Attesting {
		return attestApplication(next, principal, now, cfg)
	}

	return nil, &appTypes.StateError{State: next.State, Message: "the application is paused, only attestation and lifecycle triggers are permitted"}
}

func updateExpired(next *appTypes.Application, update *ApplicationUpdate, principal appTypes.Principal, now time.Time) (*Result, error) {
	if update.State != nil && *update.State == appTypes.APPLICATION_STATE_CLOSED {
		return closeApprovedApplication(next, principal, now)
	}
	return nil, &appTypes.StateError{State: next.State, Message: "the application is expired, only closure or renewal are permitted"}
}

func attestApplication(next *appTypes.Application, principal appTypes.Principal, now time.Time, cfg appTypes.LifecycleConfig) (*Result, error) {
	if principal.Role() != appTypes.ROLE_SUBMITTER {
		return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "attest the application"}
	}
	if !IsAttestable(next, cfg, now) {
		return nil, &appTypes.StateError{State: next.State, Message: "attestation attempted outside the eligibility window"}
	}
	next.AttestedAtUtc = &now
	next.PauseReason = ""
	next.State = appTypes.APPLICATION_STATE_APPROVED
	finalize(next, principal, appTypes.EVENT_TYPE_ATTESTED, now)
	return &Result{Application: *next, Notifications: []string{NOTIFY_ATTESTATION_RECEIVED}}, nil
}

func pauseApplication(next *appTypes.Application, update *ApplicationUpdate, principal appTypes.Principal, now time.Time, cfg appTypes.LifecycleConfig) (*Result, error) {
	reason := ""
	if update.PauseReason != nil {
		reason = *update.PauseReason
	}

	switch principal.Role() {
	case appTypes.ROLE_SYSTEM:
		if reason != appTypes.PAUSE_REASON_PENDING_ATTESTATION {
			return nil, &appTypes.StateError{State: next.State, Message: "system pause requires the pending attestation reason"}
		}
		if next.AttestedAtUtc != nil || next.AttestationByUtc == nil || now.Before(*next.AttestationByUtc) {
			return nil, &appTypes.StateError{State: next.State, Message: "attestation window has not elapsed"}
		}
	case appTypes.ROLE_ADMIN:
		if !cfg.FeatureFlags.AdminPauseEnabled {
			return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "pause the application (disabled)"}
		}
		if reason != appTypes.PAUSE_REASON_ADMIN_PAUSE {
			return nil, &appTypes.StateError{State: next.State, Message: "administrative pause requires the admin pause reason"}
		}
	default:
		return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "pause the application"}
	}

	next.State = appTypes.APPLICATION_STATE_PAUSED
	next.PauseReason = reason
	finalize(next, principal, appTypes.EVENT_TYPE_PAUSED, now)
	return &Result{Application: *next, Notifications: []string{NOTIFY_APPLICATION_PAUSED}}, nil
}

func expireApplication(next *appTypes.Application, principal appTypes.Principal, now time.Time) (*Result, error) {
	if principal.Role() != appTypes.ROLE_SYSTEM {
		return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "expire the application"}
	}
	if !IsExpirable(next, now) {
		return nil, &appTypes.StateError{State: next.State, Message: "expiry date has not been reached"}
	}
	next.State = appTypes.APPLICATION_STATE_EXPIRED
	finalize(next, principal, appTypes.EVENT_TYPE_EXPIRED, now)
	return &Result{Application: *next, Notifications: []string{NOTIFY_APPLICATION_EXPIRED}}, nil
}

func closeApprovedApplication(next *appTypes.Application, principal appTypes.Principal, now time.Time) (*Result, error) {
	role := principal.Role()
	if role != appTypes.ROLE_ADMIN && role != appTypes.ROLE_SYSTEM {
		return nil, &appTypes.ForbiddenError{Role: role, Action: "close the application"}
	}
	if !next.EverApproved() {
		return nil, &appTypes.StateError{State: next.State, Message: "only applications that were approved can be closed administratively"}
	}
	return closeApplication(next, principal, now)
}

// closeUnsubmittedRenewal is the system close of renewal applications that
// were never submitted before their renewal period ended.
func closeUnsubmittedRenewal(next *appTypes.Application, principal appTypes.Principal, now time.Time) (*Result, error) {
	if principal.Role() != appTypes.ROLE_SYSTEM {
		return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "close the application"}
	}
	if !next.IsRenewal || next.RenewalPeriodEndDateUtc == nil {
		return nil, &appTypes.StateError{State: next.State, Message: "only renewal applications can be closed while unsubmitted"}
	}
	if !now.After(endOfDay(*next.RenewalPeriodEndDateUtc)) {
		return nil, &appTypes.StateError{State: next.State, Message: "renewal period has not ended"}
	}
	return closeApplication(next, principal, now)
}

func closeApplication(next *appTypes.Application, principal appTypes.Principal, now time.Time) (*Result, error) {
	next.State = appTypes.APPLICATION_STATE_CLOSED
	next.ClosedAtUtc = &now
	finalize(next, principal, appTypes.EVENT_TYPE_CLOSED, now)
	return &Result{Application: *next, Notifications: []string{NOTIFY_APPLICATION_CLOSED}}, nil
}

// finalize recomputes the derived fields and appends exactly one audit event
// for the successful transition.
func finalize(next *appTypes.Application, principal appTypes.Principal, eventType string, now time.Time) {
	next.RevisionsRequested = next.RevisionRequests.HasRequested()
	next.LastUpdatedAtUtc = now
	next.RecomputeSearchValues()
	event := appTypes.NewUpdateEvent(next, appTypes.AsAuthor(principal), eventType, now)
	next.UpdateEvents = append(next.UpdateEvents, event)
}
