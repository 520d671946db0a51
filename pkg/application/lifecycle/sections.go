package lifecycle

import (
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/validators"
)

// section keys used for edit tracking and revision flags
const (
	sectionApplicant           = "applicant"
	sectionRepresentative      = "representative"
	sectionCollaborators       = "collaborators"
	sectionProjectInfo         = "projectInfo"
	sectionEthicsLetter        = "ethicsLetter"
	sectionDataAccessAgreement = "dataAccessAgreement"
	sectionAppendices          = "appendices"
	sectionSignature           = "signature"
)

func siblingContext(app *appTypes.Application) validators.SiblingContext {
	return validators.SiblingContext{
		ApplicantPrimaryAffiliation: app.Sections.Applicant.Info.PrimaryAffiliation,
		ApplicantGoogleEmail:        app.Sections.Applicant.Info.GoogleEmail,
		EthicsLetterDocCount:        len(app.DocumentsOfType(appTypes.DOCUMENT_TYPE_ETHICS_LETTER)),
		HasSignedAppDocument:        len(app.DocumentsOfType(appTypes.DOCUMENT_TYPE_SIGNED_APP)) > 0,
	}
}

// applySectionUpdates merges the non-nil section payloads onto the working
// copy and returns the set of edited section keys.
func applySectionUpdates(next *appTypes.Application, update *ApplicationUpdate, now time.Time) map[string]bool {
	edited := map[string]bool{}

	if update.Applicant != nil {
		mergeApplicant(&next.Sections.Applicant, update.Applicant)
		edited[sectionApplicant] = true
	}
	if update.Representative != nil {
		mergeRepresentative(&next.Sections.Representative, update.Representative)
		edited[sectionRepresentative] = true
	}
	if update.ProjectInfo != nil {
		mergeProjectInfo(&next.Sections.ProjectInfo, update.ProjectInfo)
		edited[sectionProjectInfo] = true
	}
	if update.EthicsLetter != nil {
		mergeEthicsLetter(&next.Sections.EthicsLetter, update.EthicsLetter)
		edited[sectionEthicsLetter] = true
	}
	if update.DataAccessAgreement != nil {
		next.Sections.DataAccessAgreement.Agreements = mergeAgreements(next.Sections.DataAccessAgreement.Agreements, update.DataAccessAgreement)
		edited[sectionDataAccessAgreement] = true
	}
	if update.Appendices != nil {
		next.Sections.Appendices.Agreements = mergeAgreements(next.Sections.Appendices.Agreements, update.Appendices)
		edited[sectionAppendices] = true
	}

	return edited
}

// revalidateSections re-derives the meta of the given sections. Editing the
// applicant also re-derives sections whose completeness depends on it.
func revalidateSections(next *appTypes.Application, edited map[string]bool, now time.Time) {
	if edited[sectionApplicant] {
		// collaborator affiliations are checked against the applicant's
		edited[sectionCollaborators] = next.Sections.Collaborators.Meta.Status != appTypes.SECTION_STATUS_PRISTINE
	}

	ctx := siblingContext(next)

	if edited[sectionApplicant] {
		next.Sections.Applicant.Meta = stampMeta(validators.ValidateApplicant(next.Sections.Applicant), now)
	}
	if edited[sectionRepresentative] {
		next.Sections.Representative.Meta = stampMeta(validators.ValidateRepresentative(next.Sections.Representative), now)
	}
	if edited[sectionCollaborators] {
		next.Sections.Collaborators.Meta = stampMeta(validators.ValidateCollaborators(next.Sections.Collaborators, ctx), now)
		for i := range next.Sections.Collaborators.List {
			next.Sections.Collaborators.List[i].Meta = stampMeta(validators.ValidateCollaborator(next.Sections.Collaborators.List[i], ctx), now)
		}
	}
	if edited[sectionProjectInfo] {
		next.Sections.ProjectInfo.Meta = stampMeta(validators.ValidateProjectInfo(next.Sections.ProjectInfo), now)
	}
	if edited[sectionEthicsLetter] {
		next.Sections.EthicsLetter.Meta = stampMeta(validators.ValidateEthicsLetter(next.Sections.EthicsLetter, ctx), now)
	}
	if edited[sectionDataAccessAgreement] {
		next.Sections.DataAccessAgreement.Meta = stampMeta(validators.ValidateDataAccessAgreement(next.Sections.DataAccessAgreement), now)
	}
	if edited[sectionAppendices] {
		next.Sections.Appendices.Meta = stampMeta(validators.ValidateAppendices(next.Sections.Appendices), now)
	}
	if edited[sectionSignature] {
		next.Sections.Signature.Meta = stampMeta(validators.ValidateSignature(next.Sections.Signature, ctx), now)
	}
}

func stampMeta(meta appTypes.SectionMeta, now time.Time) appTypes.SectionMeta {
	ts := now
	meta.LastUpdatedAtUtc = &ts
	return meta
}

// requiredSectionsSatisfied reports whether the application form is ready for
// signing: every required section is complete, collaborators may also be
// untouched, and sections disabled for revision are skipped.
func requiredSectionsSatisfied(app *appTypes.Application) bool {
	required := []string{
		app.Sections.Applicant.Meta.Status,
		app.Sections.Representative.Meta.Status,
		app.Sections.ProjectInfo.Meta.Status,
		app.Sections.EthicsLetter.Meta.Status,
		app.Sections.DataAccessAgreement.Meta.Status,
		app.Sections.Appendices.Meta.Status,
	}
	for _, status := range required {
		if !sectionSatisfied(status) {
			return false
		}
	}

	collaborators := app.Sections.Collaborators.Meta.Status
	return sectionSatisfied(collaborators) || collaborators == appTypes.SECTION_STATUS_PRISTINE
}

func sectionSatisfied(status string) bool {
	switch status {
	case appTypes.SECTION_STATUS_COMPLETE,
		appTypes.SECTION_STATUS_REVISIONS_MADE,
		appTypes.SECTION_STATUS_DISABLED,
		appTypes.SECTION_STATUS_REVISIONS_REQUESTED_DISABLED:
		return true
	}
	return false
}

// markRevisionsMade flips edited sections that validated complete from
// REVISIONS REQUESTED to REVISIONS MADE.
func markRevisionsMade(next *appTypes.Application, edited map[string]bool) {
	for key := range edited {
		entry, flagged := next.RevisionRequests[key]
		if !flagged || !entry.Requested {
			continue
		}
		meta := sectionMetaByKey(next, key)
		if meta != nil && meta.Status == appTypes.SECTION_STATUS_COMPLETE {
			meta.Status = appTypes.SECTION_STATUS_REVISIONS_MADE
		}
	}
}

func clearRevisionRequests(next *appTypes.Application) {
	for key, entry := range next.RevisionRequests {
		entry.Requested = false
		next.RevisionRequests[key] = entry

		meta := sectionMetaByKey(next, key)
		if meta != nil && meta.Status == appTypes.SECTION_STATUS_REVISIONS_MADE {
			meta.Status = appTypes.SECTION_STATUS_COMPLETE
		}
	}
}

func validateRevisionRequests(requests appTypes.RevisionRequests) error {
	if len(requests) == 0 {
		return &appTypes.ValidationError{
			Section: "revisionRequest",
			Errors:  []appTypes.FieldError{{Field: "revisionRequest", Message: "at least one section must be flagged for revision"}},
		}
	}

	errors := []appTypes.FieldError{}
	anyRequested := false
	for key, entry := range requests {
		if !isRevisableSection(key) {
			errors = append(errors, appTypes.FieldError{Field: key, Message: "section cannot be flagged for revision"})
			continue
		}
		if entry.Requested {
			anyRequested = true
			if entry.Details == "" {
				errors = append(errors, appTypes.FieldError{Field: key, Message: "revision details are required"})
			}
		}
	}
	if !anyRequested {
		errors = append(errors, appTypes.FieldError{Field: "revisionRequest", Message: "at least one section must be flagged for revision"})
	}

	if len(errors) > 0 {
		return &appTypes.ValidationError{Section: "revisionRequest", Errors: errors}
	}
	return nil
}

func applyRevisionRequests(next *appTypes.Application, requests appTypes.RevisionRequests) {
	for key, entry := range requests {
		next.RevisionRequests[key] = entry
		if !entry.Requested {
			continue
		}
		meta := sectionMetaByKey(next, key)
		if meta != nil {
			meta.Status = appTypes.SECTION_STATUS_REVISIONS_REQUESTED
		}
	}
}

func isRevisableSection(key string) bool {
	switch key {
	case appTypes.REVISION_SECTION_APPLICANT,
		appTypes.REVISION_SECTION_REPRESENTATIVE,
		appTypes.REVISION_SECTION_COLLABORATORS,
		appTypes.REVISION_SECTION_PROJECT_INFO,
		appTypes.REVISION_SECTION_ETHICS_LETTER,
		appTypes.REVISION_SECTION_SIGNATURE,
		appTypes.REVISION_SECTION_GENERAL:
		return true
	}
	return false
}

func sectionMetaByKey(app *appTypes.Application, key string) *appTypes.SectionMeta {
	switch key {
	case sectionApplicant:
		return &app.Sections.Applicant.Meta
	case sectionRepresentative:
		return &app.Sections.Representative.Meta
	case sectionCollaborators:
		return &app.Sections.Collaborators.Meta
	case sectionProjectInfo:
		return &app.Sections.ProjectInfo.Meta
	case sectionEthicsLetter:
		return &app.Sections.EthicsLetter.Meta
	case sectionDataAccessAgreement:
		return &app.Sections.DataAccessAgreement.Meta
	case sectionAppendices:
		return &app.Sections.Appendices.Meta
	case sectionSignature:
		return &app.Sections.Signature.Meta
	}
	return nil
}
