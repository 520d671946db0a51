package lifecycle

import (
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

// cloneApplication produces an independent copy of the snapshot so that the
// transition functions never mutate their input. Failed transitions leave the
// caller's snapshot untouched.
func cloneApplication(app *appTypes.Application) appTypes.Application {
	next := *app

	next.Sections.Collaborators.List = append([]appTypes.Collaborator{}, app.Sections.Collaborators.List...)
	next.Sections.ProjectInfo.PublicationURLs = append([]string{}, app.Sections.ProjectInfo.PublicationURLs...)
	next.Sections.DataAccessAgreement.Agreements = append([]appTypes.AgreementItem{}, app.Sections.DataAccessAgreement.Agreements...)
	next.Sections.Appendices.Agreements = append([]appTypes.AgreementItem{}, app.Sections.Appendices.Agreements...)

	next.Sections.Applicant.Meta = cloneMeta(app.Sections.Applicant.Meta)
	next.Sections.Representative.Meta = cloneMeta(app.Sections.Representative.Meta)
	next.Sections.Collaborators.Meta = cloneMeta(app.Sections.Collaborators.Meta)
	next.Sections.ProjectInfo.Meta = cloneMeta(app.Sections.ProjectInfo.Meta)
	next.Sections.EthicsLetter.Meta = cloneMeta(app.Sections.EthicsLetter.Meta)
	next.Sections.DataAccessAgreement.Meta = cloneMeta(app.Sections.DataAccessAgreement.Meta)
	next.Sections.Appendices.Meta = cloneMeta(app.Sections.Appendices.Meta)
	next.Sections.Signature.Meta = cloneMeta(app.Sections.Signature.Meta)

	next.Sections.EthicsLetter.DeclaredAsRequired = cloneBoolPtr(app.Sections.EthicsLetter.DeclaredAsRequired)

	next.RevisionRequests = appTypes.RevisionRequests{}
	for key, entry := range app.RevisionRequests {
		next.RevisionRequests[key] = entry
	}

	next.UpdateEvents = append([]appTypes.UpdateEvent{}, app.UpdateEvents...)
	next.Documents = append([]appTypes.UploadedDocument{}, app.Documents...)
	next.SearchValues = append([]string{}, app.SearchValues...)

	next.AttestedAtUtc = cloneTimePtr(app.AttestedAtUtc)
	next.AttestationByUtc = cloneTimePtr(app.AttestationByUtc)
	next.SubmittedAtUtc = cloneTimePtr(app.SubmittedAtUtc)
	next.ApprovedAtUtc = cloneTimePtr(app.ApprovedAtUtc)
	next.ExpiresAtUtc = cloneTimePtr(app.ExpiresAtUtc)
	next.ClosedAtUtc = cloneTimePtr(app.ClosedAtUtc)
	next.RenewalPeriodEndDateUtc = cloneTimePtr(app.RenewalPeriodEndDateUtc)

	return next
}

func cloneMeta(meta appTypes.SectionMeta) appTypes.SectionMeta {
	next := meta
	next.Errors = append([]appTypes.FieldError{}, meta.Errors...)
	next.LastUpdatedAtUtc = cloneTimePtr(meta.LastUpdatedAtUtc)
	return next
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneBoolPtr(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
