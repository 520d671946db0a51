package validators

import (
	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

const MIN_PUBLICATION_URLS = 3

// SiblingContext carries the facts from outside a section that its
// completeness may depend on.
type SiblingContext struct {
	ApplicantPrimaryAffiliation string
	ApplicantGoogleEmail        string
	EthicsLetterDocCount        int
	HasSignedAppDocument        bool
}

// ValidateApplicant derives the completeness of the applicant section.
func ValidateApplicant(section appTypes.ApplicantSection) appTypes.SectionMeta {
	errors := []appTypes.FieldError{}
	errors = validatePersonalInfo(errors, "info", section.Info)
	errors = validateAddress(errors, "address", section.Address)
	return metaFromErrors(errors)
}

// ValidateRepresentative derives the completeness of the representative
// section. The address block is required unless flagged same as applicant.
func ValidateRepresentative(section appTypes.RepresentativeSection) appTypes.SectionMeta {
	errors := []appTypes.FieldError{}
	errors = validatePersonalInfo(errors, "info", section.Info)
	if !section.AddressSameAsApplicant {
		errors = validateAddress(errors, "address", section.Address)
	}
	return metaFromErrors(errors)
}

// ValidateCollaborator checks one collaborator entry. The primary affiliation
// must match the applicant's.
func ValidateCollaborator(collaborator appTypes.Collaborator, ctx SiblingContext) appTypes.SectionMeta {
	errors := []appTypes.FieldError{}
	errors = validatePersonalInfo(errors, "info", collaborator.Info)
	if collaborator.Type != appTypes.COLLABORATOR_TYPE_STUDENT && collaborator.Type != appTypes.COLLABORATOR_TYPE_PERSONNEL {
		errors = append(errors, appTypes.FieldError{Field: "type", Message: "collaborator type must be student or personnel"})
	}
	if collaborator.Info.PrimaryAffiliation != "" &&
		collaborator.Info.PrimaryAffiliation != ctx.ApplicantPrimaryAffiliation {
		errors = append(errors, appTypes.FieldError{Field: "info.primaryAffiliation", Message: "primary affiliation must match the applicant's"})
	}
	return metaFromErrors(errors)
}

// ValidateCollaborators derives the completeness of the collaborators
// section. An empty list is complete: collaborators are optional.
func ValidateCollaborators(section appTypes.CollaboratorsSection, ctx SiblingContext) appTypes.SectionMeta {
	errors := []appTypes.FieldError{}
	for i := range section.List {
		meta := ValidateCollaborator(section.List[i], ctx)
		if meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			errors = append(errors, appTypes.FieldError{
				Field:   "list." + section.List[i].ID,
				Message: "collaborator entry is incomplete",
			})
		}
	}
	return metaFromErrors(errors)
}

// ValidateProjectInfo derives the completeness of the project info section:
// required fields, url format, word count ceilings on the free text fields
// and at least three unique publication urls.
func ValidateProjectInfo(section appTypes.ProjectInfoSection) appTypes.SectionMeta {
	errors := []appTypes.FieldError{}
	errors = requireField(errors, "title", section.Title)
	errors = requireURL(errors, "website", section.Website)

	for _, field := range []struct {
		name  string
		value string
	}{
		{"background", section.Background},
		{"aims", section.Aims},
		{"methodology", section.Methodology},
		{"summary", section.Summary},
	} {
		errors = requireField(errors, field.name, field.value)
		errors = limitWordCount(errors, field.name, field.value)
	}

	unique := map[string]bool{}
	for _, pubURL := range section.PublicationURLs {
		if !isValidURL(pubURL) {
			errors = append(errors, appTypes.FieldError{Field: "publicationsURLs", Message: "invalid url: " + pubURL})
			continue
		}
		unique[pubURL] = true
	}
	if len(unique) < MIN_PUBLICATION_URLS {
		errors = append(errors, appTypes.FieldError{Field: "publicationsURLs", Message: "at least 3 unique publication urls are required"})
	}

	return metaFromErrors(errors)
}

// ValidateEthicsLetter derives the completeness of the ethics letter section.
// If ethics approval is declared as required, at least one approval letter
// document must be attached.
func ValidateEthicsLetter(section appTypes.EthicsLetterSection, ctx SiblingContext) appTypes.SectionMeta {
	errors := []appTypes.FieldError{}
	if section.DeclaredAsRequired == nil {
		errors = append(errors, appTypes.FieldError{Field: "declaredAsRequired", Message: "field is required"})
	} else if *section.DeclaredAsRequired && ctx.EthicsLetterDocCount == 0 {
		errors = append(errors, appTypes.FieldError{Field: "approvalLetterDocs", Message: "an ethics approval letter is required"})
	}
	return metaFromErrors(errors)
}

// ValidateDataAccessAgreement requires every agreement item to be accepted.
func ValidateDataAccessAgreement(section appTypes.DataAccessAgreementSection) appTypes.SectionMeta {
	return metaFromErrors(validateAgreements(section.Agreements))
}

// ValidateAppendices requires every agreement item to be accepted.
func ValidateAppendices(section appTypes.AppendicesSection) appTypes.SectionMeta {
	return metaFromErrors(validateAgreements(section.Agreements))
}

// ValidateSignature requires the signed application document to be attached.
func ValidateSignature(section appTypes.SignatureSection, ctx SiblingContext) appTypes.SectionMeta {
	errors := []appTypes.FieldError{}
	if !ctx.HasSignedAppDocument {
		errors = append(errors, appTypes.FieldError{Field: "signedAppDoc", Message: "signed application document is required"})
	}
	return metaFromErrors(errors)
}

func validateAgreements(agreements []appTypes.AgreementItem) []appTypes.FieldError {
	errors := []appTypes.FieldError{}
	if len(agreements) == 0 {
		errors = append(errors, appTypes.FieldError{Field: "agreements", Message: "agreements are required"})
		return errors
	}
	for _, agreement := range agreements {
		if !agreement.Accepted {
			errors = append(errors, appTypes.FieldError{Field: "agreements." + agreement.Name, Message: "agreement must be accepted"})
		}
	}
	return errors
}
