package validators

import (
	"strings"
	"testing"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

func validPersonalInfo() appTypes.PersonalInfo {
	return appTypes.PersonalInfo{
		FirstName:          "Ada",
		LastName:           "Lovelace",
		PrimaryAffiliation: "University of Example",
		PositionTitle:      "Principal Investigator",
		InstitutionEmail:   "ada@uni.example.org",
		GoogleEmail:        "ada.lovelace@gmail.com",
	}
}

func validAddress() appTypes.Address {
	return appTypes.Address{
		Country:         "Canada",
		StreetAddress:   "661 University Ave",
		CityAndProvince: "Toronto, ON",
		PostalCode:      "M5G 0A3",
	}
}

func TestValidateApplicant(t *testing.T) {
	t.Run("complete section", func(t *testing.T) {
		meta := ValidateApplicant(appTypes.ApplicantSection{
			Info:    validPersonalInfo(),
			Address: validAddress(),
		})
		if meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("expected COMPLETE, got %s with %v", meta.Status, meta.Errors)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		info := validPersonalInfo()
		info.FirstName = ""
		meta := ValidateApplicant(appTypes.ApplicantSection{Info: info, Address: validAddress()})
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})

	t.Run("malformed google email", func(t *testing.T) {
		info := validPersonalInfo()
		info.GoogleEmail = "not-an-email"
		meta := ValidateApplicant(appTypes.ApplicantSection{Info: info, Address: validAddress()})
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})
}

func TestValidateRepresentative(t *testing.T) {
	t.Run("missing address without the same as applicant flag", func(t *testing.T) {
		meta := ValidateRepresentative(appTypes.RepresentativeSection{
			Info: validPersonalInfo(),
		})
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})

	t.Run("same as applicant skips the address", func(t *testing.T) {
		meta := ValidateRepresentative(appTypes.RepresentativeSection{
			Info:                   validPersonalInfo(),
			AddressSameAsApplicant: true,
		})
		if meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("expected COMPLETE, got %s with %v", meta.Status, meta.Errors)
		}
	})
}

func TestValidateProjectInfo(t *testing.T) {
	valid := func() appTypes.ProjectInfoSection {
		return appTypes.ProjectInfoSection{
			Title:       "Somatic mutation signatures",
			Website:     "https://lab.example.org",
			Background:  "Background text.",
			Aims:        "Aims text.",
			Methodology: "Methodology text.",
			Summary:     "Summary text.",
			PublicationURLs: []string{
				"https://doi.example.org/1",
				"https://doi.example.org/2",
				"https://doi.example.org/3",
			},
		}
	}

	t.Run("complete section", func(t *testing.T) {
		meta := ValidateProjectInfo(valid())
		if meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("expected COMPLETE, got %s with %v", meta.Status, meta.Errors)
		}
	})

	t.Run("repeated publication urls do not count twice", func(t *testing.T) {
		section := valid()
		section.PublicationURLs = []string{
			"https://doi.example.org/1",
			"https://doi.example.org/1",
			"https://doi.example.org/2",
		}
		meta := ValidateProjectInfo(section)
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})

	t.Run("invalid publication url", func(t *testing.T) {
		section := valid()
		section.PublicationURLs[2] = "ftp://doi.example.org/3"
		meta := ValidateProjectInfo(section)
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})

	t.Run("summary over the word limit", func(t *testing.T) {
		section := valid()
		section.Summary = strings.Repeat("word ", MAX_WORD_COUNT+1)
		meta := ValidateProjectInfo(section)
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})

	t.Run("missing website", func(t *testing.T) {
		section := valid()
		section.Website = ""
		meta := ValidateProjectInfo(section)
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})
}

func TestValidateEthicsLetter(t *testing.T) {
	notRequired := false
	required := true

	t.Run("undeclared", func(t *testing.T) {
		meta := ValidateEthicsLetter(appTypes.EthicsLetterSection{}, SiblingContext{})
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})

	t.Run("declared not required", func(t *testing.T) {
		meta := ValidateEthicsLetter(appTypes.EthicsLetterSection{DeclaredAsRequired: &notRequired}, SiblingContext{})
		if meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("expected COMPLETE, got %s", meta.Status)
		}
	})

	t.Run("required without a letter", func(t *testing.T) {
		meta := ValidateEthicsLetter(appTypes.EthicsLetterSection{DeclaredAsRequired: &required}, SiblingContext{})
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})

	t.Run("required with a letter attached", func(t *testing.T) {
		meta := ValidateEthicsLetter(appTypes.EthicsLetterSection{DeclaredAsRequired: &required}, SiblingContext{EthicsLetterDocCount: 1})
		if meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("expected COMPLETE, got %s", meta.Status)
		}
	})
}

func TestValidateCollaborator(t *testing.T) {
	ctx := SiblingContext{
		ApplicantPrimaryAffiliation: "University of Example",
		ApplicantGoogleEmail:        "ada.lovelace@gmail.com",
	}

	t.Run("complete entry", func(t *testing.T) {
		meta := ValidateCollaborator(appTypes.Collaborator{
			Type: appTypes.COLLABORATOR_TYPE_STUDENT,
			Info: validPersonalInfo(),
		}, ctx)
		if meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("expected COMPLETE, got %s with %v", meta.Status, meta.Errors)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		meta := ValidateCollaborator(appTypes.Collaborator{
			Type: "consultant",
			Info: validPersonalInfo(),
		}, ctx)
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})

	t.Run("affiliation mismatch", func(t *testing.T) {
		info := validPersonalInfo()
		info.PrimaryAffiliation = "Another Institute"
		meta := ValidateCollaborator(appTypes.Collaborator{
			Type: appTypes.COLLABORATOR_TYPE_PERSONNEL,
			Info: info,
		}, ctx)
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})
}

func TestValidateAgreementSections(t *testing.T) {
	t.Run("all accepted", func(t *testing.T) {
		meta := ValidateDataAccessAgreement(appTypes.DataAccessAgreementSection{
			Agreements: []appTypes.AgreementItem{
				{Name: "a", Accepted: true},
				{Name: "b", Accepted: true},
			},
		})
		if meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("expected COMPLETE, got %s", meta.Status)
		}
	})

	t.Run("one unaccepted", func(t *testing.T) {
		meta := ValidateAppendices(appTypes.AppendicesSection{
			Agreements: []appTypes.AgreementItem{
				{Name: "a", Accepted: true},
				{Name: "b"},
			},
		})
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})

	t.Run("no agreements at all", func(t *testing.T) {
		meta := ValidateDataAccessAgreement(appTypes.DataAccessAgreementSection{})
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})
}

func TestValidateSignature(t *testing.T) {
	t.Run("without the signed document", func(t *testing.T) {
		meta := ValidateSignature(appTypes.SignatureSection{}, SiblingContext{})
		if meta.Status != appTypes.SECTION_STATUS_INCOMPLETE {
			t.Errorf("expected INCOMPLETE, got %s", meta.Status)
		}
	})

	t.Run("with the signed document", func(t *testing.T) {
		meta := ValidateSignature(appTypes.SignatureSection{}, SiblingContext{HasSignedAppDocument: true})
		if meta.Status != appTypes.SECTION_STATUS_COMPLETE {
			t.Errorf("expected COMPLETE, got %s", meta.Status)
		}
	})
}
