package lifecycle

import (
	"fmt"
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

// data access agreement clauses
const (
	AGREEMENT_SOFTWARE_UPDATES               = "it_agreement_software_updates"
	AGREEMENT_PROTECT_DATA                   = "it_agreement_protect_data"
	AGREEMENT_MONITOR_ACCESS                 = "it_agreement_monitor_access"
	AGREEMENT_DESTROY_COPIES                 = "it_agreement_destroy_copies"
	AGREEMENT_ONBOARD_TRAINING               = "it_agreement_onboard_training"
	AGREEMENT_PROVIDE_INSTITUTIONAL_POLICIES = "it_agreement_provide_institutional_policies"
	AGREEMENT_READ_AND_AGREED                = "daa_correct_application_content"
	AGREEMENT_CONTACT_DACO                   = "daa_agree_to_terms"
)

// appendix clauses
const (
	APPENDIX_ICGC_GOALS_POLICIES = "appendix_icgc_goals_policies"
	APPENDIX_DATA_ACCESS_POLICY  = "appendix_data_access_policy"
	APPENDIX_IP_POLICY           = "appendix_ip_policy"
)

func defaultDataAccessAgreements() []appTypes.AgreementItem {
	names := []string{
		AGREEMENT_SOFTWARE_UPDATES,
		AGREEMENT_PROTECT_DATA,
		AGREEMENT_MONITOR_ACCESS,
		AGREEMENT_DESTROY_COPIES,
		AGREEMENT_ONBOARD_TRAINING,
		AGREEMENT_PROVIDE_INSTITUTIONAL_POLICIES,
		AGREEMENT_READ_AND_AGREED,
		AGREEMENT_CONTACT_DACO,
	}
	agreements := make([]appTypes.AgreementItem, 0, len(names))
	for _, name := range names {
		agreements = append(agreements, appTypes.AgreementItem{Name: name})
	}
	return agreements
}

func defaultAppendixAgreements() []appTypes.AgreementItem {
	names := []string{
		APPENDIX_ICGC_GOALS_POLICIES,
		APPENDIX_DATA_ACCESS_POLICY,
		APPENDIX_IP_POLICY,
	}
	agreements := make([]appTypes.AgreementItem, 0, len(names))
	for _, name := range names {
		agreements = append(agreements, appTypes.AgreementItem{Name: name})
	}
	return agreements
}

func defaultRevisionRequests() appTypes.RevisionRequests {
	requests := appTypes.RevisionRequests{}
	for _, key := range []string{
		appTypes.REVISION_SECTION_APPLICANT,
		appTypes.REVISION_SECTION_REPRESENTATIVE,
		appTypes.REVISION_SECTION_COLLABORATORS,
		appTypes.REVISION_SECTION_PROJECT_INFO,
		appTypes.REVISION_SECTION_ETHICS_LETTER,
		appTypes.REVISION_SECTION_SIGNATURE,
		appTypes.REVISION_SECTION_GENERAL,
	} {
		requests[key] = appTypes.RevisionRequest{}
	}
	return requests
}

// FormatAppID renders the user facing application id from the assigned
// sequence number.
func FormatAppID(appNumber int64) string {
	return fmt.Sprintf("DACO-%d", appNumber)
}

// NewApplication builds a DRAFT application for the submitter. The sequence
// number must come from the persistence counter; the id derived from it is
// immutable afterwards.
func NewApplication(appNumber int64, submitterID string, submitterEmail string, now time.Time) appTypes.Application {
	pristine := appTypes.SectionMeta{Status: appTypes.SECTION_STATUS_PRISTINE, Errors: []appTypes.FieldError{}}

	app := appTypes.Application{
		AppID:          FormatAppID(appNumber),
		AppNumber:      appNumber,
		State:          appTypes.APPLICATION_STATE_DRAFT,
		SubmitterID:    submitterID,
		SubmitterEmail: submitterEmail,
		Sections: appTypes.Sections{
			Applicant:      appTypes.ApplicantSection{Meta: pristine},
			Representative: appTypes.RepresentativeSection{Meta: pristine},
			Collaborators:  appTypes.CollaboratorsSection{Meta: pristine, List: []appTypes.Collaborator{}},
			ProjectInfo:    appTypes.ProjectInfoSection{Meta: pristine, PublicationURLs: []string{}},
			EthicsLetter:   appTypes.EthicsLetterSection{Meta: pristine},
			DataAccessAgreement: appTypes.DataAccessAgreementSection{
				Meta:       pristine,
				Agreements: defaultDataAccessAgreements(),
			},
			Appendices: appTypes.AppendicesSection{
				Meta:       pristine,
				Agreements: defaultAppendixAgreements(),
			},
			Signature: appTypes.SignatureSection{
				Meta: appTypes.SectionMeta{Status: appTypes.SECTION_STATUS_DISABLED, Errors: []appTypes.FieldError{}},
			},
		},
		RevisionRequests: defaultRevisionRequests(),
		UpdateEvents:     []appTypes.UpdateEvent{},
		Documents:        []appTypes.UploadedDocument{},
		CreatedAtUtc:     now,
		LastUpdatedAtUtc: now,
		Version:          0,
	}

	app.RecomputeSearchValues()
	app.UpdateEvents = append(app.UpdateEvents, appTypes.NewUpdateEvent(
		&app,
		appTypes.EventAuthor{ID: submitterID, Role: appTypes.ROLE_SUBMITTER},
		appTypes.EVENT_TYPE_CREATED,
		now,
	))
	return app
}
