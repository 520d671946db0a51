package lifecycle

import (
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

// Update payloads use pointer fields: a nil field is left untouched on the
// target. The merge functions below are explicit per section, no reflection.

type PersonalInfoUpdate struct {
	Title              *string `json:"title,omitempty"`
	FirstName          *string `json:"firstName,omitempty"`
	MiddleName         *string `json:"middleName,omitempty"`
	LastName           *string `json:"lastName,omitempty"`
	Suffix             *string `json:"suffix,omitempty"`
	PrimaryAffiliation *string `json:"primaryAffiliation,omitempty"`
	InstitutionEmail   *string `json:"institutionEmail,omitempty"`
	GoogleEmail        *string `json:"googleEmail,omitempty"`
	InstitutionWebsite *string `json:"institutionWebsite,omitempty"`
	PositionTitle      *string `json:"positionTitle,omitempty"`
}

type AddressUpdate struct {
	Country         *string `json:"country,omitempty"`
	Building        *string `json:"building,omitempty"`
	StreetAddress   *string `json:"streetAddress,omitempty"`
	CityAndProvince *string `json:"cityAndProvince,omitempty"`
	PostalCode      *string `json:"postalCode,omitempty"`
}

type ApplicantUpdate struct {
	Info    *PersonalInfoUpdate `json:"info,omitempty"`
	Address *AddressUpdate      `json:"address,omitempty"`
}

type RepresentativeUpdate struct {
	Info                   *PersonalInfoUpdate `json:"info,omitempty"`
	Address                *AddressUpdate      `json:"address,omitempty"`
	AddressSameAsApplicant *bool               `json:"addressSameAsApplicant,omitempty"`
}

type ProjectInfoUpdate struct {
	Title           *string   `json:"title,omitempty"`
	Website         *string   `json:"website,omitempty"`
	Background      *string   `json:"background,omitempty"`
	Aims            *string   `json:"aims,omitempty"`
	Methodology     *string   `json:"methodology,omitempty"`
	Summary         *string   `json:"summary,omitempty"`
	PublicationURLs *[]string `json:"publicationsURLs,omitempty"`
}

type EthicsLetterUpdate struct {
	DeclaredAsRequired *bool `json:"declaredAsRequired,omitempty"`
}

// AgreementsUpdate maps agreement names to their accepted value.
type AgreementsUpdate struct {
	Accepted map[string]bool `json:"accepted,omitempty"`
}

// ApplicationUpdate is the partial update accepted by UpdateApplication.
// Which parts are honored depends on the application's current state and the
// caller's role.
type ApplicationUpdate struct {
	State *string `json:"state,omitempty"`

	Applicant           *ApplicantUpdate      `json:"applicant,omitempty"`
	Representative      *RepresentativeUpdate `json:"representative,omitempty"`
	ProjectInfo         *ProjectInfoUpdate    `json:"projectInfo,omitempty"`
	EthicsLetter        *EthicsLetterUpdate   `json:"ethicsLetter,omitempty"`
	DataAccessAgreement *AgreementsUpdate     `json:"dataAccessAgreement,omitempty"`
	Appendices          *AgreementsUpdate     `json:"appendices,omitempty"`

	// reviewer decision payload
	RevisionRequests appTypes.RevisionRequests `json:"revisionRequest,omitempty"`
	DenialReason     *string                   `json:"denialReason,omitempty"`

	// lifecycle triggers
	Attesting          *bool      `json:"attesting,omitempty"`
	PauseReason        *string    `json:"pauseReason,omitempty"`
	CustomExpiresAtUtc *time.Time `json:"customExpiresAtUtc,omitempty"`
}

func (u *ApplicationUpdate) hasSectionUpdates() bool {
	return u.Applicant != nil ||
		u.Representative != nil ||
		u.ProjectInfo != nil ||
		u.EthicsLetter != nil ||
		u.DataAccessAgreement != nil ||
		u.Appendices != nil
}

func mergePersonalInfo(target *appTypes.PersonalInfo, update *PersonalInfoUpdate) {
	if update == nil {
		return
	}
	setString(&target.Title, update.Title)
	setString(&target.FirstName, update.FirstName)
	setString(&target.MiddleName, update.MiddleName)
	setString(&target.LastName, update.LastName)
	setString(&target.Suffix, update.Suffix)
	setString(&target.PrimaryAffiliation, update.PrimaryAffiliation)
	setString(&target.InstitutionEmail, update.InstitutionEmail)
	setString(&target.GoogleEmail, update.GoogleEmail)
	setString(&target.InstitutionWebsite, update.InstitutionWebsite)
	setString(&target.PositionTitle, update.PositionTitle)
}

func mergeAddress(target *appTypes.Address, update *AddressUpdate) {
	if update == nil {
		return
	}
	setString(&target.Country, update.Country)
	setString(&target.Building, update.Building)
	setString(&target.StreetAddress, update.StreetAddress)
	setString(&target.CityAndProvince, update.CityAndProvince)
	setString(&target.PostalCode, update.PostalCode)
}

func mergeApplicant(target *appTypes.ApplicantSection, update *ApplicantUpdate) {
	mergePersonalInfo(&target.Info, update.Info)
	mergeAddress(&target.Address, update.Address)
}

func mergeRepresentative(target *appTypes.RepresentativeSection, update *RepresentativeUpdate) {
	mergePersonalInfo(&target.Info, update.Info)
	mergeAddress(&target.Address, update.Address)
	if update.AddressSameAsApplicant != nil {
		target.AddressSameAsApplicant = *update.AddressSameAsApplicant
	}
}

func mergeProjectInfo(target *appTypes.ProjectInfoSection, update *ProjectInfoUpdate) {
	setString(&target.Title, update.Title)
	setString(&target.Website, update.Website)
	setString(&target.Background, update.Background)
	setString(&target.Aims, update.Aims)
	setString(&target.Methodology, update.Methodology)
	setString(&target.Summary, update.Summary)
	if update.PublicationURLs != nil {
		target.PublicationURLs = append([]string{}, (*update.PublicationURLs)...)
	}
}

func mergeEthicsLetter(target *appTypes.EthicsLetterSection, update *EthicsLetterUpdate) {
	if update.DeclaredAsRequired != nil {
		v := *update.DeclaredAsRequired
		target.DeclaredAsRequired = &v
	}
}

func mergeAgreements(agreements []appTypes.AgreementItem, update *AgreementsUpdate) []appTypes.AgreementItem {
	if update == nil || update.Accepted == nil {
		return agreements
	}
	for i := range agreements {
		if accepted, ok := update.Accepted[agreements[i].Name]; ok {
			agreements[i].Accepted = accepted
		}
	}
	return agreements
}

func setString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}
