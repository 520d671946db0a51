package types

import "time"

// section completeness statuses
const (
	SECTION_STATUS_PRISTINE                     = "PRISTINE"
	SECTION_STATUS_INCOMPLETE                   = "INCOMPLETE"
	SECTION_STATUS_COMPLETE                     = "COMPLETE"
	SECTION_STATUS_REVISIONS_REQUESTED          = "REVISIONS REQUESTED"
	SECTION_STATUS_REVISIONS_REQUESTED_DISABLED = "REVISIONS REQUESTED DISABLED"
	SECTION_STATUS_REVISIONS_MADE               = "REVISIONS MADE"
	SECTION_STATUS_LOCKED                       = "LOCKED"
	SECTION_STATUS_DISABLED                     = "DISABLED"
	SECTION_STATUS_AMMENDABLE                   = "AMMENDABLE"
)

// FieldError describes one invalid field within a section.
type FieldError struct {
	Field   string `bson:"field" json:"field"`
	Message string `bson:"message" json:"message"`
}

// SectionMeta carries the derived completeness state of a section. Status is
// always a pure function of the section's current field values (and, for some
// sections, sibling sections).
type SectionMeta struct {
	Status           string       `bson:"status" json:"status"`
	Errors           []FieldError `bson:"errorsList" json:"errorsList"`
	LastUpdatedAtUtc *time.Time   `bson:"lastUpdatedAtUtc,omitempty" json:"lastUpdatedAtUtc,omitempty"`
}

type PersonalInfo struct {
	Title              string `bson:"title" json:"title"`
	FirstName          string `bson:"firstName" json:"firstName"`
	MiddleName         string `bson:"middleName" json:"middleName"`
	LastName           string `bson:"lastName" json:"lastName"`
	Suffix             string `bson:"suffix" json:"suffix"`
	PrimaryAffiliation string `bson:"primaryAffiliation" json:"primaryAffiliation"`
	InstitutionEmail   string `bson:"institutionEmail" json:"institutionEmail"`
	GoogleEmail        string `bson:"googleEmail" json:"googleEmail"`
	InstitutionWebsite string `bson:"institutionWebsite" json:"institutionWebsite"`
	PositionTitle      string `bson:"positionTitle" json:"positionTitle"`
}

type Address struct {
	Country         string `bson:"country" json:"country"`
	Building        string `bson:"building" json:"building"`
	StreetAddress   string `bson:"streetAddress" json:"streetAddress"`
	CityAndProvince string `bson:"cityAndProvince" json:"cityAndProvince"`
	PostalCode      string `bson:"postalCode" json:"postalCode"`
}

type ApplicantSection struct {
	Meta    SectionMeta  `bson:"meta" json:"meta"`
	Info    PersonalInfo `bson:"info" json:"info"`
	Address Address      `bson:"address" json:"address"`
}

type RepresentativeSection struct {
	Meta                   SectionMeta  `bson:"meta" json:"meta"`
	Info                   PersonalInfo `bson:"info" json:"info"`
	Address                Address      `bson:"address" json:"address"`
	AddressSameAsApplicant bool         `bson:"addressSameAsApplicant" json:"addressSameAsApplicant"`
}

type CollaboratorsSection struct {
	Meta SectionMeta    `bson:"meta" json:"meta"`
	List []Collaborator `bson:"list" json:"list"`
}

type ProjectInfoSection struct {
	Meta            SectionMeta `bson:"meta" json:"meta"`
	Title           string      `bson:"title" json:"title"`
	Website         string      `bson:"website" json:"website"`
	Background      string      `bson:"background" json:"background"`
	Aims            string      `bson:"aims" json:"aims"`
	Methodology     string      `bson:"methodology" json:"methodology"`
	Summary         string      `bson:"summary" json:"summary"`
	PublicationURLs []string    `bson:"publicationsURLs" json:"publicationsURLs"`
}

type EthicsLetterSection struct {
	Meta               SectionMeta `bson:"meta" json:"meta"`
	DeclaredAsRequired *bool       `bson:"declaredAsRequired,omitempty" json:"declaredAsRequired,omitempty"`
}

// AgreementItem is one clause the applicant has to accept.
type AgreementItem struct {
	Name     string `bson:"name" json:"name"`
	Accepted bool   `bson:"accepted" json:"accepted"`
}

type DataAccessAgreementSection struct {
	Meta       SectionMeta     `bson:"meta" json:"meta"`
	Agreements []AgreementItem `bson:"agreements" json:"agreements"`
}

type AppendicesSection struct {
	Meta       SectionMeta     `bson:"meta" json:"meta"`
	Agreements []AgreementItem `bson:"agreements" json:"agreements"`
}

type SignatureSection struct {
	Meta SectionMeta `bson:"meta" json:"meta"`
}

// Sections is the fixed set of named parts of the application form.
type Sections struct {
	Applicant           ApplicantSection           `bson:"applicant" json:"applicant"`
	Representative      RepresentativeSection      `bson:"representative" json:"representative"`
	Collaborators       CollaboratorsSection       `bson:"collaborators" json:"collaborators"`
	ProjectInfo         ProjectInfoSection         `bson:"projectInfo" json:"projectInfo"`
	EthicsLetter        EthicsLetterSection        `bson:"ethicsLetter" json:"ethicsLetter"`
	DataAccessAgreement DataAccessAgreementSection `bson:"dataAccessAgreement" json:"dataAccessAgreement"`
	Appendices          AppendicesSection          `bson:"appendices" json:"appendices"`
	Signature           SignatureSection           `bson:"signature" json:"signature"`
}
