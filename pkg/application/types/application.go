package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// application lifecycle states
const (
	APPLICATION_STATE_DRAFT               = "DRAFT"
	APPLICATION_STATE_SIGN_AND_SUBMIT     = "SIGN AND SUBMIT"
	APPLICATION_STATE_REVIEW              = "REVIEW"
	APPLICATION_STATE_REVISIONS_REQUESTED = "REVISIONS REQUESTED"
	APPLICATION_STATE_APPROVED            = "APPROVED"
	APPLICATION_STATE_REJECTED            = "REJECTED"
	APPLICATION_STATE_PAUSED              = "PAUSED"
	APPLICATION_STATE_EXPIRED             = "EXPIRED"
	APPLICATION_STATE_CLOSED              = "CLOSED"
)

const (
	PAUSE_REASON_PENDING_ATTESTATION = "PENDING ATTESTATION"
	PAUSE_REASON_ADMIN_PAUSE         = "ADMIN PAUSE"
)

// uploaded document kinds
const (
	DOCUMENT_TYPE_ETHICS_LETTER    = "ETHICS"
	DOCUMENT_TYPE_SIGNED_APP       = "SIGNED_APP"
	DOCUMENT_TYPE_APPROVED_PACKAGE = "APPROVED_PDF"
)

// UploadedDocument is a weak reference to an object stored outside of the
// application database. Only the object id is tracked here.
type UploadedDocument struct {
	ObjectID   string    `bson:"objectId" json:"objectId"`
	Type       string    `bson:"type" json:"type"`
	Name       string    `bson:"name" json:"name"`
	UploadedAt time.Time `bson:"uploadedAtUtc" json:"uploadedAtUtc"`
	IsCurrent  bool      `bson:"isCurrent" json:"isCurrent"`
}

// EmailNotifications holds idempotency flags for notifications that must be
// sent at most once per application. Batch checks only target records where
// the corresponding flag is still unset.
type EmailNotifications struct {
	AttestationRequiredNotificationSent bool `bson:"attestationRequiredNotificationSent" json:"attestationRequiredNotificationSent"`
	ApplicationPausedNotificationSent   bool `bson:"applicationPausedNotificationSent" json:"applicationPausedNotificationSent"`
	FirstExpiryNotificationSent         bool `bson:"firstExpiryNotificationSent" json:"firstExpiryNotificationSent"`
	SecondExpiryNotificationSent        bool `bson:"secondExpiryNotificationSent" json:"secondExpiryNotificationSent"`
	ApplicationExpiredNotificationSent  bool `bson:"applicationExpiredNotificationSent" json:"applicationExpiredNotificationSent"`
	ApplicationClosedNotificationSent   bool `bson:"applicationClosedNotificationSent" json:"applicationClosedNotificationSent"`
}

// RevisionRequest flags one section for applicant correction.
type RevisionRequest struct {
	Details   string `bson:"details" json:"details"`
	Requested bool   `bson:"requested" json:"requested"`
}

// revisable section keys (plus the catch-all "general" entry)
const (
	REVISION_SECTION_APPLICANT      = "applicant"
	REVISION_SECTION_REPRESENTATIVE = "representative"
	REVISION_SECTION_COLLABORATORS  = "collaborators"
	REVISION_SECTION_PROJECT_INFO   = "projectInfo"
	REVISION_SECTION_ETHICS_LETTER  = "ethicsLetter"
	REVISION_SECTION_SIGNATURE      = "signature"
	REVISION_SECTION_GENERAL        = "general"
)

type RevisionRequests map[string]RevisionRequest

// HasRequested reports whether at least one entry is flagged. The aggregate
// revisionsRequested value on the application is always derived from this,
// never set independently.
func (rr RevisionRequests) HasRequested() bool {
	for _, entry := range rr {
		if entry.Requested {
			return true
		}
	}
	return false
}

// Application is the root aggregate. It exclusively owns its sections,
// collaborators and update events. Version is the optimistic concurrency
// marker: every persisted write is a compare-and-set against it.
type Application struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	AppID     string             `bson:"appId" json:"appId"`
	AppNumber int64              `bson:"appNumber" json:"appNumber"`
	Version   int64              `bson:"version" json:"version"`

	State          string `bson:"state" json:"state"`
	SubmitterID    string `bson:"submitterId" json:"submitterId"`
	SubmitterEmail string `bson:"submitterEmail" json:"submitterEmail"`

	Sections           Sections         `bson:"sections" json:"sections"`
	RevisionRequests   RevisionRequests `bson:"revisionRequest" json:"revisionRequest"`
	RevisionsRequested bool             `bson:"revisionsRequested" json:"revisionsRequested"`

	UpdateEvents []UpdateEvent      `bson:"updates" json:"updates"`
	Documents    []UploadedDocument `bson:"documents" json:"documents"`

	EmailNotifications EmailNotifications `bson:"emailNotifications" json:"emailNotifications"`

	PauseReason      string     `bson:"pauseReason,omitempty" json:"pauseReason,omitempty"`
	DenialReason     string     `bson:"denialReason,omitempty" json:"denialReason,omitempty"`
	AttestedAtUtc    *time.Time `bson:"attestedAtUtc,omitempty" json:"attestedAtUtc,omitempty"`
	AttestationByUtc *time.Time `bson:"attestationByUtc,omitempty" json:"attestationByUtc,omitempty"`

	CreatedAtUtc     time.Time  `bson:"createdAtUtc" json:"createdAtUtc"`
	SubmittedAtUtc   *time.Time `bson:"submittedAtUtc,omitempty" json:"submittedAtUtc,omitempty"`
	ApprovedAtUtc    *time.Time `bson:"approvedAtUtc,omitempty" json:"approvedAtUtc,omitempty"`
	ExpiresAtUtc     *time.Time `bson:"expiresAtUtc,omitempty" json:"expiresAtUtc,omitempty"`
	ClosedAtUtc      *time.Time `bson:"closedAtUtc,omitempty" json:"closedAtUtc,omitempty"`
	LastUpdatedAtUtc time.Time  `bson:"lastUpdatedAtUtc" json:"lastUpdatedAtUtc"`

	// renewal linkage
	IsRenewal               bool       `bson:"isRenewal" json:"isRenewal"`
	SourceAppID             string     `bson:"sourceAppId,omitempty" json:"sourceAppId,omitempty"`
	RenewalAppID            string     `bson:"renewalAppId,omitempty" json:"renewalAppId,omitempty"`
	RenewalPeriodEndDateUtc *time.Time `bson:"renewalPeriodEndDateUtc,omitempty" json:"renewalPeriodEndDateUtc,omitempty"`

	SearchValues []string `bson:"searchValues" json:"-"`
}

// EverApproved reports whether the application reached APPROVED at some
// point, regardless of its current state.
func (app *Application) EverApproved() bool {
	return app.ApprovedAtUtc != nil
}

// CurrentApprovedPackage returns the document marked current among the
// approved package snapshots, nil if there is none.
func (app *Application) CurrentApprovedPackage() *UploadedDocument {
	for i := range app.Documents {
		doc := app.Documents[i]
		if doc.Type == DOCUMENT_TYPE_APPROVED_PACKAGE && doc.IsCurrent {
			return &doc
		}
	}
	return nil
}

// DocumentsOfType collects the object ids of documents of the given kind.
func (app *Application) DocumentsOfType(docType string) []string {
	ids := []string{}
	for _, doc := range app.Documents {
		if doc.Type == docType {
			ids = append(ids, doc.ObjectID)
		}
	}
	return ids
}
