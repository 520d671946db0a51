package lifecycle

import (
	"strings"
	"time"

	"github.com/google/uuid"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/validators"
)

// collaborator edits are possible while the form is being filled in and,
// for approved applications, as an amendment
func collaboratorsEditable(state string) bool {
	switch state {
	case appTypes.APPLICATION_STATE_DRAFT,
		appTypes.APPLICATION_STATE_SIGN_AND_SUBMIT,
		appTypes.APPLICATION_STATE_REVISIONS_REQUESTED,
		appTypes.APPLICATION_STATE_APPROVED:
		return true
	}
	return false
}

func guardCollaboratorEdit(app *appTypes.Application, principal appTypes.Principal) error {
	if app.State == appTypes.APPLICATION_STATE_CLOSED {
		return &appTypes.StateError{State: app.State, Message: "application is closed, no further updates are permitted"}
	}
	if !collaboratorsEditable(app.State) {
		return &appTypes.StateError{State: app.State, Message: "collaborators cannot be changed in this state"}
	}
	if principal.Role() != appTypes.ROLE_SUBMITTER {
		return &appTypes.ForbiddenError{Role: principal.Role(), Action: "change collaborators"}
	}
	return nil
}

// AddCollaborator appends a collaborator with a server assigned id. Adding a
// duplicate google email, or the applicant's own, fails with a conflict and
// leaves the list unchanged.
func AddCollaborator(
	current *appTypes.Application,
	collaborator appTypes.Collaborator,
	principal appTypes.Principal,
	now time.Time,
) (*Result, error) {
	if err := guardCollaboratorEdit(current, principal); err != nil {
		return nil, err
	}
	if err := checkCollaboratorUniqueness(current, collaborator, ""); err != nil {
		return nil, err
	}

	next := cloneApplication(current)
	collaborator.ID = uuid.NewString()
	next.Sections.Collaborators.List = append(next.Sections.Collaborators.List, collaborator)

	revalidateSections(&next, map[string]bool{sectionCollaborators: true}, now)
	progressToSignAndSubmit(&next, map[string]bool{sectionCollaborators: true})
	finalize(&next, principal, appTypes.EVENT_TYPE_UPDATED, now)
	return &Result{Application: next}, nil
}

// UpdateCollaborator replaces the entry with the same id; the id must
// already exist.
func UpdateCollaborator(
	current *appTypes.Application,
	collaborator appTypes.Collaborator,
	principal appTypes.Principal,
	now time.Time,
) (*Result, error) {
	if err := guardCollaboratorEdit(current, principal); err != nil {
		return nil, err
	}
	index := findCollaborator(current, collaborator.ID)
	if index < 0 {
		return nil, &appTypes.NotFoundError{Entity: "collaborator", ID: collaborator.ID}
	}
	if err := checkCollaboratorUniqueness(current, collaborator, collaborator.ID); err != nil {
		return nil, err
	}

	next := cloneApplication(current)
	next.Sections.Collaborators.List[index] = collaborator

	revalidateSections(&next, map[string]bool{sectionCollaborators: true}, now)
	progressToSignAndSubmit(&next, map[string]bool{sectionCollaborators: true})
	finalize(&next, principal, appTypes.EVENT_TYPE_UPDATED, now)
	return &Result{Application: next}, nil
}

// DeleteCollaborator removes the entry with the given id.
func DeleteCollaborator(
	current *appTypes.Application,
	collaboratorID string,
	principal appTypes.Principal,
	now time.Time,
) (*Result, error) {
	if err := guardCollaboratorEdit(current, principal); err != nil {
		return nil, err
	}
	index := findCollaborator(current, collaboratorID)
	if index < 0 {
		return nil, &appTypes.NotFoundError{Entity: "collaborator", ID: collaboratorID}
	}

	next := cloneApplication(current)
	next.Sections.Collaborators.List = append(
		next.Sections.Collaborators.List[:index],
		next.Sections.Collaborators.List[index+1:]...,
	)

	revalidateSections(&next, map[string]bool{sectionCollaborators: true}, now)
	progressToSignAndSubmit(&next, map[string]bool{sectionCollaborators: true})
	finalize(&next, principal, appTypes.EVENT_TYPE_UPDATED, now)
	return &Result{Application: next}, nil
}

func findCollaborator(app *appTypes.Application, id string) int {
	for i := range app.Sections.Collaborators.List {
		if app.Sections.Collaborators.List[i].ID == id {
			return i
		}
	}
	return -1
}

// uniqueness is enforced on the google email, across the list and against
// the applicant's own email
func checkCollaboratorUniqueness(app *appTypes.Application, collaborator appTypes.Collaborator, excludeID string) error {
	email := strings.ToLower(strings.TrimSpace(collaborator.Info.GoogleEmail))
	if email == "" {
		return nil
	}

	if strings.EqualFold(app.Sections.Applicant.Info.GoogleEmail, email) {
		return &appTypes.ConflictError{
			Code:    appTypes.CONFLICT_CODE_COLLABORATOR_IS_APPLICANT,
			Message: "the applicant cannot be added as a collaborator",
		}
	}

	for _, existing := range app.Sections.Collaborators.List {
		if existing.ID == excludeID {
			continue
		}
		if strings.EqualFold(existing.Info.GoogleEmail, email) {
			return &appTypes.ConflictError{
				Code:    appTypes.CONFLICT_CODE_DUPLICATE_COLLABORATOR,
				Message: "a collaborator with this google email already exists",
			}
		}
	}
	return nil
}

// validate on behalf of the section validator so callers can inspect a
// collaborator before adding it
func ValidateCollaboratorEntry(app *appTypes.Application, collaborator appTypes.Collaborator) appTypes.SectionMeta {
	return validators.ValidateCollaborator(collaborator, siblingContext(app))
}
