package lifecycle

import (
	"time"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

func documentEditableIn(docType string, state string) bool {
	switch docType {
	case appTypes.DOCUMENT_TYPE_ETHICS_LETTER:
		switch state {
		case appTypes.APPLICATION_STATE_DRAFT,
			appTypes.APPLICATION_STATE_SIGN_AND_SUBMIT,
			appTypes.APPLICATION_STATE_REVISIONS_REQUESTED,
			appTypes.APPLICATION_STATE_APPROVED:
			return true
		}
	case appTypes.DOCUMENT_TYPE_SIGNED_APP:
		return state == appTypes.APPLICATION_STATE_SIGN_AND_SUBMIT ||
			state == appTypes.APPLICATION_STATE_REVISIONS_REQUESTED
	case appTypes.DOCUMENT_TYPE_APPROVED_PACKAGE:
		return state == appTypes.APPLICATION_STATE_APPROVED
	}
	return false
}

// AddDocument records an uploaded document reference on the application. A
// signed application document replaces any previous one; a new approved
// package snapshot becomes the single current one. Replaced signed documents
// are returned as cleanup candidates.
func AddDocument(
	current *appTypes.Application,
	doc appTypes.UploadedDocument,
	principal appTypes.Principal,
	now time.Time,
) (*Result, error) {
	if current.State == appTypes.APPLICATION_STATE_CLOSED {
		return nil, &appTypes.StateError{State: current.State, Message: "application is closed, no further updates are permitted"}
	}
	if !documentEditableIn(doc.Type, current.State) {
		return nil, &appTypes.StateError{State: current.State, Message: "document type " + doc.Type + " cannot be attached in this state"}
	}
	if doc.Type == appTypes.DOCUMENT_TYPE_APPROVED_PACKAGE {
		if principal.Role() != appTypes.ROLE_ADMIN {
			return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "attach the approved package"}
		}
	} else if principal.Role() != appTypes.ROLE_SUBMITTER {
		return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "attach documents"}
	}

	next := cloneApplication(current)
	orphaned := []string{}

	switch doc.Type {
	case appTypes.DOCUMENT_TYPE_SIGNED_APP:
		// only one signed application document at a time
		kept := next.Documents[:0]
		for _, existing := range next.Documents {
			if existing.Type == appTypes.DOCUMENT_TYPE_SIGNED_APP {
				orphaned = append(orphaned, existing.ObjectID)
				continue
			}
			kept = append(kept, existing)
		}
		next.Documents = kept
	case appTypes.DOCUMENT_TYPE_APPROVED_PACKAGE:
		// snapshots are kept, only one is current
		for i := range next.Documents {
			if next.Documents[i].Type == appTypes.DOCUMENT_TYPE_APPROVED_PACKAGE {
				next.Documents[i].IsCurrent = false
			}
		}
		doc.IsCurrent = true
	}

	doc.UploadedAt = now
	next.Documents = append(next.Documents, doc)

	affected := sectionsAffectedByDocument(doc.Type)
	revalidateSections(&next, affected, now)
	progressToSignAndSubmit(&next, affected)
	finalize(&next, principal, appTypes.EVENT_TYPE_UPDATED, now)
	return &Result{Application: next, DocumentsToDelete: orphaned}, nil
}

// DeleteDocument removes a document reference; the object id is returned for
// best effort deletion from storage.
func DeleteDocument(
	current *appTypes.Application,
	objectID string,
	principal appTypes.Principal,
	now time.Time,
) (*Result, error) {
	if current.State == appTypes.APPLICATION_STATE_CLOSED {
		return nil, &appTypes.StateError{State: current.State, Message: "application is closed, no further updates are permitted"}
	}

	index := -1
	for i := range current.Documents {
		if current.Documents[i].ObjectID == objectID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, &appTypes.NotFoundError{Entity: "document", ID: objectID}
	}

	doc := current.Documents[index]
	if !documentEditableIn(doc.Type, current.State) {
		return nil, &appTypes.StateError{State: current.State, Message: "document type " + doc.Type + " cannot be removed in this state"}
	}
	if doc.Type != appTypes.DOCUMENT_TYPE_APPROVED_PACKAGE && principal.Role() != appTypes.ROLE_SUBMITTER {
		return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "remove documents"}
	}
	if doc.Type == appTypes.DOCUMENT_TYPE_APPROVED_PACKAGE && principal.Role() != appTypes.ROLE_ADMIN {
		return nil, &appTypes.ForbiddenError{Role: principal.Role(), Action: "remove the approved package"}
	}

	next := cloneApplication(current)
	next.Documents = append(next.Documents[:index], next.Documents[index+1:]...)

	affected := sectionsAffectedByDocument(doc.Type)
	revalidateSections(&next, affected, now)
	progressToSignAndSubmit(&next, affected)
	finalize(&next, principal, appTypes.EVENT_TYPE_UPDATED, now)
	return &Result{Application: next, DocumentsToDelete: []string{objectID}}, nil
}

func sectionsAffectedByDocument(docType string) map[string]bool {
	switch docType {
	case appTypes.DOCUMENT_TYPE_ETHICS_LETTER:
		return map[string]bool{sectionEthicsLetter: true}
	case appTypes.DOCUMENT_TYPE_SIGNED_APP:
		return map[string]bool{sectionSignature: true}
	}
	return map[string]bool{}
}
