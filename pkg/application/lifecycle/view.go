package lifecycle

import (
	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

// PrepareForView redacts the application snapshot for the caller's role.
// Non-reviewers do not see the audit trail or internal notification state.
func PrepareForView(app *appTypes.Application, callerIsReviewer bool) appTypes.Application {
	view := cloneApplication(app)
	if callerIsReviewer {
		return view
	}

	view.UpdateEvents = []appTypes.UpdateEvent{}
	view.EmailNotifications = appTypes.EmailNotifications{}
	view.SearchValues = nil
	return view
}
