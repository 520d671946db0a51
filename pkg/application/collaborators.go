package application

import (
	"time"

	"github.com/icgc-argo/dac-api-sub000/pkg/application/lifecycle"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

func AddCollaborator(appID string, collaborator types.Collaborator, principal types.Principal, now time.Time) (types.Application, error) {
	app, err := applicationDBService.GetApplicationByAppID(appID)
	if err != nil {
		return types.Application{}, err
	}
	if err := authorizeAccess(&app, principal); err != nil {
		return types.Application{}, err
	}

	result, err := lifecycle.AddCollaborator(&app, collaborator, principal, now)
	if err != nil {
		return types.Application{}, err
	}
	return persistResult(result, app.Version)
}

func UpdateCollaborator(appID string, collaborator types.Collaborator, principal types.Principal, now time.Time) (types.Application, error) {
	app, err := applicationDBService.GetApplicationByAppID(appID)
	if err != nil {
		return types.Application{}, err
	}
	if err := authorizeAccess(&app, principal); err != nil {
		return types.Application{}, err
	}

	result, err := lifecycle.UpdateCollaborator(&app, collaborator, principal, now)
	if err != nil {
		return types.Application{}, err
	}
	return persistResult(result, app.Version)
}

func DeleteCollaborator(appID string, collaboratorID string, principal types.Principal, now time.Time) (types.Application, error) {
	app, err := applicationDBService.GetApplicationByAppID(appID)
	if err != nil {
		return types.Application{}, err
	}
	if err := authorizeAccess(&app, principal); err != nil {
		return types.Application{}, err
	}

	result, err := lifecycle.DeleteCollaborator(&app, collaboratorID, principal, now)
	if err != nil {
		return types.Application{}, err
	}
	return persistResult(result, app.Version)
}
