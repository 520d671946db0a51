package application

import (
	"time"

	"github.com/icgc-argo/dac-api-sub000/pkg/application/lifecycle"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	"go.mongodb.org/mongo-driver/mongo"
)

// RenewApplication creates the renewal draft and links it to its source in
// one transaction: either both applications are written or neither.
func RenewApplication(appID string, principal types.Principal, now time.Time) (types.Application, error) {
	source, err := applicationDBService.GetApplicationByAppID(appID)
	if err != nil {
		return types.Application{}, err
	}
	if err := authorizeAccess(&source, principal); err != nil {
		return types.Application{}, err
	}

	renewalAppNumber, err := applicationDBService.IncrementAndGetAppNumber()
	if err != nil {
		return types.Application{}, err
	}

	result, err := lifecycle.BuildRenewal(&source, renewalAppNumber, principal, now, lifecycleConfig)
	if err != nil {
		return types.Application{}, err
	}

	_, err = applicationDBService.WithTransaction(func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := applicationDBService.CreateApplicationTx(sessCtx, result.Renewal); err != nil {
			return nil, err
		}
		if err := applicationDBService.SaveApplicationWithVersionTx(sessCtx, result.Source, source.Version); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return types.Application{}, err
	}

	SendApplicationNotifications(&result.Renewal, result.Notifications)
	return result.Renewal, nil
}
