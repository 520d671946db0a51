package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/icgc-argo/dac-api-sub000/pkg/application/lifecycle"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	appdb "github.com/icgc-argo/dac-api-sub000/pkg/db/application"
	"github.com/icgc-argo/dac-api-sub000/pkg/filestore"
)

var (
	applicationDBService *appdb.ApplicationDBService
	documentStore        filestore.Store
	lifecycleConfig      types.LifecycleConfig
	adminRecipients      []string
)

func Init(
	appDB *appdb.ApplicationDBService,
	store filestore.Store,
	cfg types.LifecycleConfig,
	adminNotificationRecipients []string,
) {
	applicationDBService = appDB
	documentStore = store
	lifecycleConfig = cfg
	adminRecipients = adminNotificationRecipients
}

func LifecycleConfig() types.LifecycleConfig {
	return lifecycleConfig
}

// CreateApplication starts a new draft for the calling submitter.
func CreateApplication(principal types.Principal, now time.Time) (types.Application, error) {
	if principal.Role() != types.ROLE_SUBMITTER {
		return types.Application{}, &types.ForbiddenError{Role: principal.Role(), Action: "create an application"}
	}
	user, ok := principal.(types.UserPrincipal)
	if !ok {
		return types.Application{}, &types.ForbiddenError{Role: principal.Role(), Action: "create an application"}
	}

	appNumber, err := applicationDBService.IncrementAndGetAppNumber()
	if err != nil {
		return types.Application{}, err
	}

	app := lifecycle.NewApplication(appNumber, user.ID, user.Email, now)
	created, err := applicationDBService.CreateApplication(app)
	if err != nil {
		return types.Application{}, err
	}
	slog.Info("application created", slog.String("appId", created.AppID), slog.String("submitterId", user.ID))
	return created, nil
}

// GetApplication loads one application and strips the reviewer-only parts
// for non admin callers.
func GetApplication(appID string, principal types.Principal) (types.Application, error) {
	app, err := applicationDBService.GetApplicationByAppID(appID)
	if err != nil {
		return types.Application{}, err
	}
	if err := authorizeAccess(&app, principal); err != nil {
		return types.Application{}, err
	}
	return lifecycle.PrepareForView(&app, isReviewer(principal)), nil
}

// SubmitUpdate runs one lifecycle transition and persists the outcome with
// a compare-and-set on the loaded version.
func SubmitUpdate(appID string, update *lifecycle.ApplicationUpdate, principal types.Principal, now time.Time) (types.Application, error) {
	app, err := applicationDBService.GetApplicationByAppID(appID)
	if err != nil {
		return types.Application{}, err
	}
	if err := authorizeAccess(&app, principal); err != nil {
		return types.Application{}, err
	}

	result, err := lifecycle.UpdateApplication(&app, update, principal, now, lifecycleConfig)
	if err != nil {
		return types.Application{}, err
	}
	return persistResult(result, app.Version)
}

// persistResult saves the next snapshot and runs the side effects that only
// happen after a successful write: orphaned document cleanup and email
// notifications, both best effort.
func persistResult(result *lifecycle.Result, expectedVersion int64) (types.Application, error) {
	saved, err := applicationDBService.SaveApplicationWithVersion(result.Application, expectedVersion)
	if err != nil {
		return types.Application{}, err
	}

	cleanupDocuments(result.DocumentsToDelete)
	SendApplicationNotifications(&saved, result.Notifications)
	return saved, nil
}

func cleanupDocuments(objectIDs []string) {
	if documentStore == nil || len(objectIDs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, objectID := range objectIDs {
		if err := documentStore.Delete(ctx, objectID); err != nil {
			slog.Error("failed to delete orphaned document", slog.String("objectId", objectID), slog.String("error", err.Error()))
		}
	}
}

func authorizeAccess(app *types.Application, principal types.Principal) error {
	switch principal.Role() {
	case types.ROLE_ADMIN, types.ROLE_SYSTEM:
		return nil
	case types.ROLE_SUBMITTER:
		if principal.AuthorID() == app.SubmitterID {
			return nil
		}
	}
	return &types.ForbiddenError{Role: principal.Role(), Action: "access application " + app.AppID}
}

func isReviewer(principal types.Principal) bool {
	role := principal.Role()
	return role == types.ROLE_ADMIN || role == types.ROLE_SYSTEM
}
