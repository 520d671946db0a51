package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/lifecycle"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	"github.com/icgc-argo/dac-api-sub000/pkg/filestore"
)

// UploadDocument stores the file content first and only then attaches the
// reference to the application. If the reference cannot be written, the
// uploaded object is removed again.
func UploadDocument(
	ctx context.Context,
	appID string,
	docType string,
	fileName string,
	contentType string,
	content io.Reader,
	principal types.Principal,
	now time.Time,
) (types.Application, error) {
	app, err := applicationDBService.GetApplicationByAppID(appID)
	if err != nil {
		return types.Application{}, err
	}
	if err := authorizeAccess(&app, principal); err != nil {
		return types.Application{}, err
	}

	objectID := uuid.NewString()
	if _, err := documentStore.Upload(ctx, objectID, fileName, contentType, content); err != nil {
		return types.Application{}, err
	}

	doc := types.UploadedDocument{
		ObjectID: objectID,
		Type:     docType,
		Name:     fileName,
	}
	result, err := lifecycle.AddDocument(&app, doc, principal, now)
	if err != nil {
		removeUploadedObject(ctx, objectID)
		return types.Application{}, err
	}

	saved, err := persistResult(result, app.Version)
	if err != nil {
		removeUploadedObject(ctx, objectID)
		return types.Application{}, err
	}
	return saved, nil
}

func removeUploadedObject(ctx context.Context, objectID string) {
	if err := documentStore.Delete(ctx, objectID); err != nil {
		slog.Error("failed to remove uploaded object after error", slog.String("objectId", objectID), slog.String("error", err.Error()))
	}
}

func DeleteDocument(appID string, objectID string, principal types.Principal, now time.Time) (types.Application, error) {
	app, err := applicationDBService.GetApplicationByAppID(appID)
	if err != nil {
		return types.Application{}, err
	}
	if err := authorizeAccess(&app, principal); err != nil {
		return types.Application{}, err
	}

	result, err := lifecycle.DeleteDocument(&app, objectID, principal, now)
	if err != nil {
		return types.Application{}, err
	}
	return persistResult(result, app.Version)
}

// DownloadDocument streams a stored document back to the caller.
func DownloadDocument(ctx context.Context, appID string, objectID string, principal types.Principal) (io.ReadCloser, filestore.ObjectInfo, error) {
	app, err := applicationDBService.GetApplicationByAppID(appID)
	if err != nil {
		return nil, filestore.ObjectInfo{}, err
	}
	if err := authorizeAccess(&app, principal); err != nil {
		return nil, filestore.ObjectInfo{}, err
	}

	found := false
	for _, doc := range app.Documents {
		if doc.ObjectID == objectID {
			found = true
			break
		}
	}
	if !found {
		return nil, filestore.ObjectInfo{}, &types.NotFoundError{Entity: "document", ID: objectID}
	}

	return documentStore.Download(ctx, objectID)
}
