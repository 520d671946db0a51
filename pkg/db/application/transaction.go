package application

import (
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a mongo session transaction. It is used
// where two application documents must change together, e.g. linking a
// renewal to its source application.
func (dbService *ApplicationDBService) WithTransaction(fn func(sessCtx mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	session, err := dbService.DBClient.StartSession()
	if err != nil {
		return nil, &types.TransactionFailure{Err: err}
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, fn)
	if err != nil {
		return nil, &types.TransactionFailure{Err: err}
	}
	return result, nil
}

// CreateApplicationTx inserts an application within an existing transaction.
func (dbService *ApplicationDBService) CreateApplicationTx(sessCtx mongo.SessionContext, application types.Application) error {
	application.Version = 1
	_, err := dbService.collectionApplications().InsertOne(sessCtx, application)
	return err
}

// SaveApplicationWithVersionTx is the transactional variant of
// SaveApplicationWithVersion.
func (dbService *ApplicationDBService) SaveApplicationWithVersionTx(sessCtx mongo.SessionContext, application types.Application, expectedVersion int64) error {
	application.Version = expectedVersion + 1
	res, err := dbService.collectionApplications().ReplaceOne(sessCtx, bson.M{
		"appId":   application.AppID,
		"version": expectedVersion,
	}, application)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return &types.VersionConflictError{
			AppID:           application.AppID,
			ExpectedVersion: expectedVersion,
		}
	}
	return nil
}
