package application

import (
	"context"
	"errors"

	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *ApplicationDBService) CreateApplication(application types.Application) (types.Application, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	application.Version = 1
	res, err := dbService.collectionApplications().InsertOne(ctx, application)
	if err != nil {
		return application, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if ok {
		application.ID = id
	}
	return application, nil
}

func (dbService *ApplicationDBService) GetApplicationByAppID(appID string) (types.Application, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"appId": appID}

	var application types.Application
	err := dbService.collectionApplications().FindOne(ctx, filter).Decode(&application)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return application, &types.NotFoundError{Entity: "application", ID: appID}
	}
	return application, err
}

func (dbService *ApplicationDBService) GetApplicationsBySubmitter(submitterID string) (applications []types.Application, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"submitterId": submitterID}
	opts := options.Find().SetSort(bson.D{{Key: "lastUpdatedAtUtc", Value: -1}})

	cursor, err := dbService.collectionApplications().Find(ctx, filter, opts)
	if err != nil {
		return applications, err
	}
	err = cursor.All(ctx, &applications)
	return applications, err
}

// GetApplications returns one page of applications matching the filter,
// sorted by the given sort spec, together with pagination infos.
func (dbService *ApplicationDBService) GetApplications(
	filter bson.M,
	sort bson.M,
	page int64,
	limit int64,
) (applications []types.Application, paginationInfos PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionApplications()

	totalCount, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return applications, paginationInfos, err
	}
	paginationInfos = prepPaginationInfos(totalCount, page, limit)

	if len(sort) == 0 {
		sort = bson.M{"lastUpdatedAtUtc": -1}
	}
	opts := options.Find().
		SetSort(sort).
		SetSkip((paginationInfos.CurrentPage - 1) * paginationInfos.PageSize).
		SetLimit(paginationInfos.PageSize)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return applications, paginationInfos, err
	}
	err = cursor.All(ctx, &applications)
	return applications, paginationInfos, err
}

func (dbService *ApplicationDBService) CountApplications(filter bson.M) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()
	return dbService.collectionApplications().CountDocuments(ctx, filter)
}

// SaveApplicationWithVersion persists the application only if the stored
// document still carries expectedVersion. The stored version is bumped by
// one on success. A *types.VersionConflictError is returned when another
// writer got there first.
func (dbService *ApplicationDBService) SaveApplicationWithVersion(application types.Application, expectedVersion int64) (types.Application, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	application.Version = expectedVersion + 1

	filter := bson.M{
		"appId":   application.AppID,
		"version": expectedVersion,
	}
	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	var saved types.Application
	err := dbService.collectionApplications().FindOneAndReplace(ctx, filter, application, opts).Decode(&saved)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return application, &types.VersionConflictError{
			AppID:           application.AppID,
			ExpectedVersion: expectedVersion,
		}
	}
	if err != nil {
		return application, err
	}
	return saved, nil
}

// FindAndExecuteOnApplications iterates all applications matching the filter
// and calls fn for each one. Errors from fn abort the iteration when
// returnOnErr is set, otherwise they are collected and returned at the end.
func (dbService *ApplicationDBService) FindAndExecuteOnApplications(
	ctx context.Context,
	filter bson.M,
	returnOnErr bool,
	fn func(application types.Application) error,
) error {
	dbCtx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionApplications().Find(dbCtx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(dbCtx)

	var errs []error
	for cursor.Next(dbCtx) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var application types.Application
		if err := cursor.Decode(&application); err != nil {
			if returnOnErr {
				return err
			}
			errs = append(errs, err)
			continue
		}
		if err := fn(application); err != nil {
			if returnOnErr {
				return err
			}
			errs = append(errs, err)
		}
	}
	if err := cursor.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}
