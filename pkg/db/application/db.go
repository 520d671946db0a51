package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/icgc-argo/dac-api-sub000/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_APPLICATIONS = "applications"
	COLLECTION_NAME_COUNTERS     = "counters"
)

type ApplicationDBService struct {
	DBClient *mongo.Client
	timeout  int
	dbName   string
}

func NewApplicationDBService(configs db.DBConfig) (*ApplicationDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	appDBSc := &ApplicationDBService{
		DBClient: dbClient,
		timeout:  configs.Timeout,
		dbName:   configs.DBName,
	}

	if configs.RunIndexCreation {
		if err := appDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for application DB", slog.String("error", err.Error()))
		}
	}

	return appDBSc, nil
}

func (dbService *ApplicationDBService) collectionApplications() *mongo.Collection {
	return dbService.DBClient.Database(dbService.dbName).Collection(COLLECTION_NAME_APPLICATIONS)
}

func (dbService *ApplicationDBService) collectionCounters() *mongo.Collection {
	return dbService.DBClient.Database(dbService.dbName).Collection(COLLECTION_NAME_COUNTERS)
}

func (dbService *ApplicationDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *ApplicationDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for application DB")
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionApplications()
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "appId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "state", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "submitterId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "searchValues", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "state", Value: 1},
				{Key: "expiresAtUtc", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "state", Value: 1},
				{Key: "attestationByUtc", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "state", Value: 1},
				{Key: "renewalPeriodEndDateUtc", Value: 1},
			},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		slog.Error("Error creating indexes for applications", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionCounters().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "scope", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	return err
}
