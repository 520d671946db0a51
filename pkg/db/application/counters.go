package application

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const counterScopeAppNumber = "appNumber"

type counterDoc struct {
	Scope string `bson:"scope"`
	Seq   int64  `bson:"seq"`
}

// IncrementAndGetAppNumber atomically bumps the application number sequence
// and returns the new value. The counter document is created on first use.
func (dbService *ApplicationDBService) IncrementAndGetAppNumber() (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"scope": counterScopeAppNumber}
	update := bson.M{
		"$inc": bson.M{"seq": 1},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter counterDoc
	err := dbService.collectionCounters().FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
