package messaging

import (
	"time"

	messagingTypes "github.com/icgc-argo/dac-api-sub000/pkg/messaging/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *MessagingDBService) AddToOutgoingEmails(email messagingTypes.OutgoingEmail) (messagingTypes.OutgoingEmail, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if email.AddedAt <= 0 {
		email.AddedAt = time.Now().Unix()
	}

	res, err := dbService.collectionOutgoingEmails().InsertOne(ctx, email)
	if err != nil {
		return email, err
	}
	email.ID = res.InsertedID.(primitive.ObjectID)
	return email, nil
}

// FetchOutgoingEmails claims up to batchSize emails that have not been
// attempted since olderThan. The claim is made by bumping lastSendAttempt,
// so concurrent job runs do not pick up the same message.
func (dbService *MessagingDBService) FetchOutgoingEmails(batchSize int, olderThan int64) (emails []messagingTypes.OutgoingEmail, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"lastSendAttempt": bson.M{"$lt": olderThan},
	}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{
			{Key: "highPrio", Value: -1},
			{Key: "addedAt", Value: 1},
		}).
		SetReturnDocument(options.After)

	for len(emails) < batchSize {
		update := bson.M{"$set": bson.M{"lastSendAttempt": time.Now().Unix()}}

		var email messagingTypes.OutgoingEmail
		err := dbService.collectionOutgoingEmails().FindOneAndUpdate(ctx, filter, update, opts).Decode(&email)
		if err != nil {
			break
		}
		emails = append(emails, email)
	}
	return emails, nil
}

// ResetLastSendAttemptForOutgoing releases the claim on an email so that the
// next job run can retry it without waiting for the lock to expire.
func (dbService *MessagingDBService) ResetLastSendAttemptForOutgoing(id primitive.ObjectID) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionOutgoingEmails().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastSendAttempt": 0}},
	)
	return err
}

func (dbService *MessagingDBService) DeleteOutgoingEmail(id primitive.ObjectID) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionOutgoingEmails().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (dbService *MessagingDBService) CountOutgoingEmails() (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()
	return dbService.collectionOutgoingEmails().CountDocuments(ctx, bson.M{})
}
