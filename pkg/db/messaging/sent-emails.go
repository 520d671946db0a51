package messaging

import (
	"time"

	messagingTypes "github.com/icgc-argo/dac-api-sub000/pkg/messaging/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToSentEmails stores a delivery record. The rendered content is dropped
// to keep the collection small, the template can reproduce it if needed.
func (dbService *MessagingDBService) AddToSentEmails(email messagingTypes.OutgoingEmail) (messagingTypes.OutgoingEmail, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()
	email.Content = ""
	email.SentAt = time.Now().Unix()

	email.ID = primitive.NilObjectID
	res, err := dbService.collectionSentEmails().InsertOne(ctx, email)
	if err != nil {
		return email, err
	}
	email.ID = res.InsertedID.(primitive.ObjectID)
	return email, nil
}

func (dbService *MessagingDBService) GetSentEmailsForApplication(appID string) (emails []messagingTypes.OutgoingEmail, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})
	cursor, err := dbService.collectionSentEmails().Find(ctx, bson.M{"appId": appID}, opts)
	if err != nil {
		return emails, err
	}
	err = cursor.All(ctx, &emails)
	return emails, err
}
