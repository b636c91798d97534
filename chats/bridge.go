package chats

import (
	"context"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoReturnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// CreateChatFromRequest finds or creates the chat for a participant pair
// once a request between them is accepted. Idempotent: there is at most one
// active chat per unordered pair, and calling this again with the same pair
// returns that chat with its related-request pointer moved to the newest
// interaction.
//
// Called inline from the accept handlers for job applications, labour hire
// requests, and contractor hire requests. Callers treat errors as
// non-fatal: the accept itself has already been persisted.
func CreateChatFromRequest(ctx context.Context, participant1, participant2, requestType, requestID string) (*models.Chat, error) {
	pairKey := models.PairKeyFor(participant1, participant2)
	related := models.RelatedRequest{RequestType: requestType, RequestID: requestID}
	now := time.Now()

	// reuse the active chat for this pair, pointing it at the newest request
	var chat models.Chat
	err := db.ChatsCollection.FindOneAndUpdate(ctx,
		bson.M{"pairkey": pairKey, "active": true},
		bson.M{"$set": bson.M{"related_request": related, "updated_at": now}},
		mongoReturnAfter(),
	).Decode(&chat)
	if err == nil {
		return &chat, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// a chat may already be tied to this exact request (e.g. it was
	// deactivated after creation)
	err = db.ChatsCollection.FindOne(ctx, bson.M{"related_request.request_id": requestID}).Decode(&chat)
	if err == nil {
		return &chat, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	fresh := models.Chat{
		Participants:   []string{participant1, participant2},
		PairKey:        pairKey,
		RelatedRequest: related,
		UnreadCount: map[string]int{
			participant1: 0,
			participant2: 0,
		},
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := db.ChatsCollection.InsertOne(ctx, fresh)
	if err != nil {
		// two first-acceptances racing: the unique pairkey index rejects
		// the second insert, so fetch what the winner created
		if mongo.IsDuplicateKeyError(err) {
			if ferr := db.ChatsCollection.FindOne(ctx, bson.M{"pairkey": pairKey}).Decode(&chat); ferr == nil {
				return &chat, nil
			}
		}
		return nil, err
	}

	fresh.ID = res.InsertedID.(primitive.ObjectID)
	return &fresh, nil
}
