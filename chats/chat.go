package chats

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetChats lists the caller's chats, most recently active first.
func GetChats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.ChatsCollection.Find(ctx,
		bson.M{"participants": userID, "active": true},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	chats := []models.Chat{}
	if err := cursor.All(ctx, &chats); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, chats, "ok", nil)
}

// GetChat returns a chat and its messages; the caller must be a participant.
func GetChat(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	chatID, err := primitive.ObjectIDFromHex(ps.ByName("chatid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var chat models.Chat
	err = db.ChatsCollection.FindOne(ctx, bson.M{
		"_id":          chatID,
		"participants": userID,
	}).Decode(&chat)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Chat not found")
		return
	}

	cursor, err := db.MessagesCollection.Find(ctx,
		bson.M{"chatid": chatID.Hex()},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"chat":     chat,
		"messages": messages,
	}, "ok", nil)
}

// SendMessage appends a message, bumps the chat preview, and increments the
// peer's unread count. The created message is also pushed to the websocket
// room when a hub is wired.
func SendMessage(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		chatID, err := primitive.ObjectIDFromHex(ps.ByName("chatid"))
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid chat ID")
			return
		}

		var input struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Text == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Message text required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var chat models.Chat
		err = db.ChatsCollection.FindOne(ctx, bson.M{
			"_id":          chatID,
			"participants": userID,
		}).Decode(&chat)
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Chat not found")
			return
		}

		msg := models.Message{
			ChatID:    chatID.Hex(),
			SenderID:  userID,
			Text:      input.Text,
			CreatedAt: time.Now(),
		}
		res, err := db.MessagesCollection.InsertOne(ctx, msg)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Insert failed")
			return
		}
		msg.ID = res.InsertedID.(primitive.ObjectID)

		peer := peerOf(chat.Participants, userID)
		update := bson.M{
			"$set": bson.M{
				"last_message": models.MessagePreview{
					Text:      input.Text,
					SenderID:  userID,
					Timestamp: msg.CreatedAt,
				},
				"updated_at": msg.CreatedAt,
			},
		}
		if peer != "" {
			update["$inc"] = bson.M{"unread_count." + peer: 1}
		}
		db.ChatsCollection.UpdateOne(ctx, bson.M{"_id": chatID}, update)

		if hub != nil {
			hub.BroadcastMessage(msg)
		}

		utils.SendResponse(w, http.StatusCreated, msg, "Message sent", nil)
	}
}

// MarkRead zeroes the caller's unread counter on a chat.
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	chatID, err := primitive.ObjectIDFromHex(ps.ByName("chatid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ChatsCollection.UpdateOne(ctx,
		bson.M{"_id": chatID, "participants": userID},
		bson.M{"$set": bson.M{"unread_count." + userID: 0}},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Chat not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Marked read", nil)
}

// EditMessage updates the text of the caller's own message.
func EditMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	msgID, err := primitive.ObjectIDFromHex(ps.ByName("msgid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Text == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message text required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.MessagesCollection.UpdateOne(ctx,
		bson.M{"_id": msgID, "senderid": userID, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"text": input.Text, "edited": true, "edited_at": time.Now()}},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Message updated", nil)
}

// DeleteMessage soft-deletes the caller's own message.
func DeleteMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	msgID, err := primitive.ObjectIDFromHex(ps.ByName("msgid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.MessagesCollection.UpdateOne(ctx,
		bson.M{"_id": msgID, "senderid": userID},
		bson.M{"$set": bson.M{"deleted": true, "text": ""}},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Message deleted", nil)
}

// peerOf returns the other participant of a two-party chat.
func peerOf(participants []string, userID string) string {
	for _, p := range participants {
		if p != userID {
			return p
		}
	}
	return ""
}
