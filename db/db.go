package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UsersCollection                  *mongo.Collection
	LaboursCollection                *mongo.Collection
	ContractorsCollection            *mongo.Collection
	JobsCollection                   *mongo.Collection
	ContractorJobsCollection         *mongo.Collection
	HireRequestsCollection           *mongo.Collection
	ContractorHireRequestsCollection *mongo.Collection
	ChatsCollection                  *mongo.Collection
	MessagesCollection               *mongo.Collection
	NotificationsCollection          *mongo.Collection
	AdminsCollection                 *mongo.Collection
	BroadcastsCollection             *mongo.Collection
	VerificationsCollection          *mongo.Collection
	CategoriesCollection             *mongo.Collection
	CMSCollection                    *mongo.Collection
	FeedbackCollection               *mongo.Collection
	Client                           *mongo.Client
)

// Connect establishes the MongoDB connection and binds the package-level
// collection handles. Call once at startup, before any route is served.
func Connect(ctx context.Context) error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	Client = client

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "majdoorsathi"
	}
	database := client.Database(dbName)

	UsersCollection = database.Collection("users")
	LaboursCollection = database.Collection("labours")
	ContractorsCollection = database.Collection("contractors")
	JobsCollection = database.Collection("jobs")
	ContractorJobsCollection = database.Collection("contractorjobs")
	HireRequestsCollection = database.Collection("hirerequests")
	ContractorHireRequestsCollection = database.Collection("contractorhirerequests")
	ChatsCollection = database.Collection("chats")
	MessagesCollection = database.Collection("messages")
	NotificationsCollection = database.Collection("notifications")
	AdminsCollection = database.Collection("admins")
	BroadcastsCollection = database.Collection("broadcasts")
	VerificationsCollection = database.Collection("verifications")
	CategoriesCollection = database.Collection("labourcategories")
	CMSCollection = database.Collection("cmscontents")
	FeedbackCollection = database.Collection("feedback")

	return nil
}

// EnsureIndexes creates the indexes the handlers rely on. The unique pairkey
// index on chats is what makes the chat bridge safe under concurrent first
// acceptances.
func EnsureIndexes(ctx context.Context) {
	truev := true
	create := func(coll *mongo.Collection, model mongo.IndexModel) {
		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			log.Printf("index create on %s failed: %v", coll.Name(), err)
		}
	}

	create(UsersCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: &options.IndexOptions{Unique: &truev},
	})
	create(ChatsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "pairkey", Value: 1}},
		Options: &options.IndexOptions{Unique: &truev},
	})
	create(ChatsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "participants", Value: 1}},
	})
	create(MessagesCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "chatid", Value: 1}, {Key: "created_at", Value: 1}},
	})
	create(NotificationsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "userid", Value: 1}, {Key: "created_at", Value: -1}},
	})
	create(HireRequestsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "requester.id", Value: 1}, {Key: "targetid", Value: 1}},
	})
	create(ContractorHireRequestsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "requester.id", Value: 1}, {Key: "targetid", Value: 1}},
	})
	create(AdminsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: &options.IndexOptions{Unique: &truev},
	})
	create(CMSCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: &options.IndexOptions{Unique: &truev},
	})
}

// Disconnect closes the client with a short deadline. Used on shutdown.
func Disconnect() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
}

// OptionsFindLatest sorts by created_at descending, limited to n documents.
func OptionsFindLatest(n int64) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(n)
}
