package config

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var DB *mongo.Database

// ConnectDB connects to MongoDB and sets the global Client and DB variables
// from the loaded Settings. Call Load before this.
func ConnectDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(App.MongoURI))
	if err != nil {
		log.Fatalf("mongo.Connect error: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("mongo.Ping error: %v", err)
	}

	Client = client
	DB = client.Database(App.MongoDB)

	log.WithField("db", App.MongoDB).Info("connected to MongoDB")
}

// EnsureIndexes creates the indexes the stores rely on: the unique email
// constraint plus the sort/scope indexes for sections and posts.
func EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := DB.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("users email index: %v", err)
	}

	_, err = DB.Collection("section_records").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "section_type", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		log.Fatalf("section_records index: %v", err)
	}

	_, err = DB.Collection("posts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		log.Fatalf("posts index: %v", err)
	}
}
