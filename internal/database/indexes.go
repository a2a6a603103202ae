package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureUserIndexes creates the unique username index. The signup handler
// also checks for duplicates up front, but the index is what actually closes
// the race between two concurrent signups with the same name.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	usernameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
		Options: options.Index().
			SetName("username_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating username_unique index")
	_, err := indexes.CreateOne(ctx, usernameIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: username index error:", err)
		return err
	}
	return nil
}

// EnsureArticleIndexes backs the createdAt-descending article listing.
func EnsureArticleIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("articles").Indexes()

	createdAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	}

	log.Println("EnsureArticleIndexes: creating createdAt_desc index")
	_, err := indexes.CreateOne(ctx, createdAtIndex)
	if err != nil {
		log.Println("EnsureArticleIndexes: createdAt index error:", err)
		return err
	}
	return nil
}

// EnsureOrderIndexes backs the createdAt-descending order listing.
func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	createdAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	}

	log.Println("EnsureOrderIndexes: creating createdAt_desc index")
	_, err := indexes.CreateOne(ctx, createdAtIndex)
	if err != nil {
		log.Println("EnsureOrderIndexes: createdAt index error:", err)
		return err
	}
	return nil
}
