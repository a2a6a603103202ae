package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// About is a singleton document: the collection holds at most one record,
// created on first read.
type About struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text          string             `bson:"text" json:"text"`
	Media         []string           `bson:"media" json:"media"`
	ExternalLinks []string           `bson:"externalLinks" json:"externalLinks"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
