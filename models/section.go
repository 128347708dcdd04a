package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SectionRecord is one generic document in a business section such as
// "meetings" or "testimonials". The Data payload is opaque to the store;
// its shape is a convention between the client and the section it belongs to.
type SectionRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	SectionType string             `bson:"section_type" json:"section_type"`
	Data        bson.M             `bson:"data" json:"data"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
