package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxPostContentLength bounds the text content of a feed post.
const MaxPostContentLength = 3000

// Post is one entry in the social feed. Likes holds the ids of users who
// liked the post; membership is enforced with $addToSet/$pull so the array
// behaves as a set, and likes_count is maintained atomically alongside it.
type Post struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OwnerID       primitive.ObjectID   `bson:"owner_id" json:"owner_id"`
	Content       string               `bson:"content" json:"content"`
	ImagePath     string               `bson:"image_path,omitempty" json:"-"`
	ImageURL      string               `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Location      string               `bson:"location,omitempty" json:"location,omitempty"`
	Likes         []primitive.ObjectID `bson:"likes" json:"-"`
	LikesCount    int                  `bson:"likes_count" json:"likesCount"`
	CommentsCount int                  `bson:"comments_count" json:"commentsCount"`
	SharesCount   int                  `bson:"shares_count" json:"sharesCount"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at,omitempty" json:"updated_at,omitempty"`

	// Liked is computed per request for the authenticated caller.
	Liked bool `bson:"-" json:"liked"`
}

// LikedBy reports whether the given user id is in the like set.
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
