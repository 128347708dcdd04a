package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostLikedBy(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	p := Post{Likes: []primitive.ObjectID{a}}
	assert.True(t, p.LikedBy(a))
	assert.False(t, p.LikedBy(b))

	empty := Post{}
	assert.False(t, empty.LikedBy(a))
}
