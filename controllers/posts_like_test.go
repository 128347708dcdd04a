package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/sasikumar272004/ConnecTree-sub000/config"
	"github.com/sasikumar272004/ConnecTree-sub000/middleware"
	"github.com/sasikumar272004/ConnecTree-sub000/models"
)

func likeRequest(postID primitive.ObjectID, caller *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/posts/"+postID.Hex()+"/like", nil)
	c.Params = gin.Params{{Key: "id", Value: postID.Hex()}}
	c.Set(middleware.CtxUser, caller)
	return c, rec
}

func likeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "data missing from %s", rec.Body.String())
	return data
}

func likePostDoc(postID, ownerID primitive.ObjectID, likes bson.A, count int32) bson.D {
	return bson.D{
		{Key: "_id", Value: postID},
		{Key: "owner_id", Value: ownerID},
		{Key: "content", Value: "hello"},
		{Key: "likes", Value: likes},
		{Key: "likes_count", Value: count},
	}
}

// findAndModify answers with value:null when the conditional filter misses.
func noMatch() bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil})
}

func matched(doc bson.D) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc})
}

// Toggling twice in sequence by the same user returns the post to its
// original count and liked=false.
func TestToggleLike_DoubleToggleRoundTrip(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("like then unlike", func(mt *mtest.T) {
		config.DB = mt.Client.Database("connectree_test")

		postID := primitive.NewObjectID()
		ownerID := primitive.NewObjectID()
		caller := &models.User{ID: primitive.NewObjectID()}

		// first toggle: the unlike update misses, the like update lands
		mt.AddMockResponses(
			noMatch(),
			matched(likePostDoc(postID, ownerID, bson.A{caller.ID}, 1)),
		)
		c, rec := likeRequest(postID, caller)
		ToggleLike(c)
		require.Equal(mt.T, http.StatusOK, rec.Code)

		data := likeResponse(mt.T, rec)
		assert.Equal(mt.T, true, data["liked"])
		assert.Equal(mt.T, float64(1), data["likesCount"])
		_, hasSnake := data["likes_count"]
		assert.False(mt.T, hasSnake, "count must be returned as likesCount")

		// second toggle: the unlike update lands straight away
		mt.AddMockResponses(
			matched(likePostDoc(postID, ownerID, bson.A{}, 0)),
		)
		c, rec = likeRequest(postID, caller)
		ToggleLike(c)
		require.Equal(mt.T, http.StatusOK, rec.Code)

		data = likeResponse(mt.T, rec)
		assert.Equal(mt.T, false, data["liked"])
		assert.Equal(mt.T, float64(0), data["likesCount"])
	})
}

// When both conditional updates miss, a concurrent toggle by the same user
// won the race between them; the handler reports the standing state instead
// of failing or double-counting.
func TestToggleLike_ConcurrentToggleReportsWinner(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("both filters miss", func(mt *mtest.T) {
		config.DB = mt.Client.Database("connectree_test")

		postID := primitive.NewObjectID()
		ownerID := primitive.NewObjectID()
		caller := &models.User{ID: primitive.NewObjectID()}

		mt.AddMockResponses(
			noMatch(),
			noMatch(),
			mtest.CreateCursorResponse(0, "connectree_test.posts", mtest.FirstBatch,
				likePostDoc(postID, ownerID, bson.A{caller.ID}, 1)),
		)
		c, rec := likeRequest(postID, caller)
		ToggleLike(c)
		require.Equal(mt.T, http.StatusOK, rec.Code)

		data := likeResponse(mt.T, rec)
		assert.Equal(mt.T, true, data["liked"])
		assert.Equal(mt.T, float64(1), data["likesCount"])
	})
}

func TestToggleLike_MissingPost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("post gone", func(mt *mtest.T) {
		config.DB = mt.Client.Database("connectree_test")

		postID := primitive.NewObjectID()
		caller := &models.User{ID: primitive.NewObjectID()}

		mt.AddMockResponses(
			noMatch(),
			noMatch(),
			mtest.CreateCursorResponse(0, "connectree_test.posts", mtest.FirstBatch),
		)
		c, rec := likeRequest(postID, caller)
		ToggleLike(c)
		assert.Equal(mt.T, http.StatusNotFound, rec.Code)
	})
}
