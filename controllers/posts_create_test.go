package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sasikumar272004/ConnecTree-sub000/config"
	"github.com/sasikumar272004/ConnecTree-sub000/middleware"
	"github.com/sasikumar272004/ConnecTree-sub000/models"
)

func createPostContext(t *testing.T, content, imageName string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("content", content))
	if imageName != "" {
		fw, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/posts", body)
	c.Request.Header.Set("Content-Type", w.FormDataContentType())
	c.Set(middleware.CtxUser, &models.User{ID: primitive.NewObjectID()})
	return c, rec
}

// The image lands on disk before validation runs; a rejected post must not
// leave the file behind.
func TestCreatePost_EmptyContentCleansUpImage(t *testing.T) {
	dir := t.TempDir()
	config.App = config.Settings{UploadDir: dir, MaxUploadMB: 5}

	c, rec := createPostContext(t, "   \n ", "pic.png")
	CreatePost(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "orphaned upload left on disk")
}

func TestCreatePost_OversizedContentCleansUpImage(t *testing.T) {
	dir := t.TempDir()
	config.App = config.Settings{UploadDir: dir, MaxUploadMB: 5}

	big := make([]byte, models.MaxPostContentLength+1)
	for i := range big {
		big[i] = 'a'
	}

	c, rec := createPostContext(t, string(big), "pic.jpg")
	CreatePost(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
