package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sasikumar272004/ConnecTree-sub000/config"
	"github.com/sasikumar272004/ConnecTree-sub000/middleware"
	"github.com/sasikumar272004/ConnecTree-sub000/models"
	"github.com/sasikumar272004/ConnecTree-sub000/utils"
)

const postsCollection = "posts"

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// validatePostContent enforces the content rules for create and edit.
func validatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("content is required")
	}
	if len([]rune(content)) > models.MaxPostContentLength {
		return fmt.Errorf("content exceeds %d characters", models.MaxPostContentLength)
	}
	return nil
}

// pageParams reads ?page and ?limit with sane defaults and a cap.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// hasNextPage reports whether another page exists after the given one.
func hasNextPage(total int64, page, limit int) bool {
	return int64(page*limit) < total
}

// publicImageURL maps a stored file path to the URL the client fetches it at.
func publicImageURL(storedPath string) string {
	if storedPath == "" {
		return ""
	}
	return "/uploads/" + filepath.Base(storedPath)
}

func listPosts(c *gin.Context, filter bson.M) {
	callerID, _ := middleware.CurrentUserID(c)
	page, limit := pageParams(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := config.DB.Collection(postsCollection)

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		utils.PostServerError(c, err, "posts: count failed")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		utils.PostServerError(c, err, "posts: list query failed")
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		utils.PostServerError(c, err, "posts: cursor decode failed")
		return
	}

	for i := range posts {
		posts[i].Liked = posts[i].LikedBy(callerID)
	}

	utils.PostOK(c, http.StatusOK, "posts fetched", gin.H{
		"posts":      posts,
		"totalCount": total,
		"hasNext":    hasNextPage(total, page, limit),
		"page":       page,
		"limit":      limit,
	})
}

// ListPosts returns the feed, newest first, with pagination metadata for
// client-driven infinite scroll.
func ListPosts(c *gin.Context) {
	listPosts(c, bson.M{})
}

// MyPosts is the feed scoped to the authenticated caller.
func MyPosts(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.PostFail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	listPosts(c, bson.M{"owner_id": ownerID})
}

// GetPost fetches a single post by id.
func GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.PostFail(c, http.StatusNotFound, "post not found")
		return
	}
	callerID, _ := middleware.CurrentUserID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var post models.Post
	if err := config.DB.Collection(postsCollection).FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.PostFail(c, http.StatusNotFound, "post not found")
			return
		}
		utils.PostServerError(c, err, "posts: get failed")
		return
	}

	post.Liked = post.LikedBy(callerID)
	utils.PostOK(c, http.StatusOK, "post fetched", post)
}

// CreatePost accepts multipart form data with the content, an optional
// location, and an optional single image. The image lands on disk before
// validation runs, so any validation failure must clean it up again.
func CreatePost(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.PostFail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	content := c.PostForm("content")
	location := c.PostForm("location")

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		if file.Size > config.App.MaxUploadMB*1024*1024 {
			utils.PostFail(c, http.StatusBadRequest, "image too large")
			return
		}
		imagePath, err = utils.SaveUploadedImage(c, file, config.App.UploadDir)
		if err != nil {
			utils.PostFail(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := validatePostContent(content); err != nil {
		utils.RemoveImage(imagePath)
		utils.PostFail(c, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Content:   strings.TrimSpace(content),
		ImagePath: imagePath,
		ImageURL:  publicImageURL(imagePath),
		Location:  location,
		Likes:     []primitive.ObjectID{},
		CreatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := config.DB.Collection(postsCollection).InsertOne(ctx, post); err != nil {
		utils.RemoveImage(imagePath)
		utils.PostServerError(c, err, "posts: insert failed")
		return
	}

	utils.PostOK(c, http.StatusCreated, "post created", post)
}

// UpdatePost edits a post's content, replaces or removes its image. Owner
// only; a replaced image's old file is deleted after the update lands.
func UpdatePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.PostFail(c, http.StatusNotFound, "post not found")
		return
	}
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.PostFail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	col := config.DB.Collection(postsCollection)

	var existing models.Post
	if err := col.FindOne(ctx, bson.M{"_id": postID}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.PostFail(c, http.StatusNotFound, "post not found")
			return
		}
		utils.PostServerError(c, err, "posts: update lookup failed")
		return
	}

	if existing.OwnerID != callerID {
		utils.PostFail(c, http.StatusForbidden, "only the owner can modify this post")
		return
	}

	update := bson.M{"updated_at": time.Now().UTC()}

	if content, present := c.GetPostForm("content"); present {
		if err := validatePostContent(content); err != nil {
			utils.PostFail(c, http.StatusBadRequest, err.Error())
			return
		}
		update["content"] = strings.TrimSpace(content)
	}
	if location, present := c.GetPostForm("location"); present {
		update["location"] = location
	}

	newImagePath := ""
	removeImage := c.PostForm("remove_image") == "true"
	if file, err := c.FormFile("image"); err == nil && file != nil {
		if file.Size > config.App.MaxUploadMB*1024*1024 {
			utils.PostFail(c, http.StatusBadRequest, "image too large")
			return
		}
		newImagePath, err = utils.SaveUploadedImage(c, file, config.App.UploadDir)
		if err != nil {
			utils.PostFail(c, http.StatusBadRequest, err.Error())
			return
		}
		update["image_path"] = newImagePath
		update["image_url"] = publicImageURL(newImagePath)
	} else if removeImage {
		update["image_path"] = ""
		update["image_url"] = ""
	}

	var updated models.Post
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "owner_id": callerID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		utils.RemoveImage(newImagePath)
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.PostFail(c, http.StatusNotFound, "post not found")
			return
		}
		utils.PostServerError(c, err, "posts: update failed")
		return
	}

	// the prior file is superseded once the update has landed
	if newImagePath != "" || removeImage {
		if existing.ImagePath != "" && existing.ImagePath != newImagePath {
			utils.RemoveImage(existing.ImagePath)
		}
	}

	updated.Liked = updated.LikedBy(callerID)
	utils.PostOK(c, http.StatusOK, "post updated", updated)
}

// DeletePost removes a post and its image file. Owner only.
func DeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.PostFail(c, http.StatusNotFound, "post not found")
		return
	}
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.PostFail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	col := config.DB.Collection(postsCollection)

	var existing models.Post
	if err := col.FindOne(ctx, bson.M{"_id": postID}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.PostFail(c, http.StatusNotFound, "post not found")
			return
		}
		utils.PostServerError(c, err, "posts: delete lookup failed")
		return
	}

	if existing.OwnerID != callerID {
		utils.PostFail(c, http.StatusForbidden, "only the owner can delete this post")
		return
	}

	if _, err := col.DeleteOne(ctx, bson.M{"_id": postID, "owner_id": callerID}); err != nil {
		utils.PostServerError(c, err, "posts: delete failed")
		return
	}

	utils.RemoveImage(existing.ImagePath)
	utils.PostOK(c, http.StatusOK, "post deleted", gin.H{"deleted": true})
}

// ToggleLike flips the caller's like on a post. Each direction is a single
// conditional update keyed on like-set membership in the filter, so two
// concurrent toggles by different users can never lose an update or insert a
// duplicate like.
func ToggleLike(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.PostFail(c, http.StatusNotFound, "post not found")
		return
	}
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.PostFail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	col := config.DB.Collection(postsCollection)
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// unlike when the caller is in the set
	var updated models.Post
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes": callerID},
		bson.M{"$pull": bson.M{"likes": callerID}, "$inc": bson.M{"likes_count": -1}},
		after,
	).Decode(&updated)
	if err == nil {
		utils.PostOK(c, http.StatusOK, "post unliked", gin.H{"liked": false, "likesCount": updated.LikesCount})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.PostServerError(c, err, "posts: unlike failed")
		return
	}

	// like when the caller is not in the set
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes": bson.M{"$ne": callerID}},
		bson.M{"$addToSet": bson.M{"likes": callerID}, "$inc": bson.M{"likes_count": 1}},
		after,
	).Decode(&updated)
	if err == nil {
		utils.PostOK(c, http.StatusOK, "post liked", gin.H{"liked": true, "likesCount": updated.LikesCount})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.PostServerError(c, err, "posts: like failed")
		return
	}

	// Both filters missed: either the post is gone, or a concurrent toggle by
	// the same user won the race between the two updates. Report what stands.
	var current models.Post
	if err := col.FindOne(ctx, bson.M{"_id": postID}).Decode(&current); err != nil {
		utils.PostFail(c, http.StatusNotFound, "post not found")
		return
	}
	utils.PostOK(c, http.StatusOK, "like state unchanged", gin.H{
		"liked":      current.LikedBy(callerID),
		"likesCount": current.LikesCount,
	})
}
