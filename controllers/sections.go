package controllers

import (
	"context"
	"errors"
	"net/http"
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

const sectionsCollection = "section_records"

// ListSection returns every record in a section, newest first. Reads are
// intentionally public and unscoped by owner: sections double as shared
// reference data across the chapter. Writes below are owner-scoped.
func ListSection(c *gin.Context) {
	sectionType := c.Param("sectionType")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := config.DB.Collection(sectionsCollection).Find(ctx, bson.M{"section_type": sectionType}, opts)
	if err != nil {
		utils.ServerError(c, err, "sections: list query failed")
		return
	}
	defer cursor.Close(ctx)

	records := []models.SectionRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		utils.ServerError(c, err, "sections: cursor decode failed")
		return
	}

	utils.OK(c, http.StatusOK, records)
}

// CreateSection stores an opaque payload tagged with the caller and the
// section. The store enforces no schema beyond the per-field presence checks
// registered for known sections.
func CreateSection(c *gin.Context) {
	sectionType := c.Param("sectionType")
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := models.ValidateSectionPayload(sectionType, payload); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	record := models.SectionRecord{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		SectionType: sectionType,
		Data:        bson.M(payload),
		CreatedAt:   time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := config.DB.Collection(sectionsCollection).InsertOne(ctx, record); err != nil {
		utils.ServerError(c, err, "sections: insert failed")
		return
	}

	utils.OK(c, http.StatusCreated, record)
}

// UpdateSection replaces a record's payload wholesale. The filter matches
// {id, owner, sectionType} in one shot, so a record owned by someone else or
// filed under another section is indistinguishable from a missing one.
func UpdateSection(c *gin.Context) {
	sectionType := c.Param("sectionType")
	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "record not found")
		return
	}
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := models.ValidateSectionPayload(sectionType, payload); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":          recordID,
		"owner_id":     ownerID,
		"section_type": sectionType,
	}
	update := bson.M{"$set": bson.M{
		"data":       bson.M(payload),
		"updated_at": time.Now().UTC(),
	}}

	var updated models.SectionRecord
	err = config.DB.Collection(sectionsCollection).FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.Fail(c, http.StatusNotFound, "record not found")
			return
		}
		utils.ServerError(c, err, "sections: update failed")
		return
	}

	utils.OK(c, http.StatusOK, updated)
}

// DeleteSection removes a record under the same three-way match as update.
func DeleteSection(c *gin.Context) {
	sectionType := c.Param("sectionType")
	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "record not found")
		return
	}
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":          recordID,
		"owner_id":     ownerID,
		"section_type": sectionType,
	}
	res, err := config.DB.Collection(sectionsCollection).DeleteOne(ctx, filter)
	if err != nil {
		utils.ServerError(c, err, "sections: delete failed")
		return
	}
	if res.DeletedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "record not found")
		return
	}

	utils.OK(c, http.StatusOK, gin.H{"deleted": true})
}

// SectionStats returns the caller's record count for a section.
func SectionStats(c *gin.Context) {
	sectionType := c.Param("sectionType")
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := config.DB.Collection(sectionsCollection).CountDocuments(ctx, bson.M{
		"owner_id":     ownerID,
		"section_type": sectionType,
	})
	if err != nil {
		utils.ServerError(c, err, "sections: count failed")
		return
	}

	utils.OK(c, http.StatusOK, gin.H{"section_type": sectionType, "count": count})
}
