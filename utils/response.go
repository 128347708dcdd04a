package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// The sections API answers with {success, data, message?} and the posts API
// with {status, message, data}. Both shapes are stable so clients branch on
// them without parsing free text.

// OK writes a sections-style success envelope.
func OK(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// Fail writes a sections-style error envelope.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// PostOK writes a posts-style success envelope.
func PostOK(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "message": message, "data": data})
}

// PostFail writes a posts-style error envelope.
func PostFail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}

// ServerError logs the underlying error and answers 500 with a generic
// message. Internal detail never reaches the client.
func ServerError(c *gin.Context, err error, context string) {
	log.WithError(err).Error(context)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
}

// PostServerError is ServerError in the posts envelope.
func PostServerError(c *gin.Context, err error, context string) {
	log.WithError(err).Error(context)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
}
