package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sasikumar272004/ConnecTree-sub000/config"
	"github.com/sasikumar272004/ConnecTree-sub000/models"
	"github.com/sasikumar272004/ConnecTree-sub000/utils"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "userID"
	CtxUser   = "currentUser"
)

// Auth verifies the Authorization: Bearer <token> header, loads the referenced
// user (password projected out) and stores it in the Gin context. The four
// rejection reasons — missing token, invalid token, expired token, and a user
// deleted since issuance — each carry a distinct message.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := utils.VerifyJWT(parts[1])
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, utils.ErrExpiredToken) {
				msg = "token expired, please log in again"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": msg})
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Tokens are not revocable; a token dies only when its user does.
		var user models.User
		err = config.DB.Collection("users").FindOne(ctx,
			bson.M{"_id": userID},
			options.FindOne().SetProjection(bson.M{"password_hash": 0}),
		).Decode(&user)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user no longer exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			}
			c.Abort()
			return
		}

		c.Set(CtxUserID, user.ID.Hex())
		c.Set(CtxUser, &user)
		c.Next()
	}
}

// CurrentUser returns the user loaded by Auth, or nil outside it.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// CurrentUserID returns the authenticated user's ObjectID. The bool is false
// when the route is not behind Auth.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	u := CurrentUser(c)
	if u == nil {
		return primitive.NilObjectID, false
	}
	return u.ID, true
}
