package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sasikumar272004/ConnecTree-sub000/config"
	"github.com/sasikumar272004/ConnecTree-sub000/middleware"
	"github.com/sasikumar272004/ConnecTree-sub000/models"
	"github.com/sasikumar272004/ConnecTree-sub000/utils"
)

// RegisterInput request body for registration
type RegisterInput struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	Phone            string `json:"phone"`
	Chapter          string `json:"chapter"`
	BusinessCategory string `json:"business_category"`
	CompanyName      string `json:"company_name"`
	City             string `json:"city"`
}

// LoginInput request body for login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileInput allows partial profile updates. Password changes require
// the current password and go through an explicit rehash.
type UpdateProfileInput struct {
	Name             *string `json:"name,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Chapter          *string `json:"chapter,omitempty"`
	BusinessCategory *string `json:"business_category,omitempty"`
	CompanyName      *string `json:"company_name,omitempty"`
	City             *string `json:"city,omitempty"`
	CurrentPassword  string  `json:"current_password,omitempty"`
	NewPassword      string  `json:"new_password,omitempty"`
}

// ForgotPasswordInput
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput
type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// Register creates a new user and returns the profile with a fresh token.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	usersCol := config.DB.Collection("users")

	var existing models.User
	err := usersCol.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email already registered"})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.ServerError(c, err, "register: email lookup failed")
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.ServerError(c, err, "register: password hash failed")
		return
	}

	now := time.Now().UTC()
	newUser := models.User{
		ID:               primitive.NewObjectID(),
		Name:             input.Name,
		Email:            email,
		Password:         hash,
		Phone:            input.Phone,
		Chapter:          input.Chapter,
		BusinessCategory: input.BusinessCategory,
		CompanyName:      input.CompanyName,
		City:             input.City,
		CreatedAt:        now,
	}

	if _, err := usersCol.InsertOne(ctx, newUser); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email already registered"})
			return
		}
		utils.ServerError(c, err, "register: insert failed")
		return
	}

	token, err := utils.GenerateJWT(newUser.ID.Hex(), newUser.Email)
	if err != nil {
		utils.ServerError(c, err, "register: token generation failed")
		return
	}

	newUser.Password = ""
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"user": newUser, "token": token}})
}

// Login authenticates and returns the profile with a token.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	usersCol := config.DB.Collection("users")

	var user models.User
	if err := usersCol.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}

	if err := utils.CheckPassword(user.Password, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email)
	if err != nil {
		utils.ServerError(c, err, "login: token generation failed")
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user": user, "token": token}})
}

// Me returns the authenticated user's profile, password excluded.
func Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// UpdateMe applies a partial profile update. Only fields present in the body
// are written; a password change verifies the current password first and
// rehashes explicitly at this call site.
func UpdateMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	update := bson.M{}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Phone != nil {
		update["phone"] = *input.Phone
	}
	if input.Chapter != nil {
		update["chapter"] = *input.Chapter
	}
	if input.BusinessCategory != nil {
		update["business_category"] = *input.BusinessCategory
	}
	if input.CompanyName != nil {
		update["company_name"] = *input.CompanyName
	}
	if input.City != nil {
		update["city"] = *input.City
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	usersCol := config.DB.Collection("users")

	if input.NewPassword != "" {
		if input.CurrentPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "current_password required to change password"})
			return
		}

		// Auth loads the user without the hash; fetch it for the check.
		var withHash models.User
		if err := usersCol.FindOne(ctx, bson.M{"_id": user.ID}).Decode(&withHash); err != nil {
			utils.ServerError(c, err, "update profile: user lookup failed")
			return
		}
		if err := utils.CheckPassword(withHash.Password, input.CurrentPassword); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "current password is incorrect"})
			return
		}

		hash, err := utils.HashPassword(input.NewPassword)
		if err != nil {
			utils.ServerError(c, err, "update profile: password hash failed")
			return
		}
		update["password_hash"] = hash
	}

	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no fields to update"})
		return
	}
	update["updated_at"] = time.Now().UTC()

	if _, err := usersCol.UpdateByID(ctx, user.ID, bson.M{"$set": update}); err != nil {
		utils.ServerError(c, err, "update profile: update failed")
		return
	}

	var updated models.User
	if err := usersCol.FindOne(ctx, bson.M{"_id": user.ID}).Decode(&updated); err != nil {
		utils.ServerError(c, err, "update profile: reload failed")
		return
	}
	updated.Password = ""
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// ForgotPassword: generate OTP, save hashed OTP & expiry, send email or log
func ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	users := config.DB.Collection("users")

	// Never reveal whether the email exists.
	genericMsg := gin.H{"success": true, "message": "if that email exists, an OTP has been sent"}

	var user models.User
	if err := users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		c.JSON(http.StatusOK, genericMsg)
		return
	}

	otp, err := utils.GenerateOTP(6)
	if err != nil {
		utils.ServerError(c, err, "forgot password: otp generation failed")
		return
	}

	hashedOTP, err := utils.HashPassword(otp)
	if err != nil {
		utils.ServerError(c, err, "forgot password: otp hash failed")
		return
	}

	otpTTL := config.App.OTPTTL
	update := bson.M{
		"$set": bson.M{
			"reset_otp":     hashedOTP,
			"reset_otp_exp": time.Now().Add(otpTTL),
		},
	}
	if _, err := users.UpdateByID(ctx, user.ID, update); err != nil {
		utils.ServerError(c, err, "forgot password: otp store failed")
		return
	}

	subject := "Your password reset OTP"
	body := "Your OTP is: " + otp + "\nThis code expires in " +
		strconv.Itoa(int(otpTTL.Minutes())) + " minutes."

	if err := utils.SendMail(user.Email, subject, body); err != nil {
		// dev fallback when SMTP is unset
		log.WithError(err).WithField("otp", otp).Warn("failed to send OTP email")
	}

	c.JSON(http.StatusOK, genericMsg)
}

// ResetPassword: verify OTP and set new password
func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	users := config.DB.Collection("users")

	var user models.User
	if err := users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid OTP or email"})
		return
	}

	if user.ResetOTP == "" || user.ResetOTPExp.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid or expired OTP"})
		return
	}

	if err := utils.CheckPassword(user.ResetOTP, input.OTP); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid OTP"})
		return
	}

	newHash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.ServerError(c, err, "reset password: hash failed")
		return
	}

	update := bson.M{
		"$set":   bson.M{"password_hash": newHash},
		"$unset": bson.M{"reset_otp": "", "reset_otp_exp": ""},
	}
	if _, err := users.UpdateByID(ctx, user.ID, update); err != nil {
		utils.ServerError(c, err, "reset password: update failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password reset successful"})
}
