package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered member. Email is stored lowercased and is unique.
// Password holds the bcrypt hash and never appears in JSON output.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password_hash" json:"-"`
	Phone            string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Chapter          string             `bson:"chapter,omitempty" json:"chapter,omitempty"`
	BusinessCategory string             `bson:"business_category,omitempty" json:"business_category,omitempty"`
	CompanyName      string             `bson:"company_name,omitempty" json:"company_name,omitempty"`
	City             string             `bson:"city,omitempty" json:"city,omitempty"`
	AvatarURL        string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	ResetOTP         string             `bson:"reset_otp,omitempty" json:"-"` // hashed otp
	ResetOTPExp      time.Time          `bson:"reset_otp_exp,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
