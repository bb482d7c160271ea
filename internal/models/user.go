package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Fullname   string    `json:"fullname"`
	Username   string    `json:"username" gorm:"uniqueIndex;size:15"`
	Email      string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Bio        string    `json:"bio,omitempty"`
	IsPrivate  bool      `json:"is_private"`
	IsVerified bool      `json:"is_verified"`
	Password   string    `json:"-"` // Store hashed password, ignore for JSON serialization
	CreatedAt  time.Time `json:"created_at"`
}

// UserCompact is the denormalized owner snapshot embedded in feed entries
// and suggestion lists
type UserCompact struct {
	ID         uint      `json:"id"`
	Fullname   string    `json:"fullname"`
	Username   string    `json:"username"`
	Bio        string    `json:"bio,omitempty"`
	IsPrivate  bool      `json:"is_private"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToCompact returns the snapshot shape shared by feed and suggestion responses
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Fullname:   u.Fullname,
		Username:   u.Username,
		Bio:        u.Bio,
		IsPrivate:  u.IsPrivate,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

type CreateAccountRequest struct {
	Fullname string `json:"fullname" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email,min=2,max=50"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=15"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

type LoginAccountRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=15"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// LoginProfile is the profile block returned alongside the access token
type LoginProfile struct {
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
