package models

import (
	"time"

	"gorm.io/gorm"
)

// Post belongs to exactly one user and carries an ordered set of uploaded
// media attachments
type Post struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	UserID      uint             `json:"user_id" gorm:"index"`
	Caption     string           `json:"caption"`
	CreatedAt   time.Time        `json:"created_at"`
	DeletedAt   gorm.DeletedAt   `json:"deleted_at,omitempty" gorm:"index"`
	User        User             `json:"-"`
	Attachments []PostAttachment `json:"attachments" gorm:"foreignKey:PostID"`
}

// PostAttachment stores only the public locator returned by object storage,
// never raw bytes
type PostAttachment struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	PostID      uint   `json:"-" gorm:"index"`
	StoragePath string `json:"storage_path"`
}

// CreatePostRequest defines the multipart form fields for creating a post
type CreatePostRequest struct {
	Caption string `form:"caption" validate:"required,min=1,max=255"`
}
