package repositories

import (
	"context"

	"github.com/facegram/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	DeletePost(ctx context.Context, id uint) error
	ListVisible(ctx context.Context, viewerID uint, offset, limit int) ([]models.Post, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Post, error)
	CountAll(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a post together with its attachments in one write
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post with its owner preloaded
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost soft-deletes a post, keeping the row with deleted_at set
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListVisible retrieves the posts a viewer may see: their own posts plus
// posts of users they follow with an accepted edge, newest first
func (r *PostgresPostRepository) ListVisible(ctx context.Context, viewerID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR user_id IN (?)", viewerID,
			r.db.Table("follows").Select("following_id").
				Where("follower_id = ? AND is_accepted = ?", viewerID, true),
		).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Preload("User").
		Preload("Attachments").
		Find(&posts).Error
	return posts, err
}

// ListByUser retrieves all posts of one user with attachments, newest first
func (r *PostgresPostRepository) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Preload("Attachments").
		Find(&posts).Error
	return posts, err
}

// CountAll counts every non-deleted post regardless of owner
func (r *PostgresPostRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

// CountByUser counts one user's non-deleted posts
func (r *PostgresPostRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
