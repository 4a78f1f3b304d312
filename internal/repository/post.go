package repository

import (
	"context"

	"stride/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for anonymous feed posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Post, error)
	ListWithAuthor(ctx context.Context, limit, offset int) ([]models.PostWithAuthor, error)
	DeleteOwned(ctx context.Context, postID, userID uint) (bool, error)
	Delete(ctx context.Context, postID uint) error
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListWithAuthor joins posts with the author's nickname for moderation views.
func (r *postRepository) ListWithAuthor(ctx context.Context, limit, offset int) ([]models.PostWithAuthor, error) {
	var rows []models.PostWithAuthor
	err := r.db.WithContext(ctx).Raw(`
		SELECT sp.id, sp.user_id, sp.content, sp.image_urls,
		       sp.anonymous_name, sp.created_at, u.nickname AS user_nickname
		FROM social_posts sp
		LEFT JOIN users u ON sp.user_id = u.id
		ORDER BY sp.created_at DESC
		LIMIT ? OFFSET ?`, limit, offset).
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

// DeleteOwned removes the post only when userID is its author. The boolean
// reports whether a row was removed, so callers can hide existence from
// non-owners.
func (r *postRepository) DeleteOwned(ctx context.Context, postID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", postID, userID).
		Delete(&models.Post{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *postRepository) Delete(ctx context.Context, postID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, postID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
