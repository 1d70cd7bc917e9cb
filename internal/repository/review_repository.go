package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewboard/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByUser(ctx context.Context, userID uint) ([]model.Review, error)
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return err
	}
	// Load the owner so the caller can serialize the full read shape.
	return r.db.WithContext(ctx).Preload("User").First(review, review.ID).Error
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByIDAndUser filters on ownership in the query itself, so a review owned
// by another user is indistinguishable from a missing one.
func (r *reviewRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).Preload("User").
		Where("id = ? AND user_id = ?", id, userID).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}
