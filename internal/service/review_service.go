package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"reviewboard/internal/cache"
	"reviewboard/internal/model"
	"reviewboard/internal/repository"
)

const (
	reviewListKeyPrefix = "reviews:user:"
	reviewListCacheTTL  = 5 * time.Minute
)

// ErrReviewNotFound is returned when a review does not exist or is owned by
// another user. The two cases are deliberately indistinguishable.
var ErrReviewNotFound = errors.New("review not found")

// CreateReviewInput carries the client-settable review fields.
type CreateReviewInput struct {
	Title   string
	Summary string
	Rating  int
	Company string
}

// ReviewService mediates review creation and per-user visibility.
type ReviewService interface {
	List(ctx context.Context, userID uint) ([]model.Review, error)
	Get(ctx context.Context, userID, id uint) (*model.Review, error)
	Create(ctx context.Context, userID uint, input CreateReviewInput, clientIP string) (*model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	cache      *cache.Client
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, cacheClient *cache.Client) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		cache:      cacheClient,
	}
}

// List returns the caller's reviews in insertion order. The result is cached
// per user; cache failures fall through to the database.
func (s *reviewService) List(ctx context.Context, userID uint) ([]model.Review, error) {
	key := listCacheKey(userID)
	if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
		var cached []model.Review
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	if payload, err := json.Marshal(reviews); err == nil {
		_ = s.cache.Set(ctx, key, payload, reviewListCacheTTL)
	}

	return reviews, nil
}

// Get returns the review only if it belongs to the caller.
func (s *reviewService) Get(ctx context.Context, userID, id uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return review, nil
}

// Create persists a review owned by the caller. Owner and IP address come
// from the server, never from the payload.
func (s *reviewService) Create(ctx context.Context, userID uint, input CreateReviewInput, clientIP string) (*model.Review, error) {
	review := &model.Review{
		UserID:  userID,
		Title:   input.Title,
		Summary: input.Summary,
		Rating:  input.Rating,
		Company: input.Company,
	}
	if clientIP != "" {
		review.IPAddress = &clientIP
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	_ = s.cache.Delete(ctx, listCacheKey(userID))

	return review, nil
}

func listCacheKey(userID uint) string {
	return fmt.Sprintf("%s%d", reviewListKeyPrefix, userID)
}
