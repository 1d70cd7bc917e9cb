package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewboard/internal/cache"
	"reviewboard/internal/model"
)

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByUser(ctx context.Context, userID uint) ([]model.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Review, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

// noCache is a nil cache client; all its operations are no-ops.
var noCache *cache.Client

func TestReviewService_List(t *testing.T) {
	t.Run("returns only the caller's reviews", func(t *testing.T) {
		mockRepo := new(MockReviewRepository)
		mockRepo.On("ListByUser", mock.Anything, uint(1)).Return([]model.Review{
			{ID: 1, UserID: 1, Title: "Test Review 01", Rating: 4},
			{ID: 3, UserID: 1, Title: "Test Review 03", Rating: 2},
		}, nil)

		service := NewReviewService(mockRepo, noCache)
		reviews, err := service.List(context.Background(), 1)

		assert.NoError(t, err)
		assert.Len(t, reviews, 2)
		for _, r := range reviews {
			assert.Equal(t, uint(1), r.UserID)
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("user without reviews gets an empty slice", func(t *testing.T) {
		mockRepo := new(MockReviewRepository)
		mockRepo.On("ListByUser", mock.Anything, uint(2)).Return([]model.Review(nil), nil)

		service := NewReviewService(mockRepo, noCache)
		reviews, err := service.List(context.Background(), 2)

		assert.NoError(t, err)
		assert.NotNil(t, reviews)
		assert.Empty(t, reviews)
	})
}

func TestReviewService_Get(t *testing.T) {
	t.Run("owned review is returned", func(t *testing.T) {
		mockRepo := new(MockReviewRepository)
		mockRepo.On("FindByIDAndUser", mock.Anything, uint(5), uint(1)).Return(&model.Review{
			ID: 5, UserID: 1, Title: "Test Review 01",
		}, nil)

		service := NewReviewService(mockRepo, noCache)
		review, err := service.Get(context.Background(), 1, 5)

		assert.NoError(t, err)
		assert.Equal(t, uint(5), review.ID)
	})

	t.Run("foreign or missing review is not found", func(t *testing.T) {
		mockRepo := new(MockReviewRepository)
		mockRepo.On("FindByIDAndUser", mock.Anything, uint(5), uint(2)).Return(nil, gorm.ErrRecordNotFound)

		service := NewReviewService(mockRepo, noCache)
		review, err := service.Get(context.Background(), 2, 5)

		assert.Nil(t, review)
		assert.Equal(t, ErrReviewNotFound, err)
	})
}

func TestReviewService_Create(t *testing.T) {
	input := CreateReviewInput{
		Title:   "Test Review 01",
		Summary: "Test Review 01 Summary",
		Rating:  4,
		Company: "Company 01",
	}

	t.Run("owner and ip come from the server", func(t *testing.T) {
		mockRepo := new(MockReviewRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Review) bool {
			return r.UserID == 1 && r.IPAddress != nil && *r.IPAddress == "8.8.8.8"
		})).Return(nil)

		service := NewReviewService(mockRepo, noCache)
		review, err := service.Create(context.Background(), 1, input, "8.8.8.8")

		assert.NoError(t, err)
		assert.Equal(t, uint(1), review.UserID)
		assert.Equal(t, 4, review.Rating)
		assert.Equal(t, "8.8.8.8", *review.IPAddress)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty client ip stays null", func(t *testing.T) {
		mockRepo := new(MockReviewRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)

		service := NewReviewService(mockRepo, noCache)
		review, err := service.Create(context.Background(), 1, input, "")

		assert.NoError(t, err)
		assert.Nil(t, review.IPAddress)
	})
}
