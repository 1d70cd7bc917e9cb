package handler

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"reviewboard/internal/auth"
	apierrors "reviewboard/internal/errors"
	"reviewboard/internal/model"
	"reviewboard/internal/service"
)

// ReviewHandler handles the review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest is the write shape: exactly the client-settable fields.
// Owner and IP address in a payload are ignored; the server derives them.
type CreateReviewRequest struct {
	Title   string `json:"title" validate:"required,max=64"`
	Summary string `json:"summary" validate:"required,max=10000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Company string `json:"company" validate:"required,max=100"`
}

// UserSummary is the nested owner in the read shape.
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ReviewResponse is the read shape of a review.
type ReviewResponse struct {
	ID        uint        `json:"id"`
	Title     string      `json:"title"`
	Summary   string      `json:"summary"`
	Rating    int         `json:"rating"`
	Company   string      `json:"company"`
	IPAddress *string     `json:"ip_address"`
	Date      time.Time   `json:"date"`
	User      UserSummary `json:"user"`
}

func toReviewResponse(review *model.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		Title:     review.Title,
		Summary:   review.Summary,
		Rating:    review.Rating,
		Company:   review.Company,
		IPAddress: review.IPAddress,
		Date:      review.Date,
		User: UserSummary{
			ID:        review.User.ID,
			Username:  review.User.Username,
			Email:     review.User.Email,
			FirstName: review.User.FirstName,
			LastName:  review.User.LastName,
		},
	}
}

// List godoc
// @Summary List the caller's reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ReviewResponse
// @Failure 401 {object} apierrors.Detail
// @Router /reviews/ [get]
func (h *ReviewHandler) List(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, apierrors.CredentialsNotProvided())
	}

	reviews, err := h.reviewService.List(c.Request().Context(), claims.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apierrors.Detail{Detail: "Internal server error."})
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Retrieve one of the caller's reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} ReviewResponse
// @Failure 401 {object} apierrors.Detail
// @Failure 404 {object} apierrors.Detail
// @Router /reviews/{id}/ [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, apierrors.CredentialsNotProvided())
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, apierrors.NotFound())
	}

	review, err := h.reviewService.Get(c.Request().Context(), claims.UserID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NotFound())
		}
		return c.JSON(http.StatusInternalServerError, apierrors.Detail{Detail: "Internal server error."})
	}

	return c.JSON(http.StatusOK, toReviewResponse(review))
}

// Create godoc
// @Summary Submit a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReviewRequest true "Review fields"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} apierrors.Detail
// @Router /reviews/ [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, apierrors.CredentialsNotProvided())
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.Detail{Detail: "Invalid request body."})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.FromValidationError(err))
	}

	input := service.CreateReviewInput{
		Title:   req.Title,
		Summary: req.Summary,
		Rating:  req.Rating,
		Company: req.Company,
	}

	review, err := h.reviewService.Create(c.Request().Context(), claims.UserID, input, clientIP(c.Request()))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apierrors.Detail{Detail: "Internal server error."})
	}

	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// currentClaims returns the access token claims set by the JWT middleware.
func currentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get("user").(*auth.Claims)
	return claims
}

// clientIP resolves the client address: the leftmost X-Forwarded-For entry
// when the header is present, otherwise the connection's remote host.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := xff
		if idx := strings.Index(xff, ","); idx >= 0 {
			first = xff[:idx]
		}
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
