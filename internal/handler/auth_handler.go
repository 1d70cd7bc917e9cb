package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "reviewboard/internal/errors"
	"reviewboard/internal/service"
)

// AuthHandler handles the token endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a credential pair submitted to obtain tokens.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// VerifyRequest carries a token to verify.
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// TokenPairResponse is returned on successful login.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessTokenResponse is returned on successful refresh.
type AccessTokenResponse struct {
	Access string `json:"access"`
}

// Login godoc
// @Summary Obtain an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenPairResponse
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} apierrors.Detail
// @Router /login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.Detail{Detail: "Invalid request body."})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.FromValidationError(err))
	}

	access, refresh, err := h.authService.Obtain(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, apierrors.NoActiveAccount())
		}
		return c.JSON(http.StatusInternalServerError, apierrors.Detail{Detail: "Internal server error."})
	}

	return c.JSON(http.StatusOK, TokenPairResponse{Access: access, Refresh: refresh})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AccessTokenResponse
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} apierrors.TokenError
// @Router /refresh-token/ [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.Detail{Detail: "Invalid request body."})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.FromValidationError(err))
	}

	access, err := h.authService.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			return c.JSON(http.StatusUnauthorized, apierrors.TokenNotValid())
		}
		return c.JSON(http.StatusInternalServerError, apierrors.Detail{Detail: "Internal server error."})
	}

	return c.JSON(http.StatusOK, AccessTokenResponse{Access: access})
}

// Verify godoc
// @Summary Verify a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} apierrors.TokenError
// @Router /verify-token/ [post]
func (h *AuthHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.Detail{Detail: "Invalid request body."})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.FromValidationError(err))
	}

	if err := h.authService.Verify(c.Request().Context(), req.Token); err != nil {
		return c.JSON(http.StatusUnauthorized, apierrors.TokenNotValid())
	}

	// Empty object on success, matching the verify contract.
	return c.JSON(http.StatusOK, map[string]interface{}{})
}
