package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewboard/internal/handler"
	"reviewboard/internal/router"
	"reviewboard/internal/service"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Obtain(ctx context.Context, username, password string) (string, string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Verify(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = router.NewCustomValidator()
	return e
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, h(c)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	mockService := new(MockAuthService)
	h := handler.NewAuthHandler(mockService)
	e := newEcho()

	rec, err := doJSON(e, h.Login, http.MethodPost, "/login/", "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string][]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"This field is required."}, body["username"])
	assert.Equal(t, []string{"This field is required."}, body["password"])

	mockService.AssertNotCalled(t, "Obtain", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	mockService := new(MockAuthService)
	mockService.On("Obtain", mock.Anything, "test_user", "123456").
		Return("", "", service.ErrInvalidCredentials)

	h := handler.NewAuthHandler(mockService)
	e := newEcho()

	rec, err := doJSON(e, h.Login, http.MethodPost, "/login/",
		`{"username": "test_user", "password": "123456"}`)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail": "No active account found with the given credentials"}`, rec.Body.String())
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockService := new(MockAuthService)
	mockService.On("Obtain", mock.Anything, "test_user", "Amvnfr213!").
		Return("access-token", "refresh-token", nil)

	h := handler.NewAuthHandler(mockService)
	e := newEcho()

	rec, err := doJSON(e, h.Login, http.MethodPost, "/login/",
		`{"username": "test_user", "password": "Amvnfr213!"}`)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "access-token", body["access"])
	assert.Equal(t, "refresh-token", body["refresh"])
}

func TestAuthHandler_Refresh_Tampered(t *testing.T) {
	mockService := new(MockAuthService)
	mockService.On("Refresh", mock.Anything, "tampered").
		Return("", service.ErrTokenInvalid)

	h := handler.NewAuthHandler(mockService)
	e := newEcho()

	rec, err := doJSON(e, h.Refresh, http.MethodPost, "/refresh-token/",
		`{"refresh": "tampered"}`)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail": "Token is invalid or expired", "code": "token_not_valid"}`, rec.Body.String())
}

func TestAuthHandler_Refresh_MissingField(t *testing.T) {
	mockService := new(MockAuthService)
	h := handler.NewAuthHandler(mockService)
	e := newEcho()

	rec, err := doJSON(e, h.Refresh, http.MethodPost, "/refresh-token/", "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string][]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"This field is required."}, body["refresh"])
}

func TestAuthHandler_Verify(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Verify", mock.Anything, "good-token").Return(nil)

		h := handler.NewAuthHandler(mockService)
		e := newEcho()

		rec, err := doJSON(e, h.Verify, http.MethodPost, "/verify-token/",
			`{"token": "good-token"}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Verify", mock.Anything, "bad-token").Return(service.ErrTokenInvalid)

		h := handler.NewAuthHandler(mockService)
		e := newEcho()

		rec, err := doJSON(e, h.Verify, http.MethodPost, "/verify-token/",
			`{"token": "bad-token"}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"detail": "Token is invalid or expired", "code": "token_not_valid"}`, rec.Body.String())
	})
}
