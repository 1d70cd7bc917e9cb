package router

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reviewboard/internal/auth"
	apierrors "reviewboard/internal/errors"
	"reviewboard/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	reviewHandler *handler.ReviewHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewCustomValidator()
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/docs/*", echoSwagger.WrapHandler)

	// Token endpoints (public)
	e.POST("/login/", authHandler.Login)
	e.POST("/refresh-token/", authHandler.Refresh)
	e.POST("/verify-token/", authHandler.Verify)

	// Review endpoints require a valid access token
	reviews := e.Group("/reviews", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenStr string) (interface{}, error) {
			return jwtService.ValidateTokenOfType(tokenStr, auth.TokenTypeAccess)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return c.JSON(http.StatusUnauthorized, apierrors.CredentialsNotProvided())
			}
			return c.JSON(http.StatusUnauthorized, apierrors.BearerTokenNotValid())
		},
	}))

	reviews.GET("/", reviewHandler.List)
	reviews.POST("/", reviewHandler.Create)
	reviews.GET("/:id/", reviewHandler.Get)
	// update/delete are intentionally unsupported; the router answers 405
	// for any other method on these paths.
}

// errorHandler shapes router-level errors (unknown route, method mismatch)
// into the API's detail bodies.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		_ = c.JSON(http.StatusInternalServerError, apierrors.Detail{Detail: "Internal server error."})
		return
	}

	switch he.Code {
	case http.StatusNotFound:
		_ = c.JSON(http.StatusNotFound, apierrors.NotFound())
	case http.StatusMethodNotAllowed:
		_ = c.JSON(http.StatusMethodNotAllowed, apierrors.MethodNotAllowed(c.Request().Method))
	default:
		_ = c.JSON(he.Code, apierrors.Detail{Detail: fmt.Sprintf("%v", he.Message)})
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator builds a validator that reports fields by json name.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
