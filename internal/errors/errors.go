package errors

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Detail is the minimal API error body.
type Detail struct {
	Detail string `json:"detail"`
}

// TokenMessage describes a single token validation failure.
type TokenMessage struct {
	TokenClass string `json:"token_class"`
	TokenType  string `json:"token_type"`
	Message    string `json:"message"`
}

// TokenError is the body returned when a presented token is rejected.
type TokenError struct {
	Detail   string         `json:"detail"`
	Code     string         `json:"code"`
	Messages []TokenMessage `json:"messages,omitempty"`
}

// CredentialsNotProvided is returned when a guarded route is called without
// a bearer token.
func CredentialsNotProvided() Detail {
	return Detail{Detail: "Authentication credentials were not provided."}
}

// NoActiveAccount is returned on login with unknown or wrong credentials.
func NoActiveAccount() Detail {
	return Detail{Detail: "No active account found with the given credentials"}
}

// NotFound is the body for missing resources.
func NotFound() Detail {
	return Detail{Detail: "Not found."}
}

// MethodNotAllowed is the body for unsupported methods on a resource.
func MethodNotAllowed(method string) Detail {
	return Detail{Detail: fmt.Sprintf("Method %q not allowed.", method)}
}

// TokenNotValid is the body for invalid or expired refresh/verify tokens.
func TokenNotValid() TokenError {
	return TokenError{
		Detail: "Token is invalid or expired",
		Code:   "token_not_valid",
	}
}

// BearerTokenNotValid is the body for invalid bearer tokens on guarded routes.
func BearerTokenNotValid() TokenError {
	return TokenError{
		Detail: "Given token not valid for any token type",
		Code:   "token_not_valid",
		Messages: []TokenMessage{
			{
				TokenClass: "AccessToken",
				TokenType:  "access",
				Message:    "Token is invalid or expired",
			},
		},
	}
}

// ValidationErrors maps a field name to its list of human-readable messages.
type ValidationErrors map[string][]string

// FromValidationError converts a validator error into per-field messages.
// Field names are the json names when the validator is configured with a
// json tag name func.
func FromValidationError(err error) ValidationErrors {
	out := ValidationErrors{}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["non_field_errors"] = []string{"Invalid input."}
		return out
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		out[field] = append(out[field], messageFor(fe))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Invalid value for rule %q.", fe.Tag())
	}
}
