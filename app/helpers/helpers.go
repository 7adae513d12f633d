package helpers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyIdentity  contextKey = "identity"
	ContextKeyLogger    contextKey = "logger"
	ContextKeyRequestID contextKey = "requestID"
	RequestIDHeader                = "X-Request-ID"
)

func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, identity)
}

func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(auth.Identity)
	if !ok || identity.UserID == "" {
		return auth.Identity{}, false
	}
	return identity, true
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, logger)
}

// LoggerFromContext falls back to a no-op logger so callers never nil-check.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(ContextKeyLogger).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(ContextKeyRequestID).(string)
	return requestID
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := lowerFirst(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "min", "gte":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max", "lte":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed on the '%s' rule", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func PasswordCompare(hashPass string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashPass), password) == nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func GenerateSlug(s string) string {
	return slug.Make(s)
}
