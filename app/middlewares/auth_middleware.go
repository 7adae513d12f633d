package middlewares

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/handlers"
	"github.com/Rakhulsr/wishcrate/app/helpers"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type Authenticator struct {
	tokens *auth.TokenManager
	render *render.Render
}

func NewAuthenticator(tokens *auth.TokenManager, render *render.Render) *Authenticator {
	return &Authenticator{tokens: tokens, render: render}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate resolves the bearer token into the caller identity.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			handlers.JSONError(a.render, w, http.StatusUnauthorized, handlers.CodeUnauthenticated, "missing bearer token")
			return
		}

		identity, err := a.tokens.Validate(token)
		if err != nil {
			helpers.LoggerFromContext(r.Context()).Debug("rejected bearer token", zap.Error(err))
			handlers.JSONError(a.render, w, http.StatusUnauthorized, handlers.CodeUnauthenticated, "invalid or expired token")
			return
		}

		ctx := helpers.WithIdentity(r.Context(), identity)
		ctx = helpers.WithLogger(ctx, helpers.LoggerFromContext(ctx).With(zap.String("user_id", identity.UserID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles must run after Authenticate.
func (a *Authenticator) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := helpers.IdentityFromContext(r.Context())
			if !ok {
				handlers.JSONError(a.render, w, http.StatusUnauthorized, handlers.CodeUnauthenticated, "missing bearer token")
				return
			}
			if !identity.HasRole(roles...) {
				handlers.JSONError(a.render, w, http.StatusForbidden, handlers.CodeUnauthorized, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
