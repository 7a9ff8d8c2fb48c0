package middleware

import (
	"context"
	"net/http"
	"strings"

	"driver-auth/internal/auth-service/adapters/driver/myhttp/response"
	"driver-auth/internal/auth-service/core/domain/models"
	"driver-auth/internal/auth-service/core/myerrors"
	"driver-auth/internal/auth-service/core/ports/driver"
	"driver-auth/internal/mylogger"
)

type claimsKey struct{}

// WithClaims stores verified token claims in ctx.
func WithClaims(ctx context.Context, claims models.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims attached by AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(models.Claims)
	return claims, ok
}

// Authorize checks an Authorization header value of the form "Bearer <token>".
// The scheme is matched case-insensitively and must be Bearer: any other
// scheme, such as "Token abc" or "Basic abc", is ErrMalformedHeader.
func Authorize(header string, verifier driver.ITokenVerifier) (models.Claims, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return models.Claims{}, myerrors.ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || token == "" || !strings.EqualFold(scheme, "Bearer") {
		return models.Claims{}, myerrors.ErrMalformedHeader
	}

	return verifier.Verify(token)
}

type AuthMiddleware struct {
	verifier driver.ITokenVerifier
	mylog    mylogger.Logger
}

func NewAuthMiddleware(verifier driver.ITokenVerifier, mylog mylogger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		mylog:    mylog,
	}
}

func (am *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := Authorize(r.Header.Get("Authorization"), am.verifier)
		if err != nil {
			am.mylog.Action("authorize").Debug("request rejected", "path", r.URL.Path, "reason", err.Error())
			response.JsonError(w, http.StatusUnauthorized, myerrors.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}
