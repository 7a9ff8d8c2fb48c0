package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"driver-auth/internal/auth-service/core/domain/models"
	"driver-auth/internal/auth-service/core/myerrors"

	"github.com/golang-jwt/jwt"
)

const TokenTTL = time.Hour

type driverClaims struct {
	DriverID int64  `json:"id"`
	Email    string `json:"email"`
	jwt.StandardClaims
}

// TokenManager issues and verifies HS256 access tokens. Nothing is stored
// server side: a token is valid as long as its signature matches and its
// expiry has not passed.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
		parser: &jwt.Parser{
			ValidMethods: []string{jwt.SigningMethodHS256.Alg()},
			// expiry is checked against tm.now below
			SkipClaimsValidation: true,
		},
	}, nil
}

// WithClock replaces the time source. Used by tests.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Issue signs claims into a token expiring TokenTTL after issuance.
// Issuance time is truncated to the second so that exp is exactly iat+TTL.
func (tm *TokenManager) Issue(claims models.Claims) (string, error) {
	issuedAt := tm.now().Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, driverClaims{
		DriverID: claims.DriverID,
		Email:    claims.Email,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatInt(claims.DriverID, 10),
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: issuedAt.Add(tm.ttl).Unix(),
		},
	})

	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify accepts a token until the instant of its expiry, inclusive.
func (tm *TokenManager) Verify(tokenString string) (models.Claims, error) {
	var claims driverClaims
	_, err := tm.parser.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.secret, nil
	})
	if err != nil {
		return models.Claims{}, classifyTokenError(err)
	}

	if claims.ExpiresAt == 0 || claims.DriverID == 0 {
		return models.Claims{}, myerrors.ErrTokenMalformed
	}
	if tm.now().After(time.Unix(claims.ExpiresAt, 0)) {
		return models.Claims{}, myerrors.ErrTokenExpired
	}

	return models.Claims{DriverID: claims.DriverID, Email: claims.Email}, nil
}

func classifyTokenError(err error) error {
	var vErr *jwt.ValidationError
	if errors.As(err, &vErr) {
		switch {
		case vErr.Errors&jwt.ValidationErrorMalformed != 0:
			return myerrors.ErrTokenMalformed
		case vErr.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
			return myerrors.ErrTokenSignatureInvalid
		case vErr.Errors&jwt.ValidationErrorExpired != 0:
			return myerrors.ErrTokenExpired
		}
	}
	return fmt.Errorf("%w: %v", myerrors.ErrInvalidToken, err)
}
