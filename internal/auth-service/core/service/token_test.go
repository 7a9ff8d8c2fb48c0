package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"driver-auth/internal/auth-service/core/domain/models"
	"driver-auth/internal/auth-service/core/myerrors"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_very_long_for_testing"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTokenManager(t *testing.T, clock *fakeClock) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecret)
	require.NoError(t, err)
	return tm.WithClock(clock.Now)
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
	tm := newTestTokenManager(t, clock)

	token, err := tm.Issue(models.Claims{DriverID: 7, Email: "b@x.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.Claims{DriverID: 7, Email: "b@x.com"}, claims)
}

func TestTokenManager_EmbedsIssuedAtAndExpiry(t *testing.T) {
	issued := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	tm := newTestTokenManager(t, &fakeClock{now: issued})

	token, err := tm.Issue(models.Claims{DriverID: 7, Email: "b@x.com"})
	require.NoError(t, err)

	var claims driverClaims
	_, _, err = new(jwt.Parser).ParseUnverified(token, &claims)
	require.NoError(t, err)
	assert.Equal(t, issued.Unix(), claims.IssuedAt)
	assert.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenManager_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issued}
	tm := newTestTokenManager(t, clock)

	token, err := tm.Issue(models.Claims{DriverID: 7, Email: "b@x.com"})
	require.NoError(t, err)

	clock.now = issued.Add(59 * time.Minute)
	_, err = tm.Verify(token)
	assert.NoError(t, err)

	clock.now = issued.Add(time.Hour)
	_, err = tm.Verify(token)
	assert.NoError(t, err, "token must still be valid at exactly T+1h")

	clock.now = issued.Add(time.Hour + time.Nanosecond)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, myerrors.ErrTokenExpired)
	assert.ErrorIs(t, err, myerrors.ErrInvalidToken)
}

func TestTokenManager_SubSecondIssuance(t *testing.T) {
	issued := time.Date(2025, 6, 1, 8, 0, 0, 900_000_000, time.UTC)
	clock := &fakeClock{now: issued}
	tm := newTestTokenManager(t, clock)

	token, err := tm.Issue(models.Claims{DriverID: 7, Email: "b@x.com"})
	require.NoError(t, err)

	clock.now = issued.Add(time.Hour)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, myerrors.ErrTokenExpired)
}

func TestTokenManager_TamperedPayload(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	tm := newTestTokenManager(t, clock)

	token, err := tm.Issue(models.Claims{DriverID: 7, Email: "b@x.com"})
	require.NoError(t, err)

	// swap in a payload claiming another driver, keep the original signature
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged := fmt.Sprintf(`{"id":8,"email":"other@x.com","exp":%d}`, clock.now.Add(time.Hour).Unix())
	parts[1] = jwt.EncodeSegment([]byte(forged))

	_, err = tm.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, myerrors.ErrTokenSignatureInvalid)
	assert.ErrorIs(t, err, myerrors.ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	other, err := NewTokenManager("another_secret")
	require.NoError(t, err)
	token, err := other.WithClock(clock.Now).Issue(models.Claims{DriverID: 7, Email: "b@x.com"})
	require.NoError(t, err)

	tm := newTestTokenManager(t, clock)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, myerrors.ErrTokenSignatureInvalid)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := newTestTokenManager(t, &fakeClock{now: time.Now()})

	_, err := tm.Verify("clearly-not-a-jwt-token-format")
	assert.ErrorIs(t, err, myerrors.ErrTokenMalformed)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	tm := newTestTokenManager(t, clock)

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, driverClaims{
		DriverID: 7,
		Email:    "b@x.com",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: clock.now.Add(time.Hour).Unix(),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.Verify(signed)
	assert.ErrorIs(t, err, myerrors.ErrTokenSignatureInvalid)
}

func TestTokenManager_RejectsMissingExpiry(t *testing.T) {
	tm := newTestTokenManager(t, &fakeClock{now: time.Now()})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, driverClaims{DriverID: 7, Email: "b@x.com"})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.Verify(signed)
	assert.ErrorIs(t, err, myerrors.ErrTokenMalformed)
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	tm, err := NewTokenManager("")
	assert.Error(t, err)
	assert.Nil(t, tm)
}
