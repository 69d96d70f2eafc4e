package jwt

import (
	"testing"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Email: "test@example.com",
		Role:  domain.RoleCustomer,
	}
}

// TestTokenService_GenerateAndValidate тестирует выдачу и валидацию пары токенов
func TestTokenService_GenerateAndValidate(t *testing.T) {
	ts := NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	pair, err := ts.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ts.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

// TestTokenService_ExpiredToken тестирует, что истекший токен дает ErrTokenExpired
func TestTokenService_ExpiredToken(t *testing.T) {
	// Отрицательный срок действия: токен истек в момент выдачи
	ts := NewTokenService("test-secret", -time.Minute, -time.Minute)

	pair, err := ts.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = ts.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

// TestTokenService_WrongSecret тестирует отказ по чужой подписи
func TestTokenService_WrongSecret(t *testing.T) {
	ts := NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour)

	pair, err := ts.GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := NewTokenService("another-secret", 15*time.Minute, 7*24*time.Hour)
	_, err = other.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTokenExpired)
}

// TestHashToken тестирует детерминированность хеша refresh токена
func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("token-a"), HashToken("token-a"))
	assert.NotEqual(t, HashToken("token-a"), HashToken("token-b"))
	assert.Len(t, HashToken("token-a"), 64)
}
