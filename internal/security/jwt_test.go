package security_test

import (
	"authorization-server/config"
	"authorization-server/internal/security"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(ttl string) *security.JWTService {
	return security.NewJWTService(&config.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenTTL: ttl,
	})
}

// 1. Round-trip: подписанный токен проходит проверку и возвращает те же claims
func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	jwtService := newTestJWTService("1h")

	signed, err := jwtService.GenerateAccessToken("token-uuid-1", "user-uuid-1")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := jwtService.ValidateJWT(signed, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, "token-uuid-1", claims.TokenUUID)
	assert.Equal(t, "user-uuid-1", claims.UserUUID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

// 2. Пустой TTL в конфигурации — срок действия по умолчанию час
func TestGenerateAccessToken_DefaultTTL(t *testing.T) {
	jwtService := newTestJWTService("")

	signed, err := jwtService.GenerateAccessToken("token-uuid-1", "user-uuid-1")
	require.NoError(t, err)

	claims, err := jwtService.ValidateJWT(signed, []byte("test-secret"))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

// 3. Просроченный токен не проходит проверку
func TestValidateJWT_Expired(t *testing.T) {
	jwtService := newTestJWTService("-1m")

	signed, err := jwtService.GenerateAccessToken("token-uuid-1", "user-uuid-1")
	require.NoError(t, err)

	_, err = jwtService.ValidateJWT(signed, []byte("test-secret"))
	assert.Error(t, err)
}

// 4. Токен, подписанный другим секретом, не проходит проверку
func TestValidateJWT_WrongSecret(t *testing.T) {
	jwtService := newTestJWTService("1h")

	signed, err := jwtService.GenerateAccessToken("token-uuid-1", "user-uuid-1")
	require.NoError(t, err)

	_, err = jwtService.ValidateJWT(signed, []byte("another-secret"))
	assert.Error(t, err)
}

// 5. Токен с другим алгоритмом подписи отклоняется
func TestValidateJWT_WrongAlgorithm(t *testing.T) {
	jwtService := newTestJWTService("1h")

	claims := security.Claims{
		TokenUUID: "token-uuid-1",
		UserUUID:  "user-uuid-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs256Token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := hs256Token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = jwtService.ValidateJWT(signed, []byte("test-secret"))
	assert.Error(t, err)
}

// 6. Мусор вместо токена отклоняется
func TestValidateJWT_Garbage(t *testing.T) {
	jwtService := newTestJWTService("1h")

	_, err := jwtService.ValidateJWT("not-a-jwt", []byte("test-secret"))
	assert.Error(t, err)
}

// 7. Хэширование пароля: сравнение проходит только с исходным паролем
func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := security.HashPassword("P@ssw0rd123")
	require.NoError(t, err)
	assert.NotEqual(t, "P@ssw0rd123", hash)

	assert.True(t, security.CheckPassword("P@ssw0rd123", hash))
	assert.False(t, security.CheckPassword("wrong", hash))
}
