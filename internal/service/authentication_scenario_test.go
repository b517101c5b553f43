package service_test

import (
	"authorization-server/config"
	"authorization-server/internal/model"
	"authorization-server/internal/security"
	"authorization-server/internal/service"
	"context"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== STATEFUL FAKES =====
// Хранилище на map'ах, чтобы прогнать полный жизненный цикл пары токенов
// без настоящей БД. Параметр exec игнорируется.

type fakeTokenRepository struct {
	mu            sync.Mutex
	accessTokens  map[string]*model.AccessToken
	refreshTokens map[string]*model.RefreshToken
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{
		accessTokens:  make(map[string]*model.AccessToken),
		refreshTokens: make(map[string]*model.RefreshToken),
	}
}

func (f *fakeTokenRepository) InsertAccessToken(ctx context.Context, exec sqlx.ExtContext, token *model.AccessToken) (*model.AccessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *token
	f.accessTokens[token.UUID] = &stored
	return &stored, nil
}

func (f *fakeTokenRepository) InsertRefreshToken(ctx context.Context, exec sqlx.ExtContext, token *model.RefreshToken) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *token
	f.refreshTokens[token.Token] = &stored
	return &stored, nil
}

func (f *fakeTokenRepository) FindAccessTokenByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.AccessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accessTokens[uuid], nil
}

func (f *fakeTokenRepository) FindRefreshTokenByToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshTokens[token], nil
}

func (f *fakeTokenRepository) FindRefreshTokenByUserAndDevice(ctx context.Context, exec sqlx.ExtContext, userUUID string, deviceID string) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, token := range f.refreshTokens {
		if token.UserUUID == userUUID && token.DeviceID == deviceID {
			return token, nil
		}
	}
	return nil, nil
}

func (f *fakeTokenRepository) DeleteRefreshToken(ctx context.Context, exec sqlx.ExtContext, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.refreshTokens, token)
	return nil
}

func (f *fakeTokenRepository) DeleteAccessToken(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accessTokens, uuid)
	return nil
}

func (f *fakeTokenRepository) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.accessTokens), len(f.refreshTokens)
}

type fakeUserRepository struct {
	users map[string]*model.User
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	f.users[user.UUID] = user
	return user, nil
}

func (f *fakeUserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	return f.users[uuid], nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

// ===== SCENARIO =====

// Полный жизненный цикл слота (user, device):
// логин -> повторный логин (ротация) -> обмен refresh токена -> replay.
func TestTokenLifecycle_FullScenario(t *testing.T) {
	ctx := context.Background()
	database, mockSQL := newMockDatabase(t)

	// три мутирующих шага — три транзакции
	for i := 0; i < 3; i++ {
		mockSQL.ExpectBegin()
		mockSQL.ExpectCommit()
	}

	hash, err := security.HashPassword("p")
	require.NoError(t, err)
	user := &model.User{UUID: "user-uuid-1", Email: "a@x.com", PasswordHash: hash}

	tokenRepo := newFakeTokenRepository()
	userRepo := &fakeUserRepository{users: map[string]*model.User{user.UUID: user}}
	jwtService := security.NewJWTService(&config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: "1h"})
	issuer := service.NewTokenIssuer(tokenRepo, jwtService)
	svc := service.NewAuthenticationService(database, tokenRepo, userRepo, issuer)

	// 1. Первый логин: у слота ровно одна пара
	_, firstPair, err := svc.Login(ctx, "a@x.com", "p", "d1")
	require.NoError(t, err)
	accessCount, refreshCount := tokenRepo.counts()
	assert.Equal(t, 1, accessCount)
	assert.Equal(t, 1, refreshCount)

	firstClaims, err := jwtService.ValidateJWT(firstPair.AccessToken, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, "user-uuid-1", firstClaims.UserUUID)

	// 2. Повторный логин того же слота: пара другая, старой записи access
	// токена больше нет, у слота по-прежнему одна пара
	_, secondPair, err := svc.Login(ctx, "a@x.com", "p", "d1")
	require.NoError(t, err)
	assert.NotEqual(t, firstPair.AccessToken, secondPair.AccessToken)
	assert.NotEqual(t, firstPair.RefreshToken, secondPair.RefreshToken)

	accessCount, refreshCount = tokenRepo.counts()
	assert.Equal(t, 1, accessCount)
	assert.Equal(t, 1, refreshCount)

	firstAccess, err := tokenRepo.FindAccessTokenByUUID(ctx, database, firstClaims.TokenUUID)
	require.NoError(t, err)
	assert.Nil(t, firstAccess, "запись access токена первой пары должна быть удалена")

	// 3. Обмен refresh токена первой пары — он инвалидирован ротацией
	_, err = svc.ExchangeRefreshToken(ctx, firstPair.RefreshToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh токен не найден")

	// 4. Обмен текущего refresh токена дает третью пару
	thirdPair, err := svc.ExchangeRefreshToken(ctx, secondPair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, secondPair.RefreshToken, thirdPair.RefreshToken)

	// device_id сохраняется при обмене
	storedThird, err := tokenRepo.FindRefreshTokenByToken(ctx, database, thirdPair.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, storedThird)
	assert.Equal(t, "d1", storedThird.DeviceID)

	// 5. Replay: повторный обмен того же значения — отказ, пара не выдается
	_, err = svc.ExchangeRefreshToken(ctx, secondPair.RefreshToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh токен не найден")

	// 6. Access токен второй пары отозван обменом: подпись еще валидна,
	// но записи нет
	secondClaims, err := jwtService.ValidateJWT(secondPair.AccessToken, []byte("test-secret"))
	require.NoError(t, err)
	secondAccess, err := tokenRepo.FindAccessTokenByUUID(ctx, database, secondClaims.TokenUUID)
	require.NoError(t, err)
	assert.Nil(t, secondAccess)

	assert.NoError(t, mockSQL.ExpectationsWereMet())
}
