package ports

import (
	"authorization-server/internal/model"
	"authorization-server/internal/security"
	"context"

	"github.com/jmoiron/sqlx"
)

// TokenRepositoryInterface : хранилище выданных access и refresh токенов.
// Каждый метод принимает exec явно: пул соединений для путей чтения либо
// *sqlx.Tx, когда вызывающая сторона держит транзакцию.
// Методы Find* возвращают (nil, nil), если запись не найдена.
type TokenRepositoryInterface interface {
	InsertAccessToken(ctx context.Context, exec sqlx.ExtContext, token *model.AccessToken) (*model.AccessToken, error)
	InsertRefreshToken(ctx context.Context, exec sqlx.ExtContext, token *model.RefreshToken) (*model.RefreshToken, error)
	FindAccessTokenByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.AccessToken, error)
	FindRefreshTokenByToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.RefreshToken, error)
	FindRefreshTokenByUserAndDevice(ctx context.Context, exec sqlx.ExtContext, userUUID string, deviceID string) (*model.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, exec sqlx.ExtContext, token string) error
	DeleteAccessToken(ctx context.Context, exec sqlx.ExtContext, uuid string) error
}

type JWTServiceInterface interface {
	GenerateAccessToken(tokenUUID string, userUUID string) (string, error)
	ValidateJWT(tokenString string, secret []byte) (*security.Claims, error)
}

// TokenIssuerInterface : выпускает новую пару токенов внутри exec вызывающей стороны
type TokenIssuerInterface interface {
	Issue(ctx context.Context, exec sqlx.ExtContext, userUUID string, deviceID string) (*model.TokensPair, error)
}
