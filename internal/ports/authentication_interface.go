package ports

import (
	"authorization-server/internal/model"
	"context"
)

type AuthenticationService interface {
	Login(ctx context.Context, email, password, deviceID string) (*model.User, *model.TokensPair, error)
	ExchangeRefreshToken(ctx context.Context, refreshToken string) (*model.TokensPair, error)
}
