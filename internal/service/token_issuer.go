package service

import (
	"authorization-server/internal/model"
	"authorization-server/internal/ports"
	"authorization-server/internal/util"
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TokenIssuer выпускает связанную пару access+refresh токенов.
// Обе вставки идут через exec вызывающей стороны: если она держит транзакцию,
// частично выпущенная пара не может закоммититься — ошибка любой из вставок
// откатывает всё.
type TokenIssuer struct {
	tokenRepository ports.TokenRepositoryInterface
	jwtService      ports.JWTServiceInterface
}

func NewTokenIssuer(
	tokenRepository ports.TokenRepositoryInterface,
	jwtService ports.JWTServiceInterface,
) *TokenIssuer {
	return &TokenIssuer{
		tokenRepository: tokenRepository,
		jwtService:      jwtService,
	}
}

// Issue выпускает новую пару токенов для слота (userUUID, deviceID).
//
// Порядок:
//  1. Новый UUID access токена, он же claim token_uuid внутри JWT.
//  2. Подпись {token_uuid, user_uuid} серверным секретом, срок действия час.
//  3. Вставка записи access токена через exec.
//  4. Новый opaque refresh токен, вставка записи со ссылкой на access токен.
func (s *TokenIssuer) Issue(ctx context.Context, exec sqlx.ExtContext, userUUID string, deviceID string) (*model.TokensPair, error) {
	tokenUUID := uuid.New().String()

	signedValue, err := s.jwtService.GenerateAccessToken(tokenUUID, userUUID)
	if err != nil {
		return nil, util.LogError("[TokenIssuer] ошибка генерации access токена", err)
	}

	accessToken, err := s.tokenRepository.InsertAccessToken(ctx, exec, &model.AccessToken{
		UUID:        tokenUUID,
		UserUUID:    userUUID,
		SignedValue: signedValue,
	})
	if err != nil {
		return nil, util.LogError("[TokenIssuer] не удалось сохранить access токен", err)
	}

	refreshTokenValue := uuid.New().String()
	_, err = s.tokenRepository.InsertRefreshToken(ctx, exec, &model.RefreshToken{
		Token:           refreshTokenValue,
		AccessTokenUUID: accessToken.UUID,
		UserUUID:        userUUID,
		DeviceID:        deviceID,
	})
	if err != nil {
		return nil, util.LogError("[TokenIssuer] не удалось сохранить refresh токен", err)
	}

	return &model.TokensPair{
		AccessToken:  signedValue,
		RefreshToken: refreshTokenValue,
	}, nil
}
