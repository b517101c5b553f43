package repository

import (
	"authorization-server/config"
	"authorization-server/internal/model"
	"authorization-server/internal/util"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// TokenRepository хранит записи о выданных access и refresh токенах.
// Все методы работают через переданный exec: пул для чтения либо *sqlx.Tx,
// когда вызывающая сторона группирует несколько операций в одну транзакцию.
type TokenRepository struct {
	*config.Database
}

func NewTokenRepository(database *config.Database) *TokenRepository {
	return &TokenRepository{database}
}

// InsertAccessToken : сохраняет запись о выданном access токене
func (r *TokenRepository) InsertAccessToken(ctx context.Context, exec sqlx.ExtContext, token *model.AccessToken) (*model.AccessToken, error) {
	query := `
	INSERT INTO access_tokens (uuid, user_uuid, signed_value)
	VALUES ($1, $2, $3)
	RETURNING uuid, user_uuid, signed_value, created_at
	`

	createdToken := &model.AccessToken{}
	err := exec.QueryRowxContext(ctx, query, token.UUID, token.UserUUID, token.SignedValue).
		Scan(&createdToken.UUID, &createdToken.UserUUID, &createdToken.SignedValue, &createdToken.CreatedAt)

	if err != nil {
		return nil, util.LogError("[TokenRepo] ошибка вставки access токена", err)
	}

	return createdToken, nil
}

// InsertRefreshToken : сохраняет запись о выданном refresh токене
func (r *TokenRepository) InsertRefreshToken(ctx context.Context, exec sqlx.ExtContext, token *model.RefreshToken) (*model.RefreshToken, error) {
	query := `
	INSERT INTO refresh_tokens (token, access_token_uuid, user_uuid, device_id)
	VALUES ($1, $2, $3, $4)
	RETURNING token, access_token_uuid, user_uuid, device_id, created_at
	`

	createdToken := &model.RefreshToken{}
	err := exec.QueryRowxContext(ctx, query, token.Token, token.AccessTokenUUID, token.UserUUID, token.DeviceID).
		Scan(&createdToken.Token, &createdToken.AccessTokenUUID, &createdToken.UserUUID, &createdToken.DeviceID, &createdToken.CreatedAt)

	if err != nil {
		return nil, util.LogError("[TokenRepo] ошибка вставки refresh токена", err)
	}

	return createdToken, nil
}

// FindAccessTokenByUUID : ищет access токен по UUID.
// Возвращает (nil, nil), если запись не найдена — для валидатора это означает,
// что токен отозван.
func (r *TokenRepository) FindAccessTokenByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.AccessToken, error) {
	query := `SELECT uuid, user_uuid, signed_value, created_at FROM access_tokens WHERE uuid = $1`

	var token model.AccessToken
	err := sqlx.GetContext(ctx, exec, &token, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, util.LogError("[TokenRepo] ошибка поиска access токена", err)
	}

	return &token, nil
}

// FindRefreshTokenByToken : ищет refresh токен по его значению
func (r *TokenRepository) FindRefreshTokenByToken(ctx context.Context, exec sqlx.ExtContext, tokenValue string) (*model.RefreshToken, error) {
	query := `SELECT token, access_token_uuid, user_uuid, device_id, created_at FROM refresh_tokens WHERE token = $1`

	var token model.RefreshToken
	err := sqlx.GetContext(ctx, exec, &token, query, tokenValue)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, util.LogError("[TokenRepo] ошибка поиска refresh токена", err)
	}

	return &token, nil
}

// FindRefreshTokenByUserAndDevice : ищет живой refresh токен слота (user, device)
func (r *TokenRepository) FindRefreshTokenByUserAndDevice(ctx context.Context, exec sqlx.ExtContext, userUUID string, deviceID string) (*model.RefreshToken, error) {
	query := `SELECT token, access_token_uuid, user_uuid, device_id, created_at FROM refresh_tokens WHERE user_uuid = $1 AND device_id = $2`

	var token model.RefreshToken
	err := sqlx.GetContext(ctx, exec, &token, query, userUUID, deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, util.LogError("[TokenRepo] ошибка поиска refresh токена по слоту", err)
	}

	return &token, nil
}

// DeleteRefreshToken : удаляет refresh токен по его значению
func (r *TokenRepository) DeleteRefreshToken(ctx context.Context, exec sqlx.ExtContext, tokenValue string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`

	_, err := exec.ExecContext(ctx, query, tokenValue)
	if err != nil {
		return util.LogError("[TokenRepo] не удалось удалить refresh токен", err)
	}

	return nil
}

// DeleteAccessToken : удаляет access токен по UUID, отзывая его
// до естественного истечения срока действия
func (r *TokenRepository) DeleteAccessToken(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `DELETE FROM access_tokens WHERE uuid = $1`

	_, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[TokenRepo] не удалось удалить access токен", err)
	}

	return nil
}
