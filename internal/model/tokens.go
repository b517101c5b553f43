package model

import "time"

// AccessToken : запись о выданном access токене.
// UUID записи совпадает с claim token_uuid внутри подписанного JWT:
// пока строка существует в БД — токен жив, удаление строки отзывает токен
// до истечения его срока действия.
type AccessToken struct {
	UUID        string    `db:"uuid"`
	UserUUID    string    `db:"user_uuid"`
	SignedValue string    `db:"signed_value"`
	CreatedAt   time.Time `db:"created_at"`
}

// RefreshToken : запись о выданном refresh токене.
// Не более одного живого refresh токена на пару (user_uuid, device_id) —
// инвариант обеспечивает AuthenticationService, удаляя старую пару
// в той же транзакции, в которой выпускает новую.
type RefreshToken struct {
	Token           string    `db:"token"`
	AccessTokenUUID string    `db:"access_token_uuid"`
	UserUUID        string    `db:"user_uuid"`
	DeviceID        string    `db:"device_id"`
	CreatedAt       time.Time `db:"created_at"`
}

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (для обмена на новую пару)
	// example: 3f1c5b0a-9d2e-4c8f-b6a1-7e4d2c9f0a11
	RefreshToken string `json:"refreshToken"`
}
