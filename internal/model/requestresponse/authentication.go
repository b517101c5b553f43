package requestresponse

import "authorization-server/internal/model"

// Credentials : email и пароль пользователя
type Credentials struct {
	Email    string `json:"email" example:"a@x.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// RegisterRequest : тело запроса на регистрацию
type RegisterRequest struct {
	User Credentials `json:"user"`
}

// RegisterResponse : ответ на успешную регистрацию
type RegisterResponse struct {
	User *model.User `json:"user"`
}

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	User     Credentials `json:"user"`
	DeviceID string      `json:"deviceId" example:"d1"`
}

// LoginResponse : ответ на успешную аутентификацию
type LoginResponse struct {
	User   *model.User       `json:"user"`
	Tokens *model.TokensPair `json:"tokens"`
}

// ExchangeRefreshTokenRequest : запрос на обмен refresh токена
type ExchangeRefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" example:"3f1c5b0a-9d2e-4c8f-b6a1-7e4d2c9f0a11"`
}

// ExchangeRefreshTokenResponse : новая пара токенов
type ExchangeRefreshTokenResponse struct {
	Tokens *model.TokensPair `json:"tokens"`
}

// AccountResponse : информация о текущем пользователе
type AccountResponse struct {
	User *model.User `json:"user"`
}

// ErrorDetail : код и текст ошибки
type ErrorDetail struct {
	Code int    `json:"code" example:"401"`
	Text string `json:"text" example:"не авторизован"`
}

// ErrorResponse : стандартный ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
