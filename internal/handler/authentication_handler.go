package handler

import (
	"authorization-server/internal/model"
	"authorization-server/internal/model/requestresponse"
	"authorization-server/internal/ports"
	"authorization-server/internal/security"
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	ports.UserService
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	userService ports.UserService,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		userService,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Проверяет email и пароль, ротирует пару токенов слота (user, deviceId): старая пара удаляется, новая выпускается в одной транзакции
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse "Пользователь и новая пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный email или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.User.Email == "" || req.User.Password == "" {
		sendErrorResponse(w, 400, "email и пароль обязательны")
		return
	}
	if req.DeviceID == "" {
		sendErrorResponse(w, 400, "deviceId обязателен")
		return
	}

	user, tokens, err := h.AuthenticationService.Login(ctx, req.User.Email, req.User.Password, req.DeviceID)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "неверный email или пароль"):
			sendErrorResponse(w, 401, "неверный email или пароль")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	setTokenCookies(w, tokens)

	resp := requestresponse.LoginResponse{
		User:   user,
		Tokens: tokens,
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// ExchangeRefreshToken godoc
// @Summary Обмен refresh токена на новую пару
// @Description Одноразовый обмен: предъявленный refresh токен и связанный с ним access токен удаляются, выпускается новая пара для того же устройства. Повторный обмен тем же значением вернет 404.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.ExchangeRefreshTokenRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ExchangeRefreshTokenResponse "Новая пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустое поле"
// @Failure 404 {object} requestresponse.ErrorResponse "Токен или пользователь не найдены"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) ExchangeRefreshToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.ExchangeRefreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.RefreshToken == "" {
		sendErrorResponse(w, 400, "refresh токен обязателен")
		return
	}

	tokens, err := h.AuthenticationService.ExchangeRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "refresh токен не найден"),
			strings.Contains(err.Error(), "пользователь не найден"):
			sendErrorResponse(w, 404, err.Error())
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	setTokenCookies(w, tokens)

	resp := requestresponse.ExchangeRefreshTokenResponse{
		Tokens: tokens,
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Account godoc
// @Summary Информация о текущем пользователе
// @Description Возвращает пользователя, которому принадлежит предъявленный access токен
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.AccountResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/account [get]
func (h *AuthenticationHandler) Account(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	user, err := h.UserService.GetUser(ctx, claims.UserUUID)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "пользователь не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.AccountResponse{User: user}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// setTokenCookies отдает пару токенов и в cookies: транспортный слой работает
// только со структурным http.SetCookie, без ручного разбора строк
func setTokenCookies(w http.ResponseWriter, tokens *model.TokensPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     security.AccessTokenCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     security.RefreshTokenCookie,
		Value:    tokens.RefreshToken,
		Path:     "/",
		HttpOnly: true,
	})
}
