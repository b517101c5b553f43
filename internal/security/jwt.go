package security

import (
	"authorization-server/config"
	"authorization-server/internal/repository"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"

	// AccessTokenCookie : имя cookie, в которой транспортный слой передает access токен
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie : имя cookie с refresh токеном
	RefreshTokenCookie = "refreshToken"
)

// Claims : полезная нагрузка access токена.
// TokenUUID совпадает с uuid строки в access_tokens — валидная подпись сама по
// себе недостаточна, запись должна существовать в БД (серверный отзыв токена).
type Claims struct {
	TokenUUID string `json:"token_uuid"`
	UserUUID  string `json:"user_uuid"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// GenerateAccessToken подписывает пару {token_uuid, user_uuid} серверным
// секретом. Срок действия — час с момента выпуска, если в конфигурации
// не задано иное.
func (service *JWTService) GenerateAccessToken(tokenUUID string, userUUID string) (string, error) {
	timeDuration := time.Hour
	if service.AccessTokenTTL != "" {
		parsed, err := time.ParseDuration(service.AccessTokenTTL)
		if err != nil {
			return "", fmt.Errorf("ошибка парсинга access_token_ttl: %w", err)
		}
		timeDuration = parsed
	}

	claims := Claims{
		TokenUUID: tokenUUID,
		UserUUID:  userUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(timeDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "authorization-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return accessToken, nil
}

func (service *JWTService) ValidateJWT(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil || jwtToken.Valid == false {
		return nil, fmt.Errorf("невалидный токен: %w", err)
	}

	return claims, nil
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}

// ExtractAccessToken достает access токен из заголовка Authorization или из
// cookie. Возвращает пустую строку, если токен не передан.
func ExtractAccessToken(request *http.Request) string {
	authorizationHeader := request.Header.Get("Authorization")
	if strings.HasPrefix(authorizationHeader, "Bearer ") {
		return strings.TrimPrefix(authorizationHeader, "Bearer ")
	}

	if cookie, err := request.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}

// JWTMiddleware закрывает маршрут: без валидного и не отозванного access
// токена запрос дальше не проходит. Любая причина отказа неотличима для
// клиента — всегда 401. Путь только читающий, поиск идет через пул соединений.
func JWTMiddleware(secretKey []byte, tokenRepository *repository.TokenRepository, jwtService *JWTService, database *config.Database) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(secretKey, tokenRepository, jwtService, database, next))
	}
}

func handleAuthentication(secretKey []byte, tokenRepository *repository.TokenRepository, jwtService *JWTService, database *config.Database, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		token := ExtractAccessToken(request)
		if token == "" {
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := jwtService.ValidateJWT(token, secretKey)
		if err != nil {
			log.Printf("невалидный токен: %v", err)
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		accessToken, err := tokenRepository.FindAccessTokenByUUID(request.Context(), database, claims.TokenUUID)
		if err != nil {
			log.Printf("ошибка поиска access токена: %v", err)
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}
		if accessToken == nil {
			// подпись валидна, но запись удалена — токен отозван
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
		next.ServeHTTP(writer, req)
	}
}
