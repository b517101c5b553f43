package service

import (
	"authorization-server/config"
	"authorization-server/internal/model"
	"authorization-server/internal/ports"
	"authorization-server/internal/security"
	"authorization-server/internal/util"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AuthenticationService — единственный пишущий компонент для записей токенов.
// Оба его сценария, логин и обмен refresh токена, следуют одной схеме:
// инвалидация старой пары и выпуск новой в одной транзакции.
type AuthenticationService struct {
	database        *config.Database
	tokenRepository ports.TokenRepositoryInterface
	userRepository  ports.UserRepository
	tokenIssuer     ports.TokenIssuerInterface
}

func NewAuthenticationService(
	database *config.Database,
	tokenRepository ports.TokenRepositoryInterface,
	userRepository ports.UserRepository,
	tokenIssuer ports.TokenIssuerInterface,
) *AuthenticationService {
	return &AuthenticationService{
		database:        database,
		tokenRepository: tokenRepository,
		userRepository:  userRepository,
		tokenIssuer:     tokenIssuer,
	}
}

// Login аутентифицирует пользователя и выпускает пару токенов для слота
// (user, deviceID). Если у слота уже была живая пара, она удаляется в той же
// транзакции, в которой выпускается новая: после успешного логина у слота
// ровно одна пара.
//
// Возвращает:
//   - пользователя и новую пару токенов
//   - ошибку "неверный email или пароль" — текст одинаков для несуществующего
//     email и неверного пароля, чтобы не раскрывать, какое из полей неверно
func (s *AuthenticationService) Login(ctx context.Context, email, password, deviceID string) (*model.User, *model.TokensPair, error) {
	user, err := s.userRepository.FindByEmail(ctx, s.database, email)
	if err != nil {
		return nil, nil, util.LogError("[AuthService] ошибка поиска пользователя", err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, fmt.Errorf("неверный email или пароль")
	}

	// Чтение намеренно вне транзакции, как и удаление/перевыпуск ниже — два
	// одновременных логина одного слота могут выдать две живые пары.
	// Известный зазор согласованности, см. DESIGN.md.
	oldRefreshToken, err := s.tokenRepository.FindRefreshTokenByUserAndDevice(ctx, s.database, user.UUID, deviceID)
	if err != nil {
		return nil, nil, util.LogError("[AuthService] ошибка поиска старого refresh токена", err)
	}

	tokens, err := s.rotateTokenPair(ctx, oldRefreshToken, user.UUID, deviceID)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// ExchangeRefreshToken меняет refresh токен на новую пару. Обмен одноразовый:
// старая пара удаляется в той же транзакции, и повторное предъявление того же
// значения завершится ошибкой "refresh токен не найден".
func (s *AuthenticationService) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*model.TokensPair, error) {
	storedToken, err := s.tokenRepository.FindRefreshTokenByToken(ctx, s.database, refreshToken)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка поиска refresh токена", err)
	}
	if storedToken == nil {
		return nil, fmt.Errorf("refresh токен не найден")
	}

	user, err := s.userRepository.FindByUUID(ctx, s.database, storedToken.UserUUID)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка поиска пользователя", err)
	}
	if user == nil {
		// осиротевший токен: владелец удален
		return nil, fmt.Errorf("пользователь не найден")
	}

	// новая пара привязывается к device_id старой записи
	tokens, err := s.rotateTokenPair(ctx, storedToken, user.UUID, storedToken.DeviceID)
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// rotateTokenPair атомарно удаляет старую пару (если она есть) и выпускает
// новую. Любая ошибка внутри откатывает транзакцию целиком — наполовину
// ротированное состояние закоммитить нельзя.
func (s *AuthenticationService) rotateTokenPair(ctx context.Context, oldRefreshToken *model.RefreshToken, userUUID string, deviceID string) (*model.TokensPair, error) {
	var tokens *model.TokensPair

	err := s.database.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if oldRefreshToken != nil {
			// refresh ссылается на access: сначала дочерняя запись, потом родительская
			if err := s.tokenRepository.DeleteRefreshToken(ctx, tx, oldRefreshToken.Token); err != nil {
				return err
			}
			if err := s.tokenRepository.DeleteAccessToken(ctx, tx, oldRefreshToken.AccessTokenUUID); err != nil {
				return err
			}
		}

		issued, err := s.tokenIssuer.Issue(ctx, tx, userUUID, deviceID)
		if err != nil {
			return err
		}
		tokens = issued

		return nil
	})
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка ротации пары токенов", err)
	}

	return tokens, nil
}
