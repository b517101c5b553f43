package service

import (
	"authorization-server/config"
	"authorization-server/internal/model"
	"authorization-server/internal/ports"
	"authorization-server/internal/security"
	"authorization-server/internal/util"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

type UserService struct {
	database        *config.Database
	userRepository  ports.UserRepository
	cacheRepository ports.CacheRepository
}

func NewUserService(
	database *config.Database,
	userRepository ports.UserRepository,
	cacheRepository ports.CacheRepository,
) *UserService {
	return &UserService{
		database:        database,
		userRepository:  userRepository,
		cacheRepository: cacheRepository,
	}
}

// Register создает нового пользователя. Пароль сохраняется только в виде
// bcrypt-хэша.
func (s *UserService) Register(ctx context.Context, email string, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email и пароль обязательны")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("некорректный email")
	}

	existing, err := s.userRepository.FindByEmail(ctx, s.database, email)
	if err != nil {
		return nil, util.LogError("[UserService] ошибка поиска пользователя", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("пользователь уже существует")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, util.LogError("[UserService] не удалось создать хэш пароля", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
	}

	created, err := s.userRepository.CreateUser(ctx, s.database, user)
	if err != nil {
		return nil, util.LogError("[UserService] ошибка создания пользователя", err)
	}

	return created, nil
}

// GetUser возвращает пользователя по UUID, сначала из кэша, затем из БД.
// Ошибки кэша не фатальны: ответ собирается из БД, промах просто логируется.
func (s *UserService) GetUser(ctx context.Context, userUUID string) (*model.User, error) {
	cached, err := s.cacheRepository.GetUser(ctx, userUUID)
	if err != nil {
		log.Printf("[UserService] ошибка чтения из кэша: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	user, err := s.userRepository.FindByUUID(ctx, s.database, userUUID)
	if err != nil {
		return nil, util.LogError("[UserService] ошибка поиска пользователя", err)
	}
	if user == nil {
		return nil, fmt.Errorf("пользователь не найден")
	}

	if err := s.cacheRepository.SetUser(ctx, user); err != nil {
		log.Printf("[UserService] не удалось сохранить пользователя в кэш: %v", err)
	}

	return user, nil
}
