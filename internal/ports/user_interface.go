package ports

import (
	"authorization-server/internal/model"
	"context"

	"github.com/jmoiron/sqlx"
)

// UserRepository : методы Find* возвращают (nil, nil), если пользователь не найден
type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
}

type UserService interface {
	Register(ctx context.Context, email string, password string) (*model.User, error)
	GetUser(ctx context.Context, uuid string) (*model.User, error)
}
