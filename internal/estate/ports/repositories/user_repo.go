package repositories

import (
	"context"

	"github.com/google/uuid"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
)

// UserRepository определяет методы хранилища пользователей.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.User, error)

	FindByLogin(ctx context.Context, login string) (*entities.User, error)

	Upsert(ctx context.Context, user *entities.User) error

	Lock(ctx context.Context, id uuid.UUID) error

	// LockCreation сериализует создание пользователей с одинаковым логином.
	LockCreation(ctx context.Context, login string) error

	List(ctx context.Context, args pagination.Arguments[uuid.UUID], name *string) (*pagination.Page[uuid.UUID, uuid.UUID], error)

	TotalCount(ctx context.Context) (int32, error)
}
