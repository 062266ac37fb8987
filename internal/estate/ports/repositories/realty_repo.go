package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
)

// RealtyRepository определяет методы хранилища объектов недвижимости.
type RealtyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Realty, error)

	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Realty, error)

	FindByHash(ctx context.Context, hash uuid.UUID) (*entities.Realty, error)

	Upsert(ctx context.Context, realty *entities.Realty) error

	Lock(ctx context.Context, id uuid.UUID) error

	// LockCreation сериализует создание объектов с одинаковым хешем адреса.
	LockCreation(ctx context.Context, hash uuid.UUID) error

	// DeleteUnused удаляет объекты старше deadline, на которые не
	// ссылается ни один действующий контракт. Возвращает число удаленных строк.
	DeleteUnused(ctx context.Context, deadline time.Time) (int64, error)

	List(ctx context.Context, args pagination.Arguments[uuid.UUID], address *string) (*pagination.Page[uuid.UUID, uuid.UUID], error)

	TotalCount(ctx context.Context) (int32, error)
}
