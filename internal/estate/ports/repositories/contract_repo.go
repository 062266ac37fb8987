package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
)

// ContractRepository определяет методы хранилища контрактов.
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error)

	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Contract, error)

	// FindActiveEmployment возвращает действующий трудовой контракт пользователя.
	FindActiveEmployment(ctx context.Context, userID uuid.UUID) (*entities.Contract, error)

	// FindActiveEmployments возвращает действующие трудовые контракты
	// для каждого из пользователей, у кого они есть.
	FindActiveEmployments(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entities.Contract, error)

	// FindActiveManagement возвращает действующий контракт управления
	// заданного вида для объекта недвижимости.
	FindActiveManagement(ctx context.Context, kind entities.ContractKind, realtyID uuid.UUID) (*entities.Contract, error)

	// HasActiveRent сообщает, действует ли для объекта контракт аренды.
	HasActiveRent(ctx context.Context, realtyID uuid.UUID) (bool, error)

	Upsert(ctx context.Context, contract *entities.Contract) error

	Lock(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, args pagination.Arguments[uuid.UUID], name *string) (*pagination.Page[uuid.UUID, uuid.UUID], error)

	TotalCount(ctx context.Context) (int32, error)

	// CountInPeriod возвращает число сделочных контрактов,
	// заключенных в периоде [start, end].
	CountInPeriod(ctx context.Context, start, end time.Time) (int32, error)

	// CountByEmployerInPeriod возвращает число сделочных контрактов
	// по каждому сотруднику за период [start, end].
	CountByEmployerInPeriod(ctx context.Context, start, end time.Time) (map[uuid.UUID]int32, error)
}
