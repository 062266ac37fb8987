package api

import (
	"context"

	"github.com/google/uuid"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
)

// QueryUseCase определяет порт запросов чтения.
// Каждый запрос транслируется ровно в одну выборку хранилища.
type QueryUseCase interface {
	User(ctx context.Context, id uuid.UUID) (*entities.User, error)

	Users(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.User, error)

	ListUsers(ctx context.Context, args pagination.Arguments[uuid.UUID], name *string) (*pagination.Page[uuid.UUID, uuid.UUID], error)

	TotalUsers(ctx context.Context) (int32, error)

	Realty(ctx context.Context, id uuid.UUID) (*entities.Realty, error)

	Realties(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Realty, error)

	// RealtyByHash возвращает объект недвижимости по хешу дедупликации.
	RealtyByHash(ctx context.Context, hash uuid.UUID) (*entities.Realty, error)

	ListRealties(ctx context.Context, args pagination.Arguments[uuid.UUID], address *string) (*pagination.Page[uuid.UUID, uuid.UUID], error)

	TotalRealties(ctx context.Context) (int32, error)

	Contract(ctx context.Context, id uuid.UUID) (*entities.Contract, error)

	Contracts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Contract, error)

	// ActiveEmployment возвращает действующий трудовой контракт пользователя.
	ActiveEmployment(ctx context.Context, userID uuid.UUID) (*entities.Contract, error)

	// ActiveEmployments возвращает действующие трудовые контракты пользователей.
	ActiveEmployments(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entities.Contract, error)

	// ActiveManagementForRent возвращает действующий контракт управления
	// сдачей в аренду для объекта недвижимости.
	ActiveManagementForRent(ctx context.Context, realtyID uuid.UUID) (*entities.Contract, error)

	// ActiveManagementForSale возвращает действующий контракт управления
	// продажей для объекта недвижимости.
	ActiveManagementForSale(ctx context.Context, realtyID uuid.UUID) (*entities.Contract, error)

	// IsRented сообщает, действует ли для объекта контракт аренды.
	IsRented(ctx context.Context, realtyID uuid.UUID) (bool, error)

	ListContracts(ctx context.Context, args pagination.Arguments[uuid.UUID], name *string) (*pagination.Page[uuid.UUID, uuid.UUID], error)

	TotalContracts(ctx context.Context) (int32, error)

	ListPlacements(ctx context.Context, args pagination.Arguments[uuid.UUID], filter entities.PlacementFilter) (*pagination.Page[uuid.UUID, entities.Placement], error)

	TotalPlacements(ctx context.Context) (int32, error)
}
