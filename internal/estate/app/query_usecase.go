package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
	"realtydesk/internal/estate/ports/api"
	"realtydesk/internal/estate/ports/repositories"
	"realtydesk/pkg/logger"
)

const (
	methodQueryUser              = "User"
	methodQueryUsers             = "Users"
	methodQueryListUsers         = "ListUsers"
	methodQueryTotalUsers        = "TotalUsers"
	methodQueryRealty            = "Realty"
	methodQueryRealties          = "Realties"
	methodQueryRealtyByHash      = "RealtyByHash"
	methodQueryListRealties      = "ListRealties"
	methodQueryTotalRealties     = "TotalRealties"
	methodQueryContract          = "Contract"
	methodQueryContracts         = "Contracts"
	methodQueryEmployment        = "ActiveEmployment"
	methodQueryEmployments       = "ActiveEmployments"
	methodQueryManagementForRent = "ActiveManagementForRent"
	methodQueryManagementForSale = "ActiveManagementForSale"
	methodQueryIsRented          = "IsRented"
	methodQueryListContracts     = "ListContracts"
	methodQueryTotalContracts    = "TotalContracts"
	methodQueryListPlacements    = "ListPlacements"
	methodQueryTotalPlacements   = "TotalPlacements"

	msgExecutingQuery    = "executing query"
	msgQueryNoResult     = "query matched nothing"
	msgErrExecutingQuery = "failed to execute query"

	errCtxQueryingUsers      = "querying users"
	errCtxQueryingRealties   = "querying realties"
	errCtxQueryingContracts  = "querying contracts"
	errCtxQueryingPlacements = "querying placements"
)

// QueryUseCaseImpl реализует интерфейс QueryUseCase.
// Каждый метод транслируется ровно в одну выборку хранилища,
// гидратация списков выполняется вызывающей стороной через Users,
// Realties и Contracts.
type QueryUseCaseImpl struct {
	users      repositories.UserRepository
	realties   repositories.RealtyRepository
	contracts  repositories.ContractRepository
	placements repositories.PlacementRepository
}

// NewQueryUseCase создает новый экземпляр запросов чтения.
func NewQueryUseCase(
	users repositories.UserRepository,
	realties repositories.RealtyRepository,
	contracts repositories.ContractRepository,
	placements repositories.PlacementRepository,
) api.QueryUseCase {
	return &QueryUseCaseImpl{
		users:      users,
		realties:   realties,
		contracts:  contracts,
		placements: placements,
	}
}

// User возвращает пользователя по идентификатору.
func (q *QueryUseCaseImpl) User(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryUser), zap.String("userID", id.String()))
	log.Debug(ctx, msgExecutingQuery)

	user, err := q.users.FindByID(ctx, id)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingUsers, err)
	}
	return user, nil
}

// Users возвращает пользователей по списку идентификаторов.
// Отсутствующие идентификаторы пропускаются без ошибки.
func (q *QueryUseCaseImpl) Users(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryUsers), zap.Int("ids", len(ids)))
	log.Debug(ctx, msgExecutingQuery)

	users, err := q.users.FindByIDs(ctx, ids)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingUsers, err)
	}
	return users, nil
}

// ListUsers возвращает страницу идентификаторов пользователей,
// отфильтрованную по имени.
func (q *QueryUseCaseImpl) ListUsers(ctx context.Context, args pagination.Arguments[uuid.UUID], name *string) (*pagination.Page[uuid.UUID, uuid.UUID], error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryListUsers))
	log.Debug(ctx, msgExecutingQuery)

	page, err := q.users.List(ctx, args, name)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingUsers, err)
	}
	return page, nil
}

// TotalUsers возвращает общее число пользователей.
func (q *QueryUseCaseImpl) TotalUsers(ctx context.Context) (int32, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryTotalUsers))
	log.Debug(ctx, msgExecutingQuery)

	total, err := q.users.TotalCount(ctx)
	if err != nil {
		logQueryError(ctx, log, err)
		return 0, fmt.Errorf("%s: %w", errCtxQueryingUsers, err)
	}
	return total, nil
}

// Realty возвращает объект недвижимости по идентификатору.
func (q *QueryUseCaseImpl) Realty(ctx context.Context, id uuid.UUID) (*entities.Realty, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryRealty), zap.String("realtyID", id.String()))
	log.Debug(ctx, msgExecutingQuery)

	realty, err := q.realties.FindByID(ctx, id)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingRealties, err)
	}
	return realty, nil
}

// Realties возвращает объекты недвижимости по списку идентификаторов.
// Отсутствующие идентификаторы пропускаются без ошибки.
func (q *QueryUseCaseImpl) Realties(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Realty, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryRealties), zap.Int("ids", len(ids)))
	log.Debug(ctx, msgExecutingQuery)

	realties, err := q.realties.FindByIDs(ctx, ids)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingRealties, err)
	}
	return realties, nil
}

// RealtyByHash возвращает объект недвижимости по хешу дедупликации.
func (q *QueryUseCaseImpl) RealtyByHash(ctx context.Context, hash uuid.UUID) (*entities.Realty, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryRealtyByHash), zap.String("hash", hash.String()))
	log.Debug(ctx, msgExecutingQuery)

	realty, err := q.realties.FindByHash(ctx, hash)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingRealties, err)
	}
	return realty, nil
}

// ListRealties возвращает страницу идентификаторов объектов недвижимости,
// отфильтрованную по адресу.
func (q *QueryUseCaseImpl) ListRealties(ctx context.Context, args pagination.Arguments[uuid.UUID], address *string) (*pagination.Page[uuid.UUID, uuid.UUID], error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryListRealties))
	log.Debug(ctx, msgExecutingQuery)

	page, err := q.realties.List(ctx, args, address)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingRealties, err)
	}
	return page, nil
}

// TotalRealties возвращает общее число объектов недвижимости.
func (q *QueryUseCaseImpl) TotalRealties(ctx context.Context) (int32, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryTotalRealties))
	log.Debug(ctx, msgExecutingQuery)

	total, err := q.realties.TotalCount(ctx)
	if err != nil {
		logQueryError(ctx, log, err)
		return 0, fmt.Errorf("%s: %w", errCtxQueryingRealties, err)
	}
	return total, nil
}

// Contract возвращает контракт по идентификатору.
func (q *QueryUseCaseImpl) Contract(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryContract), zap.String("contractID", id.String()))
	log.Debug(ctx, msgExecutingQuery)

	contract, err := q.contracts.FindByID(ctx, id)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingContracts, err)
	}
	return contract, nil
}

// Contracts возвращает контракты по списку идентификаторов.
// Отсутствующие идентификаторы пропускаются без ошибки.
func (q *QueryUseCaseImpl) Contracts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Contract, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryContracts), zap.Int("ids", len(ids)))
	log.Debug(ctx, msgExecutingQuery)

	contracts, err := q.contracts.FindByIDs(ctx, ids)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingContracts, err)
	}
	return contracts, nil
}

// ActiveEmployment возвращает действующий трудовой контракт пользователя.
func (q *QueryUseCaseImpl) ActiveEmployment(ctx context.Context, userID uuid.UUID) (*entities.Contract, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryEmployment), zap.String("userID", userID.String()))
	log.Debug(ctx, msgExecutingQuery)

	contract, err := q.contracts.FindActiveEmployment(ctx, userID)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingContracts, err)
	}
	return contract, nil
}

// ActiveEmployments возвращает действующие трудовые контракты пользователей.
func (q *QueryUseCaseImpl) ActiveEmployments(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entities.Contract, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryEmployments), zap.Int("ids", len(userIDs)))
	log.Debug(ctx, msgExecutingQuery)

	contracts, err := q.contracts.FindActiveEmployments(ctx, userIDs)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingContracts, err)
	}
	return contracts, nil
}

// ActiveManagementForRent возвращает действующий контракт управления
// сдачей в аренду для объекта недвижимости.
func (q *QueryUseCaseImpl) ActiveManagementForRent(ctx context.Context, realtyID uuid.UUID) (*entities.Contract, error) {
	return q.activeManagement(ctx, methodQueryManagementForRent, entities.ContractKindManagementForRent, realtyID)
}

// ActiveManagementForSale возвращает действующий контракт управления
// продажей для объекта недвижимости.
func (q *QueryUseCaseImpl) ActiveManagementForSale(ctx context.Context, realtyID uuid.UUID) (*entities.Contract, error) {
	return q.activeManagement(ctx, methodQueryManagementForSale, entities.ContractKindManagementForSale, realtyID)
}

func (q *QueryUseCaseImpl) activeManagement(ctx context.Context, method string, kind entities.ContractKind, realtyID uuid.UUID) (*entities.Contract, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("realtyID", realtyID.String()))
	log.Debug(ctx, msgExecutingQuery)

	contract, err := q.contracts.FindActiveManagement(ctx, kind, realtyID)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingContracts, err)
	}
	return contract, nil
}

// IsRented сообщает, действует ли для объекта недвижимости контракт аренды.
func (q *QueryUseCaseImpl) IsRented(ctx context.Context, realtyID uuid.UUID) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryIsRented), zap.String("realtyID", realtyID.String()))
	log.Debug(ctx, msgExecutingQuery)

	rented, err := q.contracts.HasActiveRent(ctx, realtyID)
	if err != nil {
		logQueryError(ctx, log, err)
		return false, fmt.Errorf("%s: %w", errCtxQueryingContracts, err)
	}
	return rented, nil
}

// ListContracts возвращает страницу идентификаторов контрактов,
// отфильтрованную по названию.
func (q *QueryUseCaseImpl) ListContracts(ctx context.Context, args pagination.Arguments[uuid.UUID], name *string) (*pagination.Page[uuid.UUID, uuid.UUID], error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryListContracts))
	log.Debug(ctx, msgExecutingQuery)

	page, err := q.contracts.List(ctx, args, name)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingContracts, err)
	}
	return page, nil
}

// TotalContracts возвращает общее число контрактов.
func (q *QueryUseCaseImpl) TotalContracts(ctx context.Context) (int32, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryTotalContracts))
	log.Debug(ctx, msgExecutingQuery)

	total, err := q.contracts.TotalCount(ctx)
	if err != nil {
		logQueryError(ctx, log, err)
		return 0, fmt.Errorf("%s: %w", errCtxQueryingContracts, err)
	}
	return total, nil
}

// ListPlacements возвращает страницу размещенных объектов недвижимости.
func (q *QueryUseCaseImpl) ListPlacements(ctx context.Context, args pagination.Arguments[uuid.UUID], filter entities.PlacementFilter) (*pagination.Page[uuid.UUID, entities.Placement], error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryListPlacements))
	log.Debug(ctx, msgExecutingQuery)

	page, err := q.placements.List(ctx, args, filter)
	if err != nil {
		logQueryError(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxQueryingPlacements, err)
	}
	return page, nil
}

// TotalPlacements возвращает общее число размещенных объектов.
func (q *QueryUseCaseImpl) TotalPlacements(ctx context.Context) (int32, error) {
	log := logger.Log(ctx).With(zap.String("method", methodQueryTotalPlacements))
	log.Debug(ctx, msgExecutingQuery)

	total, err := q.placements.TotalCount(ctx)
	if err != nil {
		logQueryError(ctx, log, err)
		return 0, fmt.Errorf("%s: %w", errCtxQueryingPlacements, err)
	}
	return total, nil
}

// logQueryError пишет отсутствие результата на уровне debug,
// а внутренние ошибки хранилища на уровне error.
func logQueryError(ctx context.Context, log *logger.Logger, err error) {
	if errors.Is(err, entities.ErrUserNotExists) ||
		errors.Is(err, entities.ErrRealtyNotExists) ||
		errors.Is(err, entities.ErrContractNotExists) {
		log.Debug(ctx, msgQueryNoResult, zap.Error(err))
		return
	}
	log.Error(ctx, msgErrExecutingQuery, zap.Error(err))
}
