package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/ports/api"
	"realtydesk/internal/estate/ports/repositories"
	"realtydesk/pkg/logger"
)

const (
	methodCreateRealty = "Create"

	msgCreatingRealty      = "creating realty"
	msgInvalidRealtyParts  = "invalid realty address provided"
	msgRealtyAlreadyExists = "realty with the same address already exists"
	msgRealtyCreated       = "realty created successfully"

	msgErrLockingRealty   = "failed to lock realty"
	msgErrFindingRealty   = "failed to find realty"
	msgErrUpsertingRealty = "failed to upsert realty"

	errCtxValidatingRealty = "validating realty"
	errCtxLockingRealty    = "locking realty"
	errCtxFindingRealty    = "finding realty"
	errCtxUpsertingRealty  = "upserting realty"
)

// RealtyUseCaseImpl реализует интерфейс RealtyUseCase.
type RealtyUseCaseImpl struct {
	storage repositories.Storage
}

// NewRealtyUseCase создает новый экземпляр сценариев работы с недвижимостью.
func NewRealtyUseCase(storage repositories.Storage) api.RealtyUseCase {
	return &RealtyUseCaseImpl{storage: storage}
}

// Create регистрирует объект недвижимости. Команда идемпотентна:
// повторная регистрация того же адреса возвращает существующий объект.
// Дедупликация выполняется под блокировкой хеша адреса.
func (r *RealtyUseCaseImpl) Create(ctx context.Context, cmd api.CreateRealty) (*entities.Realty, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateRealty))
	log.Debug(ctx, msgCreatingRealty)

	realty, err := entities.NewRealty(entities.RealtyParts{
		Country:      cmd.Country,
		State:        cmd.State,
		City:         cmd.City,
		Street:       cmd.Street,
		ZipCode:      cmd.ZipCode,
		BuildingName: cmd.BuildingName,
		NumFloors:    cmd.NumFloors,
		Floor:        cmd.Floor,
		ApartmentNum: cmd.ApartmentNum,
		RoomNum:      cmd.RoomNum,
	})
	if err != nil {
		log.Debug(ctx, msgInvalidRealtyParts, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRealty, err)
	}

	tx, err := r.storage.Begin(ctx)
	if err != nil {
		log.Error(ctx, msgErrBeginningTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxBeginningTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.Realties().LockCreation(ctx, realty.Hash); err != nil {
		log.Error(ctx, msgErrLockingRealty, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLockingRealty, err)
	}

	existing, err := tx.Realties().FindByHash(ctx, realty.Hash)
	if err == nil {
		log.Info(ctx, msgRealtyAlreadyExists, zap.String("realtyID", existing.ID.String()))
		return existing, nil
	}
	if !errors.Is(err, entities.ErrRealtyNotExists) {
		log.Error(ctx, msgErrFindingRealty, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingRealty, err)
	}

	if err := tx.Realties().Upsert(ctx, realty); err != nil {
		log.Error(ctx, msgErrUpsertingRealty, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpsertingRealty, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, msgErrCommittingTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCommittingTx, err)
	}

	log.Info(ctx, msgRealtyCreated, zap.String("realtyID", realty.ID.String()))
	return realty, nil
}
