package realtyusecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
	"realtydesk/internal/estate/ports/repositories"
)

type mockRealtyRepository struct {
	mock.Mock
}

func (m *mockRealtyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Realty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Realty), args.Error(1)
}

func (m *mockRealtyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Realty, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*entities.Realty), args.Error(1)
}

func (m *mockRealtyRepository) FindByHash(ctx context.Context, hash uuid.UUID) (*entities.Realty, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Realty), args.Error(1)
}

func (m *mockRealtyRepository) Upsert(ctx context.Context, realty *entities.Realty) error {
	return m.Called(ctx, realty).Error(0)
}

func (m *mockRealtyRepository) Lock(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRealtyRepository) LockCreation(ctx context.Context, hash uuid.UUID) error {
	return m.Called(ctx, hash).Error(0)
}

func (m *mockRealtyRepository) DeleteUnused(ctx context.Context, deadline time.Time) (int64, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRealtyRepository) List(ctx context.Context, args pagination.Arguments[uuid.UUID], address *string) (*pagination.Page[uuid.UUID, uuid.UUID], error) {
	res := m.Called(ctx, args, address)
	if res.Get(0) == nil {
		return nil, res.Error(1)
	}
	return res.Get(0).(*pagination.Page[uuid.UUID, uuid.UUID]), res.Error(1)
}

func (m *mockRealtyRepository) TotalCount(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

// mockStorage подменяет хранилище, выдавая единственную транзакцию
// с теми же репозиториями.
type mockStorage struct {
	realties *mockRealtyRepository
	tx       *mockTxStorage
	beginErr error
}

func newMockStorage(realties *mockRealtyRepository) (*mockStorage, *mockTxStorage) {
	tx := &mockTxStorage{realties: realties}
	return &mockStorage{realties: realties, tx: tx}, tx
}

func (m *mockStorage) Users() repositories.UserRepository           { return nil }
func (m *mockStorage) Realties() repositories.RealtyRepository      { return m.realties }
func (m *mockStorage) Contracts() repositories.ContractRepository   { return nil }
func (m *mockStorage) Placements() repositories.PlacementRepository { return nil }

func (m *mockStorage) Begin(_ context.Context) (repositories.TxStorage, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

type mockTxStorage struct {
	realties   *mockRealtyRepository
	commitErr  error
	committed  bool
	rolledBack bool
}

func (m *mockTxStorage) Users() repositories.UserRepository         { return nil }
func (m *mockTxStorage) Realties() repositories.RealtyRepository    { return m.realties }
func (m *mockTxStorage) Contracts() repositories.ContractRepository { return nil }

func (m *mockTxStorage) Commit(_ context.Context) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committed = true
	return nil
}

func (m *mockTxStorage) Rollback(_ context.Context) error {
	m.rolledBack = true
	return nil
}
