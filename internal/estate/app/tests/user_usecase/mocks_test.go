package userusecase_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
	"realtydesk/internal/estate/ports/repositories"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Upsert(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Lock(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepository) LockCreation(ctx context.Context, login string) error {
	return m.Called(ctx, login).Error(0)
}

func (m *mockUserRepository) List(ctx context.Context, args pagination.Arguments[uuid.UUID], name *string) (*pagination.Page[uuid.UUID, uuid.UUID], error) {
	res := m.Called(ctx, args, name)
	if res.Get(0) == nil {
		return nil, res.Error(1)
	}
	return res.Get(0).(*pagination.Page[uuid.UUID, uuid.UUID]), res.Error(1)
}

func (m *mockUserRepository) TotalCount(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) HashPassword(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) VerifyPassword(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

// mockStorage подменяет хранилище, выдавая единственную транзакцию
// с теми же репозиториями.
type mockStorage struct {
	users    *mockUserRepository
	tx       *mockTxStorage
	beginErr error
}

func newMockStorage(users *mockUserRepository) (*mockStorage, *mockTxStorage) {
	tx := &mockTxStorage{users: users}
	return &mockStorage{users: users, tx: tx}, tx
}

func (m *mockStorage) Users() repositories.UserRepository           { return m.users }
func (m *mockStorage) Realties() repositories.RealtyRepository      { return nil }
func (m *mockStorage) Contracts() repositories.ContractRepository   { return nil }
func (m *mockStorage) Placements() repositories.PlacementRepository { return nil }

func (m *mockStorage) Begin(_ context.Context) (repositories.TxStorage, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

type mockTxStorage struct {
	users      *mockUserRepository
	commitErr  error
	committed  bool
	rolledBack bool
}

func (m *mockTxStorage) Users() repositories.UserRepository         { return m.users }
func (m *mockTxStorage) Realties() repositories.RealtyRepository    { return nil }
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
