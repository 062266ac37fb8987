package contractusecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

type mockContractRepository struct {
	mock.Mock
}

func (m *mockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contract), args.Error(1)
}

func (m *mockContractRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Contract, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*entities.Contract), args.Error(1)
}

func (m *mockContractRepository) FindActiveEmployment(ctx context.Context, userID uuid.UUID) (*entities.Contract, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contract), args.Error(1)
}

func (m *mockContractRepository) FindActiveEmployments(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entities.Contract, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*entities.Contract), args.Error(1)
}

func (m *mockContractRepository) FindActiveManagement(ctx context.Context, kind entities.ContractKind, realtyID uuid.UUID) (*entities.Contract, error) {
	args := m.Called(ctx, kind, realtyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contract), args.Error(1)
}

func (m *mockContractRepository) HasActiveRent(ctx context.Context, realtyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, realtyID)
	return args.Bool(0), args.Error(1)
}

func (m *mockContractRepository) Upsert(ctx context.Context, contract *entities.Contract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *mockContractRepository) Lock(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContractRepository) List(ctx context.Context, args pagination.Arguments[uuid.UUID], name *string) (*pagination.Page[uuid.UUID, uuid.UUID], error) {
	res := m.Called(ctx, args, name)
	if res.Get(0) == nil {
		return nil, res.Error(1)
	}
	return res.Get(0).(*pagination.Page[uuid.UUID, uuid.UUID]), res.Error(1)
}

func (m *mockContractRepository) TotalCount(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockContractRepository) CountInPeriod(ctx context.Context, start, end time.Time) (int32, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockContractRepository) CountByEmployerInPeriod(ctx context.Context, start, end time.Time) (map[uuid.UUID]int32, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int32), args.Error(1)
}

// mockStorage подменяет хранилище. Репозитории транзакции отделены
// от репозиториев хранилища, чтобы проверять чтения до и после
// начала транзакции независимо.
type mockStorage struct {
	users     *mockUserRepository
	realties  *mockRealtyRepository
	contracts *mockContractRepository
	tx        *mockTxStorage
	beginErr  error
}

func newMockStorage() (*mockStorage, *mockTxStorage) {
	tx := &mockTxStorage{
		users:     new(mockUserRepository),
		realties:  new(mockRealtyRepository),
		contracts: new(mockContractRepository),
	}
	return &mockStorage{
		users:     new(mockUserRepository),
		realties:  new(mockRealtyRepository),
		contracts: new(mockContractRepository),
		tx:        tx,
	}, tx
}

func (m *mockStorage) Users() repositories.UserRepository           { return m.users }
func (m *mockStorage) Realties() repositories.RealtyRepository      { return m.realties }
func (m *mockStorage) Contracts() repositories.ContractRepository   { return m.contracts }
func (m *mockStorage) Placements() repositories.PlacementRepository { return nil }

func (m *mockStorage) Begin(_ context.Context) (repositories.TxStorage, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

type mockTxStorage struct {
	users      *mockUserRepository
	realties   *mockRealtyRepository
	contracts  *mockContractRepository
	commitErr  error
	committed  bool
	rolledBack bool
}

func (m *mockTxStorage) Users() repositories.UserRepository         { return m.users }
func (m *mockTxStorage) Realties() repositories.RealtyRepository    { return m.realties }
func (m *mockTxStorage) Contracts() repositories.ContractRepository { return m.contracts }

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

func assertAllExpectations(t *testing.T, storage *mockStorage, tx *mockTxStorage) {
	t.Helper()
	storage.users.AssertExpectations(t)
	storage.realties.AssertExpectations(t)
	storage.contracts.AssertExpectations(t)
	tx.users.AssertExpectations(t)
	tx.realties.AssertExpectations(t)
	tx.contracts.AssertExpectations(t)
}

func testSalary() entities.Money {
	return entities.Money{Amount: decimal.NewFromInt(1000), Currency: entities.CurrencyUSD}
}

func usersByID(users ...*entities.User) map[uuid.UUID]*entities.User {
	byID := make(map[uuid.UUID]*entities.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}

func testUser(id uuid.UUID) *entities.User {
	email := "user@example.com"
	return &entities.User{ID: id, Name: "Test User", Login: "testuser", Email: &email}
}

func activeEmployment(userID uuid.UUID) *entities.Contract {
	salary := testSalary()
	return &entities.Contract{
		ID:         uuid.New(),
		Kind:       entities.ContractKindEmployment,
		Name:       "Employment",
		EmployerID: userID,
		Price:      &salary,
		CreatedAt:  time.Now().UTC(),
	}
}

func activeManagement(kind entities.ContractKind, realtyID, employerID, landlordID uuid.UUID) *entities.Contract {
	price := testSalary()
	rID := realtyID
	lID := landlordID
	return &entities.Contract{
		ID:         uuid.New(),
		Kind:       kind,
		Name:       "Management",
		RealtyID:   &rID,
		EmployerID: employerID,
		LandlordID: &lID,
		Price:      &price,
		CreatedAt:  time.Now().UTC(),
	}
}

func testRealty(id uuid.UUID) *entities.Realty {
	return &entities.Realty{
		ID:           id,
		Hash:         uuid.New(),
		Address:      "USA, Springfield, Evergreen Terrace, 742",
		Country:      "USA",
		City:         "Springfield",
		Street:       "Evergreen Terrace",
		BuildingName: "742",
		NumFloors:    2,
		CreatedAt:    time.Now().UTC(),
	}
}
