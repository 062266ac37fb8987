package reportusecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
)

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

func employmentWithSalary(userID uuid.UUID, base int64) *entities.Contract {
	salary := entities.Money{Amount: decimal.NewFromInt(base), Currency: entities.CurrencyUSD}
	return &entities.Contract{
		ID:         uuid.New(),
		Kind:       entities.ContractKindEmployment,
		Name:       "Employment",
		EmployerID: userID,
		Price:      &salary,
		CreatedAt:  time.Now().UTC(),
	}
}
