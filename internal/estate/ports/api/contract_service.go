package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"realtydesk/internal/estate/domain/entities"
)

// CreateEmploymentContract описывает команду приема пользователя на работу.
// Инициатор сам должен быть действующим сотрудником.
type CreateEmploymentContract struct {
	UserID      uuid.UUID
	InitiatorID uuid.UUID
	Name        string
	Description string
	ExpiresAt   *time.Time
	BaseSalary  entities.Money
}

// CreateManagementForRentContract описывает команду передачи объекта
// в управление для сдачи в аренду.
type CreateManagementForRentContract struct {
	RealtyID        uuid.UUID
	LandlordID      uuid.UUID
	EmployerID      uuid.UUID
	Name            string
	Description     string
	ExpiresAt       *time.Time
	ExpectedPrice   entities.Money
	ExpectedDeposit *entities.Money
	OneTimeFee      *entities.Money
	MonthlyFee      *entities.Money
	PercentFee      *entities.Percent
	MakePlacement   bool
}

// CreateManagementForSaleContract описывает команду передачи объекта
// в управление для продажи. Состав полей совпадает с командой аренды.
type CreateManagementForSaleContract CreateManagementForRentContract

// CreateRentContract описывает команду заключения контракта аренды.
// EmployerID одновременно является инициатором команды.
type CreateRentContract struct {
	RealtyID    uuid.UUID
	EmployerID  uuid.UUID
	PurchaserID uuid.UUID
	Name        string
	Description string
	ExpiresAt   *time.Time
	Price       entities.Money
	Deposit     *entities.Money
}

// CreateSaleContract описывает команду заключения контракта продажи.
// Состав полей совпадает с командой аренды.
type CreateSaleContract CreateRentContract

// TerminateContract описывает команду расторжения контракта.
type TerminateContract struct {
	ContractID  uuid.UUID
	InitiatorID uuid.UUID
}

// PlaceContract описывает команду размещения контракта управления.
type PlaceContract struct {
	ContractID  uuid.UUID
	InitiatorID uuid.UUID
}

// DeplaceContract описывает команду снятия контракта управления с размещения.
type DeplaceContract struct {
	ContractID  uuid.UUID
	InitiatorID uuid.UUID
}

// ContractUseCase определяет порт команд над контрактами.
type ContractUseCase interface {
	CreateEmployment(ctx context.Context, cmd CreateEmploymentContract) (*entities.Contract, error)

	CreateManagementForRent(ctx context.Context, cmd CreateManagementForRentContract) (*entities.Contract, error)

	CreateManagementForSale(ctx context.Context, cmd CreateManagementForSaleContract) (*entities.Contract, error)

	CreateRent(ctx context.Context, cmd CreateRentContract) (*entities.Contract, error)

	CreateSale(ctx context.Context, cmd CreateSaleContract) (*entities.Contract, error)

	Terminate(ctx context.Context, cmd TerminateContract) (*entities.Contract, error)

	Place(ctx context.Context, cmd PlaceContract) (*entities.Contract, error)

	Deplace(ctx context.Context, cmd DeplaceContract) (*entities.Contract, error)
}
