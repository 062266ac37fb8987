package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ошибки операций над контрактами.
var (
	ErrContractNotExists         = errors.New("contract does not exist")
	ErrContractAlreadyTerminated = errors.New("contract is already terminated")
	ErrContractNotPlaced         = errors.New("contract is not placed")
	ErrContractAlreadyPlaced     = errors.New("contract is already placed")
	ErrUnsupportedContract       = errors.New("contract does not support placement")
	ErrRealtyNotManaged          = errors.New("realty is not managed")
	ErrRealtyAlreadyManaged      = errors.New("realty is already managed")
	ErrRealtyManagedForRent      = errors.New("realty is managed for rent")
	ErrRealtyRented              = errors.New("realty is rented")
	ErrUserNotEmployer           = errors.New("user is not an employer")
	ErrUserAlreadyEmployed       = errors.New("user is already employed")
	ErrUserNotManager            = errors.New("user is not the manager of the realty")
)

// Ошибки валидации полей контракта.
var (
	ErrInvalidContractName        = errors.New("invalid contract name")
	ErrInvalidContractDescription = errors.New("invalid contract description")
)

// ContractKind указывает вид контракта.
// Значения совпадают с колонкой kind в базе данных.
type ContractKind int16

// Виды контрактов.
const (
	ContractKindRent ContractKind = iota + 1
	ContractKindSale
	ContractKindManagementForRent
	ContractKindManagementForSale
	ContractKindEmployment
)

// String возвращает текстовое имя вида контракта.
func (k ContractKind) String() string {
	switch k {
	case ContractKindRent:
		return "rent"
	case ContractKindSale:
		return "sale"
	case ContractKindManagementForRent:
		return "management_for_rent"
	case ContractKindManagementForSale:
		return "management_for_sale"
	case ContractKindEmployment:
		return "employment"
	default:
		return fmt.Sprintf("ContractKind(%d)", int16(k))
	}
}

// ContractStatus описывает текущее состояние контракта.
type ContractStatus int16

// Состояния контракта. Состояние вычисляется, а не хранится.
const (
	ContractStatusActive ContractStatus = iota + 1
	ContractStatusCompleted
	ContractStatusTerminated
)

// String возвращает текстовое имя состояния.
func (s ContractStatus) String() string {
	switch s {
	case ContractStatusActive:
		return "active"
	case ContractStatusCompleted:
		return "completed"
	case ContractStatusTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("ContractStatus(%d)", int16(s))
	}
}

// Contract представляет контракт любого вида.
// Заполненность необязательных полей определяется видом контракта:
// трудовой контракт хранит базовую зарплату в Price,
// контракты управления - ожидаемую цену, комиссии и признак размещения,
// контракты аренды и продажи - цену сделки и залог.
type Contract struct {
	ID           uuid.UUID
	Kind         ContractKind
	Name         string
	Description  string
	RealtyID     *uuid.UUID
	EmployerID   uuid.UUID
	LandlordID   *uuid.UUID
	PurchaserID  *uuid.UUID
	Price        *Money
	Deposit      *Money
	OneTimeFee   *Money
	MonthlyFee   *Money
	PercentFee   *Percent
	IsPlaced     bool
	CreatedAt    time.Time
	ExpiresAt    *time.Time
	TerminatedAt *time.Time
}

// EmploymentTerms описывает условия трудового контракта.
// EmployerID - пользователь, принимаемый на работу.
type EmploymentTerms struct {
	Name        string
	Description string
	EmployerID  uuid.UUID
	BaseSalary  Money
	ExpiresAt   *time.Time
}

// NewEmploymentContract создает трудовой контракт.
func NewEmploymentContract(t EmploymentTerms) (*Contract, error) {
	if err := validateContractText(t.Name, t.Description); err != nil {
		return nil, err
	}
	if !t.BaseSalary.Currency.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCurrency, int16(t.BaseSalary.Currency))
	}

	salary := t.BaseSalary
	return &Contract{
		ID:          uuid.New(),
		Kind:        ContractKindEmployment,
		Name:        t.Name,
		Description: t.Description,
		EmployerID:  t.EmployerID,
		Price:       &salary,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   t.ExpiresAt,
	}, nil
}

// ManagementTerms описывает условия контракта на управление недвижимостью.
type ManagementTerms struct {
	Name            string
	Description     string
	RealtyID        uuid.UUID
	EmployerID      uuid.UUID
	LandlordID      uuid.UUID
	ExpectedPrice   Money
	ExpectedDeposit *Money
	OneTimeFee      *Money
	MonthlyFee      *Money
	PercentFee      *Percent
	MakePlacement   bool
	ExpiresAt       *time.Time
}

// NewManagementForRentContract создает контракт на управление сдачей в аренду.
func NewManagementForRentContract(t ManagementTerms) (*Contract, error) {
	return newManagementContract(ContractKindManagementForRent, t)
}

// NewManagementForSaleContract создает контракт на управление продажей.
func NewManagementForSaleContract(t ManagementTerms) (*Contract, error) {
	return newManagementContract(ContractKindManagementForSale, t)
}

func newManagementContract(kind ContractKind, t ManagementTerms) (*Contract, error) {
	if err := validateContractText(t.Name, t.Description); err != nil {
		return nil, err
	}
	if !t.ExpectedPrice.Currency.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCurrency, int16(t.ExpectedPrice.Currency))
	}

	realtyID := t.RealtyID
	landlordID := t.LandlordID
	price := t.ExpectedPrice
	return &Contract{
		ID:          uuid.New(),
		Kind:        kind,
		Name:        t.Name,
		Description: t.Description,
		RealtyID:    &realtyID,
		EmployerID:  t.EmployerID,
		LandlordID:  &landlordID,
		Price:       &price,
		Deposit:     t.ExpectedDeposit,
		OneTimeFee:  t.OneTimeFee,
		MonthlyFee:  t.MonthlyFee,
		PercentFee:  t.PercentFee,
		IsPlaced:    t.MakePlacement,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   t.ExpiresAt,
	}, nil
}

// DealTerms описывает условия контракта аренды или продажи.
type DealTerms struct {
	Name        string
	Description string
	RealtyID    uuid.UUID
	EmployerID  uuid.UUID
	LandlordID  uuid.UUID
	PurchaserID uuid.UUID
	Price       Money
	Deposit     *Money
	ExpiresAt   *time.Time
}

// NewRentContract создает контракт аренды.
func NewRentContract(t DealTerms) (*Contract, error) {
	return newDealContract(ContractKindRent, t)
}

// NewSaleContract создает контракт продажи.
func NewSaleContract(t DealTerms) (*Contract, error) {
	return newDealContract(ContractKindSale, t)
}

func newDealContract(kind ContractKind, t DealTerms) (*Contract, error) {
	if err := validateContractText(t.Name, t.Description); err != nil {
		return nil, err
	}
	if !t.Price.Currency.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCurrency, int16(t.Price.Currency))
	}

	realtyID := t.RealtyID
	landlordID := t.LandlordID
	purchaserID := t.PurchaserID
	price := t.Price
	return &Contract{
		ID:          uuid.New(),
		Kind:        kind,
		Name:        t.Name,
		Description: t.Description,
		RealtyID:    &realtyID,
		EmployerID:  t.EmployerID,
		LandlordID:  &landlordID,
		PurchaserID: &purchaserID,
		Price:       &price,
		Deposit:     t.Deposit,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   t.ExpiresAt,
	}, nil
}

func validateContractText(name, description string) error {
	if !validText(name, maxTextLen) {
		return fmt.Errorf("%w: %q", ErrInvalidContractName, name)
	}
	if !validText(description, maxTextLen) {
		return fmt.Errorf("%w: %q", ErrInvalidContractDescription, description)
	}
	return nil
}

// Status вычисляет текущее состояние контракта.
func (c *Contract) Status() ContractStatus {
	if c.TerminatedAt != nil {
		return ContractStatusTerminated
	}
	if c.ExpiresAt != nil && !time.Now().UTC().Before(*c.ExpiresAt) {
		return ContractStatusCompleted
	}
	return ContractStatusActive
}

// IsActive сообщает, действует ли контракт: он не расторгнут
// и срок действия не истек.
func (c *Contract) IsActive() bool {
	return c.TerminatedAt == nil &&
		(c.ExpiresAt == nil || time.Now().UTC().Before(*c.ExpiresAt))
}

// BaseSalary возвращает базовую зарплату трудового контракта.
func (c *Contract) BaseSalary() (Money, bool) {
	if c.Kind != ContractKindEmployment || c.Price == nil {
		return Money{}, false
	}
	return *c.Price, true
}

// SupportsPlacement сообщает, поддерживает ли контракт размещение.
func (c *Contract) SupportsPlacement() bool {
	return c.Kind == ContractKindManagementForRent ||
		c.Kind == ContractKindManagementForSale
}

// Terminate расторгает контракт.
func (c *Contract) Terminate() error {
	if c.TerminatedAt != nil {
		return fmt.Errorf("%w: %s", ErrContractAlreadyTerminated, c.ID)
	}
	now := time.Now().UTC()
	c.TerminatedAt = &now
	return nil
}

// Place помечает контракт размещенным.
func (c *Contract) Place() error {
	if !c.SupportsPlacement() {
		return fmt.Errorf("%w: %s", ErrUnsupportedContract, c.ID)
	}
	if c.IsPlaced {
		return fmt.Errorf("%w: %s", ErrContractAlreadyPlaced, c.ID)
	}
	c.IsPlaced = true
	return nil
}

// Deplace снимает контракт с размещения.
func (c *Contract) Deplace() error {
	if !c.SupportsPlacement() {
		return fmt.Errorf("%w: %s", ErrUnsupportedContract, c.ID)
	}
	if !c.IsPlaced {
		return fmt.Errorf("%w: %s", ErrContractNotPlaced, c.ID)
	}
	c.IsPlaced = false
	return nil
}
