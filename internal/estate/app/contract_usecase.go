package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/ports/api"
	"realtydesk/internal/estate/ports/repositories"
	"realtydesk/pkg/logger"
)

const (
	methodCreateEmployment        = "CreateEmployment"
	methodCreateManagementForRent = "CreateManagementForRent"
	methodCreateManagementForSale = "CreateManagementForSale"
	methodCreateRent              = "CreateRent"
	methodCreateSale              = "CreateSale"
	methodTerminateContract       = "Terminate"
	methodPlaceContract           = "Place"
	methodDeplaceContract         = "Deplace"

	msgCreatingContract     = "creating contract"
	msgUpdatingContract     = "updating contract"
	msgInvalidContractTerms = "invalid contract terms provided"
	msgContractRejected     = "contract command rejected"
	msgContractCreated      = "contract created successfully"
	msgContractUpdated      = "contract updated successfully"
	msgManagementTerminated = "management contract closed by deal"

	msgErrFindingContract    = "failed to find contract"
	msgErrLockingContract    = "failed to lock contract"
	msgErrUpsertingContract  = "failed to upsert contract"
	msgErrCheckingUsers      = "failed to check users"
	msgErrCheckingEmployment = "failed to check employment"
	msgErrCheckingManagement = "failed to check management"
	msgErrCheckingRent       = "failed to check rent"

	errCtxValidatingContract  = "validating contract"
	errCtxFindingContract     = "finding contract"
	errCtxLockingContract     = "locking contract"
	errCtxUpsertingContract   = "upserting contract"
	errCtxUpdatingContract    = "updating contract"
	errCtxCheckingUsers       = "checking users"
	errCtxCheckingEmployment  = "checking employment"
	errCtxCheckingManagement  = "checking management"
	errCtxCheckingRent        = "checking rent"
	errCtxTerminatingContract = "terminating management contract"
)

// ContractUseCaseImpl реализует интерфейс ContractUseCase.
type ContractUseCaseImpl struct {
	storage repositories.Storage
}

// NewContractUseCase создает новый экземпляр сценариев работы с контрактами.
func NewContractUseCase(storage repositories.Storage) api.ContractUseCase {
	return &ContractUseCaseImpl{storage: storage}
}

// CreateEmployment принимает пользователя на работу.
// Занятость целевого пользователя повторно проверяется в транзакции
// под блокировкой пользователя, поэтому конкурирующие приемы сериализуются.
func (c *ContractUseCaseImpl) CreateEmployment(ctx context.Context, cmd api.CreateEmploymentContract) (*entities.Contract, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodCreateEmployment),
		zap.String("userID", cmd.UserID.String()),
		zap.String("initiatorID", cmd.InitiatorID.String()),
	)
	log.Debug(ctx, msgCreatingContract)

	if err := c.requireUsers(ctx, log, cmd.UserID, cmd.InitiatorID); err != nil {
		return nil, err
	}
	if err := c.requireEmployer(ctx, log, c.storage.Contracts(), cmd.InitiatorID); err != nil {
		return nil, err
	}

	_, err := c.storage.Contracts().FindActiveEmployment(ctx, cmd.UserID)
	if err == nil {
		log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrUserAlreadyEmployed))
		return nil, fmt.Errorf("%s: %w: %s", errCtxCheckingEmployment, entities.ErrUserAlreadyEmployed, cmd.UserID)
	}
	if !errors.Is(err, entities.ErrContractNotExists) {
		log.Error(ctx, msgErrCheckingEmployment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmployment, err)
	}

	contract, err := entities.NewEmploymentContract(entities.EmploymentTerms{
		Name:        cmd.Name,
		Description: cmd.Description,
		EmployerID:  cmd.UserID,
		BaseSalary:  cmd.BaseSalary,
		ExpiresAt:   cmd.ExpiresAt,
	})
	if err != nil {
		log.Debug(ctx, msgInvalidContractTerms, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingContract, err)
	}

	tx, err := c.storage.Begin(ctx)
	if err != nil {
		log.Error(ctx, msgErrBeginningTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxBeginningTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.Users().Lock(ctx, cmd.UserID); err != nil {
		log.Error(ctx, msgErrLockingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLockingUser, err)
	}

	_, err = tx.Contracts().FindActiveEmployment(ctx, cmd.UserID)
	if err == nil {
		log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrUserAlreadyEmployed))
		return nil, fmt.Errorf("%s: %w: %s", errCtxCheckingEmployment, entities.ErrUserAlreadyEmployed, cmd.UserID)
	}
	if !errors.Is(err, entities.ErrContractNotExists) {
		log.Error(ctx, msgErrCheckingEmployment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmployment, err)
	}

	if err := tx.Contracts().Upsert(ctx, contract); err != nil {
		log.Error(ctx, msgErrUpsertingContract, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpsertingContract, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, msgErrCommittingTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCommittingTx, err)
	}

	log.Info(ctx, msgContractCreated, zap.String("contractID", contract.ID.String()))
	return contract, nil
}

// CreateManagementForRent передает объект в управление для сдачи в аренду.
func (c *ContractUseCaseImpl) CreateManagementForRent(ctx context.Context, cmd api.CreateManagementForRentContract) (*entities.Contract, error) {
	return c.createManagement(ctx, methodCreateManagementForRent, entities.ContractKindManagementForRent, cmd)
}

// CreateManagementForSale передает объект в управление для продажи.
func (c *ContractUseCaseImpl) CreateManagementForSale(ctx context.Context, cmd api.CreateManagementForSaleContract) (*entities.Contract, error) {
	return c.createManagement(ctx, methodCreateManagementForSale, entities.ContractKindManagementForSale, api.CreateManagementForRentContract(cmd))
}

// createManagement выполняет общий протокол команд управления:
// повторное отсутствие действующего управления того же вида проверяется
// в транзакции под блокировкой объекта недвижимости.
func (c *ContractUseCaseImpl) createManagement(
	ctx context.Context,
	method string,
	kind entities.ContractKind,
	cmd api.CreateManagementForRentContract,
) (*entities.Contract, error) {
	log := logger.Log(ctx).With(
		zap.String("method", method),
		zap.String("realtyID", cmd.RealtyID.String()),
		zap.String("employerID", cmd.EmployerID.String()),
	)
	log.Debug(ctx, msgCreatingContract)

	realty, err := c.storage.Realties().FindByID(ctx, cmd.RealtyID)
	if err != nil {
		if errors.Is(err, entities.ErrRealtyNotExists) {
			log.Debug(ctx, msgContractRejected, zap.Error(err))
		} else {
			log.Error(ctx, msgErrFindingRealty, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingRealty, err)
	}

	if err := c.requireUsers(ctx, log, cmd.LandlordID, cmd.EmployerID); err != nil {
		return nil, err
	}
	if err := c.requireEmployer(ctx, log, c.storage.Contracts(), cmd.EmployerID); err != nil {
		return nil, err
	}

	terms := entities.ManagementTerms{
		Name:            cmd.Name,
		Description:     cmd.Description,
		RealtyID:        realty.ID,
		EmployerID:      cmd.EmployerID,
		LandlordID:      cmd.LandlordID,
		ExpectedPrice:   cmd.ExpectedPrice,
		ExpectedDeposit: cmd.ExpectedDeposit,
		OneTimeFee:      cmd.OneTimeFee,
		MonthlyFee:      cmd.MonthlyFee,
		PercentFee:      cmd.PercentFee,
		MakePlacement:   cmd.MakePlacement,
		ExpiresAt:       cmd.ExpiresAt,
	}

	var contract *entities.Contract
	if kind == entities.ContractKindManagementForSale {
		contract, err = entities.NewManagementForSaleContract(terms)
	} else {
		contract, err = entities.NewManagementForRentContract(terms)
	}
	if err != nil {
		log.Debug(ctx, msgInvalidContractTerms, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingContract, err)
	}

	tx, err := c.storage.Begin(ctx)
	if err != nil {
		log.Error(ctx, msgErrBeginningTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxBeginningTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.Realties().Lock(ctx, realty.ID); err != nil {
		log.Error(ctx, msgErrLockingRealty, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLockingRealty, err)
	}

	_, err = tx.Contracts().FindActiveManagement(ctx, kind, realty.ID)
	if err == nil {
		log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrRealtyAlreadyManaged))
		return nil, fmt.Errorf("%s: %w: %s", errCtxCheckingManagement, entities.ErrRealtyAlreadyManaged, realty.ID)
	}
	if !errors.Is(err, entities.ErrContractNotExists) {
		log.Error(ctx, msgErrCheckingManagement, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingManagement, err)
	}

	if err := tx.Contracts().Upsert(ctx, contract); err != nil {
		log.Error(ctx, msgErrUpsertingContract, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpsertingContract, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, msgErrCommittingTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCommittingTx, err)
	}

	log.Info(ctx, msgContractCreated, zap.String("contractID", contract.ID.String()))
	return contract, nil
}

// CreateRent заключает контракт аренды и закрывает контракт управления,
// на основании которого сделка состоялась. Сотрудник, заключающий сделку,
// должен быть менеджером объекта по действующему контракту управления.
func (c *ContractUseCaseImpl) CreateRent(ctx context.Context, cmd api.CreateRentContract) (*entities.Contract, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodCreateRent),
		zap.String("realtyID", cmd.RealtyID.String()),
		zap.String("employerID", cmd.EmployerID.String()),
	)
	log.Debug(ctx, msgCreatingContract)

	realty, err := c.dealRealty(ctx, log, cmd.RealtyID)
	if err != nil {
		return nil, err
	}
	if err := c.requireUsers(ctx, log, cmd.EmployerID, cmd.PurchaserID); err != nil {
		return nil, err
	}
	if err := c.requireEmployer(ctx, log, c.storage.Contracts(), cmd.EmployerID); err != nil {
		return nil, err
	}

	tx, err := c.storage.Begin(ctx)
	if err != nil {
		log.Error(ctx, msgErrBeginningTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxBeginningTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.Realties().Lock(ctx, realty.ID); err != nil {
		log.Error(ctx, msgErrLockingRealty, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLockingRealty, err)
	}

	mgmt, err := c.managementForDeal(ctx, log, tx, entities.ContractKindManagementForRent, realty.ID, cmd.EmployerID)
	if err != nil {
		return nil, err
	}

	contract, err := entities.NewRentContract(entities.DealTerms{
		Name:        cmd.Name,
		Description: cmd.Description,
		RealtyID:    realty.ID,
		EmployerID:  cmd.EmployerID,
		LandlordID:  *mgmt.LandlordID,
		PurchaserID: cmd.PurchaserID,
		Price:       cmd.Price,
		Deposit:     cmd.Deposit,
		ExpiresAt:   cmd.ExpiresAt,
	})
	if err != nil {
		log.Debug(ctx, msgInvalidContractTerms, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingContract, err)
	}

	if err := c.sealDeal(ctx, log, tx, contract, mgmt); err != nil {
		return nil, err
	}

	log.Info(ctx, msgContractCreated, zap.String("contractID", contract.ID.String()))
	return contract, nil
}

// CreateSale заключает контракт продажи и закрывает контракт управления,
// на основании которого сделка состоялась. Продажа невозможна, пока объект
// управляется для сдачи в аренду или действует контракт аренды.
func (c *ContractUseCaseImpl) CreateSale(ctx context.Context, cmd api.CreateSaleContract) (*entities.Contract, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodCreateSale),
		zap.String("realtyID", cmd.RealtyID.String()),
		zap.String("employerID", cmd.EmployerID.String()),
	)
	log.Debug(ctx, msgCreatingContract)

	realty, err := c.dealRealty(ctx, log, cmd.RealtyID)
	if err != nil {
		return nil, err
	}
	if err := c.requireUsers(ctx, log, cmd.EmployerID, cmd.PurchaserID); err != nil {
		return nil, err
	}
	if err := c.requireEmployer(ctx, log, c.storage.Contracts(), cmd.EmployerID); err != nil {
		return nil, err
	}

	tx, err := c.storage.Begin(ctx)
	if err != nil {
		log.Error(ctx, msgErrBeginningTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxBeginningTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.Realties().Lock(ctx, realty.ID); err != nil {
		log.Error(ctx, msgErrLockingRealty, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLockingRealty, err)
	}

	mgmt, err := c.managementForDeal(ctx, log, tx, entities.ContractKindManagementForSale, realty.ID, cmd.EmployerID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Contracts().FindActiveManagement(ctx, entities.ContractKindManagementForRent, realty.ID)
	if err == nil {
		log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrRealtyManagedForRent))
		return nil, fmt.Errorf("%s: %w: %s", errCtxCheckingManagement, entities.ErrRealtyManagedForRent, realty.ID)
	}
	if !errors.Is(err, entities.ErrContractNotExists) {
		log.Error(ctx, msgErrCheckingManagement, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingManagement, err)
	}

	rented, err := tx.Contracts().HasActiveRent(ctx, realty.ID)
	if err != nil {
		log.Error(ctx, msgErrCheckingRent, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingRent, err)
	}
	if rented {
		log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrRealtyRented))
		return nil, fmt.Errorf("%s: %w: %s", errCtxCheckingRent, entities.ErrRealtyRented, realty.ID)
	}

	contract, err := entities.NewSaleContract(entities.DealTerms{
		Name:        cmd.Name,
		Description: cmd.Description,
		RealtyID:    realty.ID,
		EmployerID:  cmd.EmployerID,
		LandlordID:  *mgmt.LandlordID,
		PurchaserID: cmd.PurchaserID,
		Price:       cmd.Price,
		Deposit:     cmd.Deposit,
		ExpiresAt:   cmd.ExpiresAt,
	})
	if err != nil {
		log.Debug(ctx, msgInvalidContractTerms, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingContract, err)
	}

	if err := c.sealDeal(ctx, log, tx, contract, mgmt); err != nil {
		return nil, err
	}

	log.Info(ctx, msgContractCreated, zap.String("contractID", contract.ID.String()))
	return contract, nil
}

// Terminate расторгает действующий контракт.
func (c *ContractUseCaseImpl) Terminate(ctx context.Context, cmd api.TerminateContract) (*entities.Contract, error) {
	return c.updateContract(ctx, methodTerminateContract, cmd.ContractID, cmd.InitiatorID, (*entities.Contract).Terminate)
}

// Place помечает действующий контракт управления размещенным.
func (c *ContractUseCaseImpl) Place(ctx context.Context, cmd api.PlaceContract) (*entities.Contract, error) {
	return c.updateContract(ctx, methodPlaceContract, cmd.ContractID, cmd.InitiatorID, (*entities.Contract).Place)
}

// Deplace снимает действующий контракт управления с размещения.
func (c *ContractUseCaseImpl) Deplace(ctx context.Context, cmd api.DeplaceContract) (*entities.Contract, error) {
	return c.updateContract(ctx, methodDeplaceContract, cmd.ContractID, cmd.InitiatorID, (*entities.Contract).Deplace)
}

// updateContract выполняет общий протокол команд над существующим контрактом:
// проверка инициатора, чтение действующего контракта, блокировка объекта
// недвижимости и контракта в этом порядке, повторное чтение под блокировкой,
// мутация и запись.
func (c *ContractUseCaseImpl) updateContract(
	ctx context.Context,
	method string,
	contractID, initiatorID uuid.UUID,
	mutate func(*entities.Contract) error,
) (*entities.Contract, error) {
	log := logger.Log(ctx).With(
		zap.String("method", method),
		zap.String("contractID", contractID.String()),
		zap.String("initiatorID", initiatorID.String()),
	)
	log.Debug(ctx, msgUpdatingContract)

	if _, err := c.storage.Users().FindByID(ctx, initiatorID); err != nil {
		if errors.Is(err, entities.ErrUserNotExists) {
			log.Debug(ctx, msgContractRejected, zap.Error(err))
		} else {
			log.Error(ctx, msgErrFindingUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	if err := c.requireEmployer(ctx, log, c.storage.Contracts(), initiatorID); err != nil {
		return nil, err
	}

	contract, err := c.findActiveContract(ctx, log, c.storage.Contracts(), contractID)
	if err != nil {
		return nil, err
	}

	tx, err := c.storage.Begin(ctx)
	if err != nil {
		log.Error(ctx, msgErrBeginningTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxBeginningTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if contract.RealtyID != nil {
		if err := tx.Realties().Lock(ctx, *contract.RealtyID); err != nil {
			log.Error(ctx, msgErrLockingRealty, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxLockingRealty, err)
		}
	}
	if err := tx.Contracts().Lock(ctx, contract.ID); err != nil {
		log.Error(ctx, msgErrLockingContract, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLockingContract, err)
	}

	contract, err = c.findActiveContract(ctx, log, tx.Contracts(), contractID)
	if err != nil {
		return nil, err
	}

	if err := mutate(contract); err != nil {
		log.Debug(ctx, msgContractRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingContract, err)
	}

	if err := tx.Contracts().Upsert(ctx, contract); err != nil {
		log.Error(ctx, msgErrUpsertingContract, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpsertingContract, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, msgErrCommittingTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCommittingTx, err)
	}

	log.Info(ctx, msgContractUpdated)
	return contract, nil
}

// requireUsers проверяет, что все перечисленные пользователи существуют.
func (c *ContractUseCaseImpl) requireUsers(ctx context.Context, log *logger.Logger, ids ...uuid.UUID) error {
	users, err := c.storage.Users().FindByIDs(ctx, ids)
	if err != nil {
		log.Error(ctx, msgErrCheckingUsers, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingUsers, err)
	}

	for _, id := range ids {
		if _, ok := users[id]; !ok {
			log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrUserNotExists), zap.String("userID", id.String()))
			return fmt.Errorf("%s: %w: %s", errCtxCheckingUsers, entities.ErrUserNotExists, id)
		}
	}
	return nil
}

// requireEmployer проверяет, что пользователь является действующим сотрудником.
func (c *ContractUseCaseImpl) requireEmployer(
	ctx context.Context,
	log *logger.Logger,
	contracts repositories.ContractRepository,
	userID uuid.UUID,
) error {
	_, err := contracts.FindActiveEmployment(ctx, userID)
	if err == nil {
		return nil
	}
	if errors.Is(err, entities.ErrContractNotExists) {
		log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrUserNotEmployer), zap.String("userID", userID.String()))
		return fmt.Errorf("%s: %w: %s", errCtxCheckingEmployment, entities.ErrUserNotEmployer, userID)
	}

	log.Error(ctx, msgErrCheckingEmployment, zap.Error(err))
	return fmt.Errorf("%s: %w", errCtxCheckingEmployment, err)
}

// findActiveContract возвращает контракт, если он существует и действует.
// Недействующий контракт неотличим от отсутствующего.
func (c *ContractUseCaseImpl) findActiveContract(
	ctx context.Context,
	log *logger.Logger,
	contracts repositories.ContractRepository,
	id uuid.UUID,
) (*entities.Contract, error) {
	contract, err := contracts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrContractNotExists) {
			log.Debug(ctx, msgContractRejected, zap.Error(err))
		} else {
			log.Error(ctx, msgErrFindingContract, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingContract, err)
	}
	if !contract.IsActive() {
		log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrContractNotExists))
		return nil, fmt.Errorf("%s: %w: %s", errCtxFindingContract, entities.ErrContractNotExists, id)
	}
	return contract, nil
}

// dealRealty возвращает объект недвижимости для сделки.
// Отсутствующий объект неотличим от объекта без действующего управления.
func (c *ContractUseCaseImpl) dealRealty(ctx context.Context, log *logger.Logger, realtyID uuid.UUID) (*entities.Realty, error) {
	realty, err := c.storage.Realties().FindByID(ctx, realtyID)
	if err != nil {
		if errors.Is(err, entities.ErrRealtyNotExists) {
			log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrRealtyNotManaged))
			return nil, fmt.Errorf("%s: %w: %s", errCtxFindingRealty, entities.ErrRealtyNotManaged, realtyID)
		}
		log.Error(ctx, msgErrFindingRealty, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingRealty, err)
	}
	return realty, nil
}

// managementForDeal возвращает действующий контракт управления, по которому
// сотрудник вправе заключить сделку с объектом недвижимости.
func (c *ContractUseCaseImpl) managementForDeal(
	ctx context.Context,
	log *logger.Logger,
	tx repositories.TxStorage,
	kind entities.ContractKind,
	realtyID, employerID uuid.UUID,
) (*entities.Contract, error) {
	mgmt, err := tx.Contracts().FindActiveManagement(ctx, kind, realtyID)
	if err != nil {
		if errors.Is(err, entities.ErrContractNotExists) {
			log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrRealtyNotManaged))
			return nil, fmt.Errorf("%s: %w: %s", errCtxCheckingManagement, entities.ErrRealtyNotManaged, realtyID)
		}
		log.Error(ctx, msgErrCheckingManagement, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingManagement, err)
	}

	if mgmt.EmployerID != employerID {
		log.Debug(ctx, msgContractRejected, zap.Error(entities.ErrUserNotManager))
		return nil, fmt.Errorf("%s: %w: %s", errCtxCheckingManagement, entities.ErrUserNotManager, employerID)
	}
	if mgmt.LandlordID == nil {
		log.Error(ctx, msgErrCheckingManagement, zap.String("contractID", mgmt.ID.String()))
		return nil, fmt.Errorf("%s: management contract %s has no landlord", errCtxCheckingManagement, mgmt.ID)
	}
	return mgmt, nil
}

// sealDeal записывает сделочный контракт и закрывает исходный контракт
// управления в одной транзакции.
func (c *ContractUseCaseImpl) sealDeal(
	ctx context.Context,
	log *logger.Logger,
	tx repositories.TxStorage,
	contract, mgmt *entities.Contract,
) error {
	if err := tx.Contracts().Upsert(ctx, contract); err != nil {
		log.Error(ctx, msgErrUpsertingContract, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxUpsertingContract, err)
	}

	if err := mgmt.Terminate(); err != nil {
		log.Error(ctx, msgErrUpsertingContract, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxTerminatingContract, err)
	}
	if err := tx.Contracts().Upsert(ctx, mgmt); err != nil {
		log.Error(ctx, msgErrUpsertingContract, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxUpsertingContract, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, msgErrCommittingTx, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCommittingTx, err)
	}

	log.Debug(ctx, msgManagementTerminated, zap.String("contractID", mgmt.ID.String()))
	return nil
}
