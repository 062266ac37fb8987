package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
	"realtydesk/internal/estate/ports/repositories"
	"realtydesk/pkg/logger"
)

const contractColumns = "id, kind, name, description, " +
	"realty_id, employer_id, landlord_id, purchaser_id, " +
	"price, price_currency, deposit, deposit_currency, " +
	"one_time_fee, one_time_fee_currency, monthly_fee, monthly_fee_currency, " +
	"percent_fee, is_placed, created_at, expires_at, terminated_at"

// Виды контрактов, считающиеся сделками в отчетности.
var dealKinds = []int16{
	int16(entities.ContractKindManagementForRent),
	int16(entities.ContractKindManagementForSale),
	int16(entities.ContractKindRent),
	int16(entities.ContractKindSale),
}

// ContractRepository реализует интерфейс repositories.ContractRepository для работы с Postgres.
type ContractRepository struct {
	db Querier
}

// NewContractRepository создает новый экземпляр репозитория контрактов.
func NewContractRepository(db Querier) repositories.ContractRepository {
	return &ContractRepository{db: db}
}

func scanContract(row pgx.Row) (*entities.Contract, error) {
	var (
		contract           entities.Contract
		priceAmount        decimal.Decimal
		priceCurrency      entities.Currency
		depositAmount      decimal.NullDecimal
		depositCurrency    *entities.Currency
		oneTimeFeeAmount   decimal.NullDecimal
		oneTimeFeeCurrency *entities.Currency
		monthlyFeeAmount   decimal.NullDecimal
		monthlyFeeCurrency *entities.Currency
		percentFee         decimal.NullDecimal
		isPlaced           *bool
	)

	err := row.Scan(
		&contract.ID,
		&contract.Kind,
		&contract.Name,
		&contract.Description,
		&contract.RealtyID,
		&contract.EmployerID,
		&contract.LandlordID,
		&contract.PurchaserID,
		&priceAmount,
		&priceCurrency,
		&depositAmount,
		&depositCurrency,
		&oneTimeFeeAmount,
		&oneTimeFeeCurrency,
		&monthlyFeeAmount,
		&monthlyFeeCurrency,
		&percentFee,
		&isPlaced,
		&contract.CreatedAt,
		&contract.ExpiresAt,
		&contract.TerminatedAt,
	)
	if err != nil {
		return nil, err
	}

	contract.Price = &entities.Money{Amount: priceAmount, Currency: priceCurrency}
	if depositAmount.Valid && depositCurrency != nil {
		contract.Deposit = &entities.Money{Amount: depositAmount.Decimal, Currency: *depositCurrency}
	}
	if oneTimeFeeAmount.Valid && oneTimeFeeCurrency != nil {
		contract.OneTimeFee = &entities.Money{Amount: oneTimeFeeAmount.Decimal, Currency: *oneTimeFeeCurrency}
	}
	if monthlyFeeAmount.Valid && monthlyFeeCurrency != nil {
		contract.MonthlyFee = &entities.Money{Amount: monthlyFeeAmount.Decimal, Currency: *monthlyFeeCurrency}
	}
	if percentFee.Valid {
		percent := entities.Percent(percentFee.Decimal)
		contract.PercentFee = &percent
	}
	if isPlaced != nil {
		contract.IsPlaced = *isPlaced
	}

	return &contract, nil
}

// FindByID находит контракт по ID.
func (r *ContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + contractColumns + `
        FROM contracts
        WHERE id = $1::UUID
        LIMIT 1
    `

	contract, err := scanContract(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "contract not found", zap.String("id", id.String()))
			return nil, entities.ErrContractNotExists
		}
		log.Error(ctx, "error finding contract by id", zap.Error(err))
		return nil, fmt.Errorf("error querying contract by id: %w", err)
	}

	return contract, nil
}

// FindByIDs находит контракты по набору ID.
// Отсутствующие контракты в результат не попадают.
func (r *ContractRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Contract, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "FindByIDs"))

	contracts := make(map[uuid.UUID]*entities.Contract, len(ids))
	if len(ids) == 0 {
		return contracts, nil
	}

	query := `
        SELECT ` + contractColumns + `
        FROM contracts
        WHERE id IN (SELECT unnest($1::UUID[]) LIMIT $2::INT4)
        LIMIT $2::INT4
    `

	rows, err := r.db.Query(ctx, query, ids, int32(len(ids)))
	if err != nil {
		log.Error(ctx, "error finding contracts by ids", zap.Error(err))
		return nil, fmt.Errorf("error querying contracts by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			log.Error(ctx, "error scanning contract row", zap.Error(err))
			return nil, fmt.Errorf("error scanning contract row: %w", err)
		}
		contracts[contract.ID] = contract
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error reading contract rows", zap.Error(err))
		return nil, fmt.Errorf("error reading contract rows: %w", err)
	}

	return contracts, nil
}

// FindActiveEmployment возвращает действующий трудовой контракт пользователя.
func (r *ContractRepository) FindActiveEmployment(ctx context.Context, userID uuid.UUID) (*entities.Contract, error) {
	employments, err := r.FindActiveEmployments(ctx, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}

	employment, ok := employments[userID]
	if !ok {
		return nil, entities.ErrContractNotExists
	}
	return employment, nil
}

// FindActiveEmployments возвращает действующие трудовые контракты
// для каждого из пользователей, у кого они есть.
func (r *ContractRepository) FindActiveEmployments(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entities.Contract, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "FindActiveEmployments"))

	employments := make(map[uuid.UUID]*entities.Contract, len(userIDs))
	if len(userIDs) == 0 {
		return employments, nil
	}

	query := `
        SELECT ` + contractColumns + `
        FROM contracts
        WHERE kind = $1::INT2
          AND employer_id IN (SELECT unnest($2::UUID[]) LIMIT $3::INT4)
          AND terminated_at IS NULL
          AND (expires_at IS NULL OR expires_at > NOW())
        LIMIT $3::INT4
    `

	rows, err := r.db.Query(ctx, query, entities.ContractKindEmployment, userIDs, int32(len(userIDs)))
	if err != nil {
		log.Error(ctx, "error finding active employments", zap.Error(err))
		return nil, fmt.Errorf("error querying active employments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			log.Error(ctx, "error scanning contract row", zap.Error(err))
			return nil, fmt.Errorf("error scanning contract row: %w", err)
		}
		if contract.IsActive() {
			employments[contract.EmployerID] = contract
		}
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error reading contract rows", zap.Error(err))
		return nil, fmt.Errorf("error reading contract rows: %w", err)
	}

	return employments, nil
}

// FindActiveManagement возвращает действующий контракт управления
// заданного вида для объекта недвижимости.
func (r *ContractRepository) FindActiveManagement(ctx context.Context, kind entities.ContractKind, realtyID uuid.UUID) (*entities.Contract, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "FindActiveManagement"))

	query := `
        SELECT ` + contractColumns + `
        FROM contracts
        WHERE kind = $1::INT2
          AND realty_id = $2::UUID
          AND terminated_at IS NULL
          AND (expires_at IS NULL OR expires_at > NOW())
        LIMIT 1
    `

	contract, err := scanContract(r.db.QueryRow(ctx, query, kind, realtyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "active management not found",
				zap.String("kind", kind.String()),
				zap.String("realty_id", realtyID.String()))
			return nil, entities.ErrContractNotExists
		}
		log.Error(ctx, "error finding active management", zap.Error(err))
		return nil, fmt.Errorf("error querying active management: %w", err)
	}

	return contract, nil
}

// HasActiveRent сообщает, действует ли для объекта контракт аренды.
func (r *ContractRepository) HasActiveRent(ctx context.Context, realtyID uuid.UUID) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "HasActiveRent"))

	query := `
        SELECT id
        FROM contracts
        WHERE kind = $1::INT2
          AND realty_id = $2::UUID
          AND terminated_at IS NULL
          AND (expires_at IS NULL OR expires_at > NOW())
        LIMIT 1
    `

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, entities.ContractKindRent, realtyID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		log.Error(ctx, "error checking active rent", zap.Error(err))
		return false, fmt.Errorf("error querying active rent: %w", err)
	}

	return true, nil
}

// Upsert вставляет контракт или обновляет все его поля по ID.
func (r *ContractRepository) Upsert(ctx context.Context, contract *entities.Contract) error {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "Upsert"))

	query := `
        INSERT INTO contracts (` + contractColumns + `)
        VALUES ($1::UUID, $2::INT2, $3::VARCHAR, $4::VARCHAR,
                $5::UUID, $6::UUID, $7::UUID, $8::UUID,
                $9::NUMERIC, $10::INT2, $11::NUMERIC, $12::INT2,
                $13::NUMERIC, $14::INT2, $15::NUMERIC, $16::INT2,
                $17::NUMERIC, $18::BOOLEAN, $19::TIMESTAMPTZ, $20::TIMESTAMPTZ, $21::TIMESTAMPTZ)
        ON CONFLICT (id) DO UPDATE
        SET kind = EXCLUDED.kind,
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            realty_id = EXCLUDED.realty_id,
            employer_id = EXCLUDED.employer_id,
            landlord_id = EXCLUDED.landlord_id,
            purchaser_id = EXCLUDED.purchaser_id,
            price = EXCLUDED.price,
            price_currency = EXCLUDED.price_currency,
            deposit = EXCLUDED.deposit,
            deposit_currency = EXCLUDED.deposit_currency,
            one_time_fee = EXCLUDED.one_time_fee,
            one_time_fee_currency = EXCLUDED.one_time_fee_currency,
            monthly_fee = EXCLUDED.monthly_fee,
            monthly_fee_currency = EXCLUDED.monthly_fee_currency,
            percent_fee = EXCLUDED.percent_fee,
            is_placed = EXCLUDED.is_placed,
            created_at = EXCLUDED.created_at,
            expires_at = EXCLUDED.expires_at,
            terminated_at = EXCLUDED.terminated_at
    `

	priceAmount, priceCurrency := moneyColumns(contract.Price)
	depositAmount, depositCurrency := optionalMoneyColumns(contract.Deposit)
	oneTimeFeeAmount, oneTimeFeeCurrency := optionalMoneyColumns(contract.OneTimeFee)
	monthlyFeeAmount, monthlyFeeCurrency := optionalMoneyColumns(contract.MonthlyFee)

	var percentFee decimal.NullDecimal
	if contract.PercentFee != nil {
		percentFee = decimal.NullDecimal{Decimal: contract.PercentFee.Decimal(), Valid: true}
	}

	// Признак размещения хранится только у контрактов управления.
	var isPlaced *bool
	if contract.SupportsPlacement() {
		placed := contract.IsPlaced
		isPlaced = &placed
	}

	_, err := r.db.Exec(ctx, query,
		contract.ID,
		contract.Kind,
		contract.Name,
		contract.Description,
		contract.RealtyID,
		contract.EmployerID,
		contract.LandlordID,
		contract.PurchaserID,
		priceAmount,
		priceCurrency,
		depositAmount,
		depositCurrency,
		oneTimeFeeAmount,
		oneTimeFeeCurrency,
		monthlyFeeAmount,
		monthlyFeeCurrency,
		percentFee,
		isPlaced,
		contract.CreatedAt,
		contract.ExpiresAt,
		contract.TerminatedAt,
	)
	if err != nil {
		log.Error(ctx, "error upserting contract", zap.Error(err))
		return fmt.Errorf("error upserting contract: %w", err)
	}

	return nil
}

func moneyColumns(money *entities.Money) (decimal.Decimal, entities.Currency) {
	if money == nil {
		return decimal.Decimal{}, 0
	}
	return money.Amount, money.Currency
}

func optionalMoneyColumns(money *entities.Money) (decimal.NullDecimal, *entities.Currency) {
	if money == nil {
		return decimal.NullDecimal{}, nil
	}
	currency := money.Currency
	return decimal.NullDecimal{Decimal: money.Amount, Valid: true}, &currency
}

// Lock захватывает ключ контракта до конца текущей транзакции.
func (r *ContractRepository) Lock(ctx context.Context, id uuid.UUID) error {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "Lock"))

	query := `
        INSERT INTO contracts_lock
        VALUES ($1::UUID)
        ON CONFLICT (id) DO NOTHING
    `

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		log.Error(ctx, "error locking contract", zap.Error(err))
		return fmt.Errorf("error locking contract: %w", err)
	}

	return nil
}

// List возвращает страницу идентификаторов контрактов, опционально
// отфильтрованную нечетким поиском по названию.
func (r *ContractRepository) List(ctx context.Context, args pagination.Arguments[uuid.UUID], name *string) (*pagination.Page[uuid.UUID, uuid.UUID], error) {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "List"))

	query, params := buildIDListQuery("contracts", "true", "name", args, name)

	page, err := queryIDPage(ctx, r.db, query, params, args)
	if err != nil {
		log.Error(ctx, "error listing contracts", zap.Error(err))
		return nil, fmt.Errorf("error listing contracts: %w", err)
	}

	return page, nil
}

// TotalCount возвращает общее число контрактов.
func (r *ContractRepository) TotalCount(ctx context.Context) (int32, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "TotalCount"))

	query := `
        SELECT COUNT(*)::INT4
        FROM contracts
    `

	var count int32
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		log.Error(ctx, "error counting contracts", zap.Error(err))
		return 0, fmt.Errorf("error counting contracts: %w", err)
	}

	return count, nil
}

// CountInPeriod возвращает число сделочных контрактов,
// заключенных в периоде [start, end].
func (r *ContractRepository) CountInPeriod(ctx context.Context, start, end time.Time) (int32, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "CountInPeriod"))

	query := `
        SELECT COUNT(id)::INT4
        FROM contracts
        WHERE kind IN (SELECT unnest($1::INT2[]) LIMIT $2::INT4)
          AND created_at >= $3::TIMESTAMPTZ
          AND created_at <= $4::TIMESTAMPTZ
    `

	var count int32
	err := r.db.QueryRow(ctx, query, dealKinds, int32(len(dealKinds)), start, end).Scan(&count)
	if err != nil {
		log.Error(ctx, "error counting contracts in period", zap.Error(err))
		return 0, fmt.Errorf("error counting contracts in period: %w", err)
	}

	return count, nil
}

// CountByEmployerInPeriod возвращает число сделочных контрактов
// по каждому сотруднику за период [start, end].
func (r *ContractRepository) CountByEmployerInPeriod(ctx context.Context, start, end time.Time) (map[uuid.UUID]int32, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contract"), zap.String("method", "CountByEmployerInPeriod"))

	query := `
        SELECT employer_id, COUNT(id)::INT4 AS count
        FROM contracts
        WHERE kind IN (SELECT unnest($1::INT2[]) LIMIT $2::INT4)
          AND created_at >= $3::TIMESTAMPTZ
          AND created_at <= $4::TIMESTAMPTZ
        GROUP BY employer_id
    `

	rows, err := r.db.Query(ctx, query, dealKinds, int32(len(dealKinds)), start, end)
	if err != nil {
		log.Error(ctx, "error counting contracts by employer", zap.Error(err))
		return nil, fmt.Errorf("error counting contracts by employer: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int32)
	for rows.Next() {
		var (
			employerID uuid.UUID
			count      int32
		)
		if err := rows.Scan(&employerID, &count); err != nil {
			log.Error(ctx, "error scanning employer count row", zap.Error(err))
			return nil, fmt.Errorf("error scanning employer count row: %w", err)
		}
		counts[employerID] = count
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error reading employer count rows", zap.Error(err))
		return nil, fmt.Errorf("error reading employer count rows: %w", err)
	}

	return counts, nil
}
