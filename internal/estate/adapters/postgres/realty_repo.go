package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
	"realtydesk/internal/estate/ports/repositories"
	"realtydesk/pkg/logger"
)

const realtyColumns = "id, hash, address, " +
	"country, state, city, street, zip_code, building_name, " +
	"num_floors, floor, apartment_num, room_num, created_at"

// RealtyRepository реализует интерфейс repositories.RealtyRepository для работы с Postgres.
type RealtyRepository struct {
	db Querier
}

// NewRealtyRepository создает новый экземпляр репозитория объектов недвижимости.
func NewRealtyRepository(db Querier) repositories.RealtyRepository {
	return &RealtyRepository{db: db}
}

func scanRealty(row pgx.Row) (*entities.Realty, error) {
	var realty entities.Realty
	err := row.Scan(
		&realty.ID,
		&realty.Hash,
		&realty.Address,
		&realty.Country,
		&realty.State,
		&realty.City,
		&realty.Street,
		&realty.ZipCode,
		&realty.BuildingName,
		&realty.NumFloors,
		&realty.Floor,
		&realty.ApartmentNum,
		&realty.RoomNum,
		&realty.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &realty, nil
}

// FindByID находит объект недвижимости по ID.
func (r *RealtyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Realty, error) {
	log := logger.Log(ctx).With(zap.String("repository", "realty"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + realtyColumns + `
        FROM realties
        WHERE id = $1::UUID
        LIMIT 1
    `

	realty, err := scanRealty(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "realty not found", zap.String("id", id.String()))
			return nil, entities.ErrRealtyNotExists
		}
		log.Error(ctx, "error finding realty by id", zap.Error(err))
		return nil, fmt.Errorf("error querying realty by id: %w", err)
	}

	return realty, nil
}

// FindByIDs находит объекты недвижимости по набору ID.
// Отсутствующие объекты в результат не попадают.
func (r *RealtyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Realty, error) {
	log := logger.Log(ctx).With(zap.String("repository", "realty"), zap.String("method", "FindByIDs"))

	realties := make(map[uuid.UUID]*entities.Realty, len(ids))
	if len(ids) == 0 {
		return realties, nil
	}

	query := `
        SELECT ` + realtyColumns + `
        FROM realties
        WHERE id IN (SELECT unnest($1::UUID[]) LIMIT $2::INT4)
        LIMIT $2::INT4
    `

	rows, err := r.db.Query(ctx, query, ids, int32(len(ids)))
	if err != nil {
		log.Error(ctx, "error finding realties by ids", zap.Error(err))
		return nil, fmt.Errorf("error querying realties by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		realty, err := scanRealty(rows)
		if err != nil {
			log.Error(ctx, "error scanning realty row", zap.Error(err))
			return nil, fmt.Errorf("error scanning realty row: %w", err)
		}
		realties[realty.ID] = realty
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error reading realty rows", zap.Error(err))
		return nil, fmt.Errorf("error reading realty rows: %w", err)
	}

	return realties, nil
}

// FindByHash находит объект недвижимости по хешу адресных полей.
func (r *RealtyRepository) FindByHash(ctx context.Context, hash uuid.UUID) (*entities.Realty, error) {
	log := logger.Log(ctx).With(zap.String("repository", "realty"), zap.String("method", "FindByHash"))

	query := `
        SELECT ` + realtyColumns + `
        FROM realties
        WHERE hash = $1::UUID
        LIMIT 1
    `

	realty, err := scanRealty(r.db.QueryRow(ctx, query, hash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "realty not found", zap.String("hash", hash.String()))
			return nil, entities.ErrRealtyNotExists
		}
		log.Error(ctx, "error finding realty by hash", zap.Error(err))
		return nil, fmt.Errorf("error querying realty by hash: %w", err)
	}

	return realty, nil
}

// Upsert вставляет объект недвижимости или обновляет все его поля по ID.
func (r *RealtyRepository) Upsert(ctx context.Context, realty *entities.Realty) error {
	log := logger.Log(ctx).With(zap.String("repository", "realty"), zap.String("method", "Upsert"))

	query := `
        INSERT INTO realties (` + realtyColumns + `)
        VALUES ($1::UUID, $2::UUID, $3::VARCHAR,
                $4::VARCHAR, $5::VARCHAR, $6::VARCHAR, $7::VARCHAR, $8::VARCHAR, $9::VARCHAR,
                $10::INT4, $11::INT4, $12::VARCHAR, $13::VARCHAR, $14::TIMESTAMPTZ)
        ON CONFLICT (id) DO UPDATE
        SET hash = EXCLUDED.hash,
            address = EXCLUDED.address,
            country = EXCLUDED.country,
            state = EXCLUDED.state,
            city = EXCLUDED.city,
            street = EXCLUDED.street,
            zip_code = EXCLUDED.zip_code,
            building_name = EXCLUDED.building_name,
            num_floors = EXCLUDED.num_floors,
            floor = EXCLUDED.floor,
            apartment_num = EXCLUDED.apartment_num,
            room_num = EXCLUDED.room_num,
            created_at = EXCLUDED.created_at
    `

	_, err := r.db.Exec(ctx, query,
		realty.ID,
		realty.Hash,
		realty.Address,
		realty.Country,
		realty.State,
		realty.City,
		realty.Street,
		realty.ZipCode,
		realty.BuildingName,
		realty.NumFloors,
		realty.Floor,
		realty.ApartmentNum,
		realty.RoomNum,
		realty.CreatedAt,
	)
	if err != nil {
		log.Error(ctx, "error upserting realty", zap.Error(err))
		return fmt.Errorf("error upserting realty: %w", err)
	}

	return nil
}

// Lock захватывает ключ объекта недвижимости до конца текущей транзакции.
func (r *RealtyRepository) Lock(ctx context.Context, id uuid.UUID) error {
	log := logger.Log(ctx).With(zap.String("repository", "realty"), zap.String("method", "Lock"))

	query := `
        INSERT INTO realties_lock
        VALUES ($1::UUID)
        ON CONFLICT (id) DO NOTHING
    `

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		log.Error(ctx, "error locking realty", zap.Error(err))
		return fmt.Errorf("error locking realty: %w", err)
	}

	return nil
}

// LockCreation захватывает ключ хеша адресных полей, сериализуя
// конкурирующее создание объектов с одинаковым адресом.
func (r *RealtyRepository) LockCreation(ctx context.Context, hash uuid.UUID) error {
	log := logger.Log(ctx).With(zap.String("repository", "realty"), zap.String("method", "LockCreation"))

	query := `
        INSERT INTO realties_creation_lock
        VALUES ($1::UUID)
        ON CONFLICT (hash) DO NOTHING
    `

	if _, err := r.db.Exec(ctx, query, hash); err != nil {
		log.Error(ctx, "error locking realty creation", zap.Error(err))
		return fmt.Errorf("error locking realty creation: %w", err)
	}

	return nil
}

// DeleteUnused удаляет объекты недвижимости старше deadline, на которые
// не ссылается ни один действующий контракт.
func (r *RealtyRepository) DeleteUnused(ctx context.Context, deadline time.Time) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "realty"), zap.String("method", "DeleteUnused"))

	query := `
        DELETE FROM realties
        WHERE (SELECT COUNT(*)
               FROM contracts
               WHERE realty_id = realties.id
                 AND terminated_at IS NULL
                 AND (expires_at IS NULL OR expires_at > NOW())) = 0
          AND created_at < $1::TIMESTAMPTZ
    `

	tag, err := r.db.Exec(ctx, query, deadline)
	if err != nil {
		log.Error(ctx, "error deleting unused realties", zap.Error(err))
		return 0, fmt.Errorf("error deleting unused realties: %w", err)
	}

	return tag.RowsAffected(), nil
}

// List возвращает страницу идентификаторов объектов недвижимости,
// опционально отфильтрованную нечетким поиском по адресу.
func (r *RealtyRepository) List(ctx context.Context, args pagination.Arguments[uuid.UUID], address *string) (*pagination.Page[uuid.UUID, uuid.UUID], error) {
	log := logger.Log(ctx).With(zap.String("repository", "realty"), zap.String("method", "List"))

	query, params := buildIDListQuery("realties", "true", "address", args, address)

	page, err := queryIDPage(ctx, r.db, query, params, args)
	if err != nil {
		log.Error(ctx, "error listing realties", zap.Error(err))
		return nil, fmt.Errorf("error listing realties: %w", err)
	}

	return page, nil
}

// TotalCount возвращает общее число объектов недвижимости.
func (r *RealtyRepository) TotalCount(ctx context.Context) (int32, error) {
	log := logger.Log(ctx).With(zap.String("repository", "realty"), zap.String("method", "TotalCount"))

	query := `
        SELECT COUNT(*)::INT4
        FROM realties
    `

	var count int32
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		log.Error(ctx, "error counting realties", zap.Error(err))
		return 0, fmt.Errorf("error counting realties: %w", err)
	}

	return count, nil
}
