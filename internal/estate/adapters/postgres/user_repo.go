package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
	"realtydesk/internal/estate/ports/repositories"
	"realtydesk/pkg/logger"
)

const userColumns = "id, name, login, password_hash, email, phone, created_at, deleted_at"

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	db Querier
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(db Querier) repositories.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Login,
		&user.PasswordHash,
		&user.Email,
		&user.Phone,
		&user.CreatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID находит неудаленного пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1::UUID
          AND deleted_at IS NULL
        LIMIT 1
    `

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id.String()))
			return nil, entities.ErrUserNotExists
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByIDs находит неудаленных пользователей по набору ID.
// Отсутствующие пользователи в результат не попадают.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByIDs"))

	users := make(map[uuid.UUID]*entities.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id IN (SELECT unnest($1::UUID[]) LIMIT $2::INT4)
          AND deleted_at IS NULL
        LIMIT $2::INT4
    `

	rows, err := r.db.Query(ctx, query, ids, int32(len(ids)))
	if err != nil {
		log.Error(ctx, "error finding users by ids", zap.Error(err))
		return nil, fmt.Errorf("error querying users by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, "error scanning user row", zap.Error(err))
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error reading user rows", zap.Error(err))
		return nil, fmt.Errorf("error reading user rows: %w", err)
	}

	return users, nil
}

// FindByLogin находит неудаленного пользователя по логину.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByLogin"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE login = $1::VARCHAR
          AND deleted_at IS NULL
        LIMIT 1
    `

	user, err := scanUser(r.db.QueryRow(ctx, query, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("login", login))
			return nil, entities.ErrUserNotExists
		}
		log.Error(ctx, "error finding user by login", zap.Error(err))
		return nil, fmt.Errorf("error querying user by login: %w", err)
	}

	return user, nil
}

// Upsert вставляет пользователя или обновляет все его поля по ID.
func (r *UserRepository) Upsert(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Upsert"))

	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1::UUID, $2::VARCHAR, $3::VARCHAR, $4::VARCHAR, $5::VARCHAR, $6::VARCHAR, $7::TIMESTAMPTZ, $8::TIMESTAMPTZ)
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name,
            login = EXCLUDED.login,
            password_hash = EXCLUDED.password_hash,
            email = EXCLUDED.email,
            phone = EXCLUDED.phone,
            created_at = EXCLUDED.created_at,
            deleted_at = EXCLUDED.deleted_at
    `

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Login,
		user.PasswordHash,
		user.Email,
		user.Phone,
		user.CreatedAt,
		user.DeletedAt,
	)
	if err != nil {
		log.Error(ctx, "error upserting user", zap.Error(err))
		return fmt.Errorf("error upserting user: %w", err)
	}

	return nil
}

// Lock захватывает ключ пользователя до конца текущей транзакции.
// Конкурирующая транзакция, взявшая тот же ключ, блокируется до ее завершения.
func (r *UserRepository) Lock(ctx context.Context, id uuid.UUID) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Lock"))

	query := `
        INSERT INTO users_lock
        VALUES ($1::UUID)
        ON CONFLICT (id) DO NOTHING
    `

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		log.Error(ctx, "error locking user", zap.Error(err))
		return fmt.Errorf("error locking user: %w", err)
	}

	return nil
}

// LockCreation захватывает ключ логина до конца текущей транзакции,
// сериализуя конкурирующие регистрации с одинаковым логином.
func (r *UserRepository) LockCreation(ctx context.Context, login string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "LockCreation"))

	query := `
        INSERT INTO users_creation_lock
        VALUES ($1::VARCHAR)
        ON CONFLICT (login) DO NOTHING
    `

	if _, err := r.db.Exec(ctx, query, login); err != nil {
		log.Error(ctx, "error locking user creation", zap.Error(err))
		return fmt.Errorf("error locking user creation: %w", err)
	}

	return nil
}

// List возвращает страницу идентификаторов пользователей, опционально
// отфильтрованную нечетким поиском по имени.
func (r *UserRepository) List(ctx context.Context, args pagination.Arguments[uuid.UUID], name *string) (*pagination.Page[uuid.UUID, uuid.UUID], error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	query, params := buildIDListQuery("users", "deleted_at IS NULL", "name", args, name)

	page, err := queryIDPage(ctx, r.db, query, params, args)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	return page, nil
}

// TotalCount возвращает общее число неудаленных пользователей.
func (r *UserRepository) TotalCount(ctx context.Context) (int32, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "TotalCount"))

	query := `
        SELECT COUNT(*)::INT4
        FROM users
        WHERE deleted_at IS NULL
    `

	var count int32
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		log.Error(ctx, "error counting users", zap.Error(err))
		return 0, fmt.Errorf("error counting users: %w", err)
	}

	return count, nil
}
