package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"realtydesk/internal/estate/ports/repositories"
)

// Querier объединяет операции выполнения запросов, общие для пула
// соединений и открытой транзакции.
type Querier interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
}

type PgxPoolInterface interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Store реализует интерфейс repositories.Storage поверх PostgreSQL.
type Store struct {
	pool       PgxPoolInterface
	users      repositories.UserRepository
	realties   repositories.RealtyRepository
	contracts  repositories.ContractRepository
	placements repositories.PlacementRepository
}

// NewStore создает новое хранилище поверх пула соединений.
func NewStore(pool PgxPoolInterface) *Store {
	return &Store{
		pool:       pool,
		users:      NewUserRepository(pool),
		realties:   NewRealtyRepository(pool),
		contracts:  NewContractRepository(pool),
		placements: NewPlacementRepository(pool),
	}
}

// Users возвращает репозиторий пользователей.
func (s *Store) Users() repositories.UserRepository {
	return s.users
}

// Realties возвращает репозиторий объектов недвижимости.
func (s *Store) Realties() repositories.RealtyRepository {
	return s.realties
}

// Contracts возвращает репозиторий контрактов.
func (s *Store) Contracts() repositories.ContractRepository {
	return s.contracts
}

// Placements возвращает репозиторий размещений.
func (s *Store) Placements() repositories.PlacementRepository {
	return s.placements
}

// Begin открывает транзакцию и возвращает привязанные к ней репозитории.
func (s *Store) Begin(ctx context.Context) (repositories.TxStorage, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return &TxStore{
		tx:        tx,
		users:     NewUserRepository(tx),
		realties:  NewRealtyRepository(tx),
		contracts: NewContractRepository(tx),
	}, nil
}

// TxStore предоставляет репозитории, работающие в рамках одной транзакции.
type TxStore struct {
	tx        pgx.Tx
	users     repositories.UserRepository
	realties  repositories.RealtyRepository
	contracts repositories.ContractRepository
}

// Users возвращает репозиторий пользователей внутри транзакции.
func (s *TxStore) Users() repositories.UserRepository {
	return s.users
}

// Realties возвращает репозиторий объектов недвижимости внутри транзакции.
func (s *TxStore) Realties() repositories.RealtyRepository {
	return s.realties
}

// Contracts возвращает репозиторий контрактов внутри транзакции.
func (s *TxStore) Contracts() repositories.ContractRepository {
	return s.contracts
}

// Commit фиксирует транзакцию.
func (s *TxStore) Commit(ctx context.Context) error {
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// Rollback откатывает транзакцию. Вызов после Commit не имеет эффекта.
func (s *TxStore) Rollback(ctx context.Context) error {
	err := s.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("error rolling back transaction: %w", err)
	}
	return nil
}
