package repositories

import "context"

// Storage объединяет репозитории хранилища и открывает транзакции.
type Storage interface {
	Users() UserRepository

	Realties() RealtyRepository

	Contracts() ContractRepository

	Placements() PlacementRepository

	// Begin открывает транзакцию и возвращает привязанные к ней репозитории.
	Begin(ctx context.Context) (TxStorage, error)
}

// TxStorage предоставляет репозитории, работающие в рамках одной транзакции.
// Rollback после успешного Commit не имеет эффекта.
type TxStorage interface {
	Users() UserRepository

	Realties() RealtyRepository

	Contracts() ContractRepository

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error
}
