package realtyrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtydesk/internal/estate/adapters/postgres"
	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
	"realtydesk/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection error")

const realtySelectPattern = "SELECT id, hash, address"

func strPtr(s string) *string {
	return &s
}

func int32Ptr(v int32) *int32 {
	return &v
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	return logger.NewContext(context.Background(), testLogger)
}

func paginationArgs(t *testing.T) (pagination.Arguments[uuid.UUID], error) {
	t.Helper()

	return pagination.NewArguments[uuid.UUID](nil, nil, nil, nil, 10)
}

func testRealty() entities.Realty {
	return entities.Realty{
		ID:           uuid.New(),
		Hash:         uuid.New(),
		Address:      "Russia, Moscow, Tverskaya, 7",
		Country:      "Russia",
		City:         "Moscow",
		Street:       "Tverskaya",
		BuildingName: "7",
		NumFloors:    9,
		Floor:        int32Ptr(3),
		ApartmentNum: strPtr("12"),
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func realtyRow(realty entities.Realty) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "hash", "address",
		"country", "state", "city", "street", "zip_code", "building_name",
		"num_floors", "floor", "apartment_num", "room_num", "created_at",
	}).AddRow(
		realty.ID, realty.Hash, realty.Address,
		realty.Country, realty.State, realty.City, realty.Street, realty.ZipCode, realty.BuildingName,
		realty.NumFloors, realty.Floor, realty.ApartmentNum, realty.RoomNum, realty.CreatedAt,
	)
}

func TestRealtyRepository_FindByID(t *testing.T) {
	ctx := testContext(t)
	realty := testRealty()

	t.Run("successful realty acquisition", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(realtySelectPattern).
			WithArgs(realty.ID).
			WillReturnRows(realtyRow(realty))

		repo := postgres.NewRealtyRepository(mock)

		found, err := repo.FindByID(ctx, realty.ID)

		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, realty.ID, found.ID)
		assert.Equal(t, realty.Address, found.Address)
		assert.Equal(t, realty.Floor, found.Floor)
		assert.Nil(t, found.State)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("the realty was not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		missingID := uuid.New()
		mock.ExpectQuery(realtySelectPattern).
			WithArgs(missingID).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewRealtyRepository(mock)

		found, err := repo.FindByID(ctx, missingID)

		require.Nil(t, found)
		require.ErrorIs(t, err, entities.ErrRealtyNotExists)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRealtyRepository_FindByHash(t *testing.T) {
	ctx := testContext(t)
	realty := testRealty()

	t.Run("successful realty acquisition", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(realtySelectPattern).
			WithArgs(realty.Hash).
			WillReturnRows(realtyRow(realty))

		repo := postgres.NewRealtyRepository(mock)

		found, err := repo.FindByHash(ctx, realty.Hash)

		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, realty.ID, found.ID)
		assert.Equal(t, realty.Hash, found.Hash)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("the realty was not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		missingHash := uuid.New()
		mock.ExpectQuery(realtySelectPattern).
			WithArgs(missingHash).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewRealtyRepository(mock)

		found, err := repo.FindByHash(ctx, missingHash)

		require.Nil(t, found)
		require.ErrorIs(t, err, entities.ErrRealtyNotExists)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRealtyRepository_Upsert(t *testing.T) {
	ctx := testContext(t)
	realty := testRealty()

	t.Run("successfully upserts realty", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO realties").
			WithArgs(
				realty.ID, realty.Hash, realty.Address,
				realty.Country, realty.State, realty.City, realty.Street, realty.ZipCode, realty.BuildingName,
				realty.NumFloors, realty.Floor, realty.ApartmentNum, realty.RoomNum, realty.CreatedAt,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := postgres.NewRealtyRepository(mock)

		require.NoError(t, repo.Upsert(ctx, &realty))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO realties").
			WithArgs(
				realty.ID, realty.Hash, realty.Address,
				realty.Country, realty.State, realty.City, realty.Street, realty.ZipCode, realty.BuildingName,
				realty.NumFloors, realty.Floor, realty.ApartmentNum, realty.RoomNum, realty.CreatedAt,
			).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewRealtyRepository(mock)

		err = repo.Upsert(ctx, &realty)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error upserting realty")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRealtyRepository_Locks(t *testing.T) {
	ctx := testContext(t)

	t.Run("acquires realty lock key", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		id := uuid.New()
		mock.ExpectExec("INSERT INTO realties_lock").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := postgres.NewRealtyRepository(mock)

		require.NoError(t, repo.Lock(ctx, id))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("acquires creation lock key by hash", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		hash := uuid.New()
		mock.ExpectExec("INSERT INTO realties_creation_lock").
			WithArgs(hash).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := postgres.NewRealtyRepository(mock)

		require.NoError(t, repo.LockCreation(ctx, hash))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRealtyRepository_DeleteUnused(t *testing.T) {
	ctx := testContext(t)

	t.Run("deletes stale realties without active contracts", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		deadline := time.Now().UTC().Add(-24 * time.Hour)
		mock.ExpectExec("DELETE FROM realties").
			WithArgs(deadline).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))

		repo := postgres.NewRealtyRepository(mock)

		deleted, err := repo.DeleteUnused(ctx, deadline)

		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		deadline := time.Now().UTC()
		mock.ExpectExec("DELETE FROM realties").
			WithArgs(deadline).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewRealtyRepository(mock)

		deleted, err := repo.DeleteUnused(ctx, deadline)

		assert.Zero(t, deleted)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error deleting unused realties")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRealtyRepository_List(t *testing.T) {
	ctx := testContext(t)

	t.Run("fuzzy search by address", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		args, err := paginationArgs(t)
		require.NoError(t, err)

		address := "Tverskaya"
		mock.ExpectQuery("SELECT id FROM realties").
			WithArgs(int32(11), address, "(%Tverskaya%)").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(uuid.New()))

		repo := postgres.NewRealtyRepository(mock)

		page, err := repo.List(ctx, args, &address)

		require.NoError(t, err)
		require.Len(t, page.Edges, 1)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
