package userrepo_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtydesk/internal/estate/adapters/postgres"
	"realtydesk/internal/estate/domain/pagination"
)

func int32Ptr(v int32) *int32 {
	return &v
}

func idRows(ids ...uuid.UUID) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	return rows
}

func TestUserRepository_List(t *testing.T) {
	ctx := testContext(t)

	t.Run("first page without filter", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		args, err := pagination.NewArguments[uuid.UUID](int32Ptr(2), nil, nil, nil, 10)
		require.NoError(t, err)

		first := uuid.New()
		second := uuid.New()
		third := uuid.New()
		mock.ExpectQuery("SELECT id FROM users").
			WithArgs(int32(3)).
			WillReturnRows(idRows(first, second, third))

		repo := postgres.NewUserRepository(mock)

		page, err := repo.List(ctx, args, nil)

		require.NoError(t, err)
		require.Len(t, page.Edges, 2)
		assert.Equal(t, first, page.Edges[0].Node)
		assert.Equal(t, second, page.Edges[1].Node)

		info := page.Info()
		assert.True(t, info.HasNextPage)
		assert.False(t, info.HasPreviousPage)
		require.NotNil(t, info.EndCursor)
		assert.Equal(t, second, *info.EndCursor)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page after cursor", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		cursor := uuid.New()
		args, err := pagination.NewArguments(int32Ptr(2), &cursor, nil, nil, 10)
		require.NoError(t, err)

		only := uuid.New()
		mock.ExpectQuery("SELECT id FROM users").
			WithArgs(int32(3), cursor).
			WillReturnRows(idRows(only))

		repo := postgres.NewUserRepository(mock)

		page, err := repo.List(ctx, args, nil)

		require.NoError(t, err)
		require.Len(t, page.Edges, 1)

		info := page.Info()
		assert.False(t, info.HasNextPage)
		assert.False(t, info.HasPreviousPage)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fuzzy search by name", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		args, err := pagination.NewArguments[uuid.UUID](int32Ptr(10), nil, nil, nil, 10)
		require.NoError(t, err)

		name := "ivan petrov"
		mock.ExpectQuery("SELECT id FROM users").
			WithArgs(int32(11), name, "(%ivan%|%petrov%)").
			WillReturnRows(idRows(uuid.New()))

		repo := postgres.NewUserRepository(mock)

		page, err := repo.List(ctx, args, &name)

		require.NoError(t, err)
		require.Len(t, page.Edges, 1)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("backward page", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		args, err := pagination.NewArguments[uuid.UUID](nil, nil, int32Ptr(1), nil, 10)
		require.NoError(t, err)

		first := uuid.New()
		second := uuid.New()
		mock.ExpectQuery("SELECT id FROM users").
			WithArgs(int32(2)).
			WillReturnRows(idRows(first, second))

		repo := postgres.NewUserRepository(mock)

		page, err := repo.List(ctx, args, nil)

		require.NoError(t, err)
		require.Len(t, page.Edges, 1)

		info := page.Info()
		assert.False(t, info.HasNextPage)
		assert.True(t, info.HasPreviousPage)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		args, err := pagination.NewArguments[uuid.UUID](nil, nil, nil, nil, 10)
		require.NoError(t, err)

		mock.ExpectQuery("SELECT id FROM users").
			WithArgs(int32(11)).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewUserRepository(mock)

		page, err := repo.List(ctx, args, nil)

		assert.Nil(t, page)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error listing users")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_TotalCount(t *testing.T) {
	ctx := testContext(t)

	t.Run("returns count", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int32(42)))

		repo := postgres.NewUserRepository(mock)

		count, err := repo.TotalCount(ctx)

		require.NoError(t, err)
		assert.Equal(t, int32(42), count)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
