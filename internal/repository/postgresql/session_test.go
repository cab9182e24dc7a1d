package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.com/sprinkles/storefront/internal/db/mocks"
	"gitlab.com/sprinkles/storefront/internal/repository"
	"gitlab.com/sprinkles/storefront/internal/repository/postgresql"
)

func TestSessionRepo_GetActive(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	id := uuid.New()

	t.Run("active", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewSessionRepo(mockDB)

		expected := repository.Session{ID: id, AccountID: 7, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(id), gomock.Eq(now)).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.Session) = expected
				return nil
			})

		session, err := repo.GetActive(ctx, id, now)
		require.NoError(t, err)
		assert.Equal(t, int64(7), session.AccountID)
	})

	t.Run("expired or unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewSessionRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pgx.ErrNoRows)

		session, err := repo.GetActive(ctx, id, now)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, session)
	})
}

func TestSessionRepo_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewSessionRepo(mockDB)

	mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(now)).
		Return(pgconn.CommandTag("DELETE 4"), nil)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
