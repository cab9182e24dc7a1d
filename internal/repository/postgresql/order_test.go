package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.com/sprinkles/storefront/internal/db/mocks"
	"gitlab.com/sprinkles/storefront/internal/repository"
	"gitlab.com/sprinkles/storefront/internal/repository/postgresql"
)

func TestOrderRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		testOrder := &repository.Order{
			ProductName:    "Cake",
			Quantity:       2,
			CustomerID:     7,
			CustomerName:   "Ann",
			Address:        "12 Baker St",
			UnitPrice:      decimal.RequireFromString("9.99"),
			Total:          decimal.RequireFromString("19.98"),
			DispatchStatus: "Not Picked Up",
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		mockTx.EXPECT().Get(
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(testOrder.ProductName),
			gomock.Eq(testOrder.Quantity),
			gomock.Eq(testOrder.CustomerID),
			gomock.Eq(testOrder.CustomerName),
			gomock.Eq(testOrder.Address),
			gomock.Eq(testOrder.UnitPrice),
			gomock.Eq(testOrder.Total),
			gomock.Eq(testOrder.DispatchStatus),
			gomock.Eq(false),
			gomock.Eq(""),
			gomock.Eq(now),
			gomock.Eq(now),
		).DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			*dest.(*int64) = 11
			return nil
		})

		id, err := repo.CreateTx(ctx, mockTx, testOrder)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), id)
		assert.Equal(t, int64(11), testOrder.ID)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		_, err := repo.CreateTx(ctx, mockTx, &repository.Order{})
		assert.Equal(t, expectedErr, err)
	})
}

func TestOrderRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		expected := &repository.Order{ID: 11, ProductName: "Cake", DispatchStatus: "Not Picked Up"}
		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(11))).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.Order) = *expected
				return nil
			})

		order, err := repo.GetByID(ctx, 11)
		assert.NoError(t, err)
		assert.Equal(t, expected, order)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pgx.ErrNoRows)

		order, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, order)
	})
}

func TestOrderRepo_GetByAddress(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewOrderRepo(mockDB)

	expected := []*repository.Order{
		{ID: 1, Address: "12 Baker St"},
		{ID: 2, Address: "12 Baker St"},
	}
	mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("12 Baker St")).
		DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			*dest.(*[]*repository.Order) = expected
			return nil
		})

	orders, err := repo.GetByAddress(ctx, "12 Baker St")
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
}

func TestOrderRepo_ClaimTx(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		tag     pgconn.CommandTag
		execErr error
		want    bool
		wantErr bool
	}{
		{name: "claimed", tag: pgconn.CommandTag("UPDATE 1"), want: true},
		{name: "already claimed", tag: pgconn.CommandTag("UPDATE 0"), want: false},
		{name: "database error", execErr: errors.New("database error"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := mock_database.NewMockDB(ctrl)
			mockTx := mock_database.NewMockTx(ctrl)
			repo := postgresql.NewOrderRepo(mockDB)

			mockTx.EXPECT().Exec(
				gomock.Any(),
				gomock.Any(),
				gomock.Eq(int64(11)),
				gomock.Eq(int64(3)),
				gomock.Eq("Dan"),
				gomock.Eq("2 days"),
			).Return(tc.tag, tc.execErr)

			ok, err := repo.ClaimTx(ctx, mockTx, 11, 3, "Dan", "2 days")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestOrderRepo_MarkDeliveredTx(t *testing.T) {
	ctx := context.Background()

	t.Run("delivered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(int64(11)), gomock.Eq(int64(3))).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		ok, err := repo.MarkDeliveredTx(ctx, mockTx, 11, 3)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("not dispatched by this account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		ok, err := repo.MarkDeliveredTx(ctx, mockTx, 11, 4)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
