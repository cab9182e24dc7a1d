package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"gitlab.com/sprinkles/storefront/internal/db"
	"gitlab.com/sprinkles/storefront/internal/repository"
	"gitlab.com/sprinkles/storefront/internal/storage"
)

const orderColumns = `id, product_name, quantity, customer_id, customer_name, address, unit_price, total,
        delivery_id, delivery_name, dispatch_status, delivered, eta, created_at, updated_at`

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) storage.OrderRepository {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) (int64, error) {
	var id int64
	err := tx.Get(ctx, &id, `
        INSERT INTO orders (
            product_name, quantity, customer_id, customer_name, address,
            unit_price, total, dispatch_status, delivered, eta, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id
    `, order.ProductName, order.Quantity, order.CustomerID, order.CustomerName, order.Address,
		order.UnitPrice, order.Total, order.DispatchStatus, order.Delivered, order.ETA, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return 0, err
	}
	order.ID = id
	return id, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDTx locks the row until the transaction ends.
func (r *OrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Order, error) {
	var order repository.Order
	err := tx.Get(ctx, &order, "SELECT "+orderColumns+" FROM orders WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetByAddress(ctx context.Context, address string) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, "SELECT "+orderColumns+" FROM orders WHERE address = $1 ORDER BY created_at ASC", address)
	return orders, err
}

func (r *OrderRepo) GetByCustomerID(ctx context.Context, customerID int64) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, "SELECT "+orderColumns+" FROM orders WHERE customer_id = $1 ORDER BY created_at DESC", customerID)
	return orders, err
}

func (r *OrderRepo) GetAll(ctx context.Context) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, "SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC")
	return orders, err
}

// ClaimTx assigns the order to a delivery account only while it is still
// unclaimed. It reports false when no row matched, which means the order is
// missing or somebody else claimed it first.
func (r *OrderRepo) ClaimTx(ctx context.Context, tx db.Tx, id, deliveryID int64, deliveryName, eta string) (bool, error) {
	tag, err := tx.Exec(ctx, `
        UPDATE orders
        SET
            dispatch_status = 'Dispatched',
            delivery_id = $2,
            delivery_name = $3,
            eta = $4,
            updated_at = now()
        WHERE id = $1
          AND dispatch_status = 'Not Picked Up'
          AND delivery_id IS NULL
    `, id, deliveryID, deliveryName, eta)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// MarkDeliveredTx completes a dispatched order owned by deliveryID.
func (r *OrderRepo) MarkDeliveredTx(ctx context.Context, tx db.Tx, id, deliveryID int64) (bool, error) {
	tag, err := tx.Exec(ctx, `
        UPDATE orders
        SET
            dispatch_status = 'Delivered',
            delivered = TRUE,
            updated_at = now()
        WHERE id = $1
          AND dispatch_status = 'Dispatched'
          AND delivery_id = $2
    `, id, deliveryID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
