package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrObjectNotFound     = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Account struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Role      int16     `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

type Product struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Category    string          `db:"category"`
	CreatedAt   time.Time       `db:"created_at"`
}

// Order keeps product and customer data as copied at checkout time.
type Order struct {
	ID             int64           `db:"id"`
	ProductName    string          `db:"product_name"`
	Quantity       int32           `db:"quantity"`
	CustomerID     int64           `db:"customer_id"`
	CustomerName   string          `db:"customer_name"`
	Address        string          `db:"address"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	Total          decimal.Decimal `db:"total"`
	DeliveryID     *int64          `db:"delivery_id"`
	DeliveryName   *string         `db:"delivery_name"`
	DispatchStatus string          `db:"dispatch_status"`
	Delivered      bool            `db:"delivered"`
	ETA            string          `db:"eta"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type HistoryEntry struct {
	ID        int64     `db:"id"`
	OrderID   int64     `db:"order_id"`
	Status    string    `db:"status"`
	ActorID   *int64    `db:"actor_id"`
	ChangedAt time.Time `db:"changed_at"`
}

type Session struct {
	ID        uuid.UUID `db:"id"`
	AccountID int64     `db:"account_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
