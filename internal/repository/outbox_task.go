package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// OrderEventPayload is the JSON body published for every order transition.
type OrderEventPayload struct {
	Event          string          `json:"event"`
	OrderID        int64           `json:"order_id"`
	DispatchStatus string          `json:"dispatch_status"`
	ProductName    string          `json:"product_name,omitempty"`
	Quantity       int32           `json:"quantity,omitempty"`
	Total          decimal.Decimal `json:"total"`
	CustomerID     int64           `json:"customer_id"`
	DeliveryID     *int64          `json:"delivery_id,omitempty"`
	ETA            string          `json:"eta,omitempty"`
	ActorID        int64           `json:"actor_id"`
	OccurredAt     time.Time       `json:"occurred_at"`
}
