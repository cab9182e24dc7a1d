package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/cache"
	"gitlab.com/sprinkles/storefront/internal/db"
	"gitlab.com/sprinkles/storefront/internal/repository"
)

const (
	defaultQueryTimeout = 5 * time.Second
	defaultOrderTopic   = "sprinkles.order-events"
)

// Storage is the order lifecycle engine. It owns every read and write the
// HTTP layer performs and is built once at startup.
type Storage struct {
	db          db.DB
	accountRepo AccountRepository
	productRepo ProductRepository
	orderRepo   OrderRepository
	historyRepo HistoryRepository
	outboxRepo  OutboxTaskRepository

	catalog      *cache.CatalogCache
	logger       *zap.Logger
	queryTimeout time.Duration
	orderTopic   string
	timeNow      func() time.Time
}

type Option func(*Storage)

func WithCatalogCache(c *cache.CatalogCache) Option {
	return func(s *Storage) { s.catalog = c }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Storage) { s.logger = logger }
}

func WithQueryTimeout(d time.Duration) Option {
	return func(s *Storage) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

func WithOrderTopic(topic string) Option {
	return func(s *Storage) {
		if topic != "" {
			s.orderTopic = topic
		}
	}
}

func NewStorage(
	database db.DB,
	accountRepo AccountRepository,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	historyRepo HistoryRepository,
	outboxRepo OutboxTaskRepository,
	opts ...Option,
) *Storage {
	s := &Storage{
		db:           database,
		accountRepo:  accountRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		historyRepo:  historyRepo,
		outboxRepo:   outboxRepo,
		logger:       zap.NewNop(),
		queryTimeout: defaultQueryTimeout,
		orderTopic:   defaultOrderTopic,
		timeNow:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

func requireRole(actor Account, role Role) error {
	if actor.Role != role {
		return fmt.Errorf("%w: %s required, got %s", ErrAuthorization, role, actor.Role)
	}
	return nil
}

// recordTransitionTx appends the history row and the outbox event for the
// order's current status. It must run in the transaction that changed it.
func (s *Storage) recordTransitionTx(ctx context.Context, tx db.Tx, order *repository.Order, event string, actorID int64, at time.Time) error {
	actor := actorID
	entry := &repository.HistoryEntry{
		OrderID:   order.ID,
		Status:    order.DispatchStatus,
		ActorID:   &actor,
		ChangedAt: at,
	}
	if err := s.historyRepo.CreateTx(ctx, tx, entry); err != nil {
		return fmt.Errorf("failed to add order history entry: %w", err)
	}

	payload, err := json.Marshal(repository.OrderEventPayload{
		Event:          event,
		OrderID:        order.ID,
		DispatchStatus: order.DispatchStatus,
		ProductName:    order.ProductName,
		Quantity:       order.Quantity,
		Total:          order.Total,
		CustomerID:     order.CustomerID,
		DeliveryID:     order.DeliveryID,
		ETA:            order.ETA,
		ActorID:        actorID,
		OccurredAt:     at,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}

	task := &repository.OutboxTask{
		Payload: payload,
		Topic:   s.orderTopic,
	}
	if err := s.outboxRepo.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s event: %w", event, err)
	}
	return nil
}
