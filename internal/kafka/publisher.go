package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/db"
	"gitlab.com/sprinkles/storefront/internal/metrics"
	"gitlab.com/sprinkles/storefront/internal/repository"
	"gitlab.com/sprinkles/storefront/internal/storage"
)

var errShutdown = errors.New("publisher shutdown during batch processing")

const releaseTimeout = 5 * time.Second

type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Publisher moves order events from the outbox table to Kafka.
type Publisher struct {
	db             db.DB
	repo           storage.OutboxTaskRepository
	producer       Producer
	config         PublisherConfig
	logger         *zap.Logger
	wg             sync.WaitGroup
	shutdownSignal chan struct{}
	stopOnce       sync.Once
	timeNow        func() time.Time
}

func NewPublisher(db db.DB, repo storage.OutboxTaskRepository, producer Producer, config PublisherConfig, logger *zap.Logger) *Publisher {
	return &Publisher{
		db:             db,
		repo:           repo,
		producer:       producer,
		config:         config,
		logger:         logger.With(zap.String("component", "outbox_publisher")),
		shutdownSignal: make(chan struct{}),
		timeNow:        time.Now,
	}
}

// Run polls the outbox until ctx is cancelled or Shutdown is called.
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("starting outbox publisher", zap.Duration("poll_interval", p.config.PollInterval))
	p.wg.Add(1)

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil && !errors.Is(err, errShutdown) {
				p.logger.Error("failed to process outbox batch", zap.Error(err))
			}
		case <-p.shutdownSignal:
			p.logger.Info("outbox publisher received shutdown signal, stopping")
			p.wg.Done()
			return nil
		case <-ctx.Done():
			p.logger.Info("outbox publisher context cancelled, stopping")
			p.wg.Done()
			p.Shutdown()
			return nil
		}
	}
}

func (p *Publisher) Shutdown() {
	p.stopOnce.Do(func() {
		p.logger.Info("initiating outbox publisher shutdown")
		close(p.shutdownSignal)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			p.logger.Info("outbox publisher shutdown complete")
		case <-shutdownCtx.Done():
			p.logger.Warn("outbox publisher shutdown timed out")
		}

		if err := p.producer.Close(); err != nil {
			p.logger.Error("failed to close kafka producer", zap.Error(err))
		}
	})
}

// processBatch claims a batch of tasks by marking them PROCESSING in one
// transaction, then sends each task outside of it.
func (p *Publisher) processBatch(ctx context.Context) error {
	var tasks []*repository.OutboxTask
	err := db.WithTx(ctx, p.db, func(tx db.Tx) error {
		var err error
		tasks, err = p.repo.GetProcessableTasksTx(ctx, tx, p.config.BatchSize, p.config.MaxAttempts)
		if err != nil {
			return fmt.Errorf("failed to get processable tasks: %w", err)
		}
		for _, task := range tasks {
			err := p.repo.UpdateTaskStatusTx(ctx, tx, task.ID, repository.TaskStatusProcessing, task.Attempts, nil, nil)
			if err != nil {
				return fmt.Errorf("failed to mark task %s as PROCESSING: %w", task.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}

	p.logger.Debug("fetched outbox tasks", zap.Int("count", len(tasks)))

	for i, task := range tasks {
		select {
		case <-p.shutdownSignal:
			p.logger.Info("shutdown during batch processing, releasing unsent tasks", zap.Int("count", len(tasks)-i))
			p.releaseTasks(tasks[i:])
			return errShutdown
		case <-ctx.Done():
			p.releaseTasks(tasks[i:])
			return ctx.Err()
		default:
		}

		if err := p.processSingleTask(ctx, task); err != nil {
			p.logger.Error("failed to process outbox task", zap.Stringer("task_id", task.ID), zap.Error(err))
		}
	}
	return nil
}

// releaseTasks hands claimed but unsent tasks back to the outbox with the
// status they had before the claim. The caller's context may already be
// cancelled, so a short detached one is used.
func (p *Publisher) releaseTasks(tasks []*repository.OutboxTask) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	for _, task := range tasks {
		status := task.Status
		if status == repository.TaskStatusProcessing {
			status = repository.TaskStatusCreated
		}
		err := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, status, task.Attempts, task.LastError, nil)
		if err != nil {
			p.logger.Warn("failed to release outbox task, it will be retried after its lease expires",
				zap.Stringer("task_id", task.ID), zap.Error(err))
		}
	}
}

// messageKey keys events by order id so every event of one order lands in
// the same partition.
func messageKey(task *repository.OutboxTask) []byte {
	var payload struct {
		OrderID int64 `json:"order_id"`
	}
	if err := json.Unmarshal(task.Payload, &payload); err != nil || payload.OrderID == 0 {
		return []byte(task.ID.String())
	}
	return []byte(strconv.FormatInt(payload.OrderID, 10))
}

func (p *Publisher) processSingleTask(ctx context.Context, task *repository.OutboxTask) error {
	log := p.logger.With(zap.Stringer("task_id", task.ID), zap.Int("attempt", task.Attempts+1))

	err := p.producer.SendMessage(ctx, task.Topic, messageKey(task), task.Payload)
	if err != nil {
		newAttempts := task.Attempts + 1
		errMsg := err.Error()

		if newAttempts >= p.config.MaxAttempts {
			log.Warn("outbox task reached max attempts, giving up", zap.Int("max_attempts", p.config.MaxAttempts))
		}

		updateErr := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusFailed, newAttempts, &errMsg, nil)
		if updateErr != nil {
			log.Error("failed to record send failure", zap.Error(updateErr), zap.NamedError("send_error", err))
			return fmt.Errorf("failed to update task status after send failure: %w", updateErr)
		}
		return err
	}

	now := p.timeNow().UTC()
	if err := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusDone, task.Attempts+1, nil, &now); err != nil {
		return fmt.Errorf("failed to update task status after successful send: %w", err)
	}
	metrics.OutboxPublishedTotal.Inc()
	log.Debug("outbox task published")
	return nil
}
