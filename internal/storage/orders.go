package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/db"
	"gitlab.com/sprinkles/storefront/internal/metrics"
	"gitlab.com/sprinkles/storefront/internal/repository"
)

// PlaceOrder records a new order in the Placed state. Product name and unit
// price are stored as given, so later catalog edits never reach the order.
func (s *Storage) PlaceOrder(ctx context.Context, customer Account, productName string, quantity int32, unitPrice decimal.Decimal) (int64, error) {
	if err := requireRole(customer, RoleCustomer); err != nil {
		return 0, err
	}

	var messages []string
	if strings.TrimSpace(productName) == "" {
		messages = append(messages, "Please choose a product")
	}
	if quantity <= 0 {
		messages = append(messages, "Quantity must be at least 1")
	}
	if tooLong(productName, maxTextLength) {
		messages = append(messages, fmt.Sprintf("Product name must be at most %d characters", maxTextLength))
	}
	if !unitPrice.IsPositive() {
		messages = append(messages, "Price must be greater than zero")
	} else if unitPrice.GreaterThanOrEqual(maxPrice) || !unitPrice.Equal(unitPrice.Round(2)) {
		messages = append(messages, "Please enter a valid price")
	} else if quantity > 0 && unitPrice.Mul(decimal.NewFromInt32(quantity)).GreaterThanOrEqual(maxTotal) {
		messages = append(messages, "Order total is too large, please reduce the quantity")
	}
	if len(messages) > 0 {
		return 0, newValidationError(messages...)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.timeNow().UTC()
	order := &repository.Order{
		ProductName:    productName,
		Quantity:       quantity,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		Address:        customer.Address,
		UnitPrice:      unitPrice,
		Total:          unitPrice.Mul(decimal.NewFromInt32(quantity)).Round(2),
		DispatchStatus: string(StatusPlaced),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := db.WithTx(ctx, s.db, func(tx db.Tx) error {
		if _, err := s.orderRepo.CreateTx(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to add order: %w", err)
		}
		return s.recordTransitionTx(ctx, tx, order, EventOrderPlaced, customer.ID, now)
	})
	if err != nil {
		return 0, classify("place_order", err)
	}

	metrics.OrdersPlacedTotal.Inc()
	s.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", customer.ID),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return order.ID, nil
}

// ClaimOrder assigns a Placed order to the delivery account. Only one claim
// can ever succeed for an order; every other attempt gets ErrClaimLost.
func (s *Storage) ClaimOrder(ctx context.Context, delivery Account, orderID int64, eta string) error {
	if err := requireRole(delivery, RoleDelivery); err != nil {
		return err
	}

	eta = strings.TrimSpace(eta)
	switch {
	case eta == "":
		return newValidationError("Please enter an ETA")
	case utf8.RuneCountInString(eta) > maxETALength:
		return newValidationError(fmt.Sprintf("ETA must be at most %d characters", maxETALength))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.timeNow().UTC()
	err := db.WithTx(ctx, s.db, func(tx db.Tx) error {
		claimed, err := s.orderRepo.ClaimTx(ctx, tx, orderID, delivery.ID, delivery.Name, eta)
		if err != nil {
			return fmt.Errorf("failed to claim order: %w", err)
		}

		order, err := s.orderRepo.GetByIDTx(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("failed to get order: %w", err)
		}
		if !claimed {
			return ErrClaimLost
		}
		return s.recordTransitionTx(ctx, tx, order, EventOrderClaimed, delivery.ID, now)
	})
	if err != nil {
		if errors.Is(err, ErrClaimLost) {
			metrics.ClaimConflictsTotal.Inc()
			s.logger.Info("claim rejected", zap.Int64("order_id", orderID), zap.Int64("delivery_id", delivery.ID))
		}
		return classify("claim_order", err)
	}

	metrics.OrdersClaimedTotal.Inc()
	s.logger.Info("order claimed", zap.Int64("order_id", orderID), zap.Int64("delivery_id", delivery.ID), zap.String("eta", eta))
	return nil
}

// MarkDelivered completes a Dispatched order. Only the delivery account that
// claimed the order may complete it.
func (s *Storage) MarkDelivered(ctx context.Context, actor Account, orderID int64) error {
	if err := requireRole(actor, RoleDelivery); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.timeNow().UTC()
	err := db.WithTx(ctx, s.db, func(tx db.Tx) error {
		order, err := s.orderRepo.GetByIDTx(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("failed to get order: %w", err)
		}
		if DispatchStatus(order.DispatchStatus) != StatusDispatched {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.DispatchStatus, StatusDelivered)
		}
		if order.DeliveryID == nil || *order.DeliveryID != actor.ID {
			return fmt.Errorf("%w: order %d is assigned to another delivery account", ErrAuthorization, orderID)
		}

		updated, err := s.orderRepo.MarkDeliveredTx(ctx, tx, orderID, actor.ID)
		if err != nil {
			return fmt.Errorf("failed to mark order delivered: %w", err)
		}
		if !updated {
			return fmt.Errorf("%w: order %d changed concurrently", ErrInvalidTransition, orderID)
		}

		order.DispatchStatus = string(StatusDelivered)
		order.Delivered = true
		order.UpdatedAt = now
		return s.recordTransitionTx(ctx, tx, order, EventOrderDelivered, actor.ID, now)
	})
	if err != nil {
		return classify("mark_delivered", err)
	}

	metrics.OrdersDeliveredTotal.Inc()
	s.logger.Info("order delivered", zap.Int64("order_id", orderID), zap.Int64("delivery_id", actor.ID))
	return nil
}

// CustomerOrders returns the customer's orders split into current and past.
func (s *Storage) CustomerOrders(ctx context.Context, customer Account) (*CustomerOrders, error) {
	if err := requireRole(customer, RoleCustomer); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repoOrders, err := s.orderRepo.GetByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, classify("customer_orders", err)
	}
	current, past := PartitionCustomerOrders(toOrders(repoOrders))
	return &CustomerOrders{Current: current, Past: past}, nil
}

func (s *Storage) ListOrders(ctx context.Context, actor Account) ([]Order, error) {
	if err := requireRole(actor, RoleAdmin); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repoOrders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, classify("list_orders", err)
	}
	return toOrders(repoOrders), nil
}

func (s *Storage) OrderHistory(ctx context.Context, actor Account, orderID int64) (*Order, []HistoryEntry, error) {
	if err := requireRole(actor, RoleAdmin); err != nil {
		return nil, nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repoOrder, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, classify("order_history", err)
	}
	repoEntries, err := s.historyRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, classify("order_history", err)
	}

	order := toOrder(repoOrder)
	entries := make([]HistoryEntry, len(repoEntries))
	for i, e := range repoEntries {
		entries[i] = HistoryEntry{
			Status:    DispatchStatus(e.Status),
			ActorID:   e.ActorID,
			ChangedAt: e.ChangedAt,
		}
	}
	return &order, entries, nil
}
