package storage

import (
	"context"
	"fmt"
)

// ResolveDashboard loads what the account's role sees on /dashboard.
func (s *Storage) ResolveDashboard(ctx context.Context, account Account) (*Dashboard, error) {
	switch account.Role {
	case RoleCustomer:
		products, err := s.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return &Dashboard{Role: RoleCustomer, Products: products}, nil

	case RoleDelivery:
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		repoOrders, err := s.orderRepo.GetByAddress(ctx, account.Address)
		if err != nil {
			return nil, classify("resolve_dashboard", err)
		}
		eligible, yours := PartitionDeliveryOrders(toOrders(repoOrders), account.ID)
		return &Dashboard{Role: RoleDelivery, Eligible: eligible, Yours: yours}, nil

	case RoleAdmin:
		return &Dashboard{Role: RoleAdmin}, nil
	}
	return nil, fmt.Errorf("%w: account %d has role %d", ErrUnknownRole, account.ID, int16(account.Role))
}

// PartitionDeliveryOrders splits orders at a delivery account's address into
// the ones still open for claiming and the ones it is currently delivering.
func PartitionDeliveryOrders(orders []Order, deliveryID int64) (eligible, yours []Order) {
	for _, o := range orders {
		switch {
		case o.DispatchStatus == StatusPlaced:
			eligible = append(eligible, o)
		case o.DeliveryID != nil && *o.DeliveryID == deliveryID && o.DispatchStatus != StatusDelivered:
			yours = append(yours, o)
		}
	}
	return eligible, yours
}

func PartitionCustomerOrders(orders []Order) (current, past []Order) {
	for _, o := range orders {
		if o.DispatchStatus == StatusDelivered {
			past = append(past, o)
		} else {
			current = append(current, o)
		}
	}
	return current, past
}
