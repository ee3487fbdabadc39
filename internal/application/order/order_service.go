package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderService handles order queries and the admin fulfilment operations
type OrderService struct {
	orderRepo order.Repository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetForUser returns one order, verifying it belongs to the given user
func (s *OrderService) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		// Do not reveal that the order exists
		return nil, shared.ErrNotFound
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListForUser returns the user's own orders, newest first
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	f := s.toSharedFilter(filter)

	orders, err := s.orderRepo.FindByUser(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.paginate(orders, total, f), nil
}

// Get returns one order without an ownership check, for the admin panel
func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListAll returns every order, optionally filtered by status, for the
// admin panel
func (s *OrderService) ListAll(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	f := s.toSharedFilter(filter)

	var (
		orders []order.Order
		total  int64
		err    error
	)
	if filter.Status != "" {
		status := order.Status(filter.Status)
		orders, err = s.orderRepo.FindByStatus(ctx, status, f)
		if err != nil {
			return nil, err
		}
		total, err = s.orderRepo.CountByStatus(ctx, status)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, f)
		if err != nil {
			return nil, err
		}
		total, err = s.orderRepo.Count(ctx)
	}
	if err != nil {
		return nil, err
	}

	return s.paginate(orders, total, f), nil
}

// MarkShipped transitions a paid order to shipped
func (s *OrderService) MarkShipped(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.MarkShipped(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// Cancel cancels a pending or paid order
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

func (s *OrderService) toSharedFilter(filter OrderListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	return f
}

func (s *OrderService) paginate(orders []order.Order, total int64, f shared.Filter) *shared.Paginated[OrderResponse] {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	result := shared.NewPaginated(responses, total, f.Page, f.PageSize)
	return &result
}
