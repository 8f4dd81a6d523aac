/*
Package order Application Layer - order and basket use cases

Every mutating use case runs inside its own Unit of Work:

	load order → lifecycle guard → catalog check → ledger mutation → save

The UoW writes the aggregate's events to the outbox in the same transaction
and retries the whole function on optimistic lock conflicts, so the order is
always re-read inside the function. Totals are priced after commit from live
product prices.
*/
package order

import (
	"context"

	"ordering/domain/order"
	"ordering/domain/product"
	"ordering/domain/shared"
	"ordering/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService Order application service
type ApplicationService struct {
	orderRepo          order.Repository
	orderDomainService *order.DomainService
	uowFactory         shared.UnitOfWorkFactory
}

// NewApplicationService Create order application service
func NewApplicationService(
	orderRepo order.Repository,
	productRepo product.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:          orderRepo,
		orderDomainService: order.NewDomainService(newProductCatalog(productRepo)),
		uowFactory:         uowFactory,
	}
}

// AddOrder creates an order, optionally with an initial basket
func (s *ApplicationService) AddOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	requests := toLineRequests(req.LineItems)

	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.orderDomainService.CheckBasket(ctx, requests); err != nil {
			return err
		}

		var err error
		o, err = order.NewOrder(requests)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("order created",
		zap.String("order_id", o.ID()),
		zap.Int("line_items", len(o.LineItems())))
	return s.render(ctx, o)
}

// GetOrder returns one priced order
func (s *ApplicationService) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, o)
}

// ListOrders returns every order, priced with a single catalog lookup
func (s *ApplicationService) ListOrders(ctx context.Context) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	valuations, err := s.orderDomainService.Value(ctx, orders...)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o, valuations[i])
	}
	return responses, nil
}

// UpdateOrder replaces the whole basket (Replace-all)
func (s *ApplicationService) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*OrderResponse, error) {
	requests := toLineRequests(req.LineItems)

	return s.mutate(ctx, id, func(ctx context.Context, o *order.Order) error {
		if err := s.orderDomainService.CheckBasket(ctx, requests); err != nil {
			return err
		}
		return o.ReplaceLineItems(requests)
	})
}

// AddLineItem adds one product to the basket
func (s *ApplicationService) AddLineItem(ctx context.Context, orderID, productID string, quantity int) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(ctx context.Context, o *order.Order) error {
		if err := s.orderDomainService.CheckAddable(ctx, productID); err != nil {
			return err
		}
		return o.AddLineItem(productID, quantity)
	})
}

// UpdateLineItem overwrites the quantity of an existing line
func (s *ApplicationService) UpdateLineItem(ctx context.Context, orderID, productID string, quantity int) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(ctx context.Context, o *order.Order) error {
		if err := s.orderDomainService.CheckExists(ctx, productID); err != nil {
			return err
		}
		return o.UpdateLineItemQuantity(productID, quantity)
	})
}

// RemoveLineItem deletes the line for productID
func (s *ApplicationService) RemoveLineItem(ctx context.Context, orderID, productID string) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(_ context.Context, o *order.Order) error {
		return o.RemoveLineItem(productID)
	})
}

// CancelOrder CREATED -> CANCELLED
func (s *ApplicationService) CancelOrder(ctx context.Context, id string) error {
	_, err := s.transition(ctx, id, (*order.Order).Cancel)
	return err
}

// CompleteOrder CREATED -> COMPLETE, the fulfillment hook
func (s *ApplicationService) CompleteOrder(ctx context.Context, id string) error {
	_, err := s.transition(ctx, id, (*order.Order).Complete)
	return err
}

func (s *ApplicationService) transition(ctx context.Context, id string, change func(*order.Order) error) (*order.Order, error) {
	o, err := s.apply(ctx, id, func(_ context.Context, o *order.Order) error {
		return change(o)
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("order status changed",
		zap.String("order_id", o.ID()),
		zap.String("status", string(o.Status())))
	return o, nil
}

// mutate runs a basket change and renders the result
func (s *ApplicationService) mutate(ctx context.Context, id string, change func(context.Context, *order.Order) error) (*OrderResponse, error) {
	o, err := s.apply(ctx, id, change)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, o)
}

// apply loads the order, fails fast on terminal states before change runs, then saves
func (s *ApplicationService) apply(ctx context.Context, id string, change func(context.Context, *order.Order) error) (*order.Order, error) {
	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := o.EnsureMutable(); err != nil {
			return err
		}
		if err := change(ctx, o); err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *ApplicationService) render(ctx context.Context, o *order.Order) (*OrderResponse, error) {
	valuations, err := s.orderDomainService.Value(ctx, o)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o, valuations[0]), nil
}
