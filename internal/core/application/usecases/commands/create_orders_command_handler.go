package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// CreateOrdersCommandHandler handles batch order creation.
// The whole batch shares one transaction: any invalid order or identifier
// collision rolls back every order of the batch.
type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrdersCommandHandler creates a handler for batch order creation.
func NewCreateOrdersCommandHandler(uowFactory OrderUoWFactory) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch creation command.
func (h CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders := make([]*order.Order, 0, len(cmd.Drafts()))
	for _, draft := range cmd.Drafts() {
		newOrder, err := order.NewOrder(draft.OrderID(), draft.Weight(), draft.Region(), draft.DeliveryHours())
		if err != nil {
			return err
		}
		orders = append(orders, newOrder)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	for _, newOrder := range orders {
		if err := orderRepo.Add(ctx, newOrder); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
