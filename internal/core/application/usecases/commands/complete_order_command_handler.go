package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/courierlock"
	"dispatch/internal/pkg/errs"
)

// CompleteOrderCommandHandler marks an order of a courier's open run as
// delivered. Preconditions collapse into a single not-found failure: a
// missing courier, a courier without an open run, an unknown order, an
// order held by a different run and an already delivered order are all
// indistinguishable to the caller. An out-of-order timestamp is the one
// distinct failure: run.ErrCompletionNotAfterLastEvent, leaving the run's
// clock untouched.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	locks      *courierlock.KeyedMutex
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(
	uowFactory UoWFactory,
	locks *courierlock.KeyedMutex,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the completion command and returns the delivered order.
func (h CompleteOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	h.locks.Lock(cmd.CourierID())
	defer h.locks.Unlock(cmd.CourierID())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CourierRepository().Get(ctx, cmd.CourierID()); err != nil {
		return nil, err
	}

	runRepo := uow.RunRepository()
	openRun, err := runRepo.GetOpenByCourier(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}

	held, err := uow.OrderRepository().GetAllByRun(ctx, openRun.ID())
	if err != nil {
		return nil, err
	}

	var target *order.Order
	undelivered := 0
	for _, o := range held {
		if !o.Delivered() {
			undelivered++
		}
		if o.ID() == cmd.OrderID() {
			target = o
		}
	}
	if target == nil || target.Delivered() {
		return nil, errs.NewObjectNotFoundError("orderId", cmd.OrderID().Int64())
	}

	since := openRun.LastEventAt()
	if err = openRun.AdvanceTo(cmd.CompletedAt()); err != nil {
		return nil, err
	}
	if err = target.Complete(cmd.CompletedAt(), since); err != nil {
		return nil, err
	}

	if undelivered == 1 {
		if err = openRun.Close(); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return nil, err
	}
	if err = runRepo.Update(ctx, openRun); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
