package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/run"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/courierlock"
	"dispatch/internal/pkg/errs"
)

// AssignOrdersCommandHandler opens a delivery run for a courier.
// The operation is idempotent: while the courier already has an open run,
// repeated calls return that run's order set unchanged instead of packing
// again. The run snapshots the courier's transport type at assignment
// time; later vehicle changes do not alter the snapshot.
type AssignOrdersCommandHandler struct {
	uowFactory UoWFactory
	locks      *courierlock.KeyedMutex
	dispatcher services.Dispatcher
	now        func() time.Time
}

// NewAssignOrdersCommandHandler creates a handler for assignment operations.
func NewAssignOrdersCommandHandler(
	uowFactory UoWFactory,
	locks *courierlock.KeyedMutex,
) AssignOrdersCommandHandler {
	return AssignOrdersCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		dispatcher: services.NewDispatcher(),
		now:        time.Now,
	}
}

// Handle processes the assignment command.
func (h AssignOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd AssignOrdersCommand,
) (AssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignResult{}, err
	}

	h.locks.Lock(cmd.CourierID())
	defer h.locks.Unlock(cmd.CourierID())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignee, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return AssignResult{}, err
	}

	openRun, err := uow.RunRepository().GetOpenByCourier(ctx, assignee.ID())
	if err == nil {
		return h.existingRunResult(ctx, uow, openRun)
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return AssignResult{}, err
	}

	pool, err := uow.OrderRepository().GetAllUnassigned(ctx)
	if err != nil {
		return AssignResult{}, err
	}

	candidates, err := h.dispatcher.SelectCandidates(assignee, pool)
	if err != nil {
		return AssignResult{}, err
	}

	packed := h.dispatcher.Pack(candidates, assignee.Capacity())
	if len(packed) == 0 {
		if err = uow.Commit(ctx); err != nil {
			return AssignResult{}, err
		}
		return AssignResult{Assigned: false}, nil
	}

	newRun, err := run.NewRun(assignee.ID(), assignee.Transport(), h.now())
	if err != nil {
		return AssignResult{}, err
	}

	if err = uow.RunRepository().Add(ctx, newRun); err != nil {
		return AssignResult{}, err
	}

	orderRepo := uow.OrderRepository()
	for _, packedOrder := range packed {
		if err = packedOrder.AssignToRun(newRun.ID()); err != nil {
			return AssignResult{}, err
		}
		if err = orderRepo.Update(ctx, packedOrder); err != nil {
			return AssignResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignResult{}, err
	}

	return AssignResult{
		Assigned: true,
		RunID:    newRun.ID(),
		OrderIDs: collectOrderIDs(packed),
	}, nil
}

// existingRunResult reproduces the idempotent answer for a courier whose
// run is already open: the attached undelivered order set, unchanged.
func (h AssignOrdersCommandHandler) existingRunResult(
	ctx context.Context,
	uow UoW,
	openRun *run.Run,
) (AssignResult, error) {
	held, err := uow.OrderRepository().GetAllByRun(ctx, openRun.ID())
	if err != nil {
		return AssignResult{}, err
	}

	undelivered := make([]*order.Order, 0, len(held))
	for _, o := range held {
		if !o.Delivered() {
			undelivered = append(undelivered, o)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignResult{}, err
	}

	return AssignResult{
		Assigned: true,
		RunID:    openRun.ID(),
		OrderIDs: collectOrderIDs(undelivered),
	}, nil
}

func collectOrderIDs(orders []*order.Order) []kernel.OrderID {
	ids := make([]kernel.OrderID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids
}
