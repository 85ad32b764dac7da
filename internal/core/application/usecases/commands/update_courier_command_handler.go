package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/courierlock"
	"dispatch/internal/pkg/errs"
)

// UpdateCourierCommandHandler applies a courier profile patch and then
// reconciles the courier's open run, if any: held undelivered orders are
// re-tested against the new attributes and re-packed at the new capacity,
// misfits are detached, and a run left without orders is deleted.
//
// Reconciliation only ever removes orders from a run; it never pulls new
// ones in and never touches delivered orders.
type UpdateCourierCommandHandler struct {
	uowFactory UoWFactory
	locks      *courierlock.KeyedMutex
	dispatcher services.Dispatcher
}

// NewUpdateCourierCommandHandler creates a handler for courier profile updates.
func NewUpdateCourierCommandHandler(
	uowFactory UoWFactory,
	locks *courierlock.KeyedMutex,
) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		dispatcher: services.NewDispatcher(),
	}
}

// Handle processes the patch command and returns the updated courier.
func (h UpdateCourierCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCourierCommand,
) (*courier.Courier, error) {
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

	courierRepo := uow.CourierRepository()
	patched, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}

	if err = h.applyPatch(patched, cmd); err != nil {
		return nil, err
	}

	if err = courierRepo.Update(ctx, patched); err != nil {
		return nil, err
	}

	if err = h.reconcile(ctx, uow, patched); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return patched, nil
}

func (h UpdateCourierCommandHandler) applyPatch(patched *courier.Courier, cmd UpdateCourierCommand) error {
	if transport, ok := cmd.Transport(); ok {
		if err := patched.ChangeTransport(transport); err != nil {
			return err
		}
	}
	if regions, ok := cmd.Regions(); ok {
		if err := patched.SetRegions(regions); err != nil {
			return err
		}
	}
	if workingHours, ok := cmd.WorkingHours(); ok {
		if err := patched.SetWorkingHours(workingHours); err != nil {
			return err
		}
	}
	return nil
}

func (h UpdateCourierCommandHandler) reconcile(
	ctx context.Context,
	uow UoW,
	patched *courier.Courier,
) error {
	runRepo := uow.RunRepository()
	openRun, err := runRepo.GetOpenByCourier(ctx, patched.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	held, err := orderRepo.GetAllByRun(ctx, openRun.ID())
	if err != nil {
		return err
	}

	keep, detach, err := h.dispatcher.ReconcileRun(patched, held)
	if err != nil {
		return err
	}

	for _, misfit := range detach {
		if err = misfit.Detach(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, misfit); err != nil {
			return err
		}
	}

	if len(keep) > 0 {
		return nil
	}

	// No undelivered orders remain. A run that already saw deliveries is
	// closed to preserve its history; a run that never did is deleted.
	for _, o := range held {
		if o.Delivered() {
			if err = openRun.Close(); err != nil {
				return err
			}
			return runRepo.Update(ctx, openRun)
		}
	}

	return runRepo.Delete(ctx, openRun.ID())
}
