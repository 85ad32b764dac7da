package cmd

import (
	"gorm.io/gorm"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/courierlock"
	"dispatch/internal/pkg/metrics"
)

// CompositionRoot wires the application's use case handlers to their
// infrastructure. The courier lock and metrics engine are shared across
// handlers: the lock serializes per-courier mutations, the engine counts
// business outcomes.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locks      *courierlock.KeyedMutex
	engine     *metrics.Engine
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:      courierlock.NewKeyedMutex(),
		engine:     metrics.NewEngine(),
	}
}

func (c *CompositionRoot) MetricsEngine() *metrics.Engine {
	return c.engine
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrdersCommandHandler() commands.CreateOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCourierCommandHandler() commands.UpdateCourierCommandHandler {
	return commands.NewUpdateCourierCommandHandler(c.fullUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateAssignOrdersCommandHandler() commands.AssignOrdersCommandHandler {
	return commands.NewAssignOrdersCommandHandler(c.fullUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.fullUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateGetCourierInfoQueryHandler() queries.GetCourierInfoQueryHandler {
	return queries.NewGetCourierInfoQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCourierIDsQueryHandler() queries.ListCourierIDsQueryHandler {
	return queries.NewListCourierIDsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
