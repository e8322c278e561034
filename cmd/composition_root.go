package cmd

import (
	"log/slog"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyItemChangeCommandHandler() commands.ApplyItemChangeCommandHandler {
	return commands.NewApplyItemChangeCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderLocationCommandHandler() commands.ChangeOrderLocationCommandHandler {
	return commands.NewChangeOrderLocationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	return commands.NewUpdateOrderDetailsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteLocationCommandHandler() commands.DeleteLocationCommandHandler {
	return commands.NewDeleteLocationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateSettlePaymentCommandHandler() commands.SettlePaymentCommandHandler {
	return commands.NewSettlePaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceAssignmentCommandHandler() commands.AdvanceAssignmentCommandHandler {
	return commands.NewAdvanceAssignmentCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateReconcileSnapshotsCommandHandler() commands.ReconcileSnapshotsCommandHandler {
	return commands.NewReconcileSnapshotsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateResetRiderDayCountersCommandHandler() commands.ResetRiderDayCountersCommandHandler {
	return commands.NewResetRiderDayCountersCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderProjectionQueryHandler() queries.GetOrderProjectionQueryHandler {
	return queries.NewGetOrderProjectionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableRidersQueryHandler() queries.GetAvailableRidersQueryHandler {
	return queries.NewGetAvailableRidersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateResetRiderDayCountersCommandHandler(),
		c.CreateReconcileSnapshotsCommandHandler(),
		logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}
