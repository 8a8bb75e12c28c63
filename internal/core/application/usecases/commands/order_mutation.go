package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"go.uber.org/zap"
)

// orderMutation runs one domain operation against a stored order.
//
// The order lock is taken before the transaction begins and released after it ends.
// The mutation runs in memory; when it fails the transaction is rolled back
// without any write.
type orderMutation struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	logger     *zap.Logger
}

func (m orderMutation) apply(ctx context.Context, orderID kernel.UUID, mutate func(*order.Order) error) error {
	unlock, err := m.locker.Lock(ctx, orderID)
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := unlock(ctx); unlockErr != nil {
			m.logger.Warn("failed to release order lock",
				zap.String("order_id", orderID.String()),
				zap.Error(unlockErr),
			)
		}
	}()

	uow := m.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = mutate(aggregate); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
