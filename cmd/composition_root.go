package cmd

import (
	"orders/internal/adapters/in/http"
	"orders/internal/adapters/out/locker"
	"orders/internal/adapters/out/postgres"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/ports"
	"orders/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locker     ports.OrderLocker
	logger     *zap.Logger
	registry   *prometheus.Registry
	metrics    *metrics.OrderMetrics
}

// NewCompositionRoot wires the application. A nil redisClient selects the
// process-local locker, which is only correct while a single instance runs.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient *redis.Client, logger *zap.Logger) CompositionRoot {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var orderLocker ports.OrderLocker
	if redisClient != nil {
		orderLocker = locker.NewRedis(redisClient,
			locker.WithTTL(cfg.LockTTL),
			locker.WithRetries(cfg.LockRetries),
		)
		logger.Info("using redis order locker", zap.String("addr", cfg.RedisAddr))
	} else {
		orderLocker = locker.NewMemory()
		logger.Info("using in-process order locker")
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     orderLocker,
		logger:     logger,
		registry:   registry,
		metrics:    metrics.NewOrderMetrics(registry),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.logger, c.metrics)
}

func (c *CompositionRoot) CreateReplaceOrderItemsCommandHandler() commands.ReplaceOrderItemsCommandHandler {
	return commands.NewReplaceOrderItemsCommandHandler(c.orderUoWFactory(), c.locker, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateUpdateOrderFieldsCommandHandler() commands.UpdateOrderFieldsCommandHandler {
	return commands.NewUpdateOrderFieldsCommandHandler(c.orderUoWFactory(), c.locker, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWFactory(), c.locker, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateTransitionPaymentStatusCommandHandler() commands.TransitionPaymentStatusCommandHandler {
	return commands.NewTransitionPaymentStatusCommandHandler(c.orderUoWFactory(), c.locker, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the operational server. pinger may be nil.
func (c *CompositionRoot) CreateHTTPServer(pinger http.Pinger) *http.Server {
	return http.NewServer(pinger, c.registry)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
