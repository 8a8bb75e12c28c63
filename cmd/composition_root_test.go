package cmd_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"orders/cmd"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "orders.db") + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
	return db
}

func testConfig() cmd.Config {
	return cmd.Config{LockTTL: time.Second, LockRetries: 50}
}

func createOrder(t *testing.T, root *cmd.CompositionRoot) kernel.UUID {
	t.Helper()
	customer, err := kernel.NewCustomer(7, "buyer@example.com", "Ivan Petrov")
	require.NoError(t, err)
	address, err := kernel.NewDeliveryAddress("Lenina 1", "Moscow", "")
	require.NoError(t, err)

	id := kernel.NewUUID()
	cmdCreate, err := commands.NewCreateOrderCommand(id, "", customer, address, []commands.ItemInput{
		{ProductID: 1, ProductName: "Keyboard", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{ProductID: 2, ProductName: "Mouse", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
	}, decimal.RequireFromString("7.50"))
	require.NoError(t, err)

	h := root.CreateCreateOrderCommandHandler()
	require.NoError(t, h.Handle(context.Background(), cmdCreate))
	return id
}

func getOrder(t *testing.T, root *cmd.CompositionRoot, id kernel.UUID) *queries.GetOrderQueryResponse {
	t.Helper()
	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)
	h := root.CreateGetOrderQueryHandler()
	snapshot, err := h.Handle(context.Background(), query)
	require.NoError(t, err)
	return snapshot
}

func TestCompositionRoot_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	root := cmd.NewCompositionRoot(testConfig(), openSQLite(t), nil, zap.NewNop())

	// Given a new order
	id := createOrder(t, &root)
	snapshot := getOrder(t, &root, id)
	assert.Equal(t, order.StatusPending, snapshot.Status)
	assert.Equal(t, "32.50", snapshot.TotalAmount.String())

	// When it is paid, processed and delivered
	pay, err := commands.NewTransitionPaymentStatusCommand(id, "paid")
	require.NoError(t, err)
	payHandler := root.CreateTransitionPaymentStatusCommandHandler()
	require.NoError(t, payHandler.Handle(ctx, pay))

	statusHandler := root.CreateTransitionOrderStatusCommandHandler()
	processing, err := commands.NewTransitionOrderStatusCommand(id, "processing", "")
	require.NoError(t, err)
	require.NoError(t, statusHandler.Handle(ctx, processing))

	fieldsHandler := root.CreateUpdateOrderFieldsCommandHandler()
	moveAddress, err := commands.NewUpdateOrderFieldsCommand(id, map[string]string{"address": "Tverskaya 5"})
	require.NoError(t, err)
	require.ErrorIs(t, fieldsHandler.Handle(ctx, moveAddress), order.ErrRestrictedField)

	delivered, err := commands.NewTransitionOrderStatusCommand(id, "delivered", "left at the door")
	require.NoError(t, err)
	require.NoError(t, statusHandler.Handle(ctx, delivered))

	// Then the stored order reflects every step
	snapshot = getOrder(t, &root, id)
	assert.Equal(t, order.StatusDelivered, snapshot.Status)
	assert.Equal(t, order.PaymentPaid, snapshot.PaymentStatus)
	assert.Equal(t, "Lenina 1", snapshot.DeliveryAddress)
	assert.Equal(t, "left at the door", snapshot.Notes)
	assert.NotNil(t, snapshot.PaidAt)
	assert.NotNil(t, snapshot.DeliveredAt)
	assert.Equal(t, 3, snapshot.Version)

	// And a refund couples the payment status
	refund, err := commands.NewRefundOrderCommand(id, "")
	require.NoError(t, err)
	require.NoError(t, statusHandler.Handle(ctx, refund))

	snapshot = getOrder(t, &root, id)
	assert.Equal(t, order.StatusRefunded, snapshot.Status)
	assert.Equal(t, order.PaymentRefunded, snapshot.PaymentStatus)
	assert.NotNil(t, snapshot.RefundedAt)

	active, err := root.CreateGetActiveOrdersQueryHandler().Handle(ctx, queries.NewGetActiveOrdersQuery())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCompositionRoot_ReplaceItemsWhilePending(t *testing.T) {
	ctx := context.Background()
	root := cmd.NewCompositionRoot(testConfig(), openSQLite(t), nil, nil)
	id := createOrder(t, &root)

	replace, err := commands.NewReplaceOrderItemsCommand(id, []commands.ItemInput{
		{ProductID: 3, ProductName: "Monitor", Quantity: 1, UnitPrice: decimal.RequireFromString("99.99")},
	})
	require.NoError(t, err)
	h := root.CreateReplaceOrderItemsCommandHandler()
	require.NoError(t, h.Handle(ctx, replace))

	snapshot := getOrder(t, &root, id)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "Monitor", snapshot.Items[0].ProductName)
	assert.Equal(t, "99.99", snapshot.Subtotal.String())
	assert.Equal(t, "107.49", snapshot.TotalAmount.String())
}

func TestCompositionRoot_ConcurrentTransitionsSerialize(t *testing.T) {
	// Given an order and a redis-backed locker
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	root := cmd.NewCompositionRoot(testConfig(), openSQLite(t), client, nil)
	id := createOrder(t, &root)

	// When two writers race to cancel and to start processing
	cancel, err := commands.NewCancelOrderCommand(id, "")
	require.NoError(t, err)
	processing, err := commands.NewTransitionOrderStatusCommand(id, "processing", "")
	require.NoError(t, err)

	h := root.CreateTransitionOrderStatusCommandHandler()
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i, c := range []commands.TransitionOrderStatusCommand{cancel, processing} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = h.Handle(ctx, c)
		}()
	}
	wg.Wait()

	// Then the outcome equals some serial order of the two
	snapshot := getOrder(t, &root, id)
	switch snapshot.Status {
	case order.StatusCancelled:
		if results[1] == nil {
			// processing ran first, then cancel
			assert.NoError(t, results[0])
			assert.Equal(t, 2, snapshot.Version)
		} else {
			assert.NoError(t, results[0])
			assert.ErrorIs(t, results[1], order.ErrInvalidStatusTransition)
			assert.Equal(t, 1, snapshot.Version)
		}
	default:
		t.Fatalf("unexpected status %s", snapshot.Status)
	}
}
