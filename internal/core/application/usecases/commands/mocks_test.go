package commands_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderLocker struct {
	mock.Mock
	unlocked int
}

func (m *MockOrderLocker) Lock(ctx context.Context, orderID kernel.UUID) (ports.Unlock, error) {
	args := m.Called(ctx, orderID)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) error {
		m.unlocked++
		return nil
	}, nil
}

// mutationMocks wires a factory, unit of work, repository and locker for handlers
// that load and update an existing order.
type mutationMocks struct {
	factory *MockOrderUoWFactory
	uow     *MockOrderUoW
	repo    *MockOrderRepository
	locker  *MockOrderLocker
}

func newMutationMocks() mutationMocks {
	return mutationMocks{
		factory: new(MockOrderUoWFactory),
		uow:     new(MockOrderUoW),
		repo:    new(MockOrderRepository),
		locker:  new(MockOrderLocker),
	}
}

// expectCommitted sets up the full successful sequence for stored.
func (m mutationMocks) expectCommitted(stored *order.Order) {
	mock.InOrder(
		m.locker.On("Lock", mock.Anything, stored.ID()).Return(nil).Once(),
		m.factory.On("Create").Return(m.uow).Once(),
		m.uow.On("Begin", mock.Anything).Return(nil).Once(),
		m.uow.On("OrderRepository").Return(m.repo).Once(),
		m.repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		m.repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		m.uow.On("Commit", mock.Anything).Return(nil).Once(),
		m.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
}

// expectRejected sets up a sequence where the domain refuses the change, so no
// Update or Commit may happen.
func (m mutationMocks) expectRejected(stored *order.Order) {
	mock.InOrder(
		m.locker.On("Lock", mock.Anything, stored.ID()).Return(nil).Once(),
		m.factory.On("Create").Return(m.uow).Once(),
		m.uow.On("Begin", mock.Anything).Return(nil).Once(),
		m.uow.On("OrderRepository").Return(m.repo).Once(),
		m.repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		m.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
}

func (m mutationMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.repo.AssertExpectations(t)
	m.locker.AssertExpectations(t)
}

var storedAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func validCustomer(t *testing.T) kernel.Customer {
	t.Helper()
	c, err := kernel.NewCustomer(7, "buyer@example.com", "Ivan Petrov")
	require.NoError(t, err)
	return c
}

func validAddress(t *testing.T) kernel.DeliveryAddress {
	t.Helper()
	a, err := kernel.NewDeliveryAddress("Lenina 1", "Moscow", "")
	require.NoError(t, err)
	return a
}

func validItems() []commands.ItemInput {
	return []commands.ItemInput{
		{ProductID: 1, ProductName: "Mug", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{ProductID: 2, ProductName: "Tea", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
	}
}

// storedOrder returns an order as the repository would load it: one line of 10.00
// and a delivery charge of 2.00.
func storedOrder(t *testing.T, status order.Status, payment order.PaymentStatus) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 100, "Product", 1, decimal.RequireFromString("10.00"))
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.State{
		ID:             kernel.NewUUID(),
		Number:         "ORD-STORED01",
		Customer:       validCustomer(t),
		Address:        validAddress(t),
		Status:         status,
		PaymentStatus:  payment,
		Items:          []*order.Item{item},
		DeliveringCost: decimal.RequireFromString("2.00"),
		CreatedAt:      storedAt,
		UpdatedAt:      storedAt,
		Version:        1,
	})
	require.NoError(t, err)
	return o
}
