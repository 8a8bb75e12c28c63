package ports

import "context"

// UnitOfWorkFactory hands out one UnitOfWork per command execution.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes the load and save of one order to a single transaction.
// Command handlers take the order lock first and begin the transaction second,
// so the transaction never waits on another writer of the same order.
type UnitOfWork interface {
	// Begin opens the transaction.
	Begin(ctx context.Context) error

	// Commit makes the writes permanent. It fails when no transaction is open.
	Commit(ctx context.Context) error

	// Rollback discards the writes. After a successful Commit it is a harmless error.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository that reads and writes inside the transaction.
	OrderRepository() OrderRepository
}
