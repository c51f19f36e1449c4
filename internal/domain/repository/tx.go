package repository

import "context"

// TxManager runs a function inside a database transaction. The context passed
// to fn carries the transaction; repositories resolve it so every call made
// with that context joins the same transaction. fn returning an error rolls
// everything back.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
