package xcontext

import (
	"context"

	"gorm.io/gorm"
)

type dbTransaction struct {
	tx    *gorm.DB
	owner bool
	done  bool
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction opened by WithDBTransaction if there is one, otherwise the
// database attached by WithDB.
func DB(ctx context.Context) *gorm.DB {
	if t, ok := ctx.Value(dbTxKey{}).(*dbTransaction); ok && !t.done {
		return t.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db.WithContext(ctx)
}

// WithDBTransaction begins a transaction and attaches it to the returned context. If the
// context already carries an open transaction, that one is reused and only its owner can
// commit or rollback it.
func WithDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(dbTxKey{}).(*dbTransaction); ok && !t.done {
		return context.WithValue(ctx, dbTxKey{}, &dbTransaction{tx: t.tx, owner: false})
	}

	return context.WithValue(ctx, dbTxKey{}, &dbTransaction{tx: DB(ctx).Begin(), owner: true})
}

func CommitDBTransaction(ctx context.Context) error {
	t, ok := ctx.Value(dbTxKey{}).(*dbTransaction)
	if !ok || t.done || !t.owner {
		return nil
	}

	t.done = true
	return t.tx.Commit().Error
}

// RollbackDBTransaction is a no-op once the transaction has been committed, so it is safe to
// defer right after WithDBTransaction.
func RollbackDBTransaction(ctx context.Context) {
	t, ok := ctx.Value(dbTxKey{}).(*dbTransaction)
	if !ok || t.done || !t.owner {
		return
	}

	t.done = true
	t.tx.Rollback()
}
