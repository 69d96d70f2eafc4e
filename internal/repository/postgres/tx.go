package postgres

import (
	"context"
	"fmt"

	"github.com/frontandrew/rental/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// executor - общий интерфейс pgxpool.Pool и pgx.Tx
type executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txContextKey - ключ контекста для активной транзакции
type txContextKey struct{}

// txManager выполняет функцию в одной pgx транзакции.
// Репозитории подхватывают транзакцию из контекста, поэтому обе записи
// перехода (бронирование + автомобиль) коммитятся атомарно.
type txManager struct {
	db *pgxpool.Pool
}

// NewTxManager создает транзакционный TxManager
func NewTxManager(db *pgxpool.Pool) repository.TxManager {
	return &txManager{db: db}
}

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// queryEngine возвращает активную транзакцию из контекста либо пул
func queryEngine(ctx context.Context, db *pgxpool.Pool) executor {
	if tx, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}
