package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
)

var (
	// ErrUnsupportedDB возвращается, если executor не умеет открывать транзакции
	ErrUnsupportedDB = errors.New("txmanager: db type does not support transactions")

	// ErrBegin возвращается при ошибке открытия транзакции
	ErrBegin = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается при ошибке фиксации транзакции
	ErrCommit = errors.New("txmanager: failed to commit transaction")
)

// metricsBeginner реализуется *dbmetrics.DB
type metricsBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции, передавая её через контекст
// Работает как с *sql.DB, так и с *dbmetrics.DB
type TransactionManager struct {
	db dbmetrics.DBExecutor
}

func NewTransactionManager(db dbmetrics.DBExecutor) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.begin(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}
	return nil
}

func (m *TransactionManager) begin(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	switch db := m.db.(type) {
	case metricsBeginner:
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBegin, err)
		}
		return tx, nil
	case *sql.DB:
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBegin, err)
		}
		return &dbmetrics.SqlTxWrapper{Tx: tx}, nil
	default:
		return nil, ErrUnsupportedDB
	}
}
