package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TxRepos exposes the repositories bound to one open transaction.
type TxRepos interface {
	Catalog() CatalogRepository
	Variants() VariantRepository
	Cart() CartRepository
	Orders() OrderRepository
	Payments() PaymentRepository
}

// TransactionManager hides begin, commit and rollback from the services. The
// transaction commits when fn returns nil and rolls back otherwise.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

type txRepos struct {
	catalog  CatalogRepository
	variants VariantRepository
	cart     CartRepository
	orders   OrderRepository
	payments PaymentRepository
}

func (r *txRepos) Catalog() CatalogRepository  { return r.catalog }
func (r *txRepos) Variants() VariantRepository { return r.variants }
func (r *txRepos) Cart() CartRepository        { return r.cart }
func (r *txRepos) Orders() OrderRepository     { return r.orders }
func (r *txRepos) Payments() PaymentRepository { return r.payments }

type txManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) TransactionManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(r TxRepos) error) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	repos := &txRepos{
		catalog:  NewCatalogRepo(tx),
		variants: NewVariantRepo(tx),
		cart:     NewCartRepo(tx),
		orders:   NewOrderRepo(tx),
		payments: NewPaymentRepo(tx),
	}

	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("failed to roll back: %w", rbErr))
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
