package mocks

import (
	"context"
	"sync"

	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
)

// TxRepos hands out the mocks a service sees inside a transaction.
type TxRepos struct {
	CatalogRepo *CatalogRepository
	VariantRepo *VariantRepository
	CartRepo    *CartRepository
	OrderRepo   *OrderRepository
	PaymentRepo *PaymentRepository
}

var _ repository.TxRepos = (*TxRepos)(nil)

func (r *TxRepos) Catalog() repository.CatalogRepository  { return r.CatalogRepo }
func (r *TxRepos) Variants() repository.VariantRepository { return r.VariantRepo }
func (r *TxRepos) Cart() repository.CartRepository        { return r.CartRepo }
func (r *TxRepos) Orders() repository.OrderRepository     { return r.OrderRepo }
func (r *TxRepos) Payments() repository.PaymentRepository { return r.PaymentRepo }

// TransactionManager runs callbacks against Repos and counts how each
// transaction ended. BeginErr makes every WithinTx fail before the callback.
type TransactionManager struct {
	Repos    *TxRepos
	BeginErr error

	mu         sync.Mutex
	committed  int
	rolledBack int
}

var _ repository.TransactionManager = (*TransactionManager)(nil)

func NewTransactionManager(repos *TxRepos) *TransactionManager {
	return &TransactionManager{Repos: repos}
}

func (m *TransactionManager) WithinTx(_ context.Context, fn func(r repository.TxRepos) error) error {
	if m.BeginErr != nil {
		return m.BeginErr
	}

	err := fn(m.Repos)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.rolledBack++
		return err
	}

	m.committed++

	return nil
}

func (m *TransactionManager) Committed() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.committed
}

func (m *TransactionManager) RolledBack() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.rolledBack
}
