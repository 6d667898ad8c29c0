package repository

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.PaymentRecord) error
	// RecordGateway stores what the gateway reported for a payment.
	RecordGateway(ctx context.Context, payment *models.PaymentRecord) error
	UpdateStatus(ctx context.Context, id int64, status models.PaymentStatus) error
	GetByID(ctx context.Context, id int64) (*models.PaymentRecord, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.PaymentRecord, error)
	GetByOrderID(ctx context.Context, orderID int64) (*models.PaymentRecord, error)
	GetByGatewayID(ctx context.Context, gatewayID string) (*models.PaymentRecord, error)
}

type paymentRepository struct {
	DB DBTX
}

func NewPaymentRepo(db DBTX) PaymentRepository {
	return &paymentRepository{DB: db}
}

const paymentColumns = `
	id, order_id, amount, currency, status, gateway_id, gateway_status, confirmation_url, created_at, updated_at`

func (r *paymentRepository) Create(ctx context.Context, p *models.PaymentRecord) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (order_id, amount, currency, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, p.OrderID, p.Amount, p.Currency, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", MapPQError(err))
	}

	return nil
}

func (r *paymentRepository) RecordGateway(ctx context.Context, p *models.PaymentRecord) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE payments
		SET gateway_id = $1, gateway_status = $2, amount = $3, currency = $4, status = $5,
		    confirmation_url = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, p.GatewayID, p.GatewayStatus, p.Amount, p.Currency, p.Status,
		p.ConfirmationURL, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to record gateway payment: %w", MapPQError(err))
	}

	return nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return fmt.Errorf("payment %d: %w", id, ErrNotFound)
	}

	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*models.PaymentRecord, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

func (r *paymentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.PaymentRecord, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id)
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*models.PaymentRecord, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID)
}

func (r *paymentRepository) GetByGatewayID(ctx context.Context, gatewayID string) (*models.PaymentRecord, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE gateway_id = $1`, gatewayID)
}

func (r *paymentRepository) getOne(ctx context.Context, query string, arg any) (*models.PaymentRecord, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var p models.PaymentRecord

	err := r.DB.QueryRowContext(dbCtx, query, arg).Scan(&p.ID, &p.OrderID, &p.Amount, &p.Currency, &p.Status,
		&p.GatewayID, &p.GatewayStatus, &p.ConfirmationURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment %v: %w", arg, MapPQError(err))
	}

	return &p, nil
}
