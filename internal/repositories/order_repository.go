package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	// Create reports false when the order number is already taken.
	Create(ctx context.Context, order *models.Order) (bool, error)
	AddItem(ctx context.Context, item *models.OrderItem) error
	SetAmount(ctx context.Context, orderID int64, amount decimal.Decimal) error
	UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
	UpdateDeliveryDate(ctx context.Context, orderID int64, date *time.Time) error
	GetByID(ctx context.Context, orderID int64) (*models.Order, error)
	GetByIDForUpdate(ctx context.Context, orderID int64) (*models.Order, error)
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	ListByProfile(ctx context.Context, profileID int64, page, size int) ([]models.Order, int, error)
}

type orderRepository struct {
	DB DBTX
}

func NewOrderRepo(db DBTX) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `
	id, order_number, profile_id, status, amount,
	first_name, last_name, email, phone, city, delivery_method, street, house,
	apartment_office, postal_code, courier_comment, delivery_date, created_at, updated_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		o            models.Order
		profileID    sql.NullInt64
		deliveryDate sql.NullTime
		c            = &o.Contact
	)

	err := row.Scan(&o.ID, &o.Number, &profileID, &o.Status, &o.Amount,
		&c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.City, &c.DeliveryMethod, &c.Street, &c.House,
		&c.ApartmentOffice, &c.PostalCode, &c.CourierComment, &deliveryDate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if profileID.Valid {
		o.ProfileID = &profileID.Int64
	}

	if deliveryDate.Valid {
		o.DeliveryDate = &deliveryDate.Time
	}

	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	c := order.Contact

	query := `
		INSERT INTO orders (order_number, profile_id, status, amount,
		                    first_name, last_name, email, phone, city, delivery_method, street, house,
		                    apartment_office, postal_code, courier_comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (order_number) DO NOTHING
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, order.Number, order.ProfileID, order.Status, order.Amount,
		c.FirstName, c.LastName, c.Email, c.Phone, c.City, c.DeliveryMethod, c.Street, c.House,
		c.ApartmentOffice, c.PostalCode, c.CourierComment).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to insert order: %w", MapPQError(err))
	}

	return true, nil
}

func (r *orderRepository) AddItem(ctx context.Context, item *models.OrderItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, color_ids, size_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	if item.ColorIDs == nil {
		item.ColorIDs = []int64{}
	}

	if item.SizeIDs == nil {
		item.SizeIDs = []int64{}
	}

	err := r.DB.QueryRowContext(dbCtx, query, item.OrderID, item.ProductID, item.ProductName, item.UnitPrice,
		item.Quantity, pq.Array(item.ColorIDs), pq.Array(item.SizeIDs)).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert an order item: %w", MapPQError(err))
	}

	return nil
}

func (r *orderRepository) SetAmount(ctx context.Context, orderID int64, amount decimal.Decimal) error {
	return r.exec(ctx, `UPDATE orders SET amount = $1, updated_at = NOW() WHERE id = $2`, amount, orderID)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	return r.exec(ctx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, orderID)
}

func (r *orderRepository) UpdateDeliveryDate(ctx context.Context, orderID int64, date *time.Time) error {
	return r.exec(ctx, `UPDATE orders SET delivery_date = $1, updated_at = NOW() WHERE id = $2`, date, orderID)
}

func (r *orderRepository) exec(ctx context.Context, query string, args ...any) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", MapPQError(err))
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return fmt.Errorf("order: %w", ErrNotFound)
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID int64) (*models.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)
}

// GetByIDForUpdate locks the order row until the surrounding transaction ends.
func (r *orderRepository) GetByIDForUpdate(ctx context.Context, orderID int64) (*models.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, orderID)
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	order, err := r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number)
	if err != nil {
		return nil, err
	}

	if order.Items, err = r.ListItems(ctx, order.ID); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) getOne(ctx context.Context, query string, arg any) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, arg))
	if err != nil {
		return nil, fmt.Errorf("failed to get order %v: %w", arg, MapPQError(err))
	}

	return order, nil
}

func (r *orderRepository) ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, color_ids, size_ids
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}

	for rows.Next() {
		var it models.OrderItem

		err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity,
			pq.Array(&it.ColorIDs), pq.Array(&it.SizeIDs))
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return items, nil
}

func (r *orderRepository) ListByProfile(ctx context.Context, profileID int64, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders WHERE profile_id = $1`, profileID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE profile_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, profileID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return orders, total, nil
}
