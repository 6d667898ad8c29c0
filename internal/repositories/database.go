package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/storefront-api/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository struct {
	DB *sql.DB

	Catalog       CatalogRepository
	Variants      VariantRepository
	Profiles      ProfileRepository
	Cart          CartRepository
	Favorites     FavoriteRepository
	Orders        OrderRepository
	Payments      PaymentRepository
	Notifications NotificationRepository
	Tx            TransactionManager
}

func New(ctx context.Context, cfg *config.Config) (*Repository, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("✅ Connected to PostgreSQL",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	return NewWithDB(db), nil
}

// NewWithDB wires every repository onto an already opened pool.
func NewWithDB(db *sql.DB) *Repository {
	return &Repository{
		DB:            db,
		Catalog:       NewCatalogRepo(db),
		Variants:      NewVariantRepo(db),
		Profiles:      NewProfileRepo(db),
		Cart:          NewCartRepo(db),
		Favorites:     NewFavoriteRepo(db),
		Orders:        NewOrderRepo(db),
		Payments:      NewPaymentRepo(db),
		Notifications: NewNotificationRepo(db),
		Tx:            NewTxManager(db),
	}
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
