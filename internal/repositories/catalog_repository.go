package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/lib/pq"
)

type CatalogRepository interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.ProductSummary, int, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductBrief(ctx context.Context, id int64) (*models.ProductSummary, error)
	ListRelated(ctx context.Context, id int64) ([]models.ProductSummary, error)
	RecordView(ctx context.Context, productID int64, viewerHash []byte) error
	ListCollections(ctx context.Context, limit int) ([]models.Collection, error)
	GetCollectionByID(ctx context.Context, id int64) (*models.Collection, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListMenus(ctx context.Context) ([]models.Menu, error)
	ListColors(ctx context.Context) ([]models.Color, error)
	ListSizes(ctx context.Context) ([]models.Size, error)
}

type catalogRepository struct {
	DB DBTX
}

func NewCatalogRepo(db DBTX) CatalogRepository {
	return &catalogRepository{DB: db}
}

const summaryColumns = `
	p.id, p.name, p.price, COALESCE(c.name, ''),
	COALESCE((
		SELECT i.image_url FROM product_colors pc
		JOIN product_color_images i ON i.product_color_id = pc.id
		WHERE pc.product_id = p.id
		ORDER BY pc.id, i.position, i.id LIMIT 1
	), ''),
	(SELECT COUNT(*) FROM product_views v WHERE v.product_id = p.id) AS views,
	p.created_at`

var productOrderings = map[string]string{
	models.OrderingPriceAsc:  "p.price ASC",
	models.OrderingPriceDesc: "p.price DESC",
	models.OrderingDateAsc:   "p.created_at ASC",
	models.OrderingDateDesc:  "p.created_at DESC",
	models.OrderingViewsAsc:  "views ASC",
	models.OrderingViewsDesc: "views DESC",
}

// ValidOrdering reports whether the list endpoint understands ordering.
func ValidOrdering(ordering string) bool {
	_, ok := productOrderings[ordering]

	return ok
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// productFilterClause renders the WHERE clause for filter. Placeholders start at $1.
func productFilterClause(filter models.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.CategoryID != nil {
		add("EXISTS (SELECT 1 FROM product_categories pcat WHERE pcat.product_id = p.id AND pcat.category_id = $%d)", *filter.CategoryID)
	}

	if filter.CollectionID != nil {
		add("p.collection_id = $%d", *filter.CollectionID)
	}

	if filter.ColorID != nil {
		add("EXISTS (SELECT 1 FROM product_colors fc WHERE fc.product_id = p.id AND fc.color_id = $%d)", *filter.ColorID)
	}

	if filter.SizeID != nil {
		add("EXISTS (SELECT 1 FROM product_colors fs WHERE fs.product_id = p.id AND fs.size_id = $%d)", *filter.SizeID)
	}

	if filter.MinPrice != nil {
		add("p.price >= $%d", *filter.MinPrice)
	}

	if filter.MaxPrice != nil {
		add("p.price <= $%d", *filter.MaxPrice)
	}

	if name := strings.TrimSpace(filter.Name); name != "" {
		add("p.name ILIKE $%d", "%"+likeEscaper.Replace(name)+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *catalogRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.ProductSummary, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where, args := productFilterClause(filter)

	var total int

	countQuery := `SELECT COUNT(*) FROM products p` + where
	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy, ok := productOrderings[filter.Ordering]
	if !ok {
		orderBy = productOrderings[models.OrderingDateDesc]
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)

	query := fmt.Sprintf(`SELECT %s
		FROM products p
		LEFT JOIN collections c ON c.id = p.collection_id%s
		ORDER BY %s, p.id
		LIMIT $%d OFFSET $%d`, summaryColumns, where, orderBy, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanSummaries(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func scanSummaries(rows *sql.Rows) ([]models.ProductSummary, error) {
	products := []models.ProductSummary{}

	for rows.Next() {
		var p models.ProductSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CollectionName, &p.Image, &p.Views, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.collection_id, COALESCE(c.name, ''), p.name, p.price, p.delivery_info,
		       p.sku, p.model_parameters, p.size_on_model, p.description,
		       COALESCE(p.details, ''), COALESCE(p.care, ''), p.quantity, p.created_at,
		       (SELECT COUNT(*) FROM product_views v WHERE v.product_id = p.id),
		       ARRAY(SELECT cat.name FROM product_categories pc
		             JOIN categories cat ON cat.id = pc.category_id
		             WHERE pc.product_id = p.id ORDER BY cat.name)
		FROM products p
		LEFT JOIN collections c ON c.id = p.collection_id
		WHERE p.id = $1`

	var (
		product      models.Product
		collectionID sql.NullInt64
		quantity     sql.NullInt64
	)

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&product.ID, &collectionID, &product.CollectionName, &product.Name, &product.Price, &product.DeliveryInfo,
		&product.SKU, &product.ModelParameters, &product.SizeOnModel, &product.Description,
		&product.Instructions.Details, &product.Instructions.Care, &quantity, &product.CreatedAt,
		&product.Views, pq.Array(&product.Categories),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, MapPQError(err))
	}

	if collectionID.Valid {
		product.CollectionID = &collectionID.Int64
	}

	if quantity.Valid {
		product.Quantity = &quantity.Int64
	}

	return &product, nil
}

// GetProductBrief loads the fields checkout prices from, holding a share lock
// on the row for the rest of the transaction.
func (r *catalogRepository) GetProductBrief(ctx context.Context, id int64) (*models.ProductSummary, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var p models.ProductSummary

	query := `SELECT id, name, price, created_at FROM products WHERE id = $1 FOR SHARE`
	if err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, MapPQError(err))
	}

	return &p, nil
}

func (r *catalogRepository) ListRelated(ctx context.Context, id int64) ([]models.ProductSummary, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + summaryColumns + `
		FROM related_products rp
		JOIN products p ON p.id = rp.related_id
		LEFT JOIN collections c ON c.id = p.collection_id
		WHERE rp.product_id = $1
		ORDER BY p.id`

	rows, err := r.DB.QueryContext(dbCtx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query related products: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func (r *catalogRepository) RecordView(ctx context.Context, productID int64, viewerHash []byte) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO product_views (product_id, viewer_hash)
		VALUES ($1, $2)
		ON CONFLICT (product_id, viewer_hash) DO NOTHING`

	if _, err := r.DB.ExecContext(dbCtx, query, productID, viewerHash); err != nil {
		return fmt.Errorf("failed to record view: %w", MapPQError(err))
	}

	return nil
}

const collectionColumns = `
	c.id, c.name, c.description, c.video_url,
	ARRAY(SELECT ci.image_url FROM collection_images ci WHERE ci.collection_id = c.id ORDER BY ci.position, ci.id)`

// ListCollections returns the newest collections first. A limit of zero lists all of them.
func (r *catalogRepository) ListCollections(ctx context.Context, limit int) ([]models.Collection, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + collectionColumns + ` FROM collections c ORDER BY c.created_at DESC, c.id DESC`

	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	collections := []models.Collection{}

	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.VideoURL, pq.Array(&c.Images)); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}

		collections = append(collections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return collections, nil
}

func (r *catalogRepository) GetCollectionByID(ctx context.Context, id int64) (*models.Collection, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var c models.Collection

	query := `SELECT ` + collectionColumns + ` FROM collections c WHERE c.id = $1`
	if err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.VideoURL, pq.Array(&c.Images)); err != nil {
		return nil, fmt.Errorf("failed to get collection %d: %w", id, MapPQError(err))
	}

	return &c, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.name,
		       ARRAY(SELECT m.code FROM category_menus cm JOIN menus m ON m.id = cm.menu_id
		             WHERE cm.category_id = c.id ORDER BY m.id)
		FROM categories c
		ORDER BY c.name, c.id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, pq.Array(&c.MenuItems)); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return categories, nil
}

// ListMenus returns only the menu entries switched on for display.
func (r *catalogRepository) ListMenus(ctx context.Context) ([]models.Menu, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT m.id, m.code, m.show_in_menu,
		       ARRAY(SELECT c.name FROM category_menus cm JOIN categories c ON c.id = cm.category_id
		             WHERE cm.menu_id = m.id ORDER BY c.name)
		FROM menus m
		WHERE m.show_in_menu = TRUE
		ORDER BY m.id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	menus := []models.Menu{}

	for rows.Next() {
		var m models.Menu
		if err := rows.Scan(&m.ID, &m.Code, &m.ShowInMenu, pq.Array(&m.Categories)); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}

		m.Title = m.Code.Title()
		menus = append(menus, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return menus, nil
}

func (r *catalogRepository) ListColors(ctx context.Context) ([]models.Color, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT id, name, hex FROM colors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query colors: %w", err)
	}
	defer rows.Close()

	colors := []models.Color{}

	for rows.Next() {
		var c models.Color
		if err := rows.Scan(&c.ID, &c.Name, &c.Hex); err != nil {
			return nil, fmt.Errorf("failed to scan color: %w", err)
		}

		colors = append(colors, c)
	}

	return colors, rows.Err()
}

func (r *catalogRepository) ListSizes(ctx context.Context) ([]models.Size, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT id, name FROM sizes ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sizes: %w", err)
	}
	defer rows.Close()

	sizes := []models.Size{}

	for rows.Next() {
		var s models.Size
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}

		sizes = append(sizes, s)
	}

	return sizes, rows.Err()
}
