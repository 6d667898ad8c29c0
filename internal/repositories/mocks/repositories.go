package mocks

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// CatalogRepository

type CatalogRepository struct {
	mock.Mock
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

func NewCatalogRepository(t testingT) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CatalogRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.ProductSummary, int, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]models.ProductSummary)

	return products, args.Int(1), args.Error(2)
}

func (m *CatalogRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *CatalogRepository) GetProductBrief(ctx context.Context, id int64) (*models.ProductSummary, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.ProductSummary)

	return product, args.Error(1)
}

func (m *CatalogRepository) ListRelated(ctx context.Context, id int64) ([]models.ProductSummary, error) {
	args := m.Called(ctx, id)
	products, _ := args.Get(0).([]models.ProductSummary)

	return products, args.Error(1)
}

func (m *CatalogRepository) RecordView(ctx context.Context, productID int64, viewerHash []byte) error {
	return m.Called(ctx, productID, viewerHash).Error(0)
}

func (m *CatalogRepository) ListCollections(ctx context.Context, limit int) ([]models.Collection, error) {
	args := m.Called(ctx, limit)
	collections, _ := args.Get(0).([]models.Collection)

	return collections, args.Error(1)
}

func (m *CatalogRepository) GetCollectionByID(ctx context.Context, id int64) (*models.Collection, error) {
	args := m.Called(ctx, id)
	collection, _ := args.Get(0).(*models.Collection)

	return collection, args.Error(1)
}

func (m *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)

	return categories, args.Error(1)
}

func (m *CatalogRepository) ListMenus(ctx context.Context) ([]models.Menu, error) {
	args := m.Called(ctx)
	menus, _ := args.Get(0).([]models.Menu)

	return menus, args.Error(1)
}

func (m *CatalogRepository) ListColors(ctx context.Context) ([]models.Color, error) {
	args := m.Called(ctx)
	colors, _ := args.Get(0).([]models.Color)

	return colors, args.Error(1)
}

func (m *CatalogRepository) ListSizes(ctx context.Context) ([]models.Size, error) {
	args := m.Called(ctx)
	sizes, _ := args.Get(0).([]models.Size)

	return sizes, args.Error(1)
}

// VariantRepository

type VariantRepository struct {
	mock.Mock
}

var _ repository.VariantRepository = (*VariantRepository)(nil)

func NewVariantRepository(t testingT) *VariantRepository {
	m := &VariantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *VariantRepository) Resolve(ctx context.Context, productID, colorID, sizeID int64) (*models.VariantLine, error) {
	args := m.Called(ctx, productID, colorID, sizeID)
	line, _ := args.Get(0).(*models.VariantLine)

	return line, args.Error(1)
}

func (m *VariantRepository) ListByProduct(ctx context.Context, productID int64) ([]models.VariantLine, error) {
	args := m.Called(ctx, productID)
	lines, _ := args.Get(0).([]models.VariantLine)

	return lines, args.Error(1)
}

// ProfileRepository

type ProfileRepository struct {
	mock.Mock
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepository(t testingT) *ProfileRepository {
	m := &ProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ProfileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.Profile)

	return profile, args.Error(1)
}

func (m *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

// CartRepository

type CartRepository struct {
	mock.Mock
}

var _ repository.CartRepository = (*CartRepository)(nil)

func NewCartRepository(t testingT) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CartRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.CartLine, error) {
	args := m.Called(ctx, profileID)
	lines, _ := args.Get(0).([]models.CartLine)

	return lines, args.Error(1)
}

func (m *CartRepository) Upsert(ctx context.Context, profileID int64, req models.CartLineRequest, mode models.CartMode) (*models.CartLine, error) {
	args := m.Called(ctx, profileID, req, mode)
	line, _ := args.Get(0).(*models.CartLine)

	return line, args.Error(1)
}

func (m *CartRepository) UpdateQuantity(ctx context.Context, profileID, lineID, quantity int64) (*models.CartLine, error) {
	args := m.Called(ctx, profileID, lineID, quantity)
	line, _ := args.Get(0).(*models.CartLine)

	return line, args.Error(1)
}

func (m *CartRepository) Delete(ctx context.Context, profileID, lineID int64) error {
	return m.Called(ctx, profileID, lineID).Error(0)
}

// FavoriteRepository

type FavoriteRepository struct {
	mock.Mock
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)

func NewFavoriteRepository(t testingT) *FavoriteRepository {
	m := &FavoriteRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *FavoriteRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.Favorite, error) {
	args := m.Called(ctx, profileID)
	favorites, _ := args.Get(0).([]models.Favorite)

	return favorites, args.Error(1)
}

func (m *FavoriteRepository) Add(ctx context.Context, profileID, productID int64) (bool, error) {
	args := m.Called(ctx, profileID, productID)

	return args.Bool(0), args.Error(1)
}

func (m *FavoriteRepository) Remove(ctx context.Context, profileID, productID int64) error {
	return m.Called(ctx, profileID, productID).Error(0)
}

func (m *FavoriteRepository) Exists(ctx context.Context, profileID, productID int64) (bool, error) {
	args := m.Called(ctx, profileID, productID)

	return args.Bool(0), args.Error(1)
}

// OrderRepository

type OrderRepository struct {
	mock.Mock
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *OrderRepository) Create(ctx context.Context, order *models.Order) (bool, error) {
	args := m.Called(ctx, order)

	return args.Bool(0), args.Error(1)
}

func (m *OrderRepository) AddItem(ctx context.Context, item *models.OrderItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *OrderRepository) SetAmount(ctx context.Context, orderID int64, amount decimal.Decimal) error {
	return m.Called(ctx, orderID, amount).Error(0)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *OrderRepository) UpdateDeliveryDate(ctx context.Context, orderID int64, date *time.Time) error {
	return m.Called(ctx, orderID, date).Error(0)
}

func (m *OrderRepository) GetByID(ctx context.Context, orderID int64) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *OrderRepository) GetByIDForUpdate(ctx context.Context, orderID int64) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *OrderRepository) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	args := m.Called(ctx, number)
	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *OrderRepository) ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]models.OrderItem)

	return items, args.Error(1)
}

func (m *OrderRepository) ListByProfile(ctx context.Context, profileID int64, page, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, profileID, page, size)
	orders, _ := args.Get(0).([]models.Order)

	return orders, args.Int(1), args.Error(2)
}

// PaymentRepository

type PaymentRepository struct {
	mock.Mock
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository(t testingT) *PaymentRepository {
	m := &PaymentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *PaymentRepository) Create(ctx context.Context, payment *models.PaymentRecord) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *PaymentRepository) RecordGateway(ctx context.Context, payment *models.PaymentRecord) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.PaymentRecord, error) {
	args := m.Called(ctx, id)
	payment, _ := args.Get(0).(*models.PaymentRecord)

	return payment, args.Error(1)
}

func (m *PaymentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.PaymentRecord, error) {
	args := m.Called(ctx, id)
	payment, _ := args.Get(0).(*models.PaymentRecord)

	return payment, args.Error(1)
}

func (m *PaymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*models.PaymentRecord, error) {
	args := m.Called(ctx, orderID)
	payment, _ := args.Get(0).(*models.PaymentRecord)

	return payment, args.Error(1)
}

func (m *PaymentRepository) GetByGatewayID(ctx context.Context, gatewayID string) (*models.PaymentRecord, error) {
	args := m.Called(ctx, gatewayID)
	payment, _ := args.Get(0).(*models.PaymentRecord)

	return payment, args.Error(1)
}

// NotificationRepository

type NotificationRepository struct {
	mock.Mock
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(t testingT) *NotificationRepository {
	m := &NotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *NotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {
	return m.Called(ctx, id, status, errorMsg).Error(0)
}

func (m *NotificationRepository) ListByOrder(ctx context.Context, orderID int64) ([]models.Notification, error) {
	args := m.Called(ctx, orderID)
	notifications, _ := args.Get(0).([]models.Notification)

	return notifications, args.Error(1)
}

// RateLimitRepository

type RateLimitRepository struct {
	mock.Mock
}

var _ repository.RateLimitRepository = (*RateLimitRepository)(nil)

func NewRateLimitRepository(t testingT) *RateLimitRepository {
	m := &RateLimitRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *RateLimitRepository) Allow(ctx context.Context, scope, subject string) (repository.RateLimitDecision, error) {
	args := m.Called(ctx, scope, subject)
	decision, _ := args.Get(0).(repository.RateLimitDecision)

	return decision, args.Error(1)
}
