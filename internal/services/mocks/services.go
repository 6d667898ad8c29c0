package mocks

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	stripeClient "github.com/aaravmahajanofficial/storefront-api/pkg/stripe"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// CatalogService

type CatalogService struct {
	mock.Mock
}

var _ service.CatalogService = (*CatalogService)(nil)

func NewCatalogService(t testingT) *CatalogService {
	m := &CatalogService{}
	register(t, &m.Mock)

	return m
}

func (m *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, filter)
	page, _ := args.Get(0).(*models.PaginatedResponse)

	return page, args.Error(1)
}

func (m *CatalogService) GetProduct(ctx context.Context, id int64, viewerIP string) (*models.Product, error) {
	args := m.Called(ctx, id, viewerIP)
	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *CatalogService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	args := m.Called(ctx)
	collections, _ := args.Get(0).([]models.Collection)

	return collections, args.Error(1)
}

func (m *CatalogService) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	args := m.Called(ctx, id)
	collection, _ := args.Get(0).(*models.Collection)

	return collection, args.Error(1)
}

func (m *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)

	return categories, args.Error(1)
}

func (m *CatalogService) GetMenu(ctx context.Context) ([]models.Menu, error) {
	args := m.Called(ctx)
	menus, _ := args.Get(0).([]models.Menu)

	return menus, args.Error(1)
}

func (m *CatalogService) ListFacets(ctx context.Context) (*models.Facets, error) {
	args := m.Called(ctx)
	facets, _ := args.Get(0).(*models.Facets)

	return facets, args.Error(1)
}

func (m *CatalogService) GetHome(ctx context.Context) (*models.HomePage, error) {
	args := m.Called(ctx)
	home, _ := args.Get(0).(*models.HomePage)

	return home, args.Error(1)
}

// VariantService

type VariantService struct {
	mock.Mock
}

var _ service.VariantService = (*VariantService)(nil)

func NewVariantService(t testingT) *VariantService {
	m := &VariantService{}
	register(t, &m.Mock)

	return m
}

func (m *VariantService) Resolve(ctx context.Context, productID, colorID, sizeID int64) (*models.VariantLine, error) {
	args := m.Called(ctx, productID, colorID, sizeID)
	line, _ := args.Get(0).(*models.VariantLine)

	return line, args.Error(1)
}

func (m *VariantService) ListColorVariants(ctx context.Context, productID int64) ([]models.ColorVariant, error) {
	args := m.Called(ctx, productID)
	variants, _ := args.Get(0).([]models.ColorVariant)

	return variants, args.Error(1)
}

// ProfileService

type ProfileService struct {
	mock.Mock
}

var _ service.ProfileService = (*ProfileService)(nil)

func NewProfileService(t testingT) *ProfileService {
	m := &ProfileService{}
	register(t, &m.Mock)

	return m
}

func (m *ProfileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.Profile)

	return profile, args.Error(1)
}

func (m *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, userID, req)
	profile, _ := args.Get(0).(*models.Profile)

	return profile, args.Error(1)
}

// CartService

type CartService struct {
	mock.Mock
}

var _ service.CartService = (*CartService)(nil)

func NewCartService(t testingT) *CartService {
	m := &CartService{}
	register(t, &m.Mock)

	return m
}

func (m *CartService) List(ctx context.Context, profileID int64) (*models.Cart, error) {
	args := m.Called(ctx, profileID)
	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartService) Add(ctx context.Context, profileID int64, req models.CartLineRequest) (*models.CartLine, error) {
	args := m.Called(ctx, profileID, req)
	line, _ := args.Get(0).(*models.CartLine)

	return line, args.Error(1)
}

func (m *CartService) Set(ctx context.Context, profileID int64, req models.CartLineRequest) (*models.CartLine, error) {
	args := m.Called(ctx, profileID, req)
	line, _ := args.Get(0).(*models.CartLine)

	return line, args.Error(1)
}

func (m *CartService) BulkAdd(ctx context.Context, profileID int64, items []models.CartLineRequest) (*models.BulkAddResult, error) {
	args := m.Called(ctx, profileID, items)
	result, _ := args.Get(0).(*models.BulkAddResult)

	return result, args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, profileID, lineID, quantity int64) (*models.CartLine, error) {
	args := m.Called(ctx, profileID, lineID, quantity)
	line, _ := args.Get(0).(*models.CartLine)

	return line, args.Error(1)
}

func (m *CartService) Remove(ctx context.Context, profileID, lineID int64) error {
	return m.Called(ctx, profileID, lineID).Error(0)
}

// FavoriteService

type FavoriteService struct {
	mock.Mock
}

var _ service.FavoriteService = (*FavoriteService)(nil)

func NewFavoriteService(t testingT) *FavoriteService {
	m := &FavoriteService{}
	register(t, &m.Mock)

	return m
}

func (m *FavoriteService) List(ctx context.Context, profileID int64) ([]models.Favorite, error) {
	args := m.Called(ctx, profileID)
	favorites, _ := args.Get(0).([]models.Favorite)

	return favorites, args.Error(1)
}

func (m *FavoriteService) Add(ctx context.Context, profileID, productID int64) error {
	return m.Called(ctx, profileID, productID).Error(0)
}

func (m *FavoriteService) Remove(ctx context.Context, profileID, productID int64) error {
	return m.Called(ctx, profileID, productID).Error(0)
}

func (m *FavoriteService) Toggle(ctx context.Context, profileID, productID int64) (*models.ToggleFavoriteResponse, error) {
	args := m.Called(ctx, profileID, productID)
	resp, _ := args.Get(0).(*models.ToggleFavoriteResponse)

	return resp, args.Error(1)
}

func (m *FavoriteService) Status(ctx context.Context, profileID, productID int64) (*models.ToggleFavoriteResponse, error) {
	args := m.Called(ctx, profileID, productID)
	resp, _ := args.Get(0).(*models.ToggleFavoriteResponse)

	return resp, args.Error(1)
}

// CheckoutService

type CheckoutService struct {
	mock.Mock
}

var _ service.CheckoutService = (*CheckoutService)(nil)

func NewCheckoutService(t testingT) *CheckoutService {
	m := &CheckoutService{}
	register(t, &m.Mock)

	return m
}

func (m *CheckoutService) Checkout(ctx context.Context, req *models.CheckoutRequest, buyer service.Buyer) (*models.CheckoutResult, error) {
	args := m.Called(ctx, req, buyer)
	result, _ := args.Get(0).(*models.CheckoutResult)

	return result, args.Error(1)
}

// OrderService

type OrderService struct {
	mock.Mock
}

var _ service.OrderService = (*OrderService)(nil)

func NewOrderService(t testingT) *OrderService {
	m := &OrderService{}
	register(t, &m.Mock)

	return m
}

func (m *OrderService) GetByNumber(ctx context.Context, number string, viewer service.Viewer) (*models.Order, error) {
	args := m.Called(ctx, number, viewer)
	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *OrderService) ListForProfile(ctx context.Context, profileID int64, page, size int) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, profileID, page, size)
	resp, _ := args.Get(0).(*models.PaginatedResponse)

	return resp, args.Error(1)
}

func (m *OrderService) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, orderID, status)
	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *OrderService) UpdateDeliveryDate(ctx context.Context, orderID int64, date time.Time) (*models.Order, error) {
	args := m.Called(ctx, orderID, date)
	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

// PaymentService

type PaymentService struct {
	mock.Mock
}

var _ service.PaymentService = (*PaymentService)(nil)

func NewPaymentService(t testingT) *PaymentService {
	m := &PaymentService{}
	register(t, &m.Mock)

	return m
}

func (m *PaymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripeClient.Event, error) {
	args := m.Called(ctx, payload, signature)
	event, _ := args.Get(0).(stripeClient.Event)

	return event, args.Error(1)
}

func (m *PaymentService) ApplyAction(ctx context.Context, paymentID int64, action models.PaymentAction) (*models.PaymentRecord, error) {
	args := m.Called(ctx, paymentID, action)
	payment, _ := args.Get(0).(*models.PaymentRecord)

	return payment, args.Error(1)
}

// Notifier

type Notifier struct {
	mock.Mock
}

var _ service.Notifier = (*Notifier)(nil)

func NewNotifier(t testingT) *Notifier {
	m := &Notifier{}
	register(t, &m.Mock)

	return m
}

func (m *Notifier) Enqueue(ctx context.Context, event models.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

// NotificationService

type NotificationService struct {
	Notifier
}

var _ service.NotificationService = (*NotificationService)(nil)

func NewNotificationService(t testingT) *NotificationService {
	m := &NotificationService{}
	register(t, &m.Mock)

	return m
}

func (m *NotificationService) Run(ctx context.Context) {
	m.Called(ctx)
}

func (m *NotificationService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *NotificationService) ListByOrder(ctx context.Context, orderID int64) ([]models.Notification, error) {
	args := m.Called(ctx, orderID)
	notifications, _ := args.Get(0).([]models.Notification)

	return notifications, args.Error(1)
}
