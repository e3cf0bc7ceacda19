package service

import (
	"context"

	"github.com/shopspring/decimal"

	"pointofsale/internal/domain"
	"pointofsale/internal/pricing"
)

type ProductFilter struct {
	Category      string
	AvailableOnly bool
}

type OrderFilter struct {
	Status  *domain.OrderStatus
	TableID *int
}

type CreateOrderInput struct {
	TableID      *int
	SessionToken *string
	Lines        []domain.CartLine
}

type CheckoutInput struct {
	OrderID        string
	PaymentMethod  string
	IdempotencyKey string
	PromotionCode  string
}

type CatalogServiceInterface interface {
	CreateProduct(ctx context.Context, scope domain.Scope, product *domain.Product) error
	GetProduct(ctx context.Context, scope domain.Scope, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, scope domain.Scope, filter ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, scope domain.Scope, product *domain.Product) error
	DeleteProduct(ctx context.Context, scope domain.Scope, id string) error
}

type SessionServiceInterface interface {
	Open(ctx context.Context, scope domain.Scope, tableNumber int) (*domain.TableSession, error)
	Close(ctx context.Context, scope domain.Scope, id string) (*domain.TableSession, error)
	ResolveToken(ctx context.Context, token string) (*domain.TableSession, error)
	List(ctx context.Context, scope domain.Scope, activeOnly *bool) ([]domain.TableSession, error)
	QRCodePNG(ctx context.Context, scope domain.Scope, id string) ([]byte, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, scope domain.Scope, input CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, scope domain.Scope, id string) (*domain.Order, error)
	List(ctx context.Context, scope domain.Scope, filter OrderFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, scope domain.Scope, id string, next domain.OrderStatus) (*domain.Order, error)
	AddItems(ctx context.Context, scope domain.Scope, id string, lines []domain.CartLine) (*domain.Order, error)
	RemoveItem(ctx context.Context, scope domain.Scope, orderID, itemID string) (*domain.Order, error)
	UpdateItemStatus(ctx context.Context, scope domain.Scope, orderID, itemID string, status domain.ItemStatus) error
}

type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, scope domain.Scope, input CheckoutInput) (*domain.Payment, *domain.Order, error)
	GetPayment(ctx context.Context, scope domain.Scope, id string) (*domain.Payment, error)
}

type PromotionServiceInterface interface {
	Create(ctx context.Context, scope domain.Scope, promo *domain.Promotion) error
	Get(ctx context.Context, scope domain.Scope, id string) (*domain.Promotion, error)
	List(ctx context.Context, scope domain.Scope) ([]domain.Promotion, error)
	Update(ctx context.Context, scope domain.Scope, promo *domain.Promotion) error
	Delete(ctx context.Context, scope domain.Scope, id string) error
	Evaluate(ctx context.Context, scope domain.Scope, code string, subtotal decimal.Decimal) (*domain.Promotion, decimal.Decimal, error)
}

type CatalogRepository interface {
	InsertProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id, organizationID string) (*domain.Product, error)
	ListProducts(ctx context.Context, organizationID string, filter ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id, organizationID string) error
}

type SessionRepository interface {
	InsertSession(ctx context.Context, session *domain.TableSession, qrPNG []byte) error
	GetSession(ctx context.Context, id, branchID string) (*domain.TableSession, error)
	GetSessionByToken(ctx context.Context, token string) (*domain.TableSession, error)
	CloseSession(ctx context.Context, id, branchID string) (*domain.TableSession, error)
	ListSessions(ctx context.Context, branchID string, activeOnly *bool) ([]domain.TableSession, error)
	GetSessionQR(ctx context.Context, id, branchID string) ([]byte, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id, branchID string) (*domain.Order, error)
	ListOrders(ctx context.Context, branchID string, filter OrderFilter) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id, branchID string, from, to domain.OrderStatus) error
	CancelOrder(ctx context.Context, order *domain.Order, from domain.OrderStatus) error
	ReplaceOrderItems(ctx context.Context, order *domain.Order) error
	UpdateItemStatus(ctx context.Context, orderID, itemID string, status domain.ItemStatus) error
}

type PromotionRepository interface {
	InsertPromotion(ctx context.Context, promo *domain.Promotion) error
	GetPromotion(ctx context.Context, id, organizationID string) (*domain.Promotion, error)
	GetPromotionByCode(ctx context.Context, code, organizationID, branchID string) (*domain.Promotion, error)
	ListPromotions(ctx context.Context, organizationID string) ([]domain.Promotion, error)
	UpdatePromotion(ctx context.Context, promo *domain.Promotion) error
	DeletePromotion(ctx context.Context, id, organizationID string) error
	PromotionUsageCount(ctx context.Context, promotionID string) (int, error)
}

type CheckoutParams struct {
	OrderID        string
	BranchID       string
	OrganizationID string
	PaymentMethod  string
	IdempotencyKey string
	PromotionCode  string
	MinStatus      domain.OrderStatus
	DiscountBase   pricing.DiscountBase
}

// CheckoutOutcome reports how a settlement resolved. Replayed means the
// idempotency key had already settled this order; PreviousStatus is the
// status the order was paid from on a first settlement.
type CheckoutOutcome struct {
	PreviousStatus domain.OrderStatus
	Replayed       bool
}

type PaymentRepository interface {
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	GetPaymentByKey(ctx context.Context, idempotencyKey string) (*domain.Payment, error)
	// FinalizeCheckout runs the whole settlement in one transaction.
	FinalizeCheckout(ctx context.Context, params CheckoutParams) (*domain.Payment, *domain.Order, CheckoutOutcome, error)
}

type IdempotencyCache interface {
	CheckoutMarkerKey(orderID, idempotencyKey string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type QRGenerator interface {
	Generate(token string) ([]byte, error)
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
var _ SessionServiceInterface = (*SessionService)(nil)
var _ OrderServiceInterface = (*OrderService)(nil)
var _ CheckoutServiceInterface = (*CheckoutService)(nil)
var _ PromotionServiceInterface = (*PromotionService)(nil)
