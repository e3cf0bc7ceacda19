// Package mocks holds testify mocks for the service-layer interfaces,
// constructed with NewX(t) so expectations are asserted on cleanup.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pointofsale/internal/domain"
	"pointofsale/internal/service"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type CatalogRepository struct {
	mock.Mock
}

func NewCatalogRepository(t testingT) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CatalogRepository) InsertProduct(ctx context.Context, product *domain.Product) error {
	ret := _m.Called(ctx, product)
	return ret.Error(0)
}

func (_m *CatalogRepository) GetProduct(ctx context.Context, id, organizationID string) (*domain.Product, error) {
	ret := _m.Called(ctx, id, organizationID)
	var r0 *domain.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Product)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) ListProducts(ctx context.Context, organizationID string, filter service.ProductFilter) ([]domain.Product, error) {
	ret := _m.Called(ctx, organizationID, filter)
	var r0 []domain.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Product)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	ret := _m.Called(ctx, product)
	return ret.Error(0)
}

func (_m *CatalogRepository) DeleteProduct(ctx context.Context, id, organizationID string) error {
	ret := _m.Called(ctx, id, organizationID)
	return ret.Error(0)
}

type SessionRepository struct {
	mock.Mock
}

func NewSessionRepository(t testingT) *SessionRepository {
	m := &SessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *SessionRepository) InsertSession(ctx context.Context, session *domain.TableSession, qrPNG []byte) error {
	ret := _m.Called(ctx, session, qrPNG)
	return ret.Error(0)
}

func (_m *SessionRepository) GetSession(ctx context.Context, id, branchID string) (*domain.TableSession, error) {
	ret := _m.Called(ctx, id, branchID)
	var r0 *domain.TableSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.TableSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionRepository) GetSessionByToken(ctx context.Context, token string) (*domain.TableSession, error) {
	ret := _m.Called(ctx, token)
	var r0 *domain.TableSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.TableSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionRepository) CloseSession(ctx context.Context, id, branchID string) (*domain.TableSession, error) {
	ret := _m.Called(ctx, id, branchID)
	var r0 *domain.TableSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.TableSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionRepository) ListSessions(ctx context.Context, branchID string, activeOnly *bool) ([]domain.TableSession, error) {
	ret := _m.Called(ctx, branchID, activeOnly)
	var r0 []domain.TableSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.TableSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionRepository) GetSessionQR(ctx context.Context, id, branchID string) ([]byte, error) {
	ret := _m.Called(ctx, id, branchID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)
	return ret.Error(0)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, id, branchID string) (*domain.Order, error) {
	ret := _m.Called(ctx, id, branchID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListOrders(ctx context.Context, branchID string, filter service.OrderFilter) ([]domain.Order, error) {
	ret := _m.Called(ctx, branchID, filter)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) UpdateOrderStatus(ctx context.Context, id, branchID string, from, to domain.OrderStatus) error {
	ret := _m.Called(ctx, id, branchID, from, to)
	return ret.Error(0)
}

func (_m *OrderRepository) CancelOrder(ctx context.Context, order *domain.Order, from domain.OrderStatus) error {
	ret := _m.Called(ctx, order, from)
	return ret.Error(0)
}

func (_m *OrderRepository) ReplaceOrderItems(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)
	return ret.Error(0)
}

func (_m *OrderRepository) UpdateItemStatus(ctx context.Context, orderID, itemID string, status domain.ItemStatus) error {
	ret := _m.Called(ctx, orderID, itemID, status)
	return ret.Error(0)
}

type PromotionRepository struct {
	mock.Mock
}

func NewPromotionRepository(t testingT) *PromotionRepository {
	m := &PromotionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *PromotionRepository) InsertPromotion(ctx context.Context, promo *domain.Promotion) error {
	ret := _m.Called(ctx, promo)
	return ret.Error(0)
}

func (_m *PromotionRepository) GetPromotion(ctx context.Context, id, organizationID string) (*domain.Promotion, error) {
	ret := _m.Called(ctx, id, organizationID)
	var r0 *domain.Promotion
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Promotion)
	}
	return r0, ret.Error(1)
}

func (_m *PromotionRepository) GetPromotionByCode(ctx context.Context, code, organizationID, branchID string) (*domain.Promotion, error) {
	ret := _m.Called(ctx, code, organizationID, branchID)
	var r0 *domain.Promotion
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Promotion)
	}
	return r0, ret.Error(1)
}

func (_m *PromotionRepository) ListPromotions(ctx context.Context, organizationID string) ([]domain.Promotion, error) {
	ret := _m.Called(ctx, organizationID)
	var r0 []domain.Promotion
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Promotion)
	}
	return r0, ret.Error(1)
}

func (_m *PromotionRepository) UpdatePromotion(ctx context.Context, promo *domain.Promotion) error {
	ret := _m.Called(ctx, promo)
	return ret.Error(0)
}

func (_m *PromotionRepository) DeletePromotion(ctx context.Context, id, organizationID string) error {
	ret := _m.Called(ctx, id, organizationID)
	return ret.Error(0)
}

func (_m *PromotionRepository) PromotionUsageCount(ctx context.Context, promotionID string) (int, error) {
	ret := _m.Called(ctx, promotionID)
	return ret.Int(0), ret.Error(1)
}

type PaymentRepository struct {
	mock.Mock
}

func NewPaymentRepository(t testingT) *PaymentRepository {
	m := &PaymentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *PaymentRepository) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Payment)
	}
	return r0, ret.Error(1)
}

func (_m *PaymentRepository) GetPaymentByKey(ctx context.Context, idempotencyKey string) (*domain.Payment, error) {
	ret := _m.Called(ctx, idempotencyKey)
	var r0 *domain.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Payment)
	}
	return r0, ret.Error(1)
}

func (_m *PaymentRepository) FinalizeCheckout(ctx context.Context, params service.CheckoutParams) (*domain.Payment, *domain.Order, service.CheckoutOutcome, error) {
	ret := _m.Called(ctx, params)
	var r0 *domain.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Payment)
	}
	var r1 *domain.Order
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*domain.Order)
	}
	var r2 service.CheckoutOutcome
	if ret.Get(2) != nil {
		r2 = ret.Get(2).(service.CheckoutOutcome)
	}
	return r0, r1, r2, ret.Error(3)
}
