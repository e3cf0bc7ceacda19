package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"pointofsale/internal/domain"
	"pointofsale/internal/service"
)

type CatalogServiceInterface struct {
	mock.Mock
}

func NewCatalogServiceInterface(t testingT) *CatalogServiceInterface {
	m := &CatalogServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CatalogServiceInterface) CreateProduct(ctx context.Context, scope domain.Scope, product *domain.Product) error {
	ret := _m.Called(ctx, scope, product)
	return ret.Error(0)
}

func (_m *CatalogServiceInterface) GetProduct(ctx context.Context, scope domain.Scope, id string) (*domain.Product, error) {
	ret := _m.Called(ctx, scope, id)
	var r0 *domain.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Product)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogServiceInterface) ListProducts(ctx context.Context, scope domain.Scope, filter service.ProductFilter) ([]domain.Product, error) {
	ret := _m.Called(ctx, scope, filter)
	var r0 []domain.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Product)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogServiceInterface) UpdateProduct(ctx context.Context, scope domain.Scope, product *domain.Product) error {
	ret := _m.Called(ctx, scope, product)
	return ret.Error(0)
}

func (_m *CatalogServiceInterface) DeleteProduct(ctx context.Context, scope domain.Scope, id string) error {
	ret := _m.Called(ctx, scope, id)
	return ret.Error(0)
}

type SessionServiceInterface struct {
	mock.Mock
}

func NewSessionServiceInterface(t testingT) *SessionServiceInterface {
	m := &SessionServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *SessionServiceInterface) Open(ctx context.Context, scope domain.Scope, tableNumber int) (*domain.TableSession, error) {
	ret := _m.Called(ctx, scope, tableNumber)
	var r0 *domain.TableSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.TableSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionServiceInterface) Close(ctx context.Context, scope domain.Scope, id string) (*domain.TableSession, error) {
	ret := _m.Called(ctx, scope, id)
	var r0 *domain.TableSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.TableSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionServiceInterface) ResolveToken(ctx context.Context, token string) (*domain.TableSession, error) {
	ret := _m.Called(ctx, token)
	var r0 *domain.TableSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.TableSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionServiceInterface) List(ctx context.Context, scope domain.Scope, activeOnly *bool) ([]domain.TableSession, error) {
	ret := _m.Called(ctx, scope, activeOnly)
	var r0 []domain.TableSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.TableSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionServiceInterface) QRCodePNG(ctx context.Context, scope domain.Scope, id string) ([]byte, error) {
	ret := _m.Called(ctx, scope, id)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

type OrderServiceInterface struct {
	mock.Mock
}

func NewOrderServiceInterface(t testingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *OrderServiceInterface) Create(ctx context.Context, scope domain.Scope, input service.CreateOrderInput) (*domain.Order, error) {
	ret := _m.Called(ctx, scope, input)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) Get(ctx context.Context, scope domain.Scope, id string) (*domain.Order, error) {
	ret := _m.Called(ctx, scope, id)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) List(ctx context.Context, scope domain.Scope, filter service.OrderFilter) ([]domain.Order, error) {
	ret := _m.Called(ctx, scope, filter)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) UpdateStatus(ctx context.Context, scope domain.Scope, id string, next domain.OrderStatus) (*domain.Order, error) {
	ret := _m.Called(ctx, scope, id, next)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) AddItems(ctx context.Context, scope domain.Scope, id string, lines []domain.CartLine) (*domain.Order, error) {
	ret := _m.Called(ctx, scope, id, lines)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) RemoveItem(ctx context.Context, scope domain.Scope, orderID, itemID string) (*domain.Order, error) {
	ret := _m.Called(ctx, scope, orderID, itemID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) UpdateItemStatus(ctx context.Context, scope domain.Scope, orderID, itemID string, status domain.ItemStatus) error {
	ret := _m.Called(ctx, scope, orderID, itemID, status)
	return ret.Error(0)
}

type CheckoutServiceInterface struct {
	mock.Mock
}

func NewCheckoutServiceInterface(t testingT) *CheckoutServiceInterface {
	m := &CheckoutServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CheckoutServiceInterface) Checkout(ctx context.Context, scope domain.Scope, input service.CheckoutInput) (*domain.Payment, *domain.Order, error) {
	ret := _m.Called(ctx, scope, input)
	var r0 *domain.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Payment)
	}
	var r1 *domain.Order
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*domain.Order)
	}
	return r0, r1, ret.Error(2)
}

func (_m *CheckoutServiceInterface) GetPayment(ctx context.Context, scope domain.Scope, id string) (*domain.Payment, error) {
	ret := _m.Called(ctx, scope, id)
	var r0 *domain.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Payment)
	}
	return r0, ret.Error(1)
}

type PromotionServiceInterface struct {
	mock.Mock
}

func NewPromotionServiceInterface(t testingT) *PromotionServiceInterface {
	m := &PromotionServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *PromotionServiceInterface) Create(ctx context.Context, scope domain.Scope, promo *domain.Promotion) error {
	ret := _m.Called(ctx, scope, promo)
	return ret.Error(0)
}

func (_m *PromotionServiceInterface) Get(ctx context.Context, scope domain.Scope, id string) (*domain.Promotion, error) {
	ret := _m.Called(ctx, scope, id)
	var r0 *domain.Promotion
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Promotion)
	}
	return r0, ret.Error(1)
}

func (_m *PromotionServiceInterface) List(ctx context.Context, scope domain.Scope) ([]domain.Promotion, error) {
	ret := _m.Called(ctx, scope)
	var r0 []domain.Promotion
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Promotion)
	}
	return r0, ret.Error(1)
}

func (_m *PromotionServiceInterface) Update(ctx context.Context, scope domain.Scope, promo *domain.Promotion) error {
	ret := _m.Called(ctx, scope, promo)
	return ret.Error(0)
}

func (_m *PromotionServiceInterface) Delete(ctx context.Context, scope domain.Scope, id string) error {
	ret := _m.Called(ctx, scope, id)
	return ret.Error(0)
}

func (_m *PromotionServiceInterface) Evaluate(ctx context.Context, scope domain.Scope, code string, subtotal decimal.Decimal) (*domain.Promotion, decimal.Decimal, error) {
	ret := _m.Called(ctx, scope, code, subtotal)
	var r0 *domain.Promotion
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Promotion)
	}
	var r1 decimal.Decimal
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(decimal.Decimal)
	}
	return r0, r1, ret.Error(2)
}
