package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pointofsale/internal/domain"
)

type IdempotencyCache struct {
	mock.Mock
}

func NewIdempotencyCache(t testingT) *IdempotencyCache {
	m := &IdempotencyCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *IdempotencyCache) CheckoutMarkerKey(orderID, idempotencyKey string) string {
	ret := _m.Called(orderID, idempotencyKey)
	return ret.String(0)
}

func (_m *IdempotencyCache) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func (_m *IdempotencyCache) SetMarker(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *QRGenerator) Generate(token string) ([]byte, error) {
	ret := _m.Called(token)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}
