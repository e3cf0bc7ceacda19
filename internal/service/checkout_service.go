package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"pointofsale/internal/domain"
	"pointofsale/internal/pricing"
)

type CheckoutService struct {
	payments  PaymentRepository
	orders    OrderRepository
	cache     IdempotencyCache
	publisher EventPublisher

	// minStatus is the earliest lifecycle status an order may be paid from.
	minStatus    domain.OrderStatus
	discountBase pricing.DiscountBase
}

func NewCheckoutService(payments PaymentRepository, orders OrderRepository, cache IdempotencyCache, publisher EventPublisher, minStatus domain.OrderStatus) *CheckoutService {
	return &CheckoutService{
		payments:     payments,
		orders:       orders,
		cache:        cache,
		publisher:    publisher,
		minStatus:    minStatus,
		discountBase: pricing.DiscountBeforeTax,
	}
}

// Checkout settles an order exactly once per idempotency key. A replay with
// the same key returns the original payment; concurrent attempts with
// different keys resolve into one success and one ErrAlreadyFinalized.
func (s *CheckoutService) Checkout(ctx context.Context, scope domain.Scope, input CheckoutInput) (*domain.Payment, *domain.Order, error) {
	if input.IdempotencyKey == "" {
		return nil, nil, fmt.Errorf("%w: idempotency key is required", domain.ErrValidation)
	}
	if input.PaymentMethod == "" {
		return nil, nil, fmt.Errorf("%w: payment method is required", domain.ErrValidation)
	}

	// Fast path: a marker means this exact request already settled. The
	// payments table stays the source of truth, so a cache miss just falls
	// through to the transaction.
	markerKey := s.cache.CheckoutMarkerKey(input.OrderID, input.IdempotencyKey)
	if exists, _ := s.cache.Exists(ctx, markerKey); exists {
		payment, err := s.payments.GetPaymentByKey(ctx, input.IdempotencyKey)
		if err == nil && payment.OrderID == input.OrderID {
			order, err := s.orders.GetOrder(ctx, input.OrderID, scope.BranchID)
			if err != nil {
				return nil, nil, err
			}
			return payment, order, nil
		}
	}

	payment, order, outcome, err := s.payments.FinalizeCheckout(ctx, CheckoutParams{
		OrderID:        input.OrderID,
		BranchID:       scope.BranchID,
		OrganizationID: scope.OrganizationID,
		PaymentMethod:  input.PaymentMethod,
		IdempotencyKey: input.IdempotencyKey,
		PromotionCode:  input.PromotionCode,
		MinStatus:      s.minStatus,
		DiscountBase:   s.discountBase,
	})
	if err != nil {
		return nil, nil, err
	}

	_ = s.cache.SetMarker(ctx, markerKey)

	if !outcome.Replayed {
		// Checkout is a lifecycle transition like any other, so subscribers
		// get the standard status event; order_paid carries the settlement
		// details on top of it.
		s.emit(ctx, domain.EventOrderStatusUpdated, order, map[string]interface{}{
			"from":       outcome.PreviousStatus,
			"status":     domain.StatusPaid,
			"payment_id": payment.ID,
		})
		s.emit(ctx, domain.EventOrderPaid, order, map[string]interface{}{
			"status":       domain.StatusPaid,
			"payment_id":   payment.ID,
			"total_amount": order.TotalAmount,
		})
	}
	return payment, order, nil
}

// GetPayment resolves a payment by id and verifies its order belongs to the
// caller's branch before returning it.
func (s *CheckoutService) GetPayment(ctx context.Context, scope domain.Scope, id string) (*domain.Payment, error) {
	payment, err := s.payments.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.orders.GetOrder(ctx, payment.OrderID, scope.BranchID); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *CheckoutService) emit(ctx context.Context, eventType string, order *domain.Order, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, domain.Event{
		Type:           eventType,
		OrderID:        order.ID,
		BranchID:       order.BranchID,
		OrganizationID: order.OrganizationID,
		Payload:        payload,
		Timestamp:      time.Now(),
	})
	if err != nil {
		log.Printf("checkout-service: failed to publish %s event: %v", eventType, err)
	}
}
