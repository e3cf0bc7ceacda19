package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pointofsale/internal/domain"
	"pointofsale/internal/pricing"
)

type OrderService struct {
	orders    OrderRepository
	catalog   CatalogRepository
	sessions  SessionRepository
	publisher EventPublisher
	taxRate   decimal.Decimal
}

func NewOrderService(orders OrderRepository, catalog CatalogRepository, sessions SessionRepository, publisher EventPublisher, taxRate decimal.Decimal) *OrderService {
	return &OrderService{
		orders:    orders,
		catalog:   catalog,
		sessions:  sessions,
		publisher: publisher,
		taxRate:   taxRate,
	}
}

// Create prices every line server-side, snapshots the branch tax rate and
// stores the order atomically with a per-branch sequential number.
func (s *OrderService) Create(ctx context.Context, scope domain.Scope, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	tableID := input.TableID
	var sessionID *string
	if input.SessionToken != nil && *input.SessionToken != "" {
		session, err := s.sessions.GetSessionByToken(ctx, *input.SessionToken)
		if err != nil {
			return nil, err
		}
		if !session.IsActive {
			return nil, domain.ErrSessionClosed
		}
		if session.BranchID != scope.BranchID {
			return nil, domain.ErrNotFound
		}
		sessionID = &session.ID
		if tableID == nil {
			table := session.TableNumber
			tableID = &table
		}
	}

	items, err := s.priceLines(ctx, scope, input.Lines)
	if err != nil {
		return nil, err
	}
	totals, err := pricing.ComputeTotals(items, nil, s.taxRate, pricing.DiscountBeforeTax)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &domain.Order{
		ID:             uuid.NewString(),
		OrganizationID: scope.OrganizationID,
		BranchID:       scope.BranchID,
		TableID:        tableID,
		QRSessionID:    sessionID,
		Status:         domain.StatusOpen,
		Items:          items,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		Tax:            totals.Tax,
		TaxRate:        s.taxRate,
		TotalAmount:    totals.TotalAmount,
		CreatedBy:      scope.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventOrderCreated, order, map[string]interface{}{
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
	})
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, scope domain.Scope, id string) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, id, scope.BranchID)
}

func (s *OrderService) List(ctx context.Context, scope domain.Scope, filter OrderFilter) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx, scope.BranchID, filter)
}

// UpdateStatus moves the order along the lifecycle graph. The write is a
// compare-and-set against the status the caller observed, so two concurrent
// transitions resolve into one winner and one ErrConflict.
func (s *OrderService) UpdateStatus(ctx context.Context, scope domain.Scope, id string, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, id, scope.BranchID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, domain.ErrAlreadyFinalized
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, next)
	}
	if next == domain.StatusPaid {
		return nil, fmt.Errorf("%w: orders are marked paid through checkout", domain.ErrInvalidTransition)
	}

	from := order.Status
	if next == domain.StatusCancelled && order.PromotionID != nil {
		err = s.cancelWithCompensation(ctx, order, from)
	} else {
		err = s.orders.UpdateOrderStatus(ctx, order.ID, scope.BranchID, from, next)
	}
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			if current, getErr := s.orders.GetOrder(ctx, id, scope.BranchID); getErr == nil && current.Status.Terminal() {
				return nil, domain.ErrAlreadyFinalized
			}
		}
		return nil, err
	}

	order.Status = next
	order.UpdatedAt = time.Now()
	s.emit(ctx, domain.EventOrderStatusUpdated, order, map[string]interface{}{
		"from":   from,
		"status": next,
	})
	return order, nil
}

// cancelWithCompensation releases the applied promotion: the usage row is
// removed and totals are recomputed without the discount, in one transaction
// with the status flip.
func (s *OrderService) cancelWithCompensation(ctx context.Context, order *domain.Order, from domain.OrderStatus) error {
	taxed := order.Subtotal
	order.DiscountAmount = decimal.Zero
	order.Tax = taxed.Mul(order.TaxRate).Round(2)
	order.TotalAmount = taxed.Add(order.Tax)
	return s.orders.CancelOrder(ctx, order, from)
}

// AddItems appends priced lines to an OPEN order and recomputes the totals
// from scratch.
func (s *OrderService) AddItems(ctx context.Context, scope domain.Scope, id string, lines []domain.CartLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	order, err := s.mutableOrder(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	items, err := s.priceLines(ctx, scope, lines)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = append(order.Items, items...)

	if err := s.recomputeAndStore(ctx, order); err != nil {
		return nil, err
	}
	s.emit(ctx, domain.EventOrderUpdated, order, map[string]interface{}{"items_added": len(items)})
	return order, nil
}

func (s *OrderService) RemoveItem(ctx context.Context, scope domain.Scope, orderID, itemID string) (*domain.Order, error) {
	order, err := s.mutableOrder(ctx, scope, orderID)
	if err != nil {
		return nil, err
	}

	kept := order.Items[:0]
	found := false
	for _, it := range order.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, fmt.Errorf("%w: order item %s", domain.ErrNotFound, itemID)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: cannot remove the last item", domain.ErrEmptyOrder)
	}
	order.Items = kept

	if err := s.recomputeAndStore(ctx, order); err != nil {
		return nil, err
	}
	s.emit(ctx, domain.EventOrderUpdated, order, map[string]interface{}{"item_removed": itemID})
	return order, nil
}

// UpdateItemStatus tracks kitchen progress per item. It never gates or drives
// the order lifecycle.
func (s *OrderService) UpdateItemStatus(ctx context.Context, scope domain.Scope, orderID, itemID string, status domain.ItemStatus) error {
	order, err := s.orders.GetOrder(ctx, orderID, scope.BranchID)
	if err != nil {
		return err
	}
	found := false
	for _, it := range order.Items {
		if it.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: order item %s", domain.ErrNotFound, itemID)
	}
	if err := s.orders.UpdateItemStatus(ctx, orderID, itemID, status); err != nil {
		return err
	}
	s.emit(ctx, domain.EventOrderUpdated, order, map[string]interface{}{
		"item_id":     itemID,
		"item_status": status,
	})
	return nil
}

func (s *OrderService) mutableOrder(ctx context.Context, scope domain.Scope, id string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, id, scope.BranchID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, domain.ErrAlreadyFinalized
	}
	if order.Status != domain.StatusOpen {
		return nil, fmt.Errorf("%w: items are editable only while the order is open", domain.ErrConflict)
	}
	return order, nil
}

func (s *OrderService) recomputeAndStore(ctx context.Context, order *domain.Order) error {
	totals, err := pricing.ComputeTotals(order.Items, nil, order.TaxRate, pricing.DiscountBeforeTax)
	if err != nil {
		return err
	}
	order.Subtotal = totals.Subtotal
	order.DiscountAmount = totals.DiscountAmount
	order.Tax = totals.Tax
	order.TotalAmount = totals.TotalAmount
	order.UpdatedAt = time.Now()
	return s.orders.ReplaceOrderItems(ctx, order)
}

func (s *OrderService) priceLines(ctx context.Context, scope domain.Scope, lines []domain.CartLine) ([]domain.OrderItem, error) {
	now := time.Now()
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID, scope.OrganizationID)
		if err != nil {
			return nil, err
		}
		if !product.IsAvailable {
			return nil, fmt.Errorf("%w: product %s is not available", domain.ErrValidation, product.Name)
		}
		unit, selected, err := pricing.PriceLine(product, line.Quantity, line.Selections)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			ProductID:  product.ID,
			Name:       product.Name,
			Quantity:   line.Quantity,
			UnitPrice:  unit,
			ItemTotal:  unit.Mul(decimal.NewFromInt(int64(line.Quantity))),
			Selections: selected,
			ItemStatus: domain.ItemPending,
			AddedBy:    scope.UserID,
			CreatedAt:  now,
		})
	}
	return items, nil
}

func (s *OrderService) emit(ctx context.Context, eventType string, order *domain.Order, payload map[string]interface{}) {
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
		log.Printf("order-service: failed to publish %s event: %v", eventType, err)
	}
}
