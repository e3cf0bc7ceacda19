package domain

import "fmt"

type OrderStatus string

const (
	StatusOpen      OrderStatus = "OPEN"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusPaid      OrderStatus = "PAID"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

// allowedTransitions is the full lifecycle graph. PAID and CANCELLED are
// terminal and have no outgoing edges.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusOpen: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusPreparing: true,
		StatusCancelled: true,
	},
	StatusPreparing: {
		StatusReady:     true,
		StatusCancelled: true,
	},
	StatusReady: {
		StatusPaid:      true,
		StatusCancelled: true,
	},
	StatusPaid:      {},
	StatusCancelled: {},
}

// ParseOrderStatus rejects anything outside the closed enum; boundary input is
// never coerced.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case StatusOpen, StatusConfirmed, StatusPreparing, StatusReady, StatusPaid, StatusCancelled:
		return OrderStatus(raw), nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return allowedTransitions[s][next]
}

func (s OrderStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

type ItemStatus string

const (
	ItemPending   ItemStatus = "PENDING"
	ItemPreparing ItemStatus = "PREPARING"
	ItemReady     ItemStatus = "READY"
)

// ParseItemStatus validates the per-item kitchen status. It is display
// metadata, independent of the order lifecycle.
func ParseItemStatus(raw string) (ItemStatus, error) {
	switch ItemStatus(raw) {
	case ItemPending, ItemPreparing, ItemReady:
		return ItemStatus(raw), nil
	}
	return "", fmt.Errorf("unknown item status %q", raw)
}
