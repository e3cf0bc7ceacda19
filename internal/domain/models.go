package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	ImageURL       string          `json:"image_url"`
	IsAvailable    bool            `json:"is_available"`
	SortOrder      int             `json:"sort_order"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Options        []ProductOption `json:"options,omitempty"`
}

// ProductOption is one choice inside a named option group ("Size" -> "Large").
// Options are stored flat; IsRequired marks the whole group as mandatory.
type ProductOption struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	OptionGroup string          `json:"option_group"`
	OptionName  string          `json:"option_name"`
	PriceDelta  decimal.Decimal `json:"price_delta"`
	IsRequired  bool            `json:"is_required"`
	SortOrder   int             `json:"sort_order"`
}

type OptionGroup struct {
	Name     string          `json:"name"`
	Required bool            `json:"required"`
	Options  []ProductOption `json:"options"`
}

// OptionGroups folds the flat option rows into named groups, preserving sort
// order within each group.
func (p *Product) OptionGroups() []OptionGroup {
	var groups []OptionGroup
	index := map[string]int{}
	for _, opt := range p.Options {
		i, ok := index[opt.OptionGroup]
		if !ok {
			i = len(groups)
			index[opt.OptionGroup] = i
			groups = append(groups, OptionGroup{Name: opt.OptionGroup})
		}
		if opt.IsRequired {
			groups[i].Required = true
		}
		groups[i].Options = append(groups[i].Options, opt)
	}
	return groups
}

// CartLine is a client-submitted, not-yet-priced order line. Selections map an
// option group name to the chosen option name.
type CartLine struct {
	ProductID  string            `json:"product_id"`
	Quantity   int               `json:"quantity"`
	Selections map[string]string `json:"selections,omitempty"`
}

// SelectedOption is a priced selection frozen into an order item.
type SelectedOption struct {
	Group      string          `json:"group"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

type OrderItem struct {
	ID         string           `json:"id"`
	OrderID    string           `json:"order_id"`
	ProductID  string           `json:"product_id"`
	Name       string           `json:"name"`
	Quantity   int              `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	ItemTotal  decimal.Decimal  `json:"item_total"`
	Selections []SelectedOption `json:"selections,omitempty"`
	ItemStatus ItemStatus       `json:"item_status"`
	AddedBy    string           `json:"added_by"`
	CreatedAt  time.Time        `json:"created_at"`
}

type Order struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	BranchID       string          `json:"branch_id"`
	TableID        *int            `json:"table_id"`
	QRSessionID    *string         `json:"qr_session_id,omitempty"`
	OrderNumber    int             `json:"order_number"`
	Status         OrderStatus     `json:"status"`
	Items          []OrderItem     `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Tax            decimal.Decimal `json:"tax"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PromotionID    *string         `json:"promotion_id,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
}

type TableSession struct {
	ID             string     `json:"id"`
	Token          string     `json:"token"`
	TableNumber    int        `json:"table_number"`
	OrganizationID string     `json:"organization_id"`
	BranchID       string     `json:"branch_id"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	ClosedAt       *time.Time `json:"closed_at"`
}

type DiscountType string

const (
	DiscountFixed      DiscountType = "FIXED_AMOUNT"
	DiscountPercentage DiscountType = "PERCENTAGE"
)

type Promotion struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	BranchID       *string          `json:"branch_id,omitempty"`
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	DiscountType   DiscountType     `json:"discount_type"`
	DiscountValue  decimal.Decimal  `json:"discount_value"`
	MaxDiscount    *decimal.Decimal `json:"max_discount,omitempty"`
	MinOrderTotal  *decimal.Decimal `json:"min_order_total,omitempty"`
	ValidFrom      *time.Time       `json:"valid_from,omitempty"`
	ValidUntil     *time.Time       `json:"valid_until,omitempty"`
	MaxUsageCount  *int             `json:"max_usage_count,omitempty"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type Payment struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"order_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"payment_method"`
	Status         string          `json:"status"`
	IdempotencyKey string          `json:"idempotency_key"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Scope is the tenant context the boundary layer has already validated.
// Core operations match on it instead of branching on roles.
type Scope struct {
	OrganizationID string
	BranchID       string
	UserID         string
	Role           string
}

// Event is the fan-out payload published for every mutation. Delivery is
// out-of-band; emission never blocks or rolls back the producing transaction.
type Event struct {
	Type           string                 `json:"type"`
	OrderID        string                 `json:"order_id,omitempty"`
	SessionID      string                 `json:"session_id,omitempty"`
	BranchID       string                 `json:"branch_id"`
	OrganizationID string                 `json:"organization_id"`
	Payload        map[string]interface{} `json:"payload,omitempty"`
	Timestamp      time.Time              `json:"timestamp"`
}

const (
	EventOrderCreated       = "order_created"
	EventOrderUpdated       = "order_updated"
	EventOrderStatusUpdated = "order_status_updated"
	EventOrderPaid          = "order_paid"
	EventSessionOpened      = "qr_session_opened"
	EventSessionClosed      = "qr_session_closed"
)
