// Package pricing holds the pure money arithmetic for orders. Everything is
// decimal.Decimal; float64 never touches a price.
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"pointofsale/internal/domain"
)

// DiscountBase selects which amount a promotion discounts.
type DiscountBase int

const (
	// DiscountBeforeTax applies the discount to the pre-tax subtotal and taxes
	// the remainder.
	DiscountBeforeTax DiscountBase = iota
)

type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Tax            decimal.Decimal
	TotalAmount    decimal.Decimal
}

// PriceLine resolves a cart line against the product's option groups and
// returns the frozen unit price plus the resolved selections.
//
// Every required group needs exactly one selection; optional groups take at
// most one. Selections naming an unknown group or option fail with
// ErrInvalidSelection. The computed unit price may be zero but never negative.
func PriceLine(product *domain.Product, quantity int, selections map[string]string) (decimal.Decimal, []domain.SelectedOption, error) {
	if quantity <= 0 {
		return decimal.Zero, nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidSelection)
	}

	groups := product.OptionGroups()
	known := make(map[string]domain.OptionGroup, len(groups))
	for _, g := range groups {
		known[g.Name] = g
	}

	for name := range selections {
		if _, ok := known[name]; !ok {
			return decimal.Zero, nil, fmt.Errorf("%w: unknown option group %q", domain.ErrInvalidSelection, name)
		}
	}

	unit := product.Price
	var resolved []domain.SelectedOption
	for _, g := range groups {
		choice, picked := selections[g.Name]
		if !picked {
			if g.Required {
				return decimal.Zero, nil, fmt.Errorf("%w: option group %q requires a selection", domain.ErrInvalidSelection, g.Name)
			}
			continue
		}
		opt, err := findOption(g, choice)
		if err != nil {
			return decimal.Zero, nil, err
		}
		unit = unit.Add(opt.PriceDelta)
		resolved = append(resolved, domain.SelectedOption{
			Group:      g.Name,
			Name:       opt.OptionName,
			PriceDelta: opt.PriceDelta,
		})
	}

	if unit.IsNegative() {
		return decimal.Zero, nil, fmt.Errorf("%w: unit price %s below zero for product %s", domain.ErrInvalidPricing, unit, product.ID)
	}
	return unit, resolved, nil
}

func findOption(g domain.OptionGroup, name string) (domain.ProductOption, error) {
	for _, opt := range g.Options {
		if opt.OptionName == name {
			return opt, nil
		}
	}
	return domain.ProductOption{}, fmt.Errorf("%w: option %q not in group %q", domain.ErrInvalidSelection, name, g.Name)
}

// ComputeTotals derives the order totals from priced items. The promotion is
// assumed already validated for eligibility (window, usage, min total); here it
// only contributes arithmetic. A nil promotion means no discount.
func ComputeTotals(items []domain.OrderItem, promo *domain.Promotion, taxRate decimal.Decimal, base DiscountBase) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, domain.ErrEmptyOrder
	}

	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	discount := Discount(promo, subtotal)
	taxed := subtotal.Sub(discount)
	tax := taxed.Mul(taxRate).Round(2)
	total := taxed.Add(tax)
	if total.IsNegative() {
		return Totals{}, fmt.Errorf("%w: total %s below zero", domain.ErrInvalidPricing, total)
	}
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Tax:            tax,
		TotalAmount:    total,
	}, nil
}

// Discount computes the promotion's discount against the given base amount.
// Percentage discounts round down to the smallest currency unit so the house
// never over-discounts; fixed amounts are capped at the base.
func Discount(promo *domain.Promotion, base decimal.Decimal) decimal.Decimal {
	if promo == nil {
		return decimal.Zero
	}
	var d decimal.Decimal
	switch promo.DiscountType {
	case domain.DiscountPercentage:
		d = base.Mul(promo.DiscountValue).Div(decimal.NewFromInt(100)).RoundDown(2)
	case domain.DiscountFixed:
		d = promo.DiscountValue
	default:
		return decimal.Zero
	}
	if promo.MaxDiscount != nil && d.GreaterThan(*promo.MaxDiscount) {
		d = *promo.MaxDiscount
	}
	if d.GreaterThan(base) {
		d = base
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Eligible reports whether the promotion can be applied to an order with the
// given subtotal at the given time; usedCount is the recorded redemption count.
func Eligible(promo *domain.Promotion, subtotal decimal.Decimal, usedCount int, now time.Time) error {
	if promo == nil {
		return nil
	}
	if !promo.IsActive {
		return fmt.Errorf("%w: promotion %s is inactive", domain.ErrPromotionInvalid, promo.Code)
	}
	if promo.ValidFrom != nil && now.Before(*promo.ValidFrom) {
		return fmt.Errorf("%w: promotion %s is not yet valid", domain.ErrPromotionInvalid, promo.Code)
	}
	if promo.ValidUntil != nil && now.After(*promo.ValidUntil) {
		return fmt.Errorf("%w: promotion %s has expired", domain.ErrPromotionInvalid, promo.Code)
	}
	if promo.MinOrderTotal != nil && subtotal.LessThan(*promo.MinOrderTotal) {
		return fmt.Errorf("%w: order subtotal %s below promotion minimum %s", domain.ErrPromotionInvalid, subtotal, promo.MinOrderTotal)
	}
	if promo.MaxUsageCount != nil && usedCount >= *promo.MaxUsageCount {
		return fmt.Errorf("%w: promotion %s usage limit reached", domain.ErrPromotionInvalid, promo.Code)
	}
	return nil
}
