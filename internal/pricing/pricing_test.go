package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointofsale/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func padThai() *domain.Product {
	return &domain.Product{
		ID:    "prod-1",
		Name:  "Pad Thai",
		Price: dec("60.00"),
		Options: []domain.ProductOption{
			{ID: "opt-1", ProductID: "prod-1", OptionGroup: "Spice Level", OptionName: "Mild", PriceDelta: dec("0"), IsRequired: true},
			{ID: "opt-2", ProductID: "prod-1", OptionGroup: "Spice Level", OptionName: "Hot", PriceDelta: dec("5.00"), IsRequired: true},
			{ID: "opt-3", ProductID: "prod-1", OptionGroup: "Extra", OptionName: "Shrimp", PriceDelta: dec("20.00")},
		},
	}
}

func TestPriceLine(t *testing.T) {
	tests := []struct {
		name       string
		product    *domain.Product
		quantity   int
		selections map[string]string
		wantUnit   string
		wantOpts   int
		wantErr    error
	}{
		{
			name:       "required group selected",
			product:    padThai(),
			quantity:   2,
			selections: map[string]string{"Spice Level": "Hot"},
			wantUnit:   "65.00",
			wantOpts:   1,
		},
		{
			name:       "optional group stacks on top",
			product:    padThai(),
			quantity:   1,
			selections: map[string]string{"Spice Level": "Mild", "Extra": "Shrimp"},
			wantUnit:   "80.00",
			wantOpts:   2,
		},
		{
			name:     "missing required group",
			product:  padThai(),
			quantity: 1,
			wantErr:  domain.ErrInvalidSelection,
		},
		{
			name:       "unknown group",
			product:    padThai(),
			quantity:   1,
			selections: map[string]string{"Spice Level": "Hot", "Sauce": "Extra"},
			wantErr:    domain.ErrInvalidSelection,
		},
		{
			name:       "unknown option in known group",
			product:    padThai(),
			quantity:   1,
			selections: map[string]string{"Spice Level": "Nuclear"},
			wantErr:    domain.ErrInvalidSelection,
		},
		{
			name:       "zero quantity",
			product:    padThai(),
			quantity:   0,
			selections: map[string]string{"Spice Level": "Hot"},
			wantErr:    domain.ErrInvalidSelection,
		},
		{
			name: "negative delta below zero rejected",
			product: &domain.Product{
				ID:    "prod-2",
				Price: dec("10.00"),
				Options: []domain.ProductOption{
					{OptionGroup: "Deal", OptionName: "Voucher", PriceDelta: dec("-15.00")},
				},
			},
			quantity:   1,
			selections: map[string]string{"Deal": "Voucher"},
			wantErr:    domain.ErrInvalidPricing,
		},
		{
			name: "negative delta down to zero allowed",
			product: &domain.Product{
				ID:    "prod-3",
				Price: dec("10.00"),
				Options: []domain.ProductOption{
					{OptionGroup: "Deal", OptionName: "Voucher", PriceDelta: dec("-10.00")},
				},
			},
			quantity:   1,
			selections: map[string]string{"Deal": "Voucher"},
			wantUnit:   "0.00",
			wantOpts:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, opts, err := PriceLine(tt.product, tt.quantity, tt.selections)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, unit.Equal(dec(tt.wantUnit)), "unit = %s, want %s", unit, tt.wantUnit)
			assert.Len(t, opts, tt.wantOpts)
		})
	}
}

func TestComputeTotalsScenario(t *testing.T) {
	// Pad Thai x2 Hot, 7% tax, SAVE10 (10% capped at 20.00).
	product := padThai()
	unit, opts, err := PriceLine(product, 2, map[string]string{"Spice Level": "Hot"})
	require.NoError(t, err)
	require.True(t, unit.Equal(dec("65.00")))

	items := []domain.OrderItem{{
		ProductID:  product.ID,
		Quantity:   2,
		UnitPrice:  unit,
		ItemTotal:  unit.Mul(decimal.NewFromInt(2)),
		Selections: opts,
	}}
	cap := dec("20.00")
	promo := &domain.Promotion{
		Code:          "SAVE10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: dec("10"),
		MaxDiscount:   &cap,
		IsActive:      true,
	}

	totals, err := ComputeTotals(items, promo, dec("0.07"), DiscountBeforeTax)
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(dec("130.00")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(dec("13.00")), "discount = %s", totals.DiscountAmount)
	assert.True(t, totals.Tax.Equal(dec("8.19")), "tax = %s", totals.Tax)
	assert.True(t, totals.TotalAmount.Equal(dec("125.19")), "total = %s", totals.TotalAmount)
}

func TestComputeTotals(t *testing.T) {
	fixed := func(v string) *domain.Promotion {
		return &domain.Promotion{DiscountType: domain.DiscountFixed, DiscountValue: dec(v), IsActive: true}
	}
	item := func(unit string, qty int) domain.OrderItem {
		return domain.OrderItem{UnitPrice: dec(unit), Quantity: qty}
	}

	tests := []struct {
		name         string
		items        []domain.OrderItem
		promo        *domain.Promotion
		taxRate      string
		wantDiscount string
		wantTax      string
		wantTotal    string
		wantErr      error
	}{
		{
			name:      "no promotion",
			items:     []domain.OrderItem{item("100.00", 1)},
			taxRate:   "0.07",
			wantTax:   "7.00",
			wantTotal: "107.00",
		},
		{
			name:         "fixed discount capped at subtotal",
			items:        []domain.OrderItem{item("30.00", 1)},
			promo:        fixed("50.00"),
			taxRate:      "0.07",
			wantDiscount: "30.00",
			wantTax:      "0.00",
			wantTotal:    "0.00",
		},
		{
			name:         "percentage rounds down to satang",
			items:        []domain.OrderItem{item("33.35", 1)},
			promo:        &domain.Promotion{DiscountType: domain.DiscountPercentage, DiscountValue: dec("10"), IsActive: true},
			taxRate:      "0",
			wantDiscount: "3.33",
			wantTax:      "0.00",
			wantTotal:    "30.02",
		},
		{
			name:    "empty order",
			items:   nil,
			taxRate: "0.07",
			wantErr: domain.ErrEmptyOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := ComputeTotals(tt.items, tt.promo, dec(tt.taxRate), DiscountBeforeTax)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantDiscount != "" {
				assert.True(t, totals.DiscountAmount.Equal(dec(tt.wantDiscount)), "discount = %s", totals.DiscountAmount)
			}
			assert.True(t, totals.Tax.Equal(dec(tt.wantTax)), "tax = %s", totals.Tax)
			assert.True(t, totals.TotalAmount.Equal(dec(tt.wantTotal)), "total = %s", totals.TotalAmount)

			// total is always derivable from the parts
			recomputed := totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.Tax)
			assert.True(t, totals.TotalAmount.Equal(recomputed))
		})
	}
}

func TestEligible(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	minTotal := dec("100.00")
	maxUses := 5

	active := domain.Promotion{
		Code:          "SAVE10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: dec("10"),
		IsActive:      true,
	}

	tests := []struct {
		name     string
		mutate   func(p *domain.Promotion)
		subtotal string
		used     int
		wantErr  bool
	}{
		{name: "active and unconstrained", subtotal: "50.00"},
		{name: "inactive", mutate: func(p *domain.Promotion) { p.IsActive = false }, subtotal: "50.00", wantErr: true},
		{name: "not yet valid", mutate: func(p *domain.Promotion) { p.ValidFrom = &future }, subtotal: "50.00", wantErr: true},
		{name: "expired", mutate: func(p *domain.Promotion) { p.ValidUntil = &past }, subtotal: "50.00", wantErr: true},
		{name: "below min order total", mutate: func(p *domain.Promotion) { p.MinOrderTotal = &minTotal }, subtotal: "99.99", wantErr: true},
		{name: "at min order total", mutate: func(p *domain.Promotion) { p.MinOrderTotal = &minTotal }, subtotal: "100.00"},
		{name: "usage exhausted", mutate: func(p *domain.Promotion) { p.MaxUsageCount = &maxUses }, subtotal: "50.00", used: 5, wantErr: true},
		{name: "usage remaining", mutate: func(p *domain.Promotion) { p.MaxUsageCount = &maxUses }, subtotal: "50.00", used: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo := active
			if tt.mutate != nil {
				tt.mutate(&promo)
			}
			err := Eligible(&promo, dec(tt.subtotal), tt.used, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrPromotionInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
