package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pointofsale/internal/domain"
	"pointofsale/internal/pricing"
	"pointofsale/internal/service"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `id, order_id, amount, payment_method, status, idempotency_key, created_at`

var statusRank = map[domain.OrderStatus]int{
	domain.StatusOpen:      0,
	domain.StatusConfirmed: 1,
	domain.StatusPreparing: 2,
	domain.StatusReady:     3,
}

func (r *PaymentRepository) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE id = $1
	`, id)
	return scanPayment(row)
}

func (r *PaymentRepository) GetPaymentByKey(ctx context.Context, idempotencyKey string) (*domain.Payment, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE idempotency_key = $1
	`, idempotencyKey)
	return scanPayment(row)
}

// FinalizeCheckout settles the order in a single transaction. The order row is
// locked first, so concurrent attempts serialize: the loser either replays the
// winner's payment (same key) or fails with ErrAlreadyFinalized.
func (r *PaymentRepository) FinalizeCheckout(ctx context.Context, params service.CheckoutParams) (*domain.Payment, *domain.Order, service.CheckoutOutcome, error) {
	var outcome service.CheckoutOutcome

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, outcome, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = $1 AND branch_id = $2 FOR UPDATE
	`, params.OrderID, params.BranchID)
	order, err := scanOrderRows(row)
	if err != nil {
		return nil, nil, outcome, err
	}
	items, err := loadOrderItems(ctx, tx, order.ID)
	if err != nil {
		return nil, nil, outcome, err
	}
	order.Items = items

	// Replay: the key already settled a payment. Return it untouched.
	existing, err := scanPayment(tx.QueryRowContext(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE idempotency_key = $1
	`, params.IdempotencyKey))
	if err == nil {
		if existing.OrderID != params.OrderID {
			return nil, nil, outcome, fmt.Errorf("%w: idempotency key already used for another order", domain.ErrConflict)
		}
		outcome.Replayed = true
		return existing, order, outcome, tx.Commit()
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, outcome, err
	}

	if order.Status.Terminal() {
		return nil, nil, outcome, domain.ErrAlreadyFinalized
	}
	if statusRank[order.Status] < statusRank[params.MinStatus] {
		return nil, nil, outcome, fmt.Errorf("%w: order in status %s cannot be checked out", domain.ErrInvalidTransition, order.Status)
	}
	outcome.PreviousStatus = order.Status

	// Promotion is evaluated against the order as it stands now, inside the
	// lock, so the usage count and subtotal cannot drift under us.
	var promo *domain.Promotion
	if params.PromotionCode != "" {
		promo, err = getPromotionByCodeTx(ctx, tx, params.PromotionCode, params.OrganizationID, params.BranchID)
		if err != nil {
			return nil, nil, outcome, err
		}
		var used int
		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM promotion_usage WHERE promotion_id = $1
		`, promo.ID).Scan(&used)
		if err != nil {
			return nil, nil, outcome, err
		}
		if err := pricing.Eligible(promo, order.Subtotal, used, time.Now()); err != nil {
			return nil, nil, outcome, err
		}
	}

	totals, err := pricing.ComputeTotals(order.Items, promo, order.TaxRate, params.DiscountBase)
	if err != nil {
		return nil, nil, outcome, err
	}

	now := time.Now()
	var promotionID *string
	if promo != nil {
		promotionID = &promo.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO promotion_usage (id, promotion_id, order_id, used_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), promo.ID, order.ID, now)
		if err != nil {
			return nil, nil, outcome, translateErr(err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, subtotal = $2, discount_amount = $3, tax = $4, total_amount = $5,
			promotion_id = $6, paid_at = $7, updated_at = $7
		WHERE id = $8
	`, domain.StatusPaid, totals.Subtotal, totals.DiscountAmount, totals.Tax, totals.TotalAmount,
		promotionID, now, order.ID)
	if err != nil {
		return nil, nil, outcome, translateErr(err)
	}

	payment := &domain.Payment{
		ID:             uuid.NewString(),
		OrderID:        order.ID,
		Amount:         totals.TotalAmount,
		Method:         params.PaymentMethod,
		Status:         "COMPLETED",
		IdempotencyKey: params.IdempotencyKey,
		CreatedAt:      now,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, amount, payment_method, status, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, payment.ID, payment.OrderID, payment.Amount, payment.Method, payment.Status,
		payment.IdempotencyKey, payment.CreatedAt)
	if err != nil {
		return nil, nil, outcome, translateErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, outcome, err
	}

	order.Status = domain.StatusPaid
	order.Subtotal = totals.Subtotal
	order.DiscountAmount = totals.DiscountAmount
	order.Tax = totals.Tax
	order.TotalAmount = totals.TotalAmount
	order.PromotionID = promotionID
	order.PaidAt = &now
	order.UpdatedAt = now
	return payment, order, outcome, nil
}

func getPromotionByCodeTx(ctx context.Context, tx *sql.Tx, code, organizationID, branchID string) (*domain.Promotion, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT `+promotionColumns+` FROM promotions
		WHERE code = $1 AND organization_id = $2 AND (branch_id IS NULL OR branch_id = $3)
		ORDER BY branch_id NULLS LAST
		LIMIT 1
	`, code, organizationID, branchID)
	var p domain.Promotion
	err := row.Scan(&p.ID, &p.OrganizationID, &p.BranchID, &p.Code, &p.Name, &p.DiscountType,
		&p.DiscountValue, &p.MaxDiscount, &p.MinOrderTotal, &p.ValidFrom, &p.ValidUntil,
		&p.MaxUsageCount, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func scanPayment(row *sql.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.IdempotencyKey, &p.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

var _ service.PaymentRepository = (*PaymentRepository)(nil)
