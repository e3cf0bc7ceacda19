package storage

import (
	"context"
	"database/sql"

	"pointofsale/internal/domain"
	"pointofsale/internal/service"
)

type PromotionRepository struct {
	DB *sql.DB
}

func NewPromotionRepository(db *sql.DB) *PromotionRepository {
	return &PromotionRepository{DB: db}
}

const promotionColumns = `id, organization_id, branch_id, code, name, discount_type, discount_value,
	max_discount, min_order_total, valid_from, valid_until, max_usage_count, is_active, created_at, updated_at`

func (r *PromotionRepository) InsertPromotion(ctx context.Context, promo *domain.Promotion) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO promotions (id, organization_id, branch_id, code, name, discount_type, discount_value,
			max_discount, min_order_total, valid_from, valid_until, max_usage_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, promo.ID, promo.OrganizationID, promo.BranchID, promo.Code, promo.Name, promo.DiscountType,
		promo.DiscountValue, promo.MaxDiscount, promo.MinOrderTotal, promo.ValidFrom, promo.ValidUntil,
		promo.MaxUsageCount, promo.IsActive, promo.CreatedAt, promo.UpdatedAt)
	return translateErr(err)
}

func (r *PromotionRepository) GetPromotion(ctx context.Context, id, organizationID string) (*domain.Promotion, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+promotionColumns+` FROM promotions WHERE id = $1 AND organization_id = $2
	`, id, organizationID)
	return scanPromotion(row)
}

// GetPromotionByCode prefers a branch-specific promotion over an org-wide one
// with the same code.
func (r *PromotionRepository) GetPromotionByCode(ctx context.Context, code, organizationID, branchID string) (*domain.Promotion, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+promotionColumns+` FROM promotions
		WHERE code = $1 AND organization_id = $2 AND (branch_id IS NULL OR branch_id = $3)
		ORDER BY branch_id NULLS LAST
		LIMIT 1
	`, code, organizationID, branchID)
	return scanPromotion(row)
}

func (r *PromotionRepository) ListPromotions(ctx context.Context, organizationID string) ([]domain.Promotion, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+promotionColumns+` FROM promotions WHERE organization_id = $1 ORDER BY created_at DESC
	`, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []domain.Promotion
	for rows.Next() {
		var p domain.Promotion
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.BranchID, &p.Code, &p.Name, &p.DiscountType,
			&p.DiscountValue, &p.MaxDiscount, &p.MinOrderTotal, &p.ValidFrom, &p.ValidUntil,
			&p.MaxUsageCount, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	return promos, rows.Err()
}

func (r *PromotionRepository) UpdatePromotion(ctx context.Context, promo *domain.Promotion) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE promotions
		SET code = $1, name = $2, discount_type = $3, discount_value = $4, max_discount = $5,
			min_order_total = $6, valid_from = $7, valid_until = $8, max_usage_count = $9,
			is_active = $10, branch_id = $11, updated_at = $12
		WHERE id = $13 AND organization_id = $14
	`, promo.Code, promo.Name, promo.DiscountType, promo.DiscountValue, promo.MaxDiscount,
		promo.MinOrderTotal, promo.ValidFrom, promo.ValidUntil, promo.MaxUsageCount,
		promo.IsActive, promo.BranchID, promo.UpdatedAt, promo.ID, promo.OrganizationID)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PromotionRepository) DeletePromotion(ctx context.Context, id, organizationID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM promotions WHERE id = $1 AND organization_id = $2
	`, id, organizationID)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PromotionRepository) PromotionUsageCount(ctx context.Context, promotionID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM promotion_usage WHERE promotion_id = $1
	`, promotionID).Scan(&count)
	return count, err
}

func scanPromotion(row *sql.Row) (*domain.Promotion, error) {
	var p domain.Promotion
	err := row.Scan(&p.ID, &p.OrganizationID, &p.BranchID, &p.Code, &p.Name, &p.DiscountType,
		&p.DiscountValue, &p.MaxDiscount, &p.MinOrderTotal, &p.ValidFrom, &p.ValidUntil,
		&p.MaxUsageCount, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

var _ service.PromotionRepository = (*PromotionRepository)(nil)
