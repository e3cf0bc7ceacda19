package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pointofsale/internal/domain"
	"pointofsale/internal/pricing"
)

type PromotionService struct {
	repository PromotionRepository
}

func NewPromotionService(repository PromotionRepository) *PromotionService {
	return &PromotionService{repository: repository}
}

func (s *PromotionService) Create(ctx context.Context, scope domain.Scope, promo *domain.Promotion) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	if err := validatePromotion(promo); err != nil {
		return err
	}

	now := time.Now()
	promo.ID = uuid.NewString()
	promo.OrganizationID = scope.OrganizationID
	promo.CreatedAt = now
	promo.UpdatedAt = now
	return s.repository.InsertPromotion(ctx, promo)
}

func (s *PromotionService) Get(ctx context.Context, scope domain.Scope, id string) (*domain.Promotion, error) {
	return s.repository.GetPromotion(ctx, id, scope.OrganizationID)
}

func (s *PromotionService) List(ctx context.Context, scope domain.Scope) ([]domain.Promotion, error) {
	return s.repository.ListPromotions(ctx, scope.OrganizationID)
}

func (s *PromotionService) Update(ctx context.Context, scope domain.Scope, promo *domain.Promotion) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	if err := validatePromotion(promo); err != nil {
		return err
	}

	existing, err := s.repository.GetPromotion(ctx, promo.ID, scope.OrganizationID)
	if err != nil {
		return err
	}
	promo.OrganizationID = existing.OrganizationID
	promo.CreatedAt = existing.CreatedAt
	promo.UpdatedAt = time.Now()
	return s.repository.UpdatePromotion(ctx, promo)
}

func (s *PromotionService) Delete(ctx context.Context, scope domain.Scope, id string) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	return s.repository.DeletePromotion(ctx, id, scope.OrganizationID)
}

// Evaluate previews the discount a code would yield for a subtotal without
// consuming any usage. Checkout re-evaluates inside its own transaction.
func (s *PromotionService) Evaluate(ctx context.Context, scope domain.Scope, code string, subtotal decimal.Decimal) (*domain.Promotion, decimal.Decimal, error) {
	promo, err := s.repository.GetPromotionByCode(ctx, code, scope.OrganizationID, scope.BranchID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	used, err := s.repository.PromotionUsageCount(ctx, promo.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if err := pricing.Eligible(promo, subtotal, used, time.Now()); err != nil {
		return nil, decimal.Zero, err
	}
	return promo, pricing.Discount(promo, subtotal), nil
}

func validatePromotion(promo *domain.Promotion) error {
	if promo.Code == "" {
		return fmt.Errorf("%w: promotion code is required", domain.ErrValidation)
	}
	switch promo.DiscountType {
	case domain.DiscountFixed, domain.DiscountPercentage:
	default:
		return fmt.Errorf("%w: unknown discount type %q", domain.ErrValidation, promo.DiscountType)
	}
	if !promo.DiscountValue.IsPositive() {
		return fmt.Errorf("%w: discount value must be positive", domain.ErrValidation)
	}
	if promo.DiscountType == domain.DiscountPercentage && promo.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: percentage discount cannot exceed 100", domain.ErrValidation)
	}
	return nil
}
