package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pointofsale/internal/domain"
)

// staffRoles may mutate catalog and promotion data. Scope headers are set by
// the gateway, so the check here is a final guard, not authentication.
func requireStaff(scope domain.Scope) error {
	switch scope.Role {
	case "admin", "owner", "manager":
		return nil
	}
	return domain.ErrUnauthorized
}

type CatalogService struct {
	repository CatalogRepository
}

func NewCatalogService(repository CatalogRepository) *CatalogService {
	return &CatalogService{repository: repository}
}

func (s *CatalogService) CreateProduct(ctx context.Context, scope domain.Scope, product *domain.Product) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: base price %s below zero", domain.ErrInvalidPricing, product.Price)
	}

	now := time.Now()
	product.ID = uuid.NewString()
	product.OrganizationID = scope.OrganizationID
	product.CreatedAt = now
	product.UpdatedAt = now
	for i := range product.Options {
		product.Options[i].ID = uuid.NewString()
		product.Options[i].ProductID = product.ID
	}
	return s.repository.InsertProduct(ctx, product)
}

func (s *CatalogService) GetProduct(ctx context.Context, scope domain.Scope, id string) (*domain.Product, error) {
	return s.repository.GetProduct(ctx, id, scope.OrganizationID)
}

func (s *CatalogService) ListProducts(ctx context.Context, scope domain.Scope, filter ProductFilter) ([]domain.Product, error) {
	return s.repository.ListProducts(ctx, scope.OrganizationID, filter)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, scope domain.Scope, product *domain.Product) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: base price %s below zero", domain.ErrInvalidPricing, product.Price)
	}

	existing, err := s.repository.GetProduct(ctx, product.ID, scope.OrganizationID)
	if err != nil {
		return err
	}
	product.OrganizationID = existing.OrganizationID
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	for i := range product.Options {
		if product.Options[i].ID == "" {
			product.Options[i].ID = uuid.NewString()
		}
		product.Options[i].ProductID = product.ID
	}
	return s.repository.UpdateProduct(ctx, product)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, scope domain.Scope, id string) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	return s.repository.DeleteProduct(ctx, id, scope.OrganizationID)
}
