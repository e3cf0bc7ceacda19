package storage

import (
	"context"
	"database/sql"
	"fmt"

	"pointofsale/internal/domain"
	"pointofsale/internal/service"
)

type CatalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) InsertProduct(ctx context.Context, product *domain.Product) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, organization_id, name, description, price, category, image_url, is_available, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, product.ID, product.OrganizationID, product.Name, product.Description, product.Price,
		product.Category, product.ImageURL, product.IsAvailable, product.SortOrder, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return translateErr(err)
	}
	if err := insertOptions(ctx, tx, product); err != nil {
		return err
	}
	return tx.Commit()
}

func insertOptions(ctx context.Context, tx *sql.Tx, product *domain.Product) error {
	for _, opt := range product.Options {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO product_options (id, product_id, option_group, option_name, price_delta, is_required, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, opt.ID, opt.ProductID, opt.OptionGroup, opt.OptionName, opt.PriceDelta, opt.IsRequired, opt.SortOrder)
		if err != nil {
			return fmt.Errorf("failed to insert product option: %w", err)
		}
	}
	return nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id, organizationID string) (*domain.Product, error) {
	var p domain.Product
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, organization_id, name, description, price, category, image_url, is_available, sort_order, created_at, updated_at
		FROM products
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID).Scan(&p.ID, &p.OrganizationID, &p.Name, &p.Description, &p.Price,
		&p.Category, &p.ImageURL, &p.IsAvailable, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}

	opts, err := r.loadOptions(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Options = opts
	return &p, nil
}

func (r *CatalogRepository) loadOptions(ctx context.Context, productID string) ([]domain.ProductOption, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, product_id, option_group, option_name, price_delta, is_required, sort_order
		FROM product_options
		WHERE product_id = $1
		ORDER BY option_group, sort_order, option_name
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []domain.ProductOption
	for rows.Next() {
		var o domain.ProductOption
		if err := rows.Scan(&o.ID, &o.ProductID, &o.OptionGroup, &o.OptionName, &o.PriceDelta, &o.IsRequired, &o.SortOrder); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

func (r *CatalogRepository) ListProducts(ctx context.Context, organizationID string, filter service.ProductFilter) ([]domain.Product, error) {
	query := `
		SELECT id, organization_id, name, description, price, category, image_url, is_available, sort_order, created_at, updated_at
		FROM products
		WHERE organization_id = $1`
	args := []interface{}{organizationID}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.AvailableOnly {
		query += " AND is_available"
	}
	query += " ORDER BY sort_order, name"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.Description, &p.Price,
			&p.Category, &p.ImageURL, &p.IsAvailable, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range products {
		opts, err := r.loadOptions(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Options = opts
	}
	return products, nil
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4, image_url = $5, is_available = $6, sort_order = $7, updated_at = $8
		WHERE id = $9 AND organization_id = $10
	`, product.Name, product.Description, product.Price, product.Category, product.ImageURL,
		product.IsAvailable, product.SortOrder, product.UpdatedAt, product.ID, product.OrganizationID)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	// Options are replaced wholesale; placed orders keep their own snapshots.
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_options WHERE product_id = $1`, product.ID); err != nil {
		return err
	}
	if err := insertOptions(ctx, tx, product); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id, organizationID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM products WHERE id = $1 AND organization_id = $2
	`, id, organizationID)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ service.CatalogRepository = (*CatalogRepository)(nil)
