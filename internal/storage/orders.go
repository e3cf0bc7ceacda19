package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"pointofsale/internal/domain"
	"pointofsale/internal/service"
)

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `id, organization_id, branch_id, table_id, qr_session_id, order_number, status,
	subtotal, discount_amount, tax, tax_rate, total_amount, promotion_id, created_by, created_at, updated_at, paid_at`

// CreateOrder assigns the next per-branch order number and writes the order
// with its items in one transaction. The advisory lock serializes number
// assignment within a branch without blocking other branches.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, order.BranchID); err != nil {
		return fmt.Errorf("failed to take branch lock: %w", err)
	}
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(order_number), 0) + 1 FROM orders WHERE branch_id = $1
	`, order.BranchID).Scan(&order.OrderNumber)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, organization_id, branch_id, table_id, qr_session_id, order_number, status,
			subtotal, discount_amount, tax, tax_rate, total_amount, promotion_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, order.ID, order.OrganizationID, order.BranchID, order.TableID, order.QRSessionID, order.OrderNumber,
		order.Status, order.Subtotal, order.DiscountAmount, order.Tax, order.TaxRate, order.TotalAmount,
		order.PromotionID, order.CreatedBy, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return translateErr(err)
	}
	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sql.Tx, orderID string, items []domain.OrderItem) error {
	for _, it := range items {
		selections, err := json.Marshal(it.Selections)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, quantity, unit_price, item_total, selections, item_status, added_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, it.ID, orderID, it.ProductID, it.Name, it.Quantity, it.UnitPrice, it.ItemTotal,
			selections, it.ItemStatus, it.AddedBy, it.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, id, branchID string) (*domain.Order, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = $1 AND branch_id = $2
	`, id, branchID)
	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	items, err := loadOrderItems(ctx, r.DB, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func loadOrderItems(ctx context.Context, q queryer, orderID string) ([]domain.OrderItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, quantity, unit_price, item_total, selections, item_status, added_by, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		var selections []byte
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Quantity,
			&it.UnitPrice, &it.ItemTotal, &selections, &it.ItemStatus, &it.AddedBy, &it.CreatedAt); err != nil {
			return nil, err
		}
		if len(selections) > 0 {
			if err := json.Unmarshal(selections, &it.Selections); err != nil {
				return nil, fmt.Errorf("failed to decode item selections: %w", err)
			}
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepository) ListOrders(ctx context.Context, branchID string, filter service.OrderFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE branch_id = $1`
	args := []interface{}{branchID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.TableID != nil {
		args = append(args, *filter.TableID)
		query += fmt.Sprintf(" AND table_id = $%d", len(args))
	}
	query += " ORDER BY order_number DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrderRows(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := loadOrderItems(ctx, r.DB, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// UpdateOrderStatus is a compare-and-set against the status the caller read.
// Zero rows affected means another writer got there first (ErrConflict) or the
// order is gone (ErrNotFound).
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id, branchID string, from, to domain.OrderStatus) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND branch_id = $3 AND status = $4
	`, to, id, branchID, from)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.missingOrConflict(ctx, id, branchID)
	}
	return nil
}

// CancelOrder reverses an applied promotion together with the status flip:
// the usage row is deleted and the totals are rewritten without the discount.
func (r *OrderRepository) CancelOrder(ctx context.Context, order *domain.Order, from domain.OrderStatus) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, discount_amount = $2, tax = $3, total_amount = $4, promotion_id = NULL, updated_at = NOW()
		WHERE id = $5 AND branch_id = $6 AND status = $7
	`, domain.StatusCancelled, order.DiscountAmount, order.Tax, order.TotalAmount,
		order.ID, order.BranchID, from)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.missingOrConflict(ctx, order.ID, order.BranchID)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM promotion_usage WHERE order_id = $1`, order.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceOrderItems rewrites the item set and totals of an OPEN order. The
// status guard doubles as the concurrency check.
func (r *OrderRepository) ReplaceOrderItems(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET subtotal = $1, discount_amount = $2, tax = $3, total_amount = $4, updated_at = NOW()
		WHERE id = $5 AND branch_id = $6 AND status = $7
	`, order.Subtotal, order.DiscountAmount, order.Tax, order.TotalAmount,
		order.ID, order.BranchID, domain.StatusOpen)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.missingOrConflict(ctx, order.ID, order.BranchID)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *OrderRepository) UpdateItemStatus(ctx context.Context, orderID, itemID string, status domain.ItemStatus) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE order_items SET item_status = $1 WHERE id = $2 AND order_id = $3
	`, status, itemID, orderID)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) missingOrConflict(ctx context.Context, id, branchID string) error {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1 AND branch_id = $2)
	`, id, branchID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row *sql.Row) (*domain.Order, error) {
	return scanOrderRows(row)
}

func scanOrderRows(s rowScanner) (*domain.Order, error) {
	var o domain.Order
	err := s.Scan(&o.ID, &o.OrganizationID, &o.BranchID, &o.TableID, &o.QRSessionID, &o.OrderNumber, &o.Status,
		&o.Subtotal, &o.DiscountAmount, &o.Tax, &o.TaxRate, &o.TotalAmount, &o.PromotionID, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt, &o.PaidAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &o, nil
}

var _ service.OrderRepository = (*OrderRepository)(nil)
