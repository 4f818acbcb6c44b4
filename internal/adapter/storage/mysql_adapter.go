package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/moodify-shop/moodify/internal/core/domain"
)

// MySQLAdapter archives completed orders. Nothing in the cart path depends
// on it; losing the archive never loses a cart.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, owner, promo_code, subtotal, discount, shipping, tax, total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.Owner, order.PromoCode,
		order.Subtotal.StringFixed(2), order.Discount.StringFixed(2),
		order.Shipping.StringFixed(2), order.Tax.StringFixed(2),
		order.Total.StringFixed(2), order.Status,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, l := range order.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, product_id, name, unit_price, qty, line_total)
			VALUES (?, ?, ?, ?, ?, ?)`,
			order.ID, string(l.ProductID), l.Name,
			l.UnitPrice.StringFixed(2), l.Qty, l.LineTotal.StringFixed(2),
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	return tx.Commit()
}

// SeedProducts upserts the hard-coded catalog so archived order lines have
// matching product rows. Best-effort at startup.
func (m *MySQLAdapter) SeedProducts(ctx context.Context, products []domain.Product) error {
	for _, p := range products {
		_, err := m.db.ExecContext(ctx, `
			INSERT INTO products (id, mood, name, price, category)
			VALUES (?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE mood = VALUES(mood), name = VALUES(name),
				price = VALUES(price), category = VALUES(category)`,
			string(p.ID), p.Mood, p.Name, p.Price.StringFixed(2), p.Category,
		)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return nil
}
