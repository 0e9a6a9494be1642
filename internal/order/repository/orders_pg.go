package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tableside/internal/domain"
)

type ordersPG struct {
	pool *pgxpool.Pool
}

func NewOrdersPG(pool *pgxpool.Pool) Orders {
	return &ordersPG{pool: pool}
}

func (r *ordersPG) Insert(ctx context.Context, o domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, restaurant_id, table_id, subtotal, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.RestaurantID, o.TableID, o.Subtotal, string(o.Status), o.CreatedAt)
	if err != nil {
		return &domain.PersistenceError{Op: "insert order", Err: err}
	}

	for i, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, name, unit_price, quantity, position)
			VALUES ($1, $2, $3, $4, $5)
		`, o.ID, it.Name, it.UnitPrice, it.Quantity, i)
		if err != nil {
			return &domain.PersistenceError{Op: "insert order item", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &domain.PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

func (r *ordersPG) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (string, error) {
	var restaurantID string
	err := r.pool.QueryRow(ctx, `
		UPDATE orders SET status = $2 WHERE id = $1
		RETURNING restaurant_id
	`, orderID, string(status)).Scan(&restaurantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.NotFound("order", orderID)
	}
	if err != nil {
		return "", &domain.PersistenceError{Op: "update status", Err: err}
	}
	return restaurantID, nil
}

func (r *ordersPG) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.table_id, o.subtotal, o.status, o.created_at,
		       i.name, i.unit_price, i.quantity
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.restaurant_id = $1
		ORDER BY o.created_at, o.id, i.position
	`, restaurantID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list orders", Err: err}
	}
	defer rows.Close()

	var (
		out  []domain.Order
		last *domain.Order
	)
	for rows.Next() {
		var (
			o         domain.Order
			status    string
			name      *string
			unitPrice *float64
			quantity  *int
		)
		if err := rows.Scan(&o.ID, &o.TableID, &o.Subtotal, &status, &o.CreatedAt,
			&name, &unitPrice, &quantity); err != nil {
			return nil, &domain.PersistenceError{Op: "scan order", Err: err}
		}
		o.RestaurantID = restaurantID
		o.Status = domain.OrderStatus(status)
		if last == nil || last.ID != o.ID {
			out = append(out, o)
			last = &out[len(out)-1]
		}
		if name != nil {
			last.Items = append(last.Items, domain.LineItem{
				Name: *name, UnitPrice: *unitPrice, Quantity: *quantity,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "list orders", Err: err}
	}
	return out, nil
}
