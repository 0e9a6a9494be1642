package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tableside/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, item domain.MenuItem) error
	Update(ctx context.Context, item domain.MenuItem) error
	Get(ctx context.Context, restaurantID, itemID string) (domain.MenuItem, error)
	Delete(ctx context.Context, restaurantID, itemID string) error
	List(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)
}

type menuPG struct {
	pool *pgxpool.Pool
}

func NewMenuPG(pool *pgxpool.Pool) Repository {
	return &menuPG{pool: pool}
}

func (r *menuPG) Insert(ctx context.Context, item domain.MenuItem) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO menu_items (id, restaurant_id, type, name, price, pic)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, item.ID, item.RestaurantID, item.Type, item.Name, item.Price, item.Pic)
	if err != nil {
		return &domain.PersistenceError{Op: "insert menu item", Err: err}
	}
	return nil
}

func (r *menuPG) Update(ctx context.Context, item domain.MenuItem) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE menu_items SET type = $3, name = $4, price = $5, pic = $6
		WHERE restaurant_id = $1 AND id = $2
	`, item.RestaurantID, item.ID, item.Type, item.Name, item.Price, item.Pic)
	if err != nil {
		return &domain.PersistenceError{Op: "update menu item", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("menu item", item.ID)
	}
	return nil
}

func (r *menuPG) Get(ctx context.Context, restaurantID, itemID string) (domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, restaurant_id, type, name, price, pic
		FROM menu_items WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, itemID).Scan(&item.ID, &item.RestaurantID, &item.Type, &item.Name, &item.Price, &item.Pic)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MenuItem{}, domain.NotFound("menu item", itemID)
	}
	if err != nil {
		return domain.MenuItem{}, &domain.PersistenceError{Op: "get menu item", Err: err}
	}
	return item, nil
}

func (r *menuPG) Delete(ctx context.Context, restaurantID, itemID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM menu_items WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, itemID)
	if err != nil {
		return &domain.PersistenceError{Op: "delete menu item", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("menu item", itemID)
	}
	return nil
}

func (r *menuPG) List(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, restaurant_id, type, name, price, pic
		FROM menu_items WHERE restaurant_id = $1
		ORDER BY type, name
	`, restaurantID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list menu items", Err: err}
	}
	defer rows.Close()

	var out []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Type, &item.Name, &item.Price, &item.Pic); err != nil {
			return nil, &domain.PersistenceError{Op: "scan menu item", Err: err}
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "list menu items", Err: err}
	}
	return out, nil
}
