package details

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tableside/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, d domain.RestaurantDetail) error
	Update(ctx context.Context, d domain.RestaurantDetail) error
	Get(ctx context.Context, restaurantID string) (domain.RestaurantDetail, error)
	// Credentials returns the admin username and password hash for login.
	Credentials(ctx context.Context, restaurantID string) (username, passwordHash string, err error)
}

type detailsPG struct {
	pool *pgxpool.Pool
}

func NewDetailsPG(pool *pgxpool.Pool) Repository {
	return &detailsPG{pool: pool}
}

func (r *detailsPG) Insert(ctx context.Context, d domain.RestaurantDetail) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO restaurant_details
			(restaurant_id, name, address, description, image, offer, admin_username, admin_password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, d.RestaurantID, d.Name, d.Address, d.Description, d.Image, d.Offer, d.AdminUsername, d.AdminPasswordHash)
	if err != nil {
		return &domain.PersistenceError{Op: "insert detail", Err: err}
	}
	return nil
}

func (r *detailsPG) Update(ctx context.Context, d domain.RestaurantDetail) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE restaurant_details
		SET name = $2, address = $3, description = $4, image = $5, offer = $6,
		    admin_username = $7, admin_password_hash = $8
		WHERE restaurant_id = $1
	`, d.RestaurantID, d.Name, d.Address, d.Description, d.Image, d.Offer, d.AdminUsername, d.AdminPasswordHash)
	if err != nil {
		return &domain.PersistenceError{Op: "update detail", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("restaurant", d.RestaurantID)
	}
	return nil
}

func (r *detailsPG) Get(ctx context.Context, restaurantID string) (domain.RestaurantDetail, error) {
	var d domain.RestaurantDetail
	err := r.pool.QueryRow(ctx, `
		SELECT restaurant_id, name, address, description, image, offer, admin_username, admin_password_hash
		FROM restaurant_details WHERE restaurant_id = $1
	`, restaurantID).Scan(&d.RestaurantID, &d.Name, &d.Address, &d.Description,
		&d.Image, &d.Offer, &d.AdminUsername, &d.AdminPasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.RestaurantDetail{}, domain.NotFound("restaurant", restaurantID)
	}
	if err != nil {
		return domain.RestaurantDetail{}, &domain.PersistenceError{Op: "get detail", Err: err}
	}
	return d, nil
}

func (r *detailsPG) Credentials(ctx context.Context, restaurantID string) (string, string, error) {
	var username, hash string
	err := r.pool.QueryRow(ctx, `
		SELECT admin_username, admin_password_hash
		FROM restaurant_details WHERE restaurant_id = $1
	`, restaurantID).Scan(&username, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", domain.NotFound("restaurant", restaurantID)
	}
	if err != nil {
		return "", "", &domain.PersistenceError{Op: "get credentials", Err: err}
	}
	return username, hash, nil
}
