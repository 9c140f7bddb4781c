package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-catalog/internal/domains/restaurant/model"
	pkgdb "restaurant-catalog/pkg/database"
)

// postgresRepository implements RepositoryInterface on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const selectRestaurant = `
	SELECT r.id, r.name, r.cuisine, r.address,
		COALESCE(array_agg(ri.image ORDER BY ri.position) FILTER (WHERE ri.image IS NOT NULL), '{}') AS images,
		r.created_at, r.updated_at
	FROM restaurant r
	LEFT JOIN restaurant_images ri ON ri.restaurant_id = r.id
`

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var r model.Restaurant
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Cuisine,
		&r.Address,
		&r.Images,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Restaurant, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := make([]*model.Restaurant, 0)
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, rest *model.Restaurant) (*model.Restaurant, error) {
	query := `
		INSERT INTO restaurant (name, cuisine, address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	created := *rest
	created.Images = []string{}
	err := r.pool.QueryRow(ctx, query, rest.Name, rest.Cuisine, rest.Address).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	query := selectRestaurant + `
		WHERE r.id = $1
		GROUP BY r.id
	`

	rest, err := scanRestaurant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant by id: %w", err)
	}
	return rest, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]*model.Restaurant, error) {
	query := selectRestaurant + `
		GROUP BY r.id
		ORDER BY r.created_at, r.id
	`

	restaurants, err := r.list(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, nil
}

func (r *postgresRepository) GetAllByCuisine(ctx context.Context, cuisine string) ([]*model.Restaurant, error) {
	query := selectRestaurant + `
		WHERE LOWER(r.cuisine) = LOWER($1)
		GROUP BY r.id
		ORDER BY r.created_at, r.id
	`

	restaurants, err := r.list(ctx, query, cuisine)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants by cuisine: %w", err)
	}
	return restaurants, nil
}

func (r *postgresRepository) Update(ctx context.Context, rest *model.Restaurant) (*model.Restaurant, error) {
	query := `
		UPDATE restaurant
		SET name = $2, cuisine = $3, address = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	updated := *rest
	err := r.pool.QueryRow(ctx, query, rest.ID, rest.Name, rest.Cuisine, rest.Address).Scan(&updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM restaurant_images WHERE restaurant_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete restaurant images: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM restaurant WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete restaurant: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrRestaurantNotFound
		}
		return nil
	})
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM restaurant WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check restaurant existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) GetNameByID(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM restaurant WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrRestaurantNotFound
		}
		return "", fmt.Errorf("failed to get restaurant name: %w", err)
	}
	return name, nil
}

func (r *postgresRepository) ReplaceImages(ctx context.Context, id uuid.UUID, images []string) error {
	if images == nil {
		images = []string{}
	}

	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM restaurant_images WHERE restaurant_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear restaurant images: %w", err)
		}

		query := `
			INSERT INTO restaurant_images (restaurant_id, position, image)
			SELECT $1, t.ord - 1, t.img
			FROM unnest($2::text[]) WITH ORDINALITY AS t(img, ord)
		`
		if _, err := tx.Exec(ctx, query, id, images); err != nil {
			return fmt.Errorf("failed to save restaurant images: %w", err)
		}

		if _, err := tx.Exec(ctx, `UPDATE restaurant SET updated_at = NOW() WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to touch restaurant: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) ListImageNames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT image FROM restaurant_images`)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurant images: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan restaurant images: %w", err)
	}
	return names, nil
}
