package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-catalog/internal/domains/dish/model"
	pkgdb "restaurant-catalog/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const selectDish = `
	SELECT d.id, d.name, d.description, d.price, d.restaurant_id,
		COALESCE(array_agg(di.image ORDER BY di.position) FILTER (WHERE di.image IS NOT NULL), '{}') AS images,
		d.created_at, d.updated_at
	FROM dish d
	LEFT JOIN dish_images di ON di.dish_id = d.id
`

func scanDish(row pgx.Row) (*model.Dish, error) {
	var d model.Dish
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.Price,
		&d.RestaurantID,
		&d.Images,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepository) Create(ctx context.Context, d *model.Dish) (*model.Dish, error) {
	query := `
		INSERT INTO dish (name, description, price, restaurant_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	created := *d
	created.Images = []string{}
	err := r.pool.QueryRow(ctx, query, d.Name, d.Description, d.Price, d.RestaurantID).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Dish, error) {
	query := selectDish + `
		WHERE d.id = $1
		GROUP BY d.id
	`

	d, err := scanDish(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDishNotFound
		}
		return nil, fmt.Errorf("failed to get dish by id: %w", err)
	}
	return d, nil
}

func (r *postgresRepository) GetAllByRestaurantID(ctx context.Context, restaurantID uuid.UUID) ([]*model.Dish, error) {
	query := selectDish + `
		WHERE d.restaurant_id = $1
		GROUP BY d.id
		ORDER BY d.created_at, d.id
	`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	defer rows.Close()

	dishes := make([]*model.Dish, 0)
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dishes: %w", err)
	}
	return dishes, nil
}

func (r *postgresRepository) Update(ctx context.Context, d *model.Dish) (*model.Dish, error) {
	query := `
		UPDATE dish
		SET name = $2, description = $3, price = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING restaurant_id, updated_at
	`

	updated := *d
	err := r.pool.QueryRow(ctx, query, d.ID, d.Name, d.Description, d.Price).
		Scan(&updated.RestaurantID, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDishNotFound
		}
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM dish_images WHERE dish_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete dish images: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM dish WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete dish: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrDishNotFound
		}
		return nil
	})
}

func (r *postgresRepository) FindOwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	var owner uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT restaurant_id FROM dish WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("failed to get dish owner: %w", err)
	}
	return owner, true, nil
}

func (r *postgresRepository) GetNameByID(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM dish WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrDishNotFound
		}
		return "", fmt.Errorf("failed to get dish name: %w", err)
	}
	return name, nil
}

func (r *postgresRepository) ReplaceImages(ctx context.Context, id uuid.UUID, images []string) error {
	if images == nil {
		images = []string{}
	}

	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM dish_images WHERE dish_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear dish images: %w", err)
		}

		query := `
			INSERT INTO dish_images (dish_id, position, image)
			SELECT $1, t.ord - 1, t.img
			FROM unnest($2::text[]) WITH ORDINALITY AS t(img, ord)
		`
		if _, err := tx.Exec(ctx, query, id, images); err != nil {
			return fmt.Errorf("failed to save dish images: %w", err)
		}

		if _, err := tx.Exec(ctx, `UPDATE dish SET updated_at = NOW() WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to touch dish: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) ListImageNames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT image FROM dish_images`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dish images: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan dish images: %w", err)
	}
	return names, nil
}
