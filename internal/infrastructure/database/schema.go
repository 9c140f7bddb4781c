package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	pkgdb "restaurant-catalog/pkg/database"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS restaurant (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name       VARCHAR(255) NOT NULL,
		cuisine    VARCHAR(255) NOT NULL,
		address    VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_restaurant_cuisine_lower ON restaurant (LOWER(cuisine))`,
	`CREATE TABLE IF NOT EXISTS restaurant_images (
		restaurant_id UUID NOT NULL REFERENCES restaurant(id) ON DELETE CASCADE,
		position      INT NOT NULL,
		image         TEXT NOT NULL,
		PRIMARY KEY (restaurant_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS dish (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name          VARCHAR(255) NOT NULL,
		description   VARCHAR(255) NOT NULL DEFAULT '',
		price         NUMERIC(12, 2) NOT NULL CHECK (price > 0),
		restaurant_id UUID NOT NULL REFERENCES restaurant(id) ON DELETE CASCADE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dish_restaurant_id ON dish (restaurant_id)`,
	`CREATE TABLE IF NOT EXISTS dish_images (
		dish_id  UUID NOT NULL REFERENCES dish(id) ON DELETE CASCADE,
		position INT NOT NULL,
		image    TEXT NOT NULL,
		PRIMARY KEY (dish_id, position)
	)`,
}

// foldsNonASCII reports whether LOWER() folds non-ASCII letters under the lc_ctype locale.
// The cuisine filter relies on it for the Cyrillic display names.
func foldsNonASCII(ctype string) bool {
	switch strings.ToUpper(strings.TrimSpace(ctype)) {
	case "", "C", "POSIX":
		return false
	}
	return true
}

// Migrate creates the catalog tables if they do not exist yet
func Migrate(ctx context.Context, db pkgdb.Beginner) error {
	err := pkgdb.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement %d: %w", i+1, err)
			}
		}

		var ctype string
		if err := tx.QueryRow(ctx, `SELECT current_setting('lc_ctype')`).Scan(&ctype); err != nil {
			return fmt.Errorf("read lc_ctype: %w", err)
		}
		if !foldsNonASCII(ctype) {
			log.Warn().
				Str("component", "database").
				Str("lc_ctype", ctype).
				Msg("LOWER() only folds ASCII under this locale, cuisine filters on Cyrillic names will be case sensitive")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Info().Str("component", "database").Int("statements", len(schema)).Msg("schema up to date")
	return nil
}
