package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"concierge-backend/internal/model"
)

// restaurants is keyed by the upstream business id. Rating and coordinates
// are numeric so the exact decimal values from the scraper survive storage.
const schema = `
CREATE TABLE IF NOT EXISTS restaurants (
	business_id        text PRIMARY KEY,
	name               text NOT NULL,
	address            text NOT NULL DEFAULT '',
	latitude           numeric NOT NULL DEFAULT 0,
	longitude          numeric NOT NULL DEFAULT 0,
	number_of_reviews  integer NOT NULL DEFAULT 0,
	rating             numeric NOT NULL DEFAULT 0,
	zip_code           text NOT NULL DEFAULT '',
	inserted_at        timestamptz NOT NULL DEFAULT now()
)`

// Store is the Postgres-backed restaurant catalog. The fulfillment path only
// reads it; writes come from the offline scraper.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the schema exists. The bootstrap
// is idempotent, so concurrent worker instances can start in any order.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// GetByID fetches one restaurant by business id. A missing id returns
// (nil, nil), not an error: the index may reference ids the catalog has not
// seen yet, and the worker treats that as an empty match.
func (s *Store) GetByID(ctx context.Context, businessID string) (*model.RestaurantRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT business_id, name, address,
		       latitude::text, longitude::text,
		       number_of_reviews, rating::text, zip_code,
		       inserted_at::text
		FROM restaurants
		WHERE business_id = $1`, businessID)

	var rec model.RestaurantRecord
	err := row.Scan(
		&rec.BusinessID, &rec.Name, &rec.Address,
		&rec.Coordinates.Latitude, &rec.Coordinates.Longitude,
		&rec.NumberOfReviews, &rec.Rating, &rec.ZipCode,
		&rec.InsertedAtTimestamp,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant %s: %w", businessID, err)
	}
	return &rec, nil
}

// Put inserts one scraped restaurant. Business ids are immutable once
// written, so a conflicting insert (scraper re-run) is a no-op.
func (s *Store) Put(ctx context.Context, rec *model.RestaurantRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO restaurants
			(business_id, name, address, latitude, longitude,
			 number_of_reviews, rating, zip_code)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7::numeric, $8)
		ON CONFLICT (business_id) DO NOTHING`,
		rec.BusinessID, rec.Name, rec.Address,
		rec.Coordinates.Latitude, rec.Coordinates.Longitude,
		rec.NumberOfReviews, rec.Rating, rec.ZipCode,
	)
	if err != nil {
		return fmt.Errorf("put restaurant %s: %w", rec.BusinessID, err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}
