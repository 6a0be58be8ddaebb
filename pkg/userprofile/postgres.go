package userprofile

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// PostgresService stores profiles in a user_profiles table, with the bucket
// map as a jsonb column. Decisions for one user collapse to a single row, so
// concurrent saves are last-writer-wins at row granularity.
type PostgresService struct {
	pool *pgxpool.Pool
}

// NewPostgresService wraps an already-connected pgx pool. Run Migrate once
// at startup before serving decisions.
func NewPostgresService(pool *pgxpool.Pool) *PostgresService {
	return &PostgresService{pool: pool}
}

// Lookup implements Service.
func (s *PostgresService) Lookup(ctx context.Context, userID string) (*Profile, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT bucket_map FROM user_profiles WHERE user_id = $1`, userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	profile := New(userID)
	if err := json.Unmarshal(raw, &profile.ExperimentBucketMap); err != nil {
		return nil, errors.Join(ErrMalformedRecord, err)
	}
	return profile, nil
}

// Save implements Service.
func (s *PostgresService) Save(ctx context.Context, profile *Profile) error {
	if profile == nil || profile.UserID == "" {
		return errors.Join(ErrInvalidProfile, errors.New("missing user id"))
	}

	raw, err := json.Marshal(profile.ExperimentBucketMap)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, bucket_map)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE
		 SET bucket_map = EXCLUDED.bucket_map, updated_at = now()`,
		profile.UserID, raw)
	return err
}

// Migrate applies the embedded schema migrations. Goose expects a
// database/sql handle, so the pgx pool is bridged through stdlib; the
// wrapper shares the pool's connections and closing it does not close the
// pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) { _ = db.Close() }(db)

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}
