package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/cropyield/advisor-service/internal/engine"
	"github.com/cropyield/advisor-service/internal/normalize"
)

// Postgres serves quotes from a market_quotes dataset table. The table is an
// externally maintained dataset; this source only reads it.
//
//	CREATE TABLE market_quotes (
//	    crop              TEXT NOT NULL,
//	    region            TEXT NOT NULL DEFAULT '',
//	    market_name       TEXT NOT NULL,
//	    price_per_quintal DOUBLE PRECISION NOT NULL,
//	    distance_km       DOUBLE PRECISION NOT NULL
//	);
type Postgres struct {
	pool *pgxpool.Pool
}

// PoolConfig holds connection pool settings for the dataset database.
type PoolConfig struct {
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// DefaultPoolConfig returns the default pool settings.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: 1 * time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}
}

// NewPostgres connects a pool to the dataset database.
func NewPostgres(ctx context.Context, connString string, poolCfg PoolConfig) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	config.MaxConns = int32(poolCfg.MaxConns)
	config.MinConns = int32(poolCfg.MinConns)
	config.MaxConnLifetime = poolCfg.MaxConnLifetime
	config.MaxConnIdleTime = poolCfg.MaxConnIdleTime
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().Str("component", "catalog").Msg("Dataset database connected")

	return &Postgres{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. The caller keeps ownership.
func NewPostgresWithPool(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Status checks database connectivity.
func (p *Postgres) Status(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// QuotesFor returns the candidate markets for a crop near a location.
// Regional rows win over fallback rows, mirroring the other sources.
func (p *Postgres) QuotesFor(ctx context.Context, crop, location string) ([]engine.MarketQuote, error) {
	cropKey := normalize.Key(crop)
	regionKey := normalize.RegionKey(location)

	rows, err := p.pool.Query(ctx, `
		SELECT market_name, price_per_quintal, distance_km, region
		FROM market_quotes
		WHERE crop = $1 AND region IN ($2, '')
		ORDER BY market_name
	`, cropKey, regionKey)
	if err != nil {
		return nil, fmt.Errorf("query market quotes: %w", err)
	}
	defer rows.Close()

	var regional, fallback []engine.MarketQuote
	for rows.Next() {
		var q engine.MarketQuote
		var region string
		if err := rows.Scan(&q.MarketName, &q.PricePerUnit, &q.DistanceKm, &region); err != nil {
			return nil, fmt.Errorf("scan market quote: %w", err)
		}
		if region == "" {
			fallback = append(fallback, q)
		} else {
			regional = append(regional, q)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read market quotes: %w", err)
	}

	if len(regional) > 0 {
		return regional, nil
	}
	if len(fallback) > 0 {
		return fallback, nil
	}
	return nil, ErrNoMarketData{Crop: crop}
}
