package source

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/CRM/internal/config"
	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultQuery selects the customer columns in scan order.
const DefaultQuery = `SELECT id, name, customer_name, phone, email, gender,
	brand, product, tier, status, category, subcategory, COALESCE(avatar, '')
FROM customers
ORDER BY id`

// Postgres reads the customer collection from a table. It never writes.
type Postgres struct {
	pool  *pgxpool.Pool
	query string
}

// NewPostgres connects a pool using cfg and verifies it with a ping.
// An empty query uses DefaultQuery.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig, query string) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if query == "" {
		query = DefaultQuery
	}
	return &Postgres{pool: pool, query: query}, nil
}

// FetchCustomers implements core.CustomerSource.
func (p *Postgres) FetchCustomers(ctx context.Context) ([]core.Customer, error) {
	rows, err := p.pool.Query(ctx, p.query)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}

	items, err := pgx.CollectRows(rows, scanCustomer)
	if err != nil {
		return nil, fmt.Errorf("scan customers: %w", err)
	}
	return items, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

func scanCustomer(row pgx.CollectableRow) (core.Customer, error) {
	var (
		c                    core.Customer
		gender, tier, status string
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.CustomerName,
		&c.Phone,
		&c.Email,
		&gender,
		&c.Brand,
		&c.Product,
		&tier,
		&status,
		&c.Category,
		&c.Subcategory,
		&c.Avatar,
	)
	c.Gender = core.Gender(gender)
	c.Tier = core.Tier(tier)
	c.Status = core.Status(status)
	return c, err
}
