package loaders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresClient struct {
	dsn  string
	pool *pgxpool.Pool
}

func NewPostgresClient(dsn string) (*PostgresClient, error) {
	client := &PostgresClient{
		dsn: dsn,
	}

	pool, err := client.createConnectionPool()
	if err != nil {
		return nil, err
	}

	client.pool = pool
	log.Println("Successfully connected to PostgreSQL database with connection pool")
	return client, nil
}

func (c *PostgresClient) createConnectionPool() (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Postgres DSN: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.MaxConnLifetime = 60 * time.Minute
	cfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	return pool, nil
}

// InitSchema creates the application tables when they do not exist yet.
// The unique constraints on (business_id, session_id) and
// (business_id, date) back the conversation get-or-create and the atomic
// counter upserts.
func (c *PostgresClient) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS businesses (
			id BIGSERIAL PRIMARY KEY,
			api_key VARCHAR(64) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			business_type VARCHAR(50) NOT NULL DEFAULT 'hotel',
			contact_email VARCHAR(255) NOT NULL DEFAULT '',
			contact_phone VARCHAR(50) NOT NULL DEFAULT '',
			website VARCHAR(255) NOT NULL DEFAULT '',
			primary_color VARCHAR(7) NOT NULL DEFAULT '#722F37',
			welcome_message TEXT NOT NULL DEFAULT '',
			widget_title VARCHAR(100) NOT NULL DEFAULT 'Concierge',
			widget_subtitle VARCHAR(200) NOT NULL DEFAULT 'Your personal wine country guide',
			custom_knowledge TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id BIGSERIAL PRIMARY KEY,
			business_id BIGINT NOT NULL REFERENCES businesses(id),
			session_id VARCHAR(64) NOT NULL,
			started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_message_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			message_count INTEGER NOT NULL DEFAULT 0,
			messages JSONB NOT NULL DEFAULT '[]'::jsonb,
			visitor_ip VARCHAR(45) NOT NULL DEFAULT '',
			user_agent VARCHAR(500) NOT NULL DEFAULT '',
			referrer VARCHAR(500) NOT NULL DEFAULT '',
			UNIQUE (business_id, session_id)
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id BIGSERIAL PRIMARY KEY,
			business_id BIGINT NOT NULL REFERENCES businesses(id),
			conversation_id BIGINT REFERENCES conversations(id),
			name VARCHAR(255) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL DEFAULT '',
			interest VARCHAR(255) NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS analytics (
			id BIGSERIAL PRIMARY KEY,
			business_id BIGINT NOT NULL REFERENCES businesses(id),
			date DATE NOT NULL,
			total_conversations INTEGER NOT NULL DEFAULT 0,
			total_messages INTEGER NOT NULL DEFAULT 0,
			unique_visitors INTEGER NOT NULL DEFAULT 0,
			leads_captured INTEGER NOT NULL DEFAULT 0,
			top_topics JSONB NOT NULL DEFAULT '[]'::jsonb,
			UNIQUE (business_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS contract_signatures (
			id BIGSERIAL PRIMARY KEY,
			signer_name VARCHAR(255) NOT NULL,
			signer_email VARCHAR(255) NOT NULL,
			company_name VARCHAR(255) NOT NULL,
			company_type VARCHAR(50) NOT NULL DEFAULT '',
			contract_version VARCHAR(20) NOT NULL DEFAULT '1.0',
			signed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			ip_address VARCHAR(45) NOT NULL DEFAULT '',
			user_agent VARCHAR(500) NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_business_created ON leads (business_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}

func (c *PostgresClient) GetPool() *pgxpool.Pool {
	return c.pool
}
