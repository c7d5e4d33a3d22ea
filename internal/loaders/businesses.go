package loaders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/NapaConcierge/concierge-api/internal/types"
)

const businessColumns = `id, api_key, name, business_type, contact_email, contact_phone, website,
	primary_color, welcome_message, widget_title, widget_subtitle, custom_knowledge, is_active, created_at`

func scanBusiness(row pgx.Row) (*types.Business, error) {
	var b types.Business
	err := row.Scan(
		&b.ID, &b.APIKey, &b.Name, &b.BusinessType, &b.ContactEmail, &b.ContactPhone, &b.Website,
		&b.PrimaryColor, &b.WelcomeMessage, &b.WidgetTitle, &b.WidgetSubtitle, &b.CustomKnowledge,
		&b.IsActive, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBusiness inserts a new tenant row and fills in the generated id and
// creation timestamp. The API key must already be set by the caller.
func (c *PostgresClient) CreateBusiness(ctx context.Context, b *types.Business) error {
	query := `
		INSERT INTO businesses (
			api_key, name, business_type, contact_email, contact_phone, website,
			primary_color, welcome_message, widget_title, widget_subtitle, custom_knowledge, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := c.pool.QueryRow(ctx, query,
		b.APIKey, b.Name, b.BusinessType, b.ContactEmail, b.ContactPhone, b.Website,
		b.PrimaryColor, b.WelcomeMessage, b.WidgetTitle, b.WidgetSubtitle, b.CustomKnowledge, b.IsActive,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (c *PostgresClient) GetBusiness(ctx context.Context, id int64) (*types.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`

	b, err := scanBusiness(c.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("business %d: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return b, nil
}

// GetBusinessByAPIKey resolves an opaque API key to its tenant row.
// Unknown keys surface as ErrNotFound; the active check is the caller's.
func (c *PostgresClient) GetBusinessByAPIKey(ctx context.Context, apiKey string) (*types.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE api_key = $1`

	b, err := scanBusiness(c.pool.QueryRow(ctx, query, apiKey))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get business by api key: %w", err)
	}
	return b, nil
}

func (c *PostgresClient) ListBusinesses(ctx context.Context) ([]types.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses ORDER BY created_at DESC`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []types.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		businesses = append(businesses, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating businesses: %w", err)
	}
	return businesses, nil
}

// BusinessPatch carries a partial update; only non-nil fields are applied.
// The API key is deliberately absent: it is immutable after issuance.
type BusinessPatch struct {
	Name            *string `json:"name"`
	BusinessType    *string `json:"business_type"`
	ContactEmail    *string `json:"contact_email"`
	ContactPhone    *string `json:"contact_phone"`
	Website         *string `json:"website"`
	PrimaryColor    *string `json:"primary_color"`
	WelcomeMessage  *string `json:"welcome_message"`
	WidgetTitle     *string `json:"widget_title"`
	WidgetSubtitle  *string `json:"widget_subtitle"`
	CustomKnowledge *string `json:"custom_knowledge"`
	IsActive        *bool   `json:"is_active"`
}

func (c *PostgresClient) UpdateBusiness(ctx context.Context, id int64, patch *BusinessPatch) (*types.Business, error) {
	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.BusinessType != nil {
		add("business_type", *patch.BusinessType)
	}
	if patch.ContactEmail != nil {
		add("contact_email", *patch.ContactEmail)
	}
	if patch.ContactPhone != nil {
		add("contact_phone", *patch.ContactPhone)
	}
	if patch.Website != nil {
		add("website", *patch.Website)
	}
	if patch.PrimaryColor != nil {
		add("primary_color", *patch.PrimaryColor)
	}
	if patch.WelcomeMessage != nil {
		add("welcome_message", *patch.WelcomeMessage)
	}
	if patch.WidgetTitle != nil {
		add("widget_title", *patch.WidgetTitle)
	}
	if patch.WidgetSubtitle != nil {
		add("widget_subtitle", *patch.WidgetSubtitle)
	}
	if patch.CustomKnowledge != nil {
		add("custom_knowledge", *patch.CustomKnowledge)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}

	if len(sets) == 0 {
		return c.GetBusiness(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE businesses SET %s WHERE id = $%d RETURNING `+businessColumns,
		strings.Join(sets, ", "), len(args),
	)

	b, err := scanBusiness(c.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("business %d: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update business: %w", err)
	}
	return b, nil
}

// DeleteBusiness removes a tenant and everything it owns. Children go
// first to satisfy the foreign keys.
func (c *PostgresClient) DeleteBusiness(ctx context.Context, id int64) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{
		`DELETE FROM leads WHERE business_id = $1`,
		`DELETE FROM conversations WHERE business_id = $1`,
		`DELETE FROM analytics WHERE business_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete business children: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("business %d: %w", id, types.ErrNotFound)
	}

	return tx.Commit(ctx)
}
