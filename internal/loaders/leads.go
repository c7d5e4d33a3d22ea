package loaders

import (
	"context"
	"fmt"
	"time"

	"github.com/NapaConcierge/concierge-api/internal/types"
)

const leadColumns = `id, business_id, conversation_id, name, email, phone, interest, notes, created_at`

// CreateLead inserts a lead row and fills in the generated id and creation
// timestamp. Leads are immutable after capture.
func (c *PostgresClient) CreateLead(ctx context.Context, lead *types.Lead) error {
	query := `
		INSERT INTO leads (business_id, conversation_id, name, email, phone, interest, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := c.pool.QueryRow(ctx, query,
		lead.BusinessID, lead.ConversationID, lead.Name, lead.Email, lead.Phone, lead.Interest, lead.Notes,
	).Scan(&lead.ID, &lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

func (c *PostgresClient) listLeads(ctx context.Context, query string, args ...interface{}) ([]types.Lead, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	var leads []types.Lead
	for rows.Next() {
		var l types.Lead
		if err := rows.Scan(
			&l.ID, &l.BusinessID, &l.ConversationID, &l.Name, &l.Email, &l.Phone,
			&l.Interest, &l.Notes, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leads: %w", err)
	}
	return leads, nil
}

func (c *PostgresClient) ListLeads(ctx context.Context, businessID int64) ([]types.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE business_id = $1 ORDER BY created_at DESC`
	return c.listLeads(ctx, query, businessID)
}

// LeadsInRange returns leads created within [from, to), oldest first.
func (c *PostgresClient) LeadsInRange(ctx context.Context, businessID int64, from, to time.Time) ([]types.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE business_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC`
	return c.listLeads(ctx, query, businessID, from.UTC(), to.UTC())
}
