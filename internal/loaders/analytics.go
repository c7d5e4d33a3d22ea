package loaders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NapaConcierge/concierge-api/internal/types"
)

// IncrementAnalytics bumps one daily counter for a business by one. The
// whole operation is a single atomic upsert so concurrent increments for
// the same (business, date) never lose updates; the first event of a day
// creates the row.
func (c *PostgresClient) IncrementAnalytics(ctx context.Context, businessID int64, date time.Time, field types.AnalyticsField) error {
	switch field {
	case types.FieldConversationsStarted, types.FieldMessagesSent,
		types.FieldUniqueVisitors, types.FieldLeadsCaptured:
	default:
		return fmt.Errorf("unknown analytics field %q", field)
	}

	// The field name is validated against the closed set above, never
	// taken from request input.
	query := fmt.Sprintf(`
		INSERT INTO analytics (business_id, date, %[1]s)
		VALUES ($1, $2, 1)
		ON CONFLICT (business_id, date)
		DO UPDATE SET %[1]s = analytics.%[1]s + 1
	`, field)

	if _, err := c.pool.Exec(ctx, query, businessID, date.UTC().Truncate(24*time.Hour)); err != nil {
		return fmt.Errorf("failed to increment %s: %w", field, err)
	}
	return nil
}

// AnalyticsRange returns the daily rows for [from, to) ordered by date.
func (c *PostgresClient) AnalyticsRange(ctx context.Context, businessID int64, from, to time.Time, ascending bool) ([]types.DailyAnalytics, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}

	query := `
		SELECT id, business_id, date, total_conversations, total_messages,
		       unique_visitors, leads_captured, top_topics
		FROM analytics
		WHERE business_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ` + order

	rows, err := c.pool.Query(ctx, query, businessID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics: %w", err)
	}
	defer rows.Close()

	var days []types.DailyAnalytics
	for rows.Next() {
		var d types.DailyAnalytics
		var topicsJSON []byte
		if err := rows.Scan(
			&d.ID, &d.BusinessID, &d.Date, &d.TotalConversations, &d.TotalMessages,
			&d.UniqueVisitors, &d.LeadsCaptured, &topicsJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analytics row: %w", err)
		}
		if len(topicsJSON) > 0 {
			if err := json.Unmarshal(topicsJSON, &d.TopTopics); err != nil {
				return nil, fmt.Errorf("failed to decode top topics: %w", err)
			}
		}
		if d.TopTopics == nil {
			d.TopTopics = []string{}
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analytics: %w", err)
	}
	return days, nil
}
