package loaders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NapaConcierge/concierge-api/internal/types"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

const conversationColumns = `id, business_id, session_id, started_at, last_message_at,
	message_count, messages, visitor_ip, user_agent, referrer`

func scanConversation(row pgx.Row) (*types.Conversation, error) {
	var conv types.Conversation
	var messagesJSON []byte
	err := row.Scan(
		&conv.ID, &conv.BusinessID, &conv.SessionID, &conv.StartedAt, &conv.LastMessageAt,
		&conv.MessageCount, &messagesJSON, &conv.VisitorIP, &conv.UserAgent, &conv.Referrer,
	)
	if err != nil {
		return nil, err
	}
	if len(messagesJSON) > 0 {
		if err := json.Unmarshal(messagesJSON, &conv.Messages); err != nil {
			return nil, fmt.Errorf("failed to decode transcript: %w", err)
		}
	}
	if conv.Messages == nil {
		conv.Messages = []types.ChatTurn{}
	}
	return &conv, nil
}

func (c *PostgresClient) GetConversation(ctx context.Context, businessID int64, sessionID string) (*types.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE business_id = $1 AND session_id = $2`

	conv, err := scanConversation(c.pool.QueryRow(ctx, query, businessID, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return conv, nil
}

// CreateConversation inserts a conversation row for (business, session),
// capturing bounded visitor metadata. Two concurrent requests with the
// same fresh session id both reach the insert; the unique constraint lets
// exactly one win and the loser reloads the winner's row. The returned
// flag reports whether this call created the row.
func (c *PostgresClient) CreateConversation(ctx context.Context, businessID int64, sessionID string, visitor types.VisitorInfo) (*types.Conversation, bool, error) {
	query := `
		INSERT INTO conversations (business_id, session_id, visitor_ip, user_agent, referrer)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (business_id, session_id) DO NOTHING
		RETURNING ` + conversationColumns

	conv, err := scanConversation(c.pool.QueryRow(ctx, query,
		businessID,
		sessionID,
		utils.Truncate(visitor.IP, 45),
		utils.Truncate(visitor.UserAgent, 500),
		utils.Truncate(visitor.Referrer, 500),
	))
	if err == nil {
		return conv, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create conversation: %w", err)
	}

	// Lost the race: someone else already created it.
	conv, err = c.GetConversation(ctx, businessID, sessionID)
	if err != nil {
		return nil, false, err
	}
	return conv, false, nil
}

// AppendTurns appends ordered turns to the transcript, bumps the message
// count and refreshes the last-activity timestamp in a single statement.
func (c *PostgresClient) AppendTurns(ctx context.Context, conversationID int64, turns ...types.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}

	turnsJSON, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("failed to encode turns: %w", err)
	}

	query := `
		UPDATE conversations
		SET messages = messages || $2::jsonb,
		    message_count = message_count + $3,
		    last_message_at = NOW()
		WHERE id = $1
	`

	tag, err := c.pool.Exec(ctx, query, conversationID, turnsJSON, len(turns))
	if err != nil {
		return fmt.Errorf("failed to append turns: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("conversation %d: %w", conversationID, types.ErrNotFound)
	}
	return nil
}

func (c *PostgresClient) ListConversations(ctx context.Context, businessID int64) ([]types.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE business_id = $1 ORDER BY last_message_at DESC`

	rows, err := c.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []types.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}
		conversations = append(conversations, *conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversations: %w", err)
	}
	return conversations, nil
}
