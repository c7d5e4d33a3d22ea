package widget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NapaConcierge/concierge-api/internal/llm"
	"github.com/NapaConcierge/concierge-api/internal/metrics"
	"github.com/NapaConcierge/concierge-api/internal/prompt"
	"github.com/NapaConcierge/concierge-api/internal/types"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

// Store is the subset of the data layer the widget surface needs.
type Store interface {
	GetBusinessByAPIKey(ctx context.Context, apiKey string) (*types.Business, error)
	GetConversation(ctx context.Context, businessID int64, sessionID string) (*types.Conversation, error)
	CreateConversation(ctx context.Context, businessID int64, sessionID string, visitor types.VisitorInfo) (*types.Conversation, bool, error)
	AppendTurns(ctx context.Context, conversationID int64, turns ...types.ChatTurn) error
	IncrementAnalytics(ctx context.Context, businessID int64, date time.Time, field types.AnalyticsField) error
	CreateLead(ctx context.Context, lead *types.Lead) error
}

// Service handles the tenant-facing widget operations: config, chat and
// lead capture.
type Service struct {
	store    Store
	provider llm.Provider
}

func NewService(store Store, provider llm.Provider) *Service {
	return &Service{store: store, provider: provider}
}

// ResolveBusiness maps an opaque API key to an active tenant. Unknown
// keys and inactive tenants are indistinguishable to the caller.
func (s *Service) ResolveBusiness(ctx context.Context, apiKey string) (*types.Business, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing api key", types.ErrUnauthorized)
	}
	business, err := s.store.GetBusinessByAPIKey(ctx, apiKey)
	if errors.Is(err, types.ErrNotFound) {
		return nil, fmt.Errorf("%w: invalid api key", types.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !business.IsActive {
		return nil, fmt.Errorf("%w: business is inactive", types.ErrUnauthorized)
	}
	return business, nil
}

// WidgetConfig returns the branding payload for an active tenant.
func (s *Service) WidgetConfig(ctx context.Context, apiKey string) (*ConfigResponse, error) {
	business, err := s.ResolveBusiness(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return &ConfigResponse{
		Name:           business.Name,
		PrimaryColor:   business.PrimaryColor,
		WidgetTitle:    business.WidgetTitle,
		WidgetSubtitle: business.WidgetSubtitle,
		WelcomeMessage: business.WelcomeMessage,
	}, nil
}

// Chat runs the primary path: load-or-create the session conversation,
// persist the user turn, call the completion service, persist the reply.
// The user turn is written before the completion call so an upstream
// failure never discards a turn that was already paid for.
func (s *Service) Chat(ctx context.Context, business *types.Business, req *ChatRequest, visitor types.VisitorInfo) (*ChatResponse, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", types.ErrValidation)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to mint session id: %w", err)
		}
		sessionID = id.String()
	}

	conv, created, err := s.store.CreateConversation(ctx, business.ID, sessionID, visitor)
	if err != nil {
		return nil, err
	}
	today := time.Now().UTC()
	if created {
		s.bumpCounter(ctx, business.ID, today, types.FieldConversationsStarted)
		s.bumpCounter(ctx, business.ID, today, types.FieldUniqueVisitors)
	}

	userTurn := types.ChatTurn{Role: types.RoleUser, Content: req.Message}
	if err := s.store.AppendTurns(ctx, conv.ID, userTurn); err != nil {
		return nil, err
	}
	s.bumpCounter(ctx, business.ID, today, types.FieldMessagesSent)

	history := append(append([]types.ChatTurn{}, req.ConversationHistory...), userTurn)
	systemPrompt := prompt.Build(business)

	start := time.Now()
	reply, err := s.provider.Complete(ctx, systemPrompt, history)
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CompletionTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CompletionTotal.WithLabelValues("ok").Inc()

	assistantTurn := types.ChatTurn{Role: types.RoleAssistant, Content: reply}
	if err := s.store.AppendTurns(ctx, conv.ID, assistantTurn); err != nil {
		// The reply was generated; losing the response now would charge
		// the tenant twice. Surface it anyway and log the gap.
		utils.Zlog.Error("Failed to persist assistant turn",
			zap.Int64("conversation_id", conv.ID),
			zap.Error(err))
	} else {
		s.bumpCounter(ctx, business.ID, today, types.FieldMessagesSent)
	}

	return &ChatResponse{
		Response:            reply,
		ConversationHistory: append(history, assistantTurn),
		SessionID:           sessionID,
	}, nil
}

// CaptureLead records contact intent. The conversation link is weak: a
// session id with no matching conversation still produces a lead with a
// nil reference.
func (s *Service) CaptureLead(ctx context.Context, business *types.Business, req *LeadRequest) (*types.Lead, error) {
	if req.Name == "" && req.Email == "" && req.Phone == "" {
		return nil, fmt.Errorf("%w: at least one contact field is required", types.ErrValidation)
	}

	var conversationID *int64
	if req.SessionID != "" {
		conv, err := s.store.GetConversation(ctx, business.ID, req.SessionID)
		if err == nil {
			conversationID = &conv.ID
		} else if !errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
	}

	lead := &types.Lead{
		BusinessID:     business.ID,
		ConversationID: conversationID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Interest:       req.Interest,
		Notes:          req.Notes,
	}
	if err := s.store.CreateLead(ctx, lead); err != nil {
		return nil, err
	}

	s.bumpCounter(ctx, business.ID, time.Now().UTC(), types.FieldLeadsCaptured)
	metrics.LeadsCaptured.Inc()

	utils.Zlog.Info("Lead captured",
		zap.Int64("business_id", business.ID),
		zap.Int64("lead_id", lead.ID),
		zap.Bool("linked_conversation", conversationID != nil))

	return lead, nil
}

// Counter bumps are best-effort; analytics must never fail a request.
func (s *Service) bumpCounter(ctx context.Context, businessID int64, date time.Time, field types.AnalyticsField) {
	if err := s.store.IncrementAnalytics(ctx, businessID, date, field); err != nil {
		utils.Zlog.Warn("Failed to increment analytics counter",
			zap.Int64("business_id", businessID),
			zap.String("field", string(field)),
			zap.Error(err))
	}
}
