package widget

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NapaConcierge/concierge-api/internal/types"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

func TestMain(m *testing.M) {
	utils.Zlog = zap.NewNop()
	os.Exit(m.Run())
}

type fakeStore struct {
	businesses    map[string]*types.Business
	conversations map[string]*types.Conversation
	turns         map[int64][]types.ChatTurn
	leads         []*types.Lead
	counters      map[types.AnalyticsField]int
	nextID        int64

	failAssistantAppend bool

	// events records store and provider calls in order.
	events []string
}

func newFakeStore(businesses ...*types.Business) *fakeStore {
	f := &fakeStore{
		businesses:    map[string]*types.Business{},
		conversations: map[string]*types.Conversation{},
		turns:         map[int64][]types.ChatTurn{},
		counters:      map[types.AnalyticsField]int{},
	}
	for _, b := range businesses {
		f.businesses[b.APIKey] = b
	}
	return f
}

func (f *fakeStore) GetBusinessByAPIKey(ctx context.Context, apiKey string) (*types.Business, error) {
	b, ok := f.businesses[apiKey]
	if !ok {
		return nil, types.ErrNotFound
	}
	return b, nil
}

func (f *fakeStore) convKey(businessID int64, sessionID string) string {
	return fmt.Sprintf("%d/%s", businessID, sessionID)
}

func (f *fakeStore) GetConversation(ctx context.Context, businessID int64, sessionID string) (*types.Conversation, error) {
	conv, ok := f.conversations[f.convKey(businessID, sessionID)]
	if !ok {
		return nil, types.ErrNotFound
	}
	return conv, nil
}

func (f *fakeStore) CreateConversation(ctx context.Context, businessID int64, sessionID string, visitor types.VisitorInfo) (*types.Conversation, bool, error) {
	key := f.convKey(businessID, sessionID)
	if conv, ok := f.conversations[key]; ok {
		return conv, false, nil
	}
	f.nextID++
	conv := &types.Conversation{
		ID:         f.nextID,
		BusinessID: businessID,
		SessionID:  sessionID,
		StartedAt:  time.Now().UTC(),
		VisitorIP:  visitor.IP,
		UserAgent:  visitor.UserAgent,
		Referrer:   visitor.Referrer,
	}
	f.conversations[key] = conv
	return conv, true, nil
}

func (f *fakeStore) AppendTurns(ctx context.Context, conversationID int64, turns ...types.ChatTurn) error {
	for _, turn := range turns {
		if f.failAssistantAppend && turn.Role == types.RoleAssistant {
			return errors.New("write failed")
		}
		f.events = append(f.events, "append:"+turn.Role)
		f.turns[conversationID] = append(f.turns[conversationID], turn)
	}
	return nil
}

func (f *fakeStore) IncrementAnalytics(ctx context.Context, businessID int64, date time.Time, field types.AnalyticsField) error {
	f.counters[field]++
	return nil
}

func (f *fakeStore) CreateLead(ctx context.Context, lead *types.Lead) error {
	f.nextID++
	lead.ID = f.nextID
	lead.CreatedAt = time.Now().UTC()
	f.leads = append(f.leads, lead)
	return nil
}

type fakeProvider struct {
	reply string
	err   error
	store *fakeStore

	systemPrompt string
	history      []types.ChatTurn
}

func (f *fakeProvider) Complete(ctx context.Context, systemPrompt string, history []types.ChatTurn) (string, error) {
	f.store.events = append(f.store.events, "complete")
	f.systemPrompt = systemPrompt
	f.history = history
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func activeBusiness() *types.Business {
	return &types.Business{
		ID:             1,
		APIKey:         "nc_test_key",
		Name:           "Vine Inn",
		BusinessType:   "hotel",
		PrimaryColor:   "#722F37",
		WidgetTitle:    "Concierge",
		WidgetSubtitle: "Your personal wine country guide",
		WelcomeMessage: "Welcome!",
		IsActive:       true,
	}
}

func newTestService(store *fakeStore, reply string) (*Service, *fakeProvider) {
	provider := &fakeProvider{reply: reply, store: store}
	return NewService(store, provider), provider
}

func TestResolveBusiness(t *testing.T) {
	active := activeBusiness()
	inactive := &types.Business{ID: 2, APIKey: "nc_inactive", Name: "Closed Inn"}
	store := newFakeStore(active, inactive)
	svc, _ := newTestService(store, "hi")

	got, err := svc.ResolveBusiness(context.Background(), "nc_test_key")
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = svc.ResolveBusiness(context.Background(), "")
	assert.True(t, errors.Is(err, types.ErrUnauthorized))

	_, err = svc.ResolveBusiness(context.Background(), "nc_unknown")
	assert.True(t, errors.Is(err, types.ErrUnauthorized))

	// An inactive tenant is rejected the same way an unknown key is.
	_, err = svc.ResolveBusiness(context.Background(), "nc_inactive")
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
}

func TestWidgetConfig(t *testing.T) {
	store := newFakeStore(activeBusiness())
	svc, _ := newTestService(store, "hi")

	cfg, err := svc.WidgetConfig(context.Background(), "nc_test_key")
	require.NoError(t, err)

	assert.Equal(t, "Vine Inn", cfg.Name)
	assert.Equal(t, "#722F37", cfg.PrimaryColor)
	assert.Equal(t, "Concierge", cfg.WidgetTitle)
	assert.Equal(t, "Your personal wine country guide", cfg.WidgetSubtitle)
	assert.Equal(t, "Welcome!", cfg.WelcomeMessage)
}

func TestChatMintsSessionID(t *testing.T) {
	business := activeBusiness()
	store := newFakeStore(business)
	svc, _ := newTestService(store, "Of course!")

	resp, err := svc.Chat(context.Background(), business, &ChatRequest{Message: "Any rooms?"}, types.VisitorInfo{})
	require.NoError(t, err)

	require.NotEmpty(t, resp.SessionID)
	_, err = uuid.Parse(resp.SessionID)
	assert.NoError(t, err)

	assert.Equal(t, 1, store.counters[types.FieldConversationsStarted])
	assert.Equal(t, 1, store.counters[types.FieldUniqueVisitors])
	assert.Equal(t, 2, store.counters[types.FieldMessagesSent])
}

func TestChatDistinctSessionsWithoutID(t *testing.T) {
	business := activeBusiness()
	store := newFakeStore(business)
	svc, _ := newTestService(store, "ok")

	first, err := svc.Chat(context.Background(), business, &ChatRequest{Message: "hi"}, types.VisitorInfo{})
	require.NoError(t, err)
	second, err := svc.Chat(context.Background(), business, &ChatRequest{Message: "hi"}, types.VisitorInfo{})
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.Len(t, store.conversations, 2)
	assert.Equal(t, 2, store.counters[types.FieldConversationsStarted])
}

func TestChatReusesSessionConversation(t *testing.T) {
	business := activeBusiness()
	store := newFakeStore(business)
	svc, _ := newTestService(store, "ok")

	req := &ChatRequest{Message: "hello", SessionID: "sess-1"}
	first, err := svc.Chat(context.Background(), business, req, types.VisitorInfo{})
	require.NoError(t, err)
	second, err := svc.Chat(context.Background(), business, &ChatRequest{Message: "again", SessionID: "sess-1"}, types.VisitorInfo{})
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Len(t, store.conversations, 1)

	// Only the first call starts a conversation; every call stores two turns.
	assert.Equal(t, 1, store.counters[types.FieldConversationsStarted])
	assert.Equal(t, 1, store.counters[types.FieldUniqueVisitors])
	assert.Equal(t, 4, store.counters[types.FieldMessagesSent])
	assert.Len(t, store.turns[1], 4)
}

func TestChatPersistsUserTurnBeforeCompletion(t *testing.T) {
	business := activeBusiness()
	store := newFakeStore(business)
	svc, _ := newTestService(store, "reply")

	_, err := svc.Chat(context.Background(), business, &ChatRequest{Message: "hi", SessionID: "s"}, types.VisitorInfo{})
	require.NoError(t, err)

	assert.Equal(t, []string{"append:user", "complete", "append:assistant"}, store.events)
}

func TestChatHistoryPassedToProvider(t *testing.T) {
	business := activeBusiness()
	store := newFakeStore(business)
	svc, provider := newTestService(store, "the pool closes at 9")

	req := &ChatRequest{
		Message:   "what about the pool?",
		SessionID: "s",
		ConversationHistory: []types.ChatTurn{
			{Role: types.RoleUser, Content: "hi"},
			{Role: types.RoleAssistant, Content: "hello there"},
		},
	}
	resp, err := svc.Chat(context.Background(), business, req, types.VisitorInfo{})
	require.NoError(t, err)

	require.Len(t, provider.history, 3)
	assert.Equal(t, "what about the pool?", provider.history[2].Content)
	assert.Contains(t, provider.systemPrompt, "Vine Inn")

	require.Len(t, resp.ConversationHistory, 4)
	last := resp.ConversationHistory[3]
	assert.Equal(t, types.RoleAssistant, last.Role)
	assert.Equal(t, "the pool closes at 9", last.Content)
	assert.Equal(t, "the pool closes at 9", resp.Response)
}

func TestChatEmptyMessage(t *testing.T) {
	business := activeBusiness()
	svc, _ := newTestService(newFakeStore(business), "ok")

	_, err := svc.Chat(context.Background(), business, &ChatRequest{}, types.VisitorInfo{})
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestChatCompletionFailureKeepsUserTurn(t *testing.T) {
	business := activeBusiness()
	store := newFakeStore(business)
	svc, provider := newTestService(store, "")
	provider.err = fmt.Errorf("%w: upstream timeout", types.ErrCompletion)

	_, err := svc.Chat(context.Background(), business, &ChatRequest{Message: "hi", SessionID: "s"}, types.VisitorInfo{})
	assert.True(t, errors.Is(err, types.ErrCompletion))

	// The user turn survives the failed completion; no assistant turn exists.
	require.Len(t, store.turns[1], 1)
	assert.Equal(t, types.RoleUser, store.turns[1][0].Role)
	assert.Equal(t, 1, store.counters[types.FieldMessagesSent])
}

func TestChatAssistantPersistFailureStillReturnsReply(t *testing.T) {
	business := activeBusiness()
	store := newFakeStore(business)
	store.failAssistantAppend = true
	svc, _ := newTestService(store, "generated reply")

	resp, err := svc.Chat(context.Background(), business, &ChatRequest{Message: "hi", SessionID: "s"}, types.VisitorInfo{})
	require.NoError(t, err)

	assert.Equal(t, "generated reply", resp.Response)
	// The second message counter bump is skipped when the write fails.
	assert.Equal(t, 1, store.counters[types.FieldMessagesSent])
}

func TestCaptureLeadLinked(t *testing.T) {
	business := activeBusiness()
	store := newFakeStore(business)
	svc, _ := newTestService(store, "ok")

	_, err := svc.Chat(context.Background(), business, &ChatRequest{Message: "hi", SessionID: "sess-9"}, types.VisitorInfo{})
	require.NoError(t, err)

	lead, err := svc.CaptureLead(context.Background(), business, &LeadRequest{
		SessionID: "sess-9",
		Email:     "guest@example.com",
		Interest:  "tasting",
	})
	require.NoError(t, err)

	require.NotNil(t, lead.ConversationID)
	assert.Equal(t, int64(1), *lead.ConversationID)
	assert.Equal(t, 1, store.counters[types.FieldLeadsCaptured])
}

func TestCaptureLeadUnknownSession(t *testing.T) {
	business := activeBusiness()
	store := newFakeStore(business)
	svc, _ := newTestService(store, "ok")

	lead, err := svc.CaptureLead(context.Background(), business, &LeadRequest{
		SessionID: "never-seen",
		Name:      "Dana",
	})
	require.NoError(t, err)

	// The conversation link is weak; the lead is kept either way.
	assert.Nil(t, lead.ConversationID)
	assert.NotZero(t, lead.ID)
	assert.Equal(t, 1, store.counters[types.FieldLeadsCaptured])
}

func TestCaptureLeadRequiresContactField(t *testing.T) {
	business := activeBusiness()
	svc, _ := newTestService(newFakeStore(business), "ok")

	_, err := svc.CaptureLead(context.Background(), business, &LeadRequest{Interest: "tasting"})
	assert.True(t, errors.Is(err, types.ErrValidation))
}
