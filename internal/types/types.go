package types

import "time"

// Turn roles stored in conversation transcripts.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is a single role-tagged entry in a conversation transcript.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// VisitorInfo carries request-time metadata captured when a conversation
// is first created. Values are truncated to column bounds before storage.
type VisitorInfo struct {
	IP        string
	UserAgent string
	Referrer  string
}

// Business is a tenant embedding the chat widget, isolated by API key.
type Business struct {
	ID              int64     `json:"id"`
	APIKey          string    `json:"api_key"`
	Name            string    `json:"name"`
	BusinessType    string    `json:"business_type"`
	ContactEmail    string    `json:"contact_email"`
	ContactPhone    string    `json:"contact_phone"`
	Website         string    `json:"website"`
	PrimaryColor    string    `json:"primary_color"`
	WelcomeMessage  string    `json:"welcome_message"`
	WidgetTitle     string    `json:"widget_title"`
	WidgetSubtitle  string    `json:"widget_subtitle"`
	CustomKnowledge string    `json:"custom_knowledge"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// Conversation is one browser session's chat thread with a business.
// (BusinessID, SessionID) is unique: a session belongs to exactly one
// business's conversation.
type Conversation struct {
	ID            int64      `json:"id"`
	BusinessID    int64      `json:"business_id"`
	SessionID     string     `json:"session_id"`
	StartedAt     time.Time  `json:"started_at"`
	LastMessageAt time.Time  `json:"last_message_at"`
	MessageCount  int        `json:"message_count"`
	Messages      []ChatTurn `json:"messages"`
	VisitorIP     string     `json:"visitor_ip"`
	UserAgent     string     `json:"user_agent"`
	Referrer      string     `json:"referrer"`
}

// Lead is a captured contact-intent record. ConversationID is a weak
// reference and is nil when the originating session is unknown.
type Lead struct {
	ID             int64     `json:"id"`
	BusinessID     int64     `json:"business_id"`
	ConversationID *int64    `json:"conversation_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Interest       string    `json:"interest"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// DailyAnalytics is the per-business per-day counter rollup. At most one
// row exists per (business, date); rows are created lazily by the first
// event of the day.
type DailyAnalytics struct {
	ID                 int64     `json:"id"`
	BusinessID         int64     `json:"business_id"`
	Date               time.Time `json:"date"`
	TotalConversations int       `json:"total_conversations"`
	TotalMessages      int       `json:"total_messages"`
	UniqueVisitors     int       `json:"unique_visitors"`
	LeadsCaptured      int       `json:"leads_captured"`
	TopTopics          []string  `json:"top_topics"`
}

// AnalyticsField names one of the four daily counters.
type AnalyticsField string

const (
	FieldConversationsStarted AnalyticsField = "total_conversations"
	FieldMessagesSent         AnalyticsField = "total_messages"
	FieldUniqueVisitors       AnalyticsField = "unique_visitors"
	FieldLeadsCaptured        AnalyticsField = "leads_captured"
)

// ContractSignature is an append-only audit record of a signed service
// agreement. Not tenant-scoped.
type ContractSignature struct {
	ID              int64     `json:"id"`
	SignerName      string    `json:"signer_name"`
	SignerEmail     string    `json:"signer_email"`
	CompanyName     string    `json:"company_name"`
	CompanyType     string    `json:"company_type"`
	ContractVersion string    `json:"contract_version"`
	SignedAt        time.Time `json:"signed_at"`
	IPAddress       string    `json:"ip_address"`
	UserAgent       string    `json:"user_agent"`
}
