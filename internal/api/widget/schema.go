package widget

import "github.com/NapaConcierge/concierge-api/internal/types"

// ChatRequest is the input contract for POST /chat. The caller is
// stateless except for the session id it echoes back on the next turn.
type ChatRequest struct {
	Message             string           `json:"message"`
	ConversationHistory []types.ChatTurn `json:"conversationHistory"`
	SessionID           string           `json:"sessionId"`
}

// ChatResponse returns the generated reply plus the updated history and
// the session token the caller must persist.
type ChatResponse struct {
	Response            string           `json:"response"`
	ConversationHistory []types.ChatTurn `json:"conversationHistory"`
	SessionID           string           `json:"sessionId"`
}

// ConfigResponse is the public branding payload for GET /widget/config.
type ConfigResponse struct {
	Name           string `json:"name"`
	PrimaryColor   string `json:"primary_color"`
	WidgetTitle    string `json:"widget_title"`
	WidgetSubtitle string `json:"widget_subtitle"`
	WelcomeMessage string `json:"welcome_message"`
}

// LeadRequest captures contact intent against an optional session.
type LeadRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Interest  string `json:"interest"`
	Notes     string `json:"notes"`
}
