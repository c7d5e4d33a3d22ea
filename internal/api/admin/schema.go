package admin

import "github.com/NapaConcierge/concierge-api/internal/types"

// CreateBusinessRequest provisions a tenant. The API key is minted
// server-side and returned once in the created record.
type CreateBusinessRequest struct {
	Name            string `json:"name"`
	BusinessType    string `json:"business_type"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone"`
	Website         string `json:"website"`
	PrimaryColor    string `json:"primary_color"`
	WelcomeMessage  string `json:"welcome_message"`
	WidgetTitle     string `json:"widget_title"`
	WidgetSubtitle  string `json:"widget_subtitle"`
	CustomKnowledge string `json:"custom_knowledge"`
}

// AnalyticsResponse pairs the daily rows with their window totals.
type AnalyticsResponse struct {
	Days   []types.DailyAnalytics `json:"days"`
	Totals AnalyticsTotals        `json:"totals"`
}

type AnalyticsTotals struct {
	TotalConversations int `json:"total_conversations"`
	TotalMessages      int `json:"total_messages"`
	UniqueVisitors     int `json:"unique_visitors"`
	LeadsCaptured      int `json:"leads_captured"`
}

// BroadcastResult summarizes a report broadcast run.
type BroadcastResult struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}
