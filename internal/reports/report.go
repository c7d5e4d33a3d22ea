// Package reports computes period-over-period analytics summaries and
// renders them for email delivery.
package reports

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/NapaConcierge/concierge-api/internal/types"
)

// Store is the subset of the data layer report building reads from.
type Store interface {
	GetBusiness(ctx context.Context, id int64) (*types.Business, error)
	AnalyticsRange(ctx context.Context, businessID int64, from, to time.Time, ascending bool) ([]types.DailyAnalytics, error)
	LeadsInRange(ctx context.Context, businessID int64, from, to time.Time) ([]types.Lead, error)
}

// Metric is one counter summed over the current window with its
// period-over-period change.
type Metric struct {
	Current  int    `json:"current"`
	Previous int    `json:"previous"`
	Change   string `json:"change"`
}

// Report is the structured summary a rendering layer turns into HTML.
type Report struct {
	BusinessName  string                 `json:"business_name"`
	PeriodLabel   string                 `json:"period_label"`
	PeriodDays    int                    `json:"period_days"`
	From          time.Time              `json:"from"`
	To            time.Time              `json:"to"`
	Conversations Metric                 `json:"conversations"`
	Messages      Metric                 `json:"messages"`
	Visitors      Metric                 `json:"visitors"`
	Leads         Metric                 `json:"leads"`
	Daily         []types.DailyAnalytics `json:"daily"`
	NewLeads      []types.Lead           `json:"new_leads"`
}

// Build summarizes the trailing periodDays window ending today (exclusive)
// against the window before it.
func Build(ctx context.Context, store Store, businessID int64, periodDays int) (*Report, error) {
	return BuildAt(ctx, store, businessID, periodDays, time.Now().UTC())
}

// BuildAt is Build with an explicit reference time.
func BuildAt(ctx context.Context, store Store, businessID int64, periodDays int, now time.Time) (*Report, error) {
	if periodDays <= 0 {
		return nil, fmt.Errorf("%w: period must be positive", types.ErrValidation)
	}

	business, err := store.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	today := now.UTC().Truncate(24 * time.Hour)
	currentFrom := today.AddDate(0, 0, -periodDays)
	previousFrom := today.AddDate(0, 0, -2*periodDays)

	current, err := store.AnalyticsRange(ctx, businessID, currentFrom, today, true)
	if err != nil {
		return nil, err
	}
	previous, err := store.AnalyticsRange(ctx, businessID, previousFrom, currentFrom, true)
	if err != nil {
		return nil, err
	}
	newLeads, err := store.LeadsInRange(ctx, businessID, currentFrom, today)
	if err != nil {
		return nil, err
	}
	if newLeads == nil {
		newLeads = []types.Lead{}
	}

	curConv, curMsg, curVis, curLeads := sumCounters(current)
	prevConv, prevMsg, prevVis, prevLeads := sumCounters(previous)

	return &Report{
		BusinessName:  business.Name,
		PeriodLabel:   periodLabel(periodDays),
		PeriodDays:    periodDays,
		From:          currentFrom,
		To:            today,
		Conversations: newMetric(curConv, prevConv),
		Messages:      newMetric(curMsg, prevMsg),
		Visitors:      newMetric(curVis, prevVis),
		Leads:         newMetric(curLeads, prevLeads),
		Daily:         current,
		NewLeads:      newLeads,
	}, nil
}

func sumCounters(days []types.DailyAnalytics) (conversations, messages, visitors, leads int) {
	for _, d := range days {
		conversations += d.TotalConversations
		messages += d.TotalMessages
		visitors += d.UniqueVisitors
		leads += d.LeadsCaptured
	}
	return
}

func newMetric(current, previous int) Metric {
	return Metric{
		Current:  current,
		Previous: previous,
		Change:   FormatChange(current, previous),
	}
}

// FormatChange renders the period-over-period delta with zero decimals and
// an explicit sign. A zero previous window reports "+100%" when anything
// happened and "0%" otherwise.
func FormatChange(current, previous int) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0%"
	}
	pct := math.Round(float64(current-previous) / float64(previous) * 100)
	return fmt.Sprintf("%+.0f%%", pct)
}

func periodLabel(periodDays int) string {
	switch periodDays {
	case 7:
		return "Weekly"
	case 30:
		return "Monthly"
	default:
		return fmt.Sprintf("%d-Day", periodDays)
	}
}
