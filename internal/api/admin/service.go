package admin

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/NapaConcierge/concierge-api/internal/loaders"
	"github.com/NapaConcierge/concierge-api/internal/mailer"
	"github.com/NapaConcierge/concierge-api/internal/metrics"
	"github.com/NapaConcierge/concierge-api/internal/reports"
	"github.com/NapaConcierge/concierge-api/internal/types"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

// Store is the data-layer surface the admin area drives.
type Store interface {
	reports.Store
	CreateBusiness(ctx context.Context, b *types.Business) error
	ListBusinesses(ctx context.Context) ([]types.Business, error)
	UpdateBusiness(ctx context.Context, id int64, patch *loaders.BusinessPatch) (*types.Business, error)
	DeleteBusiness(ctx context.Context, id int64) error
	ListLeads(ctx context.Context, businessID int64) ([]types.Lead, error)
	ListConversations(ctx context.Context, businessID int64) ([]types.Conversation, error)
	ListContractSignatures(ctx context.Context) ([]types.ContractSignature, error)
}

// Service implements the privileged tenant-management operations.
type Service struct {
	store Store
	mail  mailer.Sender
}

func NewService(store Store, mail mailer.Sender) *Service {
	return &Service{store: store, mail: mail}
}

// CreateBusiness provisions a tenant with a freshly minted API key and
// the widget defaults.
func (s *Service) CreateBusiness(ctx context.Context, req *CreateBusinessRequest) (*types.Business, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", types.ErrValidation)
	}

	business := &types.Business{
		APIKey:          utils.GenerateAPIKey(),
		Name:            req.Name,
		BusinessType:    defaultString(req.BusinessType, "hotel"),
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		Website:         req.Website,
		PrimaryColor:    defaultString(req.PrimaryColor, "#722F37"),
		WelcomeMessage:  req.WelcomeMessage,
		WidgetTitle:     defaultString(req.WidgetTitle, "Concierge"),
		WidgetSubtitle:  defaultString(req.WidgetSubtitle, "Your personal wine country guide"),
		CustomKnowledge: req.CustomKnowledge,
		IsActive:        true,
	}
	if err := s.store.CreateBusiness(ctx, business); err != nil {
		return nil, err
	}

	utils.Zlog.Info("Business created",
		zap.Int64("business_id", business.ID),
		zap.String("name", business.Name))
	return business, nil
}

func (s *Service) ListBusinesses(ctx context.Context) ([]types.Business, error) {
	businesses, err := s.store.ListBusinesses(ctx)
	if err != nil {
		return nil, err
	}
	if businesses == nil {
		businesses = []types.Business{}
	}
	return businesses, nil
}

func (s *Service) GetBusiness(ctx context.Context, id int64) (*types.Business, error) {
	return s.store.GetBusiness(ctx, id)
}

// UpdateBusiness applies a partial patch; only fields present in the
// request body are modified.
func (s *Service) UpdateBusiness(ctx context.Context, id int64, patch *loaders.BusinessPatch) (*types.Business, error) {
	return s.store.UpdateBusiness(ctx, id, patch)
}

// DeleteBusiness removes the tenant and cascades over its leads,
// conversations and analytics. Its API key stops resolving immediately.
func (s *Service) DeleteBusiness(ctx context.Context, id int64) error {
	if err := s.store.DeleteBusiness(ctx, id); err != nil {
		return err
	}
	utils.Zlog.Info("Business deleted", zap.Int64("business_id", id))
	return nil
}

// Analytics returns the daily rows for the trailing window (today
// included) newest first, plus window totals.
func (s *Service) Analytics(ctx context.Context, businessID int64, days int) (*AnalyticsResponse, error) {
	if _, err := s.store.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -days+1)
	rows, err := s.store.AnalyticsRange(ctx, businessID, from, today.AddDate(0, 0, 1), false)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []types.DailyAnalytics{}
	}

	var totals AnalyticsTotals
	for _, d := range rows {
		totals.TotalConversations += d.TotalConversations
		totals.TotalMessages += d.TotalMessages
		totals.UniqueVisitors += d.UniqueVisitors
		totals.LeadsCaptured += d.LeadsCaptured
	}
	return &AnalyticsResponse{Days: rows, Totals: totals}, nil
}

func (s *Service) Leads(ctx context.Context, businessID int64) ([]types.Lead, error) {
	if _, err := s.store.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	leads, err := s.store.ListLeads(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []types.Lead{}
	}
	return leads, nil
}

func (s *Service) Conversations(ctx context.Context, businessID int64) ([]types.Conversation, error) {
	if _, err := s.store.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	conversations, err := s.store.ListConversations(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if conversations == nil {
		conversations = []types.Conversation{}
	}
	return conversations, nil
}

// Report computes the period summary without sending it.
func (s *Service) Report(ctx context.Context, businessID int64, periodDays int) (*reports.Report, error) {
	return reports.Build(ctx, s.store, businessID, periodDays)
}

// SendReport builds, renders and emails one tenant's report.
func (s *Service) SendReport(ctx context.Context, businessID int64, periodDays int) error {
	business, err := s.store.GetBusiness(ctx, businessID)
	if err != nil {
		return err
	}
	if business.ContactEmail == "" {
		return fmt.Errorf("%w: business has no contact email", types.ErrValidation)
	}
	return s.sendReportTo(ctx, business, periodDays)
}

// BroadcastReports sends the period report to every tenant with a contact
// address. Individual failures are counted, logged and do not stop the
// run.
func (s *Service) BroadcastReports(ctx context.Context, periodDays int) (*BroadcastResult, error) {
	if !s.mail.Configured() {
		return nil, fmt.Errorf("%w: smtp relay not configured", types.ErrDelivery)
	}

	businesses, err := s.store.ListBusinesses(ctx)
	if err != nil {
		return nil, err
	}

	result := &BroadcastResult{}
	for i := range businesses {
		business := &businesses[i]
		if !business.IsActive || business.ContactEmail == "" {
			result.Skipped++
			continue
		}
		if err := s.sendReportTo(ctx, business, periodDays); err != nil {
			utils.Zlog.Error("Report broadcast failed for business",
				zap.Int64("business_id", business.ID),
				zap.Error(err))
			result.Failed++
			continue
		}
		result.Sent++
	}
	return result, nil
}

func (s *Service) sendReportTo(ctx context.Context, business *types.Business, periodDays int) error {
	report, err := reports.Build(ctx, s.store, business.ID, periodDays)
	if err != nil {
		return err
	}
	html, err := reports.RenderHTML(report)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s Report for %s", report.PeriodLabel, report.BusinessName)
	if err := s.mail.Send(ctx, business.ContactEmail, subject, html, reports.RenderText(report)); err != nil {
		metrics.ReportsSent.WithLabelValues("error").Inc()
		return err
	}
	metrics.ReportsSent.WithLabelValues("ok").Inc()
	return nil
}

func (s *Service) ListContracts(ctx context.Context) ([]types.ContractSignature, error) {
	sigs, err := s.store.ListContractSignatures(ctx)
	if err != nil {
		return nil, err
	}
	if sigs == nil {
		sigs = []types.ContractSignature{}
	}
	return sigs, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
