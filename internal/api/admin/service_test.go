package admin

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NapaConcierge/concierge-api/internal/loaders"
	"github.com/NapaConcierge/concierge-api/internal/types"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

func TestMain(m *testing.M) {
	utils.Zlog = zap.NewNop()
	os.Exit(m.Run())
}

type fakeStore struct {
	businesses map[int64]*types.Business
	analytics  map[int64][]types.DailyAnalytics
	leads      map[int64][]types.Lead
	contracts  []types.ContractSignature
	nextID     int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		businesses: map[int64]*types.Business{},
		analytics:  map[int64][]types.DailyAnalytics{},
		leads:      map[int64][]types.Lead{},
	}
}

func (f *fakeStore) add(b *types.Business) *types.Business {
	f.nextID++
	b.ID = f.nextID
	f.businesses[b.ID] = b
	return b
}

func (f *fakeStore) GetBusiness(ctx context.Context, id int64) (*types.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return b, nil
}

func (f *fakeStore) AnalyticsRange(ctx context.Context, businessID int64, from, to time.Time, ascending bool) ([]types.DailyAnalytics, error) {
	var out []types.DailyAnalytics
	for _, d := range f.analytics[businessID] {
		if !d.Date.Before(from) && d.Date.Before(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) LeadsInRange(ctx context.Context, businessID int64, from, to time.Time) ([]types.Lead, error) {
	var out []types.Lead
	for _, l := range f.leads[businessID] {
		if !l.CreatedAt.Before(from) && l.CreatedAt.Before(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateBusiness(ctx context.Context, b *types.Business) error {
	f.add(b)
	return nil
}

func (f *fakeStore) ListBusinesses(ctx context.Context) ([]types.Business, error) {
	var out []types.Business
	for id := int64(1); id <= f.nextID; id++ {
		if b, ok := f.businesses[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateBusiness(ctx context.Context, id int64, patch *loaders.BusinessPatch) (*types.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.ContactEmail != nil {
		b.ContactEmail = *patch.ContactEmail
	}
	if patch.CustomKnowledge != nil {
		b.CustomKnowledge = *patch.CustomKnowledge
	}
	if patch.IsActive != nil {
		b.IsActive = *patch.IsActive
	}
	return b, nil
}

func (f *fakeStore) DeleteBusiness(ctx context.Context, id int64) error {
	if _, ok := f.businesses[id]; !ok {
		return types.ErrNotFound
	}
	delete(f.businesses, id)
	delete(f.analytics, id)
	delete(f.leads, id)
	return nil
}

func (f *fakeStore) ListLeads(ctx context.Context, businessID int64) ([]types.Lead, error) {
	return f.leads[businessID], nil
}

func (f *fakeStore) ListConversations(ctx context.Context, businessID int64) ([]types.Conversation, error) {
	return nil, nil
}

func (f *fakeStore) ListContractSignatures(ctx context.Context) ([]types.ContractSignature, error) {
	return f.contracts, nil
}

type fakeMailer struct {
	configured bool
	failFor    map[string]bool

	sent []sentMail
}

type sentMail struct {
	to       string
	subject  string
	htmlBody string
	textBody string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if f.failFor[to] {
		return types.ErrDelivery
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, htmlBody: htmlBody, textBody: textBody})
	return nil
}

func (f *fakeMailer) Configured() bool { return f.configured }

func TestCreateBusinessDefaults(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeMailer{})

	business, err := svc.CreateBusiness(context.Background(), &CreateBusinessRequest{Name: "Vine Inn"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(business.APIKey, utils.APIKeyPrefix))
	assert.Equal(t, "hotel", business.BusinessType)
	assert.Equal(t, "#722F37", business.PrimaryColor)
	assert.Equal(t, "Concierge", business.WidgetTitle)
	assert.Equal(t, "Your personal wine country guide", business.WidgetSubtitle)
	assert.True(t, business.IsActive)
	assert.NotZero(t, business.ID)
}

func TestCreateBusinessDistinctKeys(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeMailer{})

	a, err := svc.CreateBusiness(context.Background(), &CreateBusinessRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreateBusiness(context.Background(), &CreateBusinessRequest{Name: "B"})
	require.NoError(t, err)

	assert.NotEqual(t, a.APIKey, b.APIKey)
}

func TestCreateBusinessRequiresName(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeMailer{})

	_, err := svc.CreateBusiness(context.Background(), &CreateBusinessRequest{})
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestUpdateBusinessPartialPatch(t *testing.T) {
	store := newFakeStore()
	business := store.add(&types.Business{Name: "Old Name", ContactEmail: "old@example.com", IsActive: true})
	svc := NewService(store, &fakeMailer{})

	name := "New Name"
	updated, err := svc.UpdateBusiness(context.Background(), business.ID, &loaders.BusinessPatch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	// Untouched fields survive a partial patch.
	assert.Equal(t, "old@example.com", updated.ContactEmail)
	assert.True(t, updated.IsActive)
}

func TestDeleteBusiness(t *testing.T) {
	store := newFakeStore()
	business := store.add(&types.Business{Name: "Doomed"})
	svc := NewService(store, &fakeMailer{})

	require.NoError(t, svc.DeleteBusiness(context.Background(), business.ID))

	_, err := svc.GetBusiness(context.Background(), business.ID)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	err = svc.DeleteBusiness(context.Background(), business.ID)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestAnalyticsTotals(t *testing.T) {
	store := newFakeStore()
	business := store.add(&types.Business{Name: "Vine Inn"})
	today := time.Now().UTC().Truncate(24 * time.Hour)
	store.analytics[business.ID] = []types.DailyAnalytics{
		{BusinessID: business.ID, Date: today, TotalConversations: 2, TotalMessages: 8, UniqueVisitors: 2, LeadsCaptured: 1},
		{BusinessID: business.ID, Date: today.AddDate(0, 0, -1), TotalConversations: 3, TotalMessages: 12, UniqueVisitors: 3, LeadsCaptured: 0},
		// Outside the 7-day window; must not count.
		{BusinessID: business.ID, Date: today.AddDate(0, 0, -20), TotalConversations: 99, TotalMessages: 99, UniqueVisitors: 99, LeadsCaptured: 99},
	}
	svc := NewService(store, &fakeMailer{})

	resp, err := svc.Analytics(context.Background(), business.ID, 7)
	require.NoError(t, err)

	assert.Len(t, resp.Days, 2)
	assert.Equal(t, 5, resp.Totals.TotalConversations)
	assert.Equal(t, 20, resp.Totals.TotalMessages)
	assert.Equal(t, 5, resp.Totals.UniqueVisitors)
	assert.Equal(t, 1, resp.Totals.LeadsCaptured)
}

func TestAnalyticsUnknownBusiness(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeMailer{})

	_, err := svc.Analytics(context.Background(), 99, 7)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestSendReport(t *testing.T) {
	store := newFakeStore()
	business := store.add(&types.Business{Name: "Vine Inn", ContactEmail: "owner@example.com", IsActive: true})
	mail := &fakeMailer{configured: true}
	svc := NewService(store, mail)

	require.NoError(t, svc.SendReport(context.Background(), business.ID, 7))

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "owner@example.com", mail.sent[0].to)
	assert.Equal(t, "Weekly Report for Vine Inn", mail.sent[0].subject)
	assert.Contains(t, mail.sent[0].htmlBody, "Vine Inn")
	assert.Contains(t, mail.sent[0].textBody, "Weekly Report - Vine Inn")
}

func TestSendReportRequiresContactEmail(t *testing.T) {
	store := newFakeStore()
	business := store.add(&types.Business{Name: "No Email", IsActive: true})
	svc := NewService(store, &fakeMailer{configured: true})

	err := svc.SendReport(context.Background(), business.ID, 7)
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestBroadcastReports(t *testing.T) {
	store := newFakeStore()
	store.add(&types.Business{Name: "Sendable", ContactEmail: "a@example.com", IsActive: true})
	store.add(&types.Business{Name: "Inactive", ContactEmail: "b@example.com", IsActive: false})
	store.add(&types.Business{Name: "No Email", IsActive: true})
	store.add(&types.Business{Name: "Bouncing", ContactEmail: "bad@example.com", IsActive: true})

	mail := &fakeMailer{configured: true, failFor: map[string]bool{"bad@example.com": true}}
	svc := NewService(store, mail)

	result, err := svc.BroadcastReports(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "a@example.com", mail.sent[0].to)
}

func TestBroadcastReportsUnconfiguredRelay(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeMailer{configured: false})

	_, err := svc.BroadcastReports(context.Background(), 7)
	assert.True(t, errors.Is(err, types.ErrDelivery))
}

func TestReportPeriodLabel(t *testing.T) {
	store := newFakeStore()
	business := store.add(&types.Business{Name: "Vine Inn"})
	svc := NewService(store, &fakeMailer{})

	weekly, err := svc.Report(context.Background(), business.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "Weekly", weekly.PeriodLabel)

	monthly, err := svc.Report(context.Background(), business.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, "Monthly", monthly.PeriodLabel)
}

func TestListContractsEmpty(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeMailer{})

	sigs, err := svc.ListContracts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sigs)
	assert.Empty(t, sigs)
}
