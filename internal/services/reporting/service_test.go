package reporting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/clock"
	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
	"reseller-backend/internal/testutil"
)

type fixture struct {
	t   *testing.T
	db  *gorm.DB
	svc *Service
	ctx context.Context
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		t:   t,
		db:  db,
		svc: NewService(repository.NewStore(db), WithClock(clock.At(2024, time.June, 1))),
		ctx: context.Background(),
	}
}

func day(s string) datatypes.Date {
	d, err := clock.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (f *fixture) create(v interface{}) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(v).Error)
}

func (f *fixture) customer(name string, createdAt time.Time) *models.Customer {
	c := &models.Customer{
		CompanyName:      name,
		ContactName:      "Contact",
		Email:            "c@example.test",
		Phone:            "555",
		RegistrationDate: day("2024-01-01"),
		CreatedAt:        createdAt,
	}
	f.create(c)
	return c
}

func (f *fixture) domain(customerID uint, name, expires string, active bool) *models.Domain {
	d := &models.Domain{
		CustomerID:       customerID,
		Name:             name,
		RegistrationDate: day("2023-01-01"),
		ExpirationDate:   day(expires),
		IsActive:         active,
		Nameserver1:      "ns1",
		Nameserver2:      "ns2",
	}
	f.create(d)
	return d
}

func (f *fixture) hosting(customerID, domainID uint, status, expires string) *models.HostingService {
	h := &models.HostingService{
		CustomerID:     customerID,
		DomainID:       domainID,
		Package:        "Basic",
		Status:         status,
		StartDate:      day("2023-01-01"),
		ExpirationDate: day(expires),
	}
	f.create(h)
	return h
}

func (f *fixture) invoice(customerID uint, number, amount, status, due string) *models.Invoice {
	inv := &models.Invoice{
		CustomerID:    customerID,
		InvoiceNumber: number,
		Amount:        decimal.RequireFromString(amount),
		IssueDate:     day("2024-05-01"),
		DueDate:       day(due),
		PaymentStatus: status,
	}
	f.create(inv)
	return inv
}

func domainNames(ds []models.Domain) []string {
	names := make([]string, 0, len(ds))
	for _, d := range ds {
		names = append(names, d.Name)
	}
	return names
}

func TestExpiringDomainsWindow(t *testing.T) {
	f := newFixture(t)
	c := f.customer("Acme", time.Now())
	f.domain(c.ID, "soon.test", "2024-06-20", true)
	f.domain(c.ID, "later.test", "2024-08-01", true)
	f.domain(c.ID, "lapsed.test", "2024-05-01", true)
	f.domain(c.ID, "parked.test", "2024-06-10", false)
	f.domain(c.ID, "edge.test", "2024-07-01", true)

	expiring, err := f.svc.ExpiringDomains(f.ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"lapsed.test", "soon.test", "edge.test"}, domainNames(expiring))

	expired, err := f.svc.ExpiredDomains(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lapsed.test"}, domainNames(expired))

	stats, err := f.svc.DomainStats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpiryStats{Total: 5, Active: 4, Expired: 1, ExpiringSoon: 3}, stats)
}

func TestExpiringWindowDaysOption(t *testing.T) {
	f := newFixture(t)
	f.svc = NewService(repository.NewStore(f.db), WithClock(clock.At(2024, time.June, 1)), WithWindowDays(7))
	c := f.customer("Acme", time.Now())
	f.domain(c.ID, "soon.test", "2024-06-05", true)
	f.domain(c.ID, "later.test", "2024-06-20", true)

	expiring, err := f.svc.ExpiringDomains(f.ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"soon.test"}, domainNames(expiring))
}

func TestHostingStatsDeriveExpiryFromDates(t *testing.T) {
	f := newFixture(t)
	c := f.customer("Acme", time.Now())
	d1 := f.domain(c.ID, "a.test", "2025-01-01", true)
	d2 := f.domain(c.ID, "b.test", "2025-01-01", true)
	d3 := f.domain(c.ID, "c.test", "2025-01-01", true)
	f.hosting(c.ID, d1.ID, models.HostingStatusActive, "2024-06-15")
	f.hosting(c.ID, d2.ID, models.HostingStatusSuspended, "2024-06-15")
	f.hosting(c.ID, d3.ID, models.HostingStatusCancelled, "2024-03-01")

	stats, err := f.svc.HostingStats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, HostingStats{
		Total:        3,
		Active:       1,
		Suspended:    1,
		Cancelled:    1,
		Expired:      1,
		ExpiringSoon: 1,
	}, stats)

	expired, err := f.svc.ExpiredHostingServices(f.ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, d3.ID, expired[0].DomainID)
}

func TestInvoiceStatsOverdueIsDerived(t *testing.T) {
	f := newFixture(t)
	acme := f.customer("Acme", time.Now())
	other := f.customer("Other", time.Now())
	f.invoice(acme.ID, "INV-1", "100.50", models.PaymentStatusPending, "2024-05-15")
	f.invoice(acme.ID, "INV-2", "200.25", models.PaymentStatusPending, "2024-07-01")
	f.invoice(acme.ID, "INV-3", "50", models.PaymentStatusPaid, "2024-05-01")
	f.invoice(acme.ID, "INV-4", "10", models.PaymentStatusOverdue, "2024-05-01")
	f.invoice(other.ID, "INV-5", "999", models.PaymentStatusPending, "2024-01-01")

	stats, err := f.svc.InvoiceStats(f.ctx, repository.InvoiceFilter{CustomerID: acme.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Total.Count)
	assert.True(t, decimal.RequireFromString("360.75").Equal(stats.Total.Amount), stats.Total.Amount.String())
	assert.Equal(t, int64(1), stats.Paid.Count)
	assert.Equal(t, int64(2), stats.Pending.Count)
	assert.True(t, decimal.RequireFromString("300.75").Equal(stats.Pending.Amount))
	assert.Equal(t, int64(1), stats.Overdue.Count)
	assert.True(t, decimal.RequireFromString("100.50").Equal(stats.Overdue.Amount))
}

func TestInvoiceStatsEmpty(t *testing.T) {
	f := newFixture(t)

	stats, err := f.svc.InvoiceStats(f.ctx, repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Zero(t, stats.Total.Count)
	assert.True(t, stats.Total.Amount.IsZero())
	assert.True(t, stats.Overdue.Amount.IsZero())
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	old := f.customer("Old", now.AddDate(0, -3, 0))
	for i, name := range []string{"A", "B", "C", "D", "E"} {
		f.customer(name, now.AddDate(0, 0, -i))
	}
	d := f.domain(old.ID, "old.test", "2024-06-10", true)
	f.hosting(old.ID, d.ID, models.HostingStatusActive, "2024-06-12")
	f.invoice(old.ID, "INV-1", "10", models.PaymentStatusPending, "2024-06-30")
	f.invoice(old.ID, "INV-2", "20", models.PaymentStatusPending, "2024-05-30")

	dash, err := f.svc.Dashboard(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, CustomerStats{Total: 6, New: 5}, dash.Customers)
	require.Len(t, dash.RecentCustomers, 5)
	assert.Equal(t, "A", dash.RecentCustomers[0].CompanyName)
	assert.Equal(t, "E", dash.RecentCustomers[4].CompanyName)
	assert.Len(t, dash.Expiring.Domains, 1)
	assert.Len(t, dash.Expiring.Hosting, 1)
	assert.Empty(t, dash.Expiring.SSL)
	require.Len(t, dash.PendingInvoices, 2)
	assert.Equal(t, "INV-2", dash.PendingInvoices[0].InvoiceNumber)
	assert.Equal(t, int64(1), dash.Invoices.Overdue.Count)
}

func TestDashboardListsSoonestFive(t *testing.T) {
	f := newFixture(t)
	c := f.customer("Acme", time.Now())
	for i, exp := range []string{"2024-06-07", "2024-06-03", "2024-06-09", "2024-06-05", "2024-06-02", "2024-06-08", "2024-06-04"} {
		d := f.domain(c.ID, fmt.Sprintf("d%d.test", i), exp, true)
		f.hosting(c.ID, d.ID, models.HostingStatusActive, exp)
		f.create(&models.SSLCertificate{
			CustomerID:     c.ID,
			DomainID:       d.ID,
			StartDate:      day("2023-06-01"),
			ExpirationDate: day(exp),
			IsActive:       true,
		})
		f.invoice(c.ID, fmt.Sprintf("INV-%d", i), "10", models.PaymentStatusPending, exp)
	}

	dash, err := f.svc.Dashboard(f.ctx)
	require.NoError(t, err)

	want := []string{"2024-06-02", "2024-06-03", "2024-06-04", "2024-06-05", "2024-06-07"}
	var domains, hosting, ssl, invoices []string
	for _, d := range dash.Expiring.Domains {
		domains = append(domains, clock.FormatDate(d.ExpirationDate))
	}
	for _, h := range dash.Expiring.Hosting {
		hosting = append(hosting, clock.FormatDate(h.ExpirationDate))
	}
	for _, cert := range dash.Expiring.SSL {
		ssl = append(ssl, clock.FormatDate(cert.ExpirationDate))
	}
	for _, inv := range dash.PendingInvoices {
		invoices = append(invoices, clock.FormatDate(inv.DueDate))
	}
	assert.Equal(t, want, domains)
	assert.Equal(t, want, hosting)
	assert.Equal(t, want, ssl)
	assert.Equal(t, want, invoices)
}

func TestNewCustomersIgnoreExpiringWindow(t *testing.T) {
	f := newFixture(t)
	f.svc = NewService(repository.NewStore(f.db), WithClock(clock.At(2024, time.June, 1)), WithWindowDays(7))
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	f.customer("Recent", now.AddDate(0, 0, -10))
	f.customer("Old", now.AddDate(0, 0, -40))

	dash, err := f.svc.Dashboard(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, CustomerStats{Total: 2, New: 1}, dash.Customers)
}

func TestCustomerDetail(t *testing.T) {
	f := newFixture(t)
	acme := f.customer("Acme", time.Now())
	other := f.customer("Other", time.Now())
	d := f.domain(acme.ID, "acme.test", "2025-01-01", true)
	f.create(&models.SSLCertificate{
		CustomerID:     other.ID,
		DomainID:       d.ID,
		StartDate:      day("2024-01-01"),
		ExpirationDate: day("2025-01-01"),
		IsActive:       true,
	})
	f.invoice(acme.ID, "INV-1", "10", models.PaymentStatusPaid, "2024-05-30")

	detail, err := f.svc.CustomerDetail(f.ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", detail.Customer.CompanyName)
	assert.Len(t, detail.Domains, 1)
	assert.Len(t, detail.SSLCertificates, 1)
	assert.Len(t, detail.Invoices, 1)
	assert.Equal(t, int64(1), detail.InvoiceStats.Paid.Count)

	_, err = f.svc.CustomerDetail(f.ctx, 999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRenewals(t *testing.T) {
	f := newFixture(t)
	c := f.customer("Acme", time.Now())
	d1 := f.domain(c.ID, "one.test", "2024-07-01", true)
	f.domain(c.ID, "two.test", "2024-09-01", true)
	f.hosting(c.ID, d1.ID, models.HostingStatusActive, "2024-07-15")

	items, err := f.svc.Renewals(f.ctx, RenewalQuery{Start: "2024-07-01", End: "2024-07-31"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, RenewalDomain, items[0].Type)
	assert.Equal(t, "one.test", items[0].Name)
	assert.Equal(t, "Acme", items[0].CompanyName)
	assert.Equal(t, RenewalHosting, items[1].Type)
	assert.Equal(t, "one.test (Basic)", items[1].Name)

	items, err = f.svc.Renewals(f.ctx, RenewalQuery{Type: "hosting", Start: "2024-07-01", End: "2024-07-31"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRenewalsRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Renewals(f.ctx, RenewalQuery{Type: "mail", Start: "July", End: "2024-07-31"})
	require.True(t, apperr.IsValidation(err))
	assert.ErrorContains(t, err, "type")
	assert.ErrorContains(t, err, "start")

	_, err = f.svc.Renewals(f.ctx, RenewalQuery{Start: "2024-08-01", End: "2024-07-01"})
	assert.True(t, apperr.IsValidation(err))
}
