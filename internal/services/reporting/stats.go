package reporting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
)

// ExpiryStats summarises domains or SSL certificates.
type ExpiryStats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	Expired      int64 `json:"expired"`
	ExpiringSoon int64 `json:"expiring_soon"`
}

type HostingStats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	Suspended    int64 `json:"suspended"`
	Cancelled    int64 `json:"cancelled"`
	Expired      int64 `json:"expired"`
	ExpiringSoon int64 `json:"expiring_soon"`
}

// Totals is a count and amount pair. Amount is zero for an empty set.
type Totals struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type InvoiceStats struct {
	Total   Totals `json:"total"`
	Paid    Totals `json:"paid"`
	Pending Totals `json:"pending"`
	Overdue Totals `json:"overdue"`
}

func (s *Service) DomainStats(ctx context.Context) (ExpiryStats, error) {
	return s.expiryStats(ctx, &models.Domain{}, "domains")
}

func (s *Service) SSLStats(ctx context.Context) (ExpiryStats, error) {
	return s.expiryStats(ctx, &models.SSLCertificate{}, "ssl_certificates")
}

func (s *Service) expiryStats(ctx context.Context, model interface{}, table string) (ExpiryStats, error) {
	w := s.window()
	var stats ExpiryStats
	var err error

	if stats.Total, err = count(s.db(ctx).Model(model)); err != nil {
		return stats, fmt.Errorf("count %s: %w", table, err)
	}
	if stats.Active, err = count(s.db(ctx).Model(model).Where(table+".is_active = ?", true)); err != nil {
		return stats, fmt.Errorf("count active %s: %w", table, err)
	}
	if stats.Expired, err = count(s.db(ctx).Model(model).Scopes(expiredBefore(table, w.today))); err != nil {
		return stats, fmt.Errorf("count expired %s: %w", table, err)
	}
	if stats.ExpiringSoon, err = count(s.db(ctx).Model(model).Scopes(activeUntil(table, w.horizon))); err != nil {
		return stats, fmt.Errorf("count expiring %s: %w", table, err)
	}
	return stats, nil
}

type statusCount struct {
	Status string
	Count  int64
}

// HostingStats counts by stored status in one grouped query, then derives the
// expiry figures from dates.
func (s *Service) HostingStats(ctx context.Context) (HostingStats, error) {
	w := s.window()
	var stats HostingStats
	var rows []statusCount

	err := s.db(ctx).Model(&models.HostingService{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return stats, fmt.Errorf("count hosting by status: %w", err)
	}
	for _, r := range rows {
		stats.Total += r.Count
		switch r.Status {
		case models.HostingStatusActive:
			stats.Active = r.Count
		case models.HostingStatusSuspended:
			stats.Suspended = r.Count
		case models.HostingStatusCancelled:
			stats.Cancelled = r.Count
		}
	}

	hosting := &models.HostingService{}
	if stats.Expired, err = count(s.db(ctx).Model(hosting).Scopes(expiredBefore("hosting_services", w.today))); err != nil {
		return stats, fmt.Errorf("count expired hosting: %w", err)
	}
	if stats.ExpiringSoon, err = count(s.db(ctx).Model(hosting).Scopes(activeHostingUntil(w.horizon))); err != nil {
		return stats, fmt.Errorf("count expiring hosting: %w", err)
	}
	return stats, nil
}

type statusTotals struct {
	Status string
	Count  int64
	Amount decimal.Decimal
}

// InvoiceStats aggregates the invoices matched by f. Overdue is derived from
// pending invoices past their due date, not from the stored status.
func (s *Service) InvoiceStats(ctx context.Context, f repository.InvoiceFilter) (InvoiceStats, error) {
	var stats InvoiceStats
	var rows []statusTotals

	err := s.db(ctx).Model(&models.Invoice{}).
		Scopes(f.Scope).
		Select("invoices.payment_status AS status, COUNT(*) AS count, COALESCE(SUM(invoices.amount), 0) AS amount").
		Group("invoices.payment_status").
		Scan(&rows).Error
	if err != nil {
		return stats, fmt.Errorf("sum invoices by status: %w", err)
	}

	stats.Total.Amount = decimal.Zero
	for _, r := range rows {
		t := Totals{Count: r.Count, Amount: r.Amount.Round(2)}
		stats.Total.Count += t.Count
		stats.Total.Amount = stats.Total.Amount.Add(t.Amount)
		switch r.Status {
		case models.PaymentStatusPaid:
			stats.Paid = t
		case models.PaymentStatusPending:
			stats.Pending = t
		}
	}

	var overdue statusTotals
	err = s.db(ctx).Model(&models.Invoice{}).
		Scopes(f.Scope, overdueOn(s.window().today)).
		Select("COUNT(*) AS count, COALESCE(SUM(invoices.amount), 0) AS amount").
		Scan(&overdue).Error
	if err != nil {
		return stats, fmt.Errorf("sum overdue invoices: %w", err)
	}
	stats.Overdue = Totals{Count: overdue.Count, Amount: overdue.Amount.Round(2)}
	return stats, nil
}
