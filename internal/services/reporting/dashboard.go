package reporting

import (
	"context"
	"fmt"

	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
)

type CustomerStats struct {
	Total int64 `json:"total"`
	New   int64 `json:"new"`
}

type ExpiringServices struct {
	Hosting []models.HostingService `json:"hosting"`
	Domains []models.Domain         `json:"domains"`
	SSL     []models.SSLCertificate `json:"ssl"`
}

// Dashboard is the landing page snapshot.
type Dashboard struct {
	Customers       CustomerStats     `json:"customer_stats"`
	Hosting         HostingStats      `json:"hosting_stats"`
	Domains         ExpiryStats       `json:"domain_stats"`
	SSL             ExpiryStats       `json:"ssl_stats"`
	Invoices        InvoiceStats      `json:"invoice_stats"`
	RecentCustomers []models.Customer `json:"recent_customers"`
	Expiring        ExpiringServices  `json:"expiring_services"`
	PendingInvoices []models.Invoice  `json:"pending_invoices"`
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	var err error

	if d.Customers, err = s.customerStats(ctx); err != nil {
		return nil, err
	}
	if d.Hosting, err = s.HostingStats(ctx); err != nil {
		return nil, err
	}
	if d.Domains, err = s.DomainStats(ctx); err != nil {
		return nil, err
	}
	if d.SSL, err = s.SSLStats(ctx); err != nil {
		return nil, err
	}
	if d.Invoices, err = s.InvoiceStats(ctx, repository.InvoiceFilter{}); err != nil {
		return nil, err
	}
	if d.RecentCustomers, err = s.store.Customers.Recent(ctx, dashboardListSize); err != nil {
		return nil, fmt.Errorf("list recent customers: %w", err)
	}
	if d.Expiring.Hosting, err = s.ExpiringHostingServices(ctx, dashboardListSize); err != nil {
		return nil, err
	}
	if d.Expiring.Domains, err = s.ExpiringDomains(ctx, dashboardListSize); err != nil {
		return nil, err
	}
	if d.Expiring.SSL, err = s.ExpiringSSLCertificates(ctx, dashboardListSize); err != nil {
		return nil, err
	}
	if d.PendingInvoices, err = s.PendingInvoices(ctx, dashboardListSize); err != nil {
		return nil, err
	}
	return &d, nil
}

// customerStats counts "new" customers by instant, not by calendar day.
func (s *Service) customerStats(ctx context.Context) (CustomerStats, error) {
	var stats CustomerStats
	var err error
	since := s.clock.Now().AddDate(0, 0, -newCustomerDays)

	if stats.Total, err = count(s.db(ctx).Model(&models.Customer{})); err != nil {
		return stats, fmt.Errorf("count customers: %w", err)
	}
	if stats.New, err = count(s.db(ctx).Model(&models.Customer{}).Where("created_at >= ?", since)); err != nil {
		return stats, fmt.Errorf("count new customers: %w", err)
	}
	return stats, nil
}
