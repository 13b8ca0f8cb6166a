package reporting

import (
	"context"
	"fmt"

	"reseller-backend/internal/models"
)

// ExpiringDomains lists active domains expiring within the window, soonest
// first. limit <= 0 returns all of them.
func (s *Service) ExpiringDomains(ctx context.Context, limit int) ([]models.Domain, error) {
	var out []models.Domain
	q := s.db(ctx).Preload("Customer").
		Scopes(activeUntil("domains", s.window().horizon), expiringFirst("domains"))
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list expiring domains: %w", err)
	}
	return out, nil
}

func (s *Service) ExpiredDomains(ctx context.Context) ([]models.Domain, error) {
	var out []models.Domain
	err := s.db(ctx).Preload("Customer").
		Scopes(expiredBefore("domains", s.window().today), expiringFirst("domains")).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list expired domains: %w", err)
	}
	return out, nil
}

func (s *Service) ExpiringSSLCertificates(ctx context.Context, limit int) ([]models.SSLCertificate, error) {
	var out []models.SSLCertificate
	q := s.db(ctx).Preload("Customer").Preload("Domain").
		Scopes(activeUntil("ssl_certificates", s.window().horizon), expiringFirst("ssl_certificates"))
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list expiring certificates: %w", err)
	}
	return out, nil
}

func (s *Service) ExpiredSSLCertificates(ctx context.Context) ([]models.SSLCertificate, error) {
	var out []models.SSLCertificate
	err := s.db(ctx).Preload("Customer").Preload("Domain").
		Scopes(expiredBefore("ssl_certificates", s.window().today), expiringFirst("ssl_certificates")).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list expired certificates: %w", err)
	}
	return out, nil
}

func (s *Service) ExpiringHostingServices(ctx context.Context, limit int) ([]models.HostingService, error) {
	var out []models.HostingService
	q := s.db(ctx).Preload("Customer").Preload("Domain").
		Scopes(activeHostingUntil(s.window().horizon), expiringFirst("hosting_services"))
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list expiring hosting: %w", err)
	}
	return out, nil
}

// ExpiredHostingServices goes by date alone; no stored status marks a
// hosting service as expired.
func (s *Service) ExpiredHostingServices(ctx context.Context) ([]models.HostingService, error) {
	var out []models.HostingService
	err := s.db(ctx).Preload("Customer").Preload("Domain").
		Scopes(expiredBefore("hosting_services", s.window().today), expiringFirst("hosting_services")).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list expired hosting: %w", err)
	}
	return out, nil
}

// PendingInvoices lists unpaid invoices by due date, earliest first.
func (s *Service) PendingInvoices(ctx context.Context, limit int) ([]models.Invoice, error) {
	var out []models.Invoice
	q := s.db(ctx).Preload("Customer").
		Where("payment_status = ?", models.PaymentStatusPending).
		Order("due_date ASC").Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list pending invoices: %w", err)
	}
	return out, nil
}
