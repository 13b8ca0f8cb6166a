package reporting

import (
	"context"
	"errors"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
)

// CustomerDetail gathers everything held for one customer.
type CustomerDetail struct {
	Customer        *models.Customer        `json:"customer"`
	HostingServices []models.HostingService `json:"hosting_services"`
	Domains         []models.Domain         `json:"domains"`
	SSLCertificates []models.SSLCertificate `json:"ssl_certificates"`
	Invoices        []models.Invoice        `json:"invoices"`
	InvoiceStats    InvoiceStats            `json:"invoice_stats"`
}

// CustomerDetail loads a customer's records. Certificates are grouped by the
// customer owning their domain.
func (s *Service) CustomerDetail(ctx context.Context, id uint) (*CustomerDetail, error) {
	c, err := s.store.Customers.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("customer", id)
	}
	if err != nil {
		return nil, err
	}

	d := &CustomerDetail{Customer: c}
	if d.HostingServices, err = s.store.Hosting.List(ctx, repository.HostingFilter{CustomerID: id}); err != nil {
		return nil, err
	}
	if d.Domains, err = s.store.Domains.List(ctx, repository.DomainFilter{CustomerID: id}); err != nil {
		return nil, err
	}
	if d.SSLCertificates, err = s.store.SSL.List(ctx, repository.SSLFilter{CustomerID: id}); err != nil {
		return nil, err
	}
	invoices := repository.InvoiceFilter{CustomerID: id}
	if d.Invoices, err = s.store.Invoices.List(ctx, invoices); err != nil {
		return nil, err
	}
	if d.InvoiceStats, err = s.InvoiceStats(ctx, invoices); err != nil {
		return nil, err
	}
	return d, nil
}
