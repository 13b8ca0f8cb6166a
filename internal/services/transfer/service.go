// Package transfer moves records in and out as CSV: a full export per table
// and a bulk invoice import.
package transfer

import (
	"context"

	log "github.com/sirupsen/logrus"

	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
	"reseller-backend/internal/services/records"
)

// InvoiceCreator is the write path every imported row goes through.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, in records.InvoiceInput) (*models.Invoice, error)
}

type Service struct {
	store    *repository.Store
	invoices InvoiceCreator
	logger   *log.Entry
}

func NewService(store *repository.Store, invoices InvoiceCreator) *Service {
	return &Service{
		store:    store,
		invoices: invoices,
		logger:   log.WithField("component", "transfer"),
	}
}
