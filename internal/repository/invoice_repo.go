package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reseller-backend/internal/models"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// InvoiceFilter narrows List and the aggregate queries. Query matches the
// invoice number or the customer's company name.
type InvoiceFilter struct {
	CustomerID uint
	Status     string
	Query      string
}

// Scope applies the filter to any invoices query.
func (f InvoiceFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.CustomerID != 0 {
		db = db.Where("invoices.customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		db = db.Where("invoices.payment_status = ?", f.Status)
	}
	if f.Query != "" {
		pattern := like(strings.ToLower(f.Query))
		db = db.Joins("JOIN customers ON customers.id = invoices.customer_id").
			Where("LOWER(invoices.invoice_number) LIKE ? OR LOWER(customers.company_name) LIKE ?", pattern, pattern)
	}
	return db
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(inv).Error)
}

// GetByID fetch a single invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.WithContext(ctx).Preload("Customer").First(&inv, id).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

// NumberTaken reports whether invoiceNumber belongs to an invoice other than
// exceptID.
func (r *InvoiceRepository) NumberTaken(ctx context.Context, invoiceNumber string, exceptID uint) (bool, error) {
	return exists(ctx, r.db, &models.Invoice{}, "invoice_number = ? AND id <> ?", invoiceNumber, exceptID)
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(inv).Error)
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Invoice{}, id)
}

// List orders by issue date, newest first.
func (r *InvoiceRepository) List(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Scopes(f.Scope).
		Preload("Customer").
		Order("invoices.issue_date DESC").Order("invoices.id DESC").
		Find(&invoices).Error
	return invoices, translate(err)
}
