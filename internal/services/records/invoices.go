package records

import (
	"context"
	"errors"

	"gorm.io/datatypes"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
)

const msgDuplicateInvoice = "invoice with this invoice number already exists"

func cleanInvoice(in InvoiceInput) (*models.Invoice, error) {
	in.normalize()
	verr := checkStruct(in)
	amount := parseAmount(verr, string(in.Amount))
	issue := parseDate(verr, "issue_date", in.IssueDate)
	due := parseDate(verr, "due_date", in.DueDate)

	var paid *datatypes.Date
	if in.PaymentDate != "" {
		d := parseDate(verr, "payment_date", in.PaymentDate)
		paid = &d
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	status := in.PaymentStatus
	if status == "" {
		status = models.PaymentStatusPending
	}
	return &models.Invoice{
		CustomerID:    in.CustomerID,
		InvoiceNumber: in.InvoiceNumber,
		Description:   in.Description,
		Amount:        amount,
		IssueDate:     issue,
		DueDate:       due,
		PaymentStatus: status,
		PaymentDate:   paid,
		PaymentMethod: in.PaymentMethod,
		PaymentNotes:  in.PaymentNotes,
		Notes:         in.Notes,
	}, nil
}

// checkInvoiceNumber runs in the write transaction so the check and the insert
// see the same snapshot.
func checkInvoiceNumber(ctx context.Context, tx *repository.Store, number string, exceptID uint) error {
	taken, err := tx.Invoices.NumberTaken(ctx, number, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Field("invoice_number", msgDuplicateInvoice)
	}
	return nil
}

// duplicateNumber catches the race the pre-check cannot: a concurrent insert
// that reaches the unique index first.
func duplicateNumber(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperr.Field("invoice_number", msgDuplicateInvoice)
	}
	return err
}

func (s *Service) CreateInvoice(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	inv, err := cleanInvoice(in)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := checkCustomer(ctx, tx, inv.CustomerID); err != nil {
			return err
		}
		if err := checkInvoiceNumber(ctx, tx, inv.InvoiceNumber, 0); err != nil {
			return err
		}
		if err := tx.Invoices.Create(ctx, inv); err != nil {
			return duplicateNumber(err)
		}
		return s.audit(ctx, tx, EntityInvoice, inv.ID, models.AuditActionCreated, inv)
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "create invoice")
	}
	s.written(ctx, EntityInvoice, inv.ID, models.AuditActionCreated)
	return inv, nil
}

func (s *Service) GetInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	inv, err := s.store.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityInvoice, id)
	}
	return inv, nil
}

func (s *Service) ListInvoices(ctx context.Context, f repository.InvoiceFilter) ([]models.Invoice, error) {
	return s.store.Invoices.List(ctx, f)
}

func (s *Service) UpdateInvoice(ctx context.Context, id uint, in InvoiceInput) (*models.Invoice, error) {
	next, err := cleanInvoice(in)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Invoices.GetByID(ctx, id); err != nil {
			return notFound(err, EntityInvoice, id)
		}
		if err := checkCustomer(ctx, tx, next.CustomerID); err != nil {
			return err
		}
		if err := checkInvoiceNumber(ctx, tx, next.InvoiceNumber, id); err != nil {
			return err
		}
		next.ID = id
		if err := tx.Invoices.Update(ctx, next); err != nil {
			return duplicateNumber(err)
		}
		return s.audit(ctx, tx, EntityInvoice, id, models.AuditActionUpdated, next)
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "update invoice")
	}
	s.written(ctx, EntityInvoice, id, models.AuditActionUpdated)
	return next, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Invoices.Delete(ctx, id); err != nil {
			return notFound(err, EntityInvoice, id)
		}
		return s.audit(ctx, tx, EntityInvoice, id, models.AuditActionDeleted, nil)
	})
	if err != nil {
		return wrapUnlessKind(err, "delete invoice")
	}
	s.written(ctx, EntityInvoice, id, models.AuditActionDeleted)
	return nil
}
