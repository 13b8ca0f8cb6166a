package records

import (
	"context"
	"fmt"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/clock"
	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
)

// cleanCustomer validates in. creating controls the registration date rule:
// a new customer defaults to today, an edit must supply the date.
func (s *Service) cleanCustomer(in CustomerInput, creating bool) (*models.Customer, error) {
	in.normalize()
	verr := checkStruct(in)

	regDate := parseDate(verr, "registration_date", in.RegistrationDate)
	if in.RegistrationDate == "" {
		if creating {
			regDate = clock.Date(s.clock.Now())
		} else {
			verr.Add("registration_date", msgRequired)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &models.Customer{
		CompanyName:      in.CompanyName,
		ContactName:      in.ContactName,
		Email:            in.Email,
		Email2:           in.Email2,
		Email3:           in.Email3,
		Phone:            in.Phone,
		Address:          in.Address,
		TaxOffice:        in.TaxOffice,
		TaxNumber:        in.TaxNumber,
		RegistrationDate: regDate,
		Notes:            in.Notes,
	}, nil
}

func (s *Service) CreateCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	c, err := s.cleanCustomer(in, true)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = s.clock.Now()

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Customers.Create(ctx, c); err != nil {
			return err
		}
		return s.audit(ctx, tx, EntityCustomer, c.ID, models.AuditActionCreated, c)
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "create customer")
	}
	s.written(ctx, EntityCustomer, c.ID, models.AuditActionCreated)
	return c, nil
}

func (s *Service) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	c, err := s.store.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityCustomer, id)
	}
	return c, nil
}

func (s *Service) ListCustomers(ctx context.Context, f repository.CustomerFilter) ([]models.Customer, error) {
	return s.store.Customers.List(ctx, f)
}

// UpdateCustomer replaces every editable field; id and created_at are kept.
func (s *Service) UpdateCustomer(ctx context.Context, id uint, in CustomerInput) (*models.Customer, error) {
	next, err := s.cleanCustomer(in, false)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.Customers.GetByID(ctx, id)
		if err != nil {
			return notFound(err, EntityCustomer, id)
		}
		next.ID = current.ID
		next.CreatedAt = current.CreatedAt
		if err := tx.Customers.Update(ctx, next); err != nil {
			return err
		}
		return s.audit(ctx, tx, EntityCustomer, id, models.AuditActionUpdated, next)
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "update customer")
	}
	s.written(ctx, EntityCustomer, id, models.AuditActionUpdated)
	return next, nil
}

// DeleteCustomer removes the customer and, through the foreign keys, all of
// its domains, hosting services, certificates and invoices.
func (s *Service) DeleteCustomer(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Customers.Delete(ctx, id); err != nil {
			return notFound(err, EntityCustomer, id)
		}
		return s.audit(ctx, tx, EntityCustomer, id, models.AuditActionDeleted, nil)
	})
	if err != nil {
		return wrapUnlessKind(err, "delete customer")
	}
	s.written(ctx, EntityCustomer, id, models.AuditActionDeleted)
	return nil
}

// wrapUnlessKind adds op context to unexpected errors and leaves the
// caller-facing kinds as they are.
func wrapUnlessKind(err error, op string) error {
	if apperr.IsValidation(err) || apperr.IsNotFound(err) || apperr.IsIntegrity(err) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
