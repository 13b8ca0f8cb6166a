package records

import (
	"context"

	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
)

func cleanDomain(in DomainInput) (*models.Domain, error) {
	in.normalize()
	verr := checkStruct(in)
	reg := parseDate(verr, "registration_date", in.RegistrationDate)
	exp := parseDate(verr, "expiration_date", in.ExpirationDate)
	checkOrder(verr, "expiration_date", reg, exp)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &models.Domain{
		CustomerID:       in.CustomerID,
		Name:             in.Name,
		RegistrationDate: reg,
		ExpirationDate:   exp,
		IsActive:         boolOr(in.IsActive, true),
		Nameserver1:      in.Nameserver1,
		Nameserver2:      in.Nameserver2,
		Nameserver3:      in.Nameserver3,
		Nameserver4:      in.Nameserver4,
	}, nil
}

func (s *Service) CreateDomain(ctx context.Context, in DomainInput) (*models.Domain, error) {
	d, err := cleanDomain(in)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := checkCustomer(ctx, tx, d.CustomerID); err != nil {
			return err
		}
		if err := tx.Domains.Create(ctx, d); err != nil {
			return err
		}
		return s.audit(ctx, tx, EntityDomain, d.ID, models.AuditActionCreated, d)
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "create domain")
	}
	s.written(ctx, EntityDomain, d.ID, models.AuditActionCreated)
	return d, nil
}

func (s *Service) GetDomain(ctx context.Context, id uint) (*models.Domain, error) {
	d, err := s.store.Domains.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityDomain, id)
	}
	return d, nil
}

func (s *Service) ListDomains(ctx context.Context, f repository.DomainFilter) ([]models.Domain, error) {
	return s.store.Domains.List(ctx, f)
}

func (s *Service) UpdateDomain(ctx context.Context, id uint, in DomainInput) (*models.Domain, error) {
	next, err := cleanDomain(in)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Domains.GetByID(ctx, id); err != nil {
			return notFound(err, EntityDomain, id)
		}
		if err := checkCustomer(ctx, tx, next.CustomerID); err != nil {
			return err
		}
		next.ID = id
		if err := tx.Domains.Update(ctx, next); err != nil {
			return err
		}
		return s.audit(ctx, tx, EntityDomain, id, models.AuditActionUpdated, next)
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "update domain")
	}
	s.written(ctx, EntityDomain, id, models.AuditActionUpdated)
	return next, nil
}

// DeleteDomain also removes the domain's hosting service and SSL certificate.
func (s *Service) DeleteDomain(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Domains.Delete(ctx, id); err != nil {
			return notFound(err, EntityDomain, id)
		}
		return s.audit(ctx, tx, EntityDomain, id, models.AuditActionDeleted, nil)
	})
	if err != nil {
		return wrapUnlessKind(err, "delete domain")
	}
	s.written(ctx, EntityDomain, id, models.AuditActionDeleted)
	return nil
}
