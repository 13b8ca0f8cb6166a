package records

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
)

const maxRenewYears = 10

func cleanHosting(in HostingInput) (*models.HostingService, domainRef, error) {
	in.normalize()
	verr := checkStruct(in)
	requireDomainChoice(verr, in.DomainID, in.DomainName)
	start := parseDate(verr, "start_date", in.StartDate)
	exp := parseDate(verr, "expiration_date", in.ExpirationDate)
	checkOrder(verr, "expiration_date", start, exp)
	if err := verr.OrNil(); err != nil {
		return nil, domainRef{}, err
	}

	h := &models.HostingService{
		CustomerID:     in.CustomerID,
		Package:        in.Package,
		Status:         in.Status,
		StartDate:      start,
		ExpirationDate: exp,
		Notes:          in.Notes,
	}
	ref := domainRef{
		CustomerID: in.CustomerID,
		DomainID:   in.DomainID,
		DomainName: in.DomainName,
		Start:      start,
		Expiration: exp,
	}
	return h, ref, nil
}

// attachHostingDomain resolves the domain and enforces one hosting service
// per domain. exceptID is the record being edited, zero on create.
func (s *Service) attachHostingDomain(ctx context.Context, tx *repository.Store, h *models.HostingService, ref domainRef, exceptID uint) (resolvedDomain, error) {
	if err := checkCustomer(ctx, tx, h.CustomerID); err != nil {
		return resolvedDomain{}, err
	}
	dom, err := s.resolveDomain(ctx, tx, ref)
	if err != nil {
		return dom, err
	}
	if !dom.Created {
		taken, err := tx.Hosting.DomainTaken(ctx, dom.ID, exceptID)
		if err != nil {
			return dom, err
		}
		if taken {
			return dom, apperr.Field("domain_id", "hosting service with this domain already exists")
		}
	}
	h.DomainID = dom.ID
	return dom, nil
}

// CreateHostingService validates the form, then in one transaction resolves
// or creates the domain and saves the hosting service. Either both rows are
// written or neither is.
func (s *Service) CreateHostingService(ctx context.Context, in HostingInput) (*models.HostingService, error) {
	h, ref, err := cleanHosting(in)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		dom, err := s.attachHostingDomain(ctx, tx, h, ref, 0)
		if err != nil {
			return err
		}
		if err := tx.Hosting.Create(ctx, h); err != nil {
			return dom.afterDomain("create hosting service", err)
		}
		return dom.afterDomain("create hosting service",
			s.audit(ctx, tx, EntityHosting, h.ID, models.AuditActionCreated, h))
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "create hosting service")
	}
	s.written(ctx, EntityHosting, h.ID, models.AuditActionCreated)
	return h, nil
}

func (s *Service) GetHostingService(ctx context.Context, id uint) (*models.HostingService, error) {
	h, err := s.store.Hosting.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityHosting, id)
	}
	return h, nil
}

func (s *Service) ListHostingServices(ctx context.Context, f repository.HostingFilter) ([]models.HostingService, error) {
	return s.store.Hosting.List(ctx, f)
}

// UpdateHostingService replaces the editable fields. The renewal count is not
// part of the form and is carried over.
func (s *Service) UpdateHostingService(ctx context.Context, id uint, in HostingInput) (*models.HostingService, error) {
	next, ref, err := cleanHosting(in)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.Hosting.GetByID(ctx, id)
		if err != nil {
			return notFound(err, EntityHosting, id)
		}
		dom, err := s.attachHostingDomain(ctx, tx, next, ref, id)
		if err != nil {
			return err
		}
		next.ID = id
		next.RenewalCount = current.RenewalCount
		if err := tx.Hosting.Update(ctx, next); err != nil {
			return dom.afterDomain("update hosting service", err)
		}
		return dom.afterDomain("update hosting service",
			s.audit(ctx, tx, EntityHosting, id, models.AuditActionUpdated, next))
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "update hosting service")
	}
	s.written(ctx, EntityHosting, id, models.AuditActionUpdated)
	return next, nil
}

// RenewHostingService pushes the expiration date out by whole years and bumps
// the renewal count.
func (s *Service) RenewHostingService(ctx context.Context, id uint, years int) (*models.HostingService, error) {
	if years < 1 || years > maxRenewYears {
		return nil, apperr.Field("years", "ensure this value is between 1 and 10")
	}

	var h *models.HostingService
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		h, err = tx.Hosting.GetByID(ctx, id)
		if err != nil {
			return notFound(err, EntityHosting, id)
		}
		h.ExpirationDate = datatypes.Date(time.Time(h.ExpirationDate).AddDate(years, 0, 0))
		h.RenewalCount++
		if err := tx.Hosting.Update(ctx, h); err != nil {
			return err
		}
		return s.audit(ctx, tx, EntityHosting, id, models.AuditActionUpdated, h)
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "renew hosting service")
	}
	s.written(ctx, EntityHosting, id, models.AuditActionUpdated)
	return h, nil
}

func (s *Service) DeleteHostingService(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Hosting.Delete(ctx, id); err != nil {
			return notFound(err, EntityHosting, id)
		}
		return s.audit(ctx, tx, EntityHosting, id, models.AuditActionDeleted, nil)
	})
	if err != nil {
		return wrapUnlessKind(err, "delete hosting service")
	}
	s.written(ctx, EntityHosting, id, models.AuditActionDeleted)
	return nil
}
