package records

import (
	"context"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
)

func cleanSSL(in SSLInput) (*models.SSLCertificate, domainRef, error) {
	in.normalize()
	verr := checkStruct(in)
	requireDomainChoice(verr, in.DomainID, in.DomainName)
	start := parseDate(verr, "start_date", in.StartDate)
	exp := parseDate(verr, "expiration_date", in.ExpirationDate)
	checkOrder(verr, "expiration_date", start, exp)
	if err := verr.OrNil(); err != nil {
		return nil, domainRef{}, err
	}

	c := &models.SSLCertificate{
		CustomerID:     in.CustomerID,
		StartDate:      start,
		ExpirationDate: exp,
		IsActive:       boolOr(in.IsActive, true),
	}
	ref := domainRef{
		CustomerID: in.CustomerID,
		DomainID:   in.DomainID,
		DomainName: in.DomainName,
		Start:      start,
		Expiration: exp,
	}
	return c, ref, nil
}

func (s *Service) attachSSLDomain(ctx context.Context, tx *repository.Store, c *models.SSLCertificate, ref domainRef, exceptID uint) (resolvedDomain, error) {
	if err := checkCustomer(ctx, tx, c.CustomerID); err != nil {
		return resolvedDomain{}, err
	}
	dom, err := s.resolveDomain(ctx, tx, ref)
	if err != nil {
		return dom, err
	}
	if !dom.Created {
		taken, err := tx.SSL.DomainTaken(ctx, dom.ID, exceptID)
		if err != nil {
			return dom, err
		}
		if taken {
			return dom, apperr.Field("domain_id", "SSL certificate with this domain already exists")
		}
	}
	c.DomainID = dom.ID
	return dom, nil
}

// CreateSSLCertificate follows the same two-step rule as hosting services.
func (s *Service) CreateSSLCertificate(ctx context.Context, in SSLInput) (*models.SSLCertificate, error) {
	c, ref, err := cleanSSL(in)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		dom, err := s.attachSSLDomain(ctx, tx, c, ref, 0)
		if err != nil {
			return err
		}
		if err := tx.SSL.Create(ctx, c); err != nil {
			return dom.afterDomain("create SSL certificate", err)
		}
		return dom.afterDomain("create SSL certificate",
			s.audit(ctx, tx, EntitySSL, c.ID, models.AuditActionCreated, c))
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "create SSL certificate")
	}
	s.written(ctx, EntitySSL, c.ID, models.AuditActionCreated)
	return c, nil
}

func (s *Service) GetSSLCertificate(ctx context.Context, id uint) (*models.SSLCertificate, error) {
	c, err := s.store.SSL.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntitySSL, id)
	}
	return c, nil
}

func (s *Service) ListSSLCertificates(ctx context.Context, f repository.SSLFilter) ([]models.SSLCertificate, error) {
	return s.store.SSL.List(ctx, f)
}

func (s *Service) UpdateSSLCertificate(ctx context.Context, id uint, in SSLInput) (*models.SSLCertificate, error) {
	next, ref, err := cleanSSL(in)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.SSL.GetByID(ctx, id); err != nil {
			return notFound(err, EntitySSL, id)
		}
		dom, err := s.attachSSLDomain(ctx, tx, next, ref, id)
		if err != nil {
			return err
		}
		next.ID = id
		if err := tx.SSL.Update(ctx, next); err != nil {
			return dom.afterDomain("update SSL certificate", err)
		}
		return dom.afterDomain("update SSL certificate",
			s.audit(ctx, tx, EntitySSL, id, models.AuditActionUpdated, next))
	})
	if err != nil {
		return nil, wrapUnlessKind(err, "update SSL certificate")
	}
	s.written(ctx, EntitySSL, id, models.AuditActionUpdated)
	return next, nil
}

func (s *Service) DeleteSSLCertificate(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.SSL.Delete(ctx, id); err != nil {
			return notFound(err, EntitySSL, id)
		}
		return s.audit(ctx, tx, EntitySSL, id, models.AuditActionDeleted, nil)
	})
	if err != nil {
		return wrapUnlessKind(err, "delete SSL certificate")
	}
	s.written(ctx, EntitySSL, id, models.AuditActionDeleted)
	return nil
}
