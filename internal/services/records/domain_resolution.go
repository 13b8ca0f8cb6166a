package records

import (
	"context"

	"gorm.io/datatypes"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
)

// domainRef is the domain half of a hosting or SSL form.
type domainRef struct {
	CustomerID uint
	DomainID   uint
	DomainName string
	Start      datatypes.Date
	Expiration datatypes.Date
}

// resolvedDomain is the outcome of resolveDomain. Created is set when the
// domain row was inserted by this operation.
type resolvedDomain struct {
	ID      uint
	Created bool
}

// requireDomainChoice is the store-free half of the rule: one of the two
// fields must be present.
func requireDomainChoice(verr *apperr.ValidationError, domainID uint, domainName string) {
	if domainID == 0 && domainName == "" {
		verr.Add("domain_id", msgDomainRequired)
	}
}

// resolveDomain must run inside the transaction that saves the target record.
// A free-text name creates a domain owned by the same customer with the
// target's dates and placeholder nameservers; otherwise the selected domain
// has to exist.
func (s *Service) resolveDomain(ctx context.Context, tx *repository.Store, ref domainRef) (resolvedDomain, error) {
	if ref.DomainName != "" {
		d := &models.Domain{
			CustomerID:       ref.CustomerID,
			Name:             ref.DomainName,
			RegistrationDate: ref.Start,
			ExpirationDate:   ref.Expiration,
			IsActive:         true,
			Nameserver1:      models.DefaultNameserver1,
			Nameserver2:      models.DefaultNameserver2,
		}
		if err := tx.Domains.Create(ctx, d); err != nil {
			return resolvedDomain{}, err
		}
		if err := s.audit(ctx, tx, EntityDomain, d.ID, models.AuditActionCreated, d); err != nil {
			return resolvedDomain{}, err
		}
		return resolvedDomain{ID: d.ID, Created: true}, nil
	}

	ok, err := tx.Domains.Exists(ctx, ref.DomainID)
	if err != nil {
		return resolvedDomain{}, err
	}
	if !ok {
		return resolvedDomain{}, apperr.Field("domain_id", msgInvalidChoice)
	}
	return resolvedDomain{ID: ref.DomainID}, nil
}

// afterDomain classifies a failure that happened once the domain was
// resolved. Rule violations stay validation errors; anything else that
// follows a domain insert is reported as a rolled-back two-step write.
func (r resolvedDomain) afterDomain(op string, err error) error {
	if err == nil || !r.Created || apperr.IsValidation(err) {
		return err
	}
	return &apperr.IntegrityError{Op: op, Err: err}
}
