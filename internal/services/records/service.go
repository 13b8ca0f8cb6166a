// Package records implements create, read, update and delete for the five
// business records together with the form rules that guard every write.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/clock"
	"reseller-backend/internal/metrics"
	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
	"reseller-backend/internal/requestctx"
)

// Entity names used in errors, audit entries and metrics.
const (
	EntityCustomer = "customer"
	EntityDomain   = "domain"
	EntityHosting  = "hosting_service"
	EntitySSL      = "ssl_certificate"
	EntityInvoice  = "invoice"
)

type Service struct {
	store   *repository.Store
	clock   clock.Clock
	logger  *log.Entry
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

func WithLogger(l *log.Entry) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(store *repository.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		clock:  clock.System{},
		logger: log.WithField("component", "records"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// audit writes an entry inside the caller's transaction.
func (s *Service) audit(ctx context.Context, tx *repository.Store, entity string, id uint, action string, snapshot interface{}) error {
	var changes datatypes.JSON
	if snapshot != nil {
		b, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("encode audit snapshot: %w", err)
		}
		changes = datatypes.JSON(b)
	}
	return tx.Audit.Record(ctx, &models.AuditEntry{
		Entity:      entity,
		EntityID:    id,
		Action:      action,
		PerformedBy: requestctx.Actor(ctx),
		Changes:     changes,
		CreatedAt:   s.clock.Now(),
	})
}

// written logs and counts a committed write.
func (s *Service) written(ctx context.Context, entity string, id uint, action string) {
	s.logger.WithFields(log.Fields{
		"entity":     entity,
		"id":         id,
		"action":     action,
		"actor":      requestctx.Actor(ctx),
		"request_id": requestctx.RequestID(ctx),
	}).Info("record written")
	s.metrics.RecordWrite(entity, action)
}

// notFound converts the repository sentinel into the caller-facing error.
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

// checkCustomer validates a customer reference as a form field.
func checkCustomer(ctx context.Context, tx *repository.Store, id uint) error {
	ok, err := tx.Customers.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Field("customer_id", msgInvalidChoice)
	}
	return nil
}

// AuditLog lists recorded writes, newest first.
func (s *Service) AuditLog(ctx context.Context, f repository.AuditFilter) ([]models.AuditEntry, error) {
	return s.store.Audit.List(ctx, f)
}
