// Package reporting computes the read-only views over the business records:
// expiry windows, invoice totals, the dashboard and per-customer summaries.
package reporting

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"reseller-backend/internal/clock"
	"reseller-backend/internal/repository"
)

const (
	DefaultWindowDays = 30
	dashboardListSize = 5
	newCustomerDays   = 30
)

type Service struct {
	store      *repository.Store
	clock      clock.Clock
	windowDays int
	logger     *log.Entry
}

type Option func(s *Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithWindowDays sets the "expiring soon" horizon. Non-positive values are
// ignored.
func WithWindowDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

func WithLogger(l *log.Entry) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func NewService(store *repository.Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		clock:      clock.System{},
		windowDays: DefaultWindowDays,
		logger:     log.WithField("component", "reporting"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// window is the pair of dates every expiry rule is measured against.
type window struct {
	today   time.Time
	horizon time.Time
}

func (s *Service) window() window {
	today := clock.Today(s.clock)
	return window{today: today, horizon: clock.AddDays(today, s.windowDays)}
}

func (s *Service) db(ctx context.Context) *gorm.DB {
	return s.store.DB().WithContext(ctx)
}

func count(q *gorm.DB) (int64, error) {
	var n int64
	err := q.Count(&n).Error
	return n, err
}
