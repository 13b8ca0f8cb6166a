package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/clock"
)

const (
	RenewalHosting = "hosting"
	RenewalDomain  = "domain"
	RenewalSSL     = "ssl"
	RenewalAll     = "all"
)

// RenewalQuery is the raw query string form of a renewals request.
type RenewalQuery struct {
	Type  string
	Start string
	End   string
}

// RenewalItem is one hosting service, domain or certificate due in the range.
type RenewalItem struct {
	Type           string         `json:"type"`
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	CustomerID     uint           `json:"customer_id"`
	CompanyName    string         `json:"company_name"`
	ExpirationDate datatypes.Date `json:"expiration_date"`
}

type renewalSource struct {
	kind  string
	query string
}

var renewalSources = []renewalSource{
	{RenewalHosting, `SELECT h.id AS id, d.name || ' (' || h.package || ')' AS name, h.customer_id AS customer_id,
		c.company_name AS company_name, h.expiration_date AS expiration_date
		FROM hosting_services h
		JOIN domains d ON d.id = h.domain_id
		JOIN customers c ON c.id = h.customer_id
		WHERE h.expiration_date BETWEEN ? AND ?`},
	{RenewalDomain, `SELECT d.id AS id, d.name AS name, d.customer_id AS customer_id,
		c.company_name AS company_name, d.expiration_date AS expiration_date
		FROM domains d
		JOIN customers c ON c.id = d.customer_id
		WHERE d.expiration_date BETWEEN ? AND ?`},
	{RenewalSSL, `SELECT s.id AS id, d.name AS name, d.customer_id AS customer_id,
		c.company_name AS company_name, s.expiration_date AS expiration_date
		FROM ssl_certificates s
		JOIN domains d ON d.id = s.domain_id
		JOIN customers c ON c.id = d.customer_id
		WHERE s.expiration_date BETWEEN ? AND ?`},
}

func parseRenewalQuery(q RenewalQuery) (kind string, start, end time.Time, err error) {
	verr := apperr.NewValidation()
	kind = strings.ToLower(strings.TrimSpace(q.Type))
	if kind == "" {
		kind = RenewalAll
	}
	switch kind {
	case RenewalHosting, RenewalDomain, RenewalSSL, RenewalAll:
	default:
		verr.Add("type", "select one of: hosting, domain, ssl, all")
	}

	s, serr := clock.ParseDate(strings.TrimSpace(q.Start))
	if serr != nil {
		verr.Add("start", "enter a valid date (YYYY-MM-DD)")
	}
	e, eerr := clock.ParseDate(strings.TrimSpace(q.End))
	if eerr != nil {
		verr.Add("end", "enter a valid date (YYYY-MM-DD)")
	}
	start, end = time.Time(s), time.Time(e)
	if serr == nil && eerr == nil && end.Before(start) {
		verr.Add("end", "must not be before the start date")
	}
	return kind, start, end, verr.OrNil()
}

// Renewals lists everything expiring in [start, end], both ends inclusive,
// ordered by expiration date.
func (s *Service) Renewals(ctx context.Context, q RenewalQuery) ([]RenewalItem, error) {
	kind, start, end, err := parseRenewalQuery(q)
	if err != nil {
		return nil, err
	}

	items := []RenewalItem{}
	for _, src := range renewalSources {
		if kind != RenewalAll && kind != src.kind {
			continue
		}
		var rows []RenewalItem
		if err := s.db(ctx).Raw(src.query, start, end).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("list %s renewals: %w", src.kind, err)
		}
		for i := range rows {
			rows[i].Type = src.kind
		}
		items = append(items, rows...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := time.Time(items[i].ExpirationDate), time.Time(items[j].ExpirationDate)
		if !a.Equal(b) {
			return a.Before(b)
		}
		return items[i].Type < items[j].Type
	})
	return items, nil
}
