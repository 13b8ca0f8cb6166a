package transfer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/clock"
	"reseller-backend/internal/repository"
)

// Tables accepted by Export, in the order they are offered to clients.
var Tables = []string{"customers", "domains", "hosting", "ssl", "invoices"}

type table struct {
	header []string
	rows   func(ctx context.Context, store *repository.Store) ([][]string, error)
}

var tables = map[string]table{
	"customers": {
		header: []string{"id", "company_name", "contact_name", "email", "email2", "email3", "phone",
			"address", "tax_office", "tax_number", "registration_date", "notes", "created_at"},
		rows: customerRows,
	},
	"domains": {
		header: []string{"id", "customer_id", "name", "registration_date", "expiration_date", "is_active",
			"nameserver1", "nameserver2", "nameserver3", "nameserver4"},
		rows: domainRows,
	},
	"hosting": {
		header: []string{"id", "customer_id", "domain_id", "package", "status", "start_date",
			"expiration_date", "renewal_count", "notes"},
		rows: hostingRows,
	},
	"ssl": {
		header: []string{"id", "customer_id", "domain_id", "start_date", "expiration_date", "is_active"},
		rows:   sslRows,
	},
	"invoices": {
		header: []string{"id", "customer_id", "invoice_number", "description", "amount", "issue_date",
			"due_date", "payment_status", "payment_date", "payment_method", "payment_notes", "notes"},
		rows: invoiceRows,
	},
}

// Export writes name as CSV with a header row. Unknown names are a
// validation error on "table".
func (s *Service) Export(ctx context.Context, name string, w io.Writer) error {
	t, ok := tables[name]
	if !ok {
		return apperr.Field("table", "unknown table")
	}
	rows, err := t.rows(ctx, s.store)
	if err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	s.logger.WithField("table", name).WithField("rows", len(rows)).Info("table exported")
	return nil
}

func id(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func customerRows(ctx context.Context, store *repository.Store) ([][]string, error) {
	list, err := store.Customers.List(ctx, repository.CustomerFilter{})
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(list))
	for _, c := range list {
		out = append(out, []string{
			id(c.ID), c.CompanyName, c.ContactName, c.Email, c.Email2, c.Email3, c.Phone,
			c.Address, c.TaxOffice, c.TaxNumber, clock.FormatDate(c.RegistrationDate), c.Notes,
			c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

func domainRows(ctx context.Context, store *repository.Store) ([][]string, error) {
	list, err := store.Domains.List(ctx, repository.DomainFilter{})
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(list))
	for _, d := range list {
		out = append(out, []string{
			id(d.ID), id(d.CustomerID), d.Name, clock.FormatDate(d.RegistrationDate),
			clock.FormatDate(d.ExpirationDate), strconv.FormatBool(d.IsActive),
			d.Nameserver1, d.Nameserver2, d.Nameserver3, d.Nameserver4,
		})
	}
	return out, nil
}

func hostingRows(ctx context.Context, store *repository.Store) ([][]string, error) {
	list, err := store.Hosting.List(ctx, repository.HostingFilter{})
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(list))
	for _, h := range list {
		out = append(out, []string{
			id(h.ID), id(h.CustomerID), id(h.DomainID), h.Package, h.Status,
			clock.FormatDate(h.StartDate), clock.FormatDate(h.ExpirationDate),
			strconv.Itoa(h.RenewalCount), h.Notes,
		})
	}
	return out, nil
}

func sslRows(ctx context.Context, store *repository.Store) ([][]string, error) {
	list, err := store.SSL.List(ctx, repository.SSLFilter{})
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(list))
	for _, c := range list {
		out = append(out, []string{
			id(c.ID), id(c.CustomerID), id(c.DomainID), clock.FormatDate(c.StartDate),
			clock.FormatDate(c.ExpirationDate), strconv.FormatBool(c.IsActive),
		})
	}
	return out, nil
}

func invoiceRows(ctx context.Context, store *repository.Store) ([][]string, error) {
	list, err := store.Invoices.List(ctx, repository.InvoiceFilter{})
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(list))
	for _, inv := range list {
		paid := ""
		if inv.PaymentDate != nil {
			paid = clock.FormatDate(*inv.PaymentDate)
		}
		out = append(out, []string{
			id(inv.ID), id(inv.CustomerID), inv.InvoiceNumber, inv.Description,
			inv.Amount.StringFixed(2), clock.FormatDate(inv.IssueDate), clock.FormatDate(inv.DueDate),
			inv.PaymentStatus, paid, inv.PaymentMethod, inv.PaymentNotes, inv.Notes,
		})
	}
	return out, nil
}
