package transfer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/services/records"
)

// Column order of an invoice import file. The first row is a header and is
// skipped.
var ImportColumns = []string{
	"invoice_number", "customer_id", "description", "amount", "issue_date", "due_date", "payment_status",
}

// RowError explains why one data row was not imported. Row counts data rows
// from 1, after the header.
type RowError struct {
	Row    int               `json:"row"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type ImportResult struct {
	Inserted int        `json:"inserted"`
	Errors   []RowError `json:"errors"`
	// StoppedAt is the data row at which a storage failure ended the import.
	StoppedAt int `json:"stopped_at_row,omitempty"`
}

// ImportInvoices creates one invoice per data row. Each row commits on its
// own: a bad row is reported and skipped. A storage failure stops the import
// and returns the partial result together with the error, since the rows
// before it are already written.
func (s *Service) ImportInvoices(ctx context.Context, r io.Reader) (*ImportResult, error) {
	br := bufio.NewReader(r)
	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.Comma = sniffComma(br)

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.Field("file", "file is empty")
		}
		return nil, apperr.Field("file", "cannot read CSV header")
	}

	result := &ImportResult{Errors: []RowError{}}
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Error: err.Error()})
			continue
		}
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}

		in, err := invoiceFromRecord(record)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Error: err.Error()})
			continue
		}
		if _, err := s.invoices.CreateInvoice(ctx, in); err != nil {
			var verr *apperr.ValidationError
			if !errors.As(err, &verr) {
				result.StoppedAt = row
				s.logger.WithFields(log.Fields{
					"inserted": result.Inserted,
					"row":      row,
				}).WithError(err).Error("invoice import stopped")
				return result, fmt.Errorf("import row %d: %w", row, err)
			}
			result.Errors = append(result.Errors, RowError{Row: row, Error: "invalid row", Fields: verr.Fields})
			continue
		}
		result.Inserted++
	}

	s.logger.WithFields(log.Fields{
		"inserted": result.Inserted,
		"rejected": len(result.Errors),
	}).Info("invoice import finished")
	return result, nil
}

// sniffComma picks tab when the first line has tabs and no commas.
func sniffComma(br *bufio.Reader) rune {
	sample, _ := br.Peek(1024)
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		sample = sample[:i]
	}
	if !bytes.ContainsRune(sample, ',') && bytes.ContainsRune(sample, '\t') {
		return '\t'
	}
	return ','
}

func invoiceFromRecord(record []string) (records.InvoiceInput, error) {
	if len(record) < len(ImportColumns) {
		return records.InvoiceInput{}, fmt.Errorf("expected %d columns, got %d", len(ImportColumns), len(record))
	}
	field := func(i int) string {
		return strings.TrimSpace(record[i])
	}

	customerID, err := strconv.ParseUint(field(1), 10, 64)
	if err != nil {
		return records.InvoiceInput{}, fmt.Errorf("invalid customer_id %q", field(1))
	}
	return records.InvoiceInput{
		CustomerID:    uint(customerID),
		InvoiceNumber: field(0),
		Description:   field(2),
		Amount:        records.Amount(field(3)),
		IssueDate:     isoDate(field(4)),
		DueDate:       isoDate(field(5)),
		PaymentStatus: strings.ToLower(field(6)),
	}, nil
}

// isoDate rewrites DD-MM-YYYY into YYYY-MM-DD and leaves anything else for
// the form rules to judge.
func isoDate(s string) string {
	if t, err := time.Parse("02-01-2006", s); err == nil {
		return t.Format(time.DateOnly)
	}
	return s
}
