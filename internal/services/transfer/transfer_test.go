package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/clock"
	"reseller-backend/internal/models"
	"reseller-backend/internal/repository"
	"reseller-backend/internal/services/records"
	"reseller-backend/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *records.Service, *repository.Store) {
	t.Helper()
	store := repository.NewStore(testutil.NewDB(t))
	rec := records.NewService(store, records.WithClock(clock.At(2024, time.June, 1)))
	return NewService(store, rec), rec, store
}

func seedCustomer(t *testing.T, rec *records.Service) *models.Customer {
	t.Helper()
	c, err := rec.CreateCustomer(context.Background(), records.CustomerInput{
		CompanyName: "Acme, Ltd",
		ContactName: "Jo",
		Email:       "jo@acme.test",
		Phone:       "555",
	})
	require.NoError(t, err)
	return c
}

func TestImportInvoices(t *testing.T) {
	svc, rec, store := newTestService(t)
	ctx := context.Background()
	c := seedCustomer(t, rec)
	id := itoa(c.ID)

	file := strings.Join([]string{
		"invoice_number,customer_id,description,amount,issue_date,due_date,payment_status",
		"INV-1," + id + ",Hosting,120.00,2024-05-01,2024-05-31,pending",
		"INV-2," + id + ",Domain,15.5,01-05-2024,15-05-2024,PAID",
		"INV-1," + id + ",Duplicate,10,2024-05-01,2024-05-31,pending",
		"INV-3," + id + ",Bad amount,-4,2024-05-01,2024-05-31,pending",
		"INV-4,abc,Bad customer,4,2024-05-01,2024-05-31,pending",
		"INV-5," + id,
		"",
	}, "\n")

	result, err := svc.ImportInvoices(ctx, strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	require.Len(t, result.Errors, 4)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Fields, "invoice_number")
	assert.Contains(t, result.Errors[1].Fields, "amount")
	assert.Contains(t, result.Errors[2].Error, "customer_id")
	assert.Contains(t, result.Errors[3].Error, "columns")

	list, err := store.Invoices.List(ctx, repository.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	byNumber := map[string]models.Invoice{}
	for _, inv := range list {
		byNumber[inv.InvoiceNumber] = inv
	}
	assert.Equal(t, models.PaymentStatusPaid, byNumber["INV-2"].PaymentStatus)
	assert.Equal(t, "2024-05-15", clock.FormatDate(byNumber["INV-2"].DueDate))
}

func TestImportInvoicesTabSeparated(t *testing.T) {
	svc, rec, _ := newTestService(t)
	c := seedCustomer(t, rec)

	file := "invoice_number\tcustomer_id\tdescription\tamount\tissue_date\tdue_date\tpayment_status\n" +
		"INV-9\t" + itoa(c.ID) + "\tHosting\t10\t2024-05-01\t2024-05-31\t\n"

	result, err := svc.ImportInvoices(context.Background(), strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Empty(t, result.Errors)
}

type failingCreator struct {
	InvoiceCreator
	failOn string
}

func (f failingCreator) CreateInvoice(ctx context.Context, in records.InvoiceInput) (*models.Invoice, error) {
	if in.InvoiceNumber == f.failOn {
		return nil, errors.New("connection reset")
	}
	return f.InvoiceCreator.CreateInvoice(ctx, in)
}

func TestImportInvoicesStopsOnStorageFailure(t *testing.T) {
	store := repository.NewStore(testutil.NewDB(t))
	rec := records.NewService(store, records.WithClock(clock.At(2024, time.June, 1)))
	svc := NewService(store, failingCreator{InvoiceCreator: rec, failOn: "INV-2"})
	c := seedCustomer(t, rec)
	id := itoa(c.ID)

	file := strings.Join([]string{
		"invoice_number,customer_id,description,amount,issue_date,due_date,payment_status",
		"INV-1," + id + ",Hosting,10,2024-05-01,2024-05-31,pending",
		"INV-2," + id + ",Hosting,10,2024-05-01,2024-05-31,pending",
		"INV-3," + id + ",Hosting,10,2024-05-01,2024-05-31,pending",
	}, "\n")

	result, err := svc.ImportInvoices(context.Background(), strings.NewReader(file))
	require.Error(t, err)
	assert.ErrorContains(t, err, "import row 2")
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 2, result.StoppedAt)

	list, err := store.Invoices.List(context.Background(), repository.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "INV-1", list[0].InvoiceNumber)
}

func TestImportInvoicesEmptyFile(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ImportInvoices(context.Background(), strings.NewReader(""))
	assert.True(t, apperr.IsValidation(err))
}

func TestExportCustomers(t *testing.T) {
	svc, rec, _ := newTestService(t)
	seedCustomer(t, rec)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), "customers", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "company_name", rows[0][1])
	assert.Equal(t, "Acme, Ltd", rows[1][1])
	assert.Equal(t, "2024-06-01", rows[1][10])
}

func TestExportEveryTable(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, name := range Tables {
		var buf bytes.Buffer
		require.NoError(t, svc.Export(context.Background(), name, &buf), name)
		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Len(t, rows, 1, name)
	}
}

func TestExportUnknownTable(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Export(context.Background(), "expenses", &bytes.Buffer{})
	assert.True(t, apperr.IsValidation(err))
}

func itoa(v uint) string {
	return id(v)
}
