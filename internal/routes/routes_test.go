package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reseller-backend/internal/clock"
	"reseller-backend/internal/config"
	"reseller-backend/internal/metrics"
	"reseller-backend/internal/models"
	"reseller-backend/internal/testutil"
)

type APISuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	token  string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	s.Require().NoError(err)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			AdminUser:         "admin",
			AdminPasswordHash: string(hash),
			JWTSecret:         "test-secret",
			TokenTTL:          time.Hour,
		},
		Reporting: config.ReportingConfig{ExpiringWindowDays: 30},
	}
	s.router = gin.New()
	s.db = testutil.NewDB(s.T())
	RegisterRoutes(s.router, s.db, Deps{
		Config:  cfg,
		Clock:   clock.At(2024, time.June, 1),
		Metrics: metrics.New(),
	})
	s.token = s.login("admin", "s3cret")
}

func (s *APISuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APISuite) login(user, password string) string {
	s.token = ""
	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": user, "password": password})
	if w.Code != http.StatusOK {
		return ""
	}
	var out struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *APISuite) createCustomer() uint {
	w := s.do(http.MethodPost, "/api/customers", map[string]string{
		"company_name": "Acme Ltd",
		"contact_name": "Jo",
		"email":        "jo@acme.test",
		"phone":        "555",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return uint(decode(s.T(), w)["id"].(float64))
}

func (s *APISuite) TestHealthAndMetricsArePublic() {
	s.token = ""
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/health", nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/metrics", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/customers", nil).Code)
}

func (s *APISuite) TestLoginRejectsBadPassword() {
	s.Empty(s.login("admin", "nope"))
}

func (s *APISuite) TestLogoutRevokesToken() {
	s.Require().NotEmpty(s.token)
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/auth/logout", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/customers", nil).Code)
}

func (s *APISuite) TestCustomerLifecycle() {
	id := s.createCustomer()
	path := fmt.Sprintf("/api/customers/%d", id)

	w := s.do(http.MethodGet, path, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("2024-06-01T00:00:00Z", decode(s.T(), w)["registration_date"])

	w = s.do(http.MethodPut, path, map[string]string{
		"company_name":      "Acme Holdings",
		"contact_name":      "Jo",
		"email":             "jo@acme.test",
		"phone":             "555",
		"registration_date": "2024-01-15",
	})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	s.Equal(http.StatusOK, s.do(http.MethodGet, path+"/detail", nil).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, path, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, path, nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/customers/abc", nil).Code)
}

func (s *APISuite) TestValidationErrorsListFields() {
	w := s.do(http.MethodPost, "/api/customers", map[string]string{"email": "bad"})
	s.Equal(http.StatusBadRequest, w.Code)
	fields := decode(s.T(), w)["fields"].(map[string]interface{})
	s.Contains(fields, "company_name")
	s.Contains(fields, "email")
}

func (s *APISuite) TestHostingWithTypedDomain() {
	customerID := s.createCustomer()
	body := map[string]interface{}{
		"customer_id":     customerID,
		"package":         "Basic",
		"status":          "active",
		"start_date":      "2024-01-01",
		"expiration_date": "2024-06-20",
	}

	w := s.do(http.MethodPost, "/api/hosting", body)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(decode(s.T(), w)["fields"], "domain_id")

	body["domain_name"] = "acme.test"
	w = s.do(http.MethodPost, "/api/hosting", body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	hostingID := uint(decode(s.T(), w)["id"].(float64))

	w = s.do(http.MethodGet, "/api/domains", nil)
	s.Equal(http.StatusOK, w.Code)
	out := decode(s.T(), w)
	s.Len(out["items"], 1)

	w = s.do(http.MethodGet, "/api/dashboard", nil)
	s.Equal(http.StatusOK, w.Code)
	hostingStats := decode(s.T(), w)["hosting_stats"].(map[string]interface{})
	s.Equal(float64(1), hostingStats["expiring_soon"])

	w = s.do(http.MethodPost, fmt.Sprintf("/api/hosting/%d/renew", hostingID), map[string]int{"years": 1})
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(float64(1), decode(s.T(), w)["renewal_count"])

	w = s.do(http.MethodGet, "/api/renewals?type=all&start=2025-06-01&end=2025-06-30", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(decode(s.T(), w)["items"], 1)
}

func (s *APISuite) TestInvoiceDuplicateNumber() {
	customerID := s.createCustomer()
	body := map[string]interface{}{
		"customer_id":    customerID,
		"invoice_number": "INV-1",
		"amount":         99.9,
		"issue_date":     "2024-05-01",
		"due_date":       "2024-05-15",
	}
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/api/invoices", body).Code)

	w := s.do(http.MethodPost, "/api/invoices", body)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(decode(s.T(), w)["fields"], "invoice_number")

	w = s.do(http.MethodGet, "/api/invoices?status=pending", nil)
	s.Equal(http.StatusOK, w.Code)
	stats := decode(s.T(), w)["stats"].(map[string]interface{})
	overdue := stats["overdue"].(map[string]interface{})
	s.Equal(float64(1), overdue["count"])
}

func (s *APISuite) TestImportAndExport() {
	customerID := s.createCustomer()
	csvBody := fmt.Sprintf("invoice_number,customer_id,description,amount,issue_date,due_date,payment_status\n"+
		"INV-7,%d,Hosting,10.00,2024-05-01,2024-05-31,paid\n", customerID)

	w := s.upload(csvBody)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(float64(1), decode(s.T(), w)["inserted"])

	w = s.do(http.MethodGet, "/api/export/invoices", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "text/csv")
	s.True(strings.Contains(w.Body.String(), "INV-7"))

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/export/expenses", nil).Code)
}

func (s *APISuite) upload(csvBody string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "invoices.csv")
	s.Require().NoError(err)
	_, err = part.Write([]byte(csvBody))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APISuite) TestImportReportsCommittedRowsOnFailure() {
	customerID := s.createCustomer()
	err := s.db.Callback().Create().Before("gorm:create").Register("test:fail_invoice", func(tx *gorm.DB) {
		if inv, ok := tx.Statement.Dest.(*models.Invoice); ok && inv.InvoiceNumber == "INV-BOOM" {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	s.Require().NoError(err)
	defer func() {
		_ = s.db.Callback().Create().Remove("test:fail_invoice")
	}()

	csvBody := fmt.Sprintf("invoice_number,customer_id,description,amount,issue_date,due_date,payment_status\n"+
		"INV-1,%d,Hosting,10.00,2024-05-01,2024-05-31,paid\n"+
		"INV-2,%d,Hosting,-1,2024-05-01,2024-05-31,paid\n"+
		"INV-BOOM,%d,Hosting,10.00,2024-05-01,2024-05-31,paid\n"+
		"INV-3,%d,Hosting,10.00,2024-05-01,2024-05-31,paid\n", customerID, customerID, customerID, customerID)

	w := s.upload(csvBody)
	s.Require().Equal(http.StatusInternalServerError, w.Code, w.Body.String())
	body := decode(s.T(), w)
	s.Equal(float64(1), body["inserted"])
	s.Equal(float64(3), body["stopped_at_row"])
	s.Len(body["errors"], 1)

	w = s.do(http.MethodGet, "/api/invoices", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(decode(s.T(), w)["items"], 1)
}

func (s *APISuite) TestAuditLog() {
	s.createCustomer()
	w := s.do(http.MethodGet, "/api/audit?entity=customer", nil)
	s.Equal(http.StatusOK, w.Code)
	items := decode(s.T(), w)["items"].([]interface{})
	s.Require().Len(items, 1)
	s.Equal("admin", items[0].(map[string]interface{})["performed_by"])
}
