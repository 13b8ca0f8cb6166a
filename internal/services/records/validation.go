package records

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/clock"
)

const (
	msgRequired       = "this field is required"
	msgInvalidDate    = "enter a valid date (YYYY-MM-DD)"
	msgInvalidChoice  = "select a valid choice"
	msgDomainRequired = "select a domain or enter a domain name"
	msgDateOrder      = "must be after the start date"
)

// Upper bound for decimal(10,2).
var maxAmount = decimal.New(1, 8)

// Exponent bounds that keep rescaling cheap. Values past the upper one are
// too large for decimal(10,2).
const (
	maxAmountExponent = 8
	minAmountExponent = -20
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct runs the struct tags and collects one message per field.
func checkStruct(in interface{}) *apperr.ValidationError {
	verr := apperr.NewValidation()
	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(in); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), message(fe))
		}
	}
	return verr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "email":
		return "enter a valid email address"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("select one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	}
	return "invalid value"
}

// parseDate reads a required-or-empty date field. Empty input yields the zero
// date; the required rule is left to the struct tags.
func parseDate(verr *apperr.ValidationError, field, value string) datatypes.Date {
	if value == "" {
		return datatypes.Date{}
	}
	d, err := clock.ParseDate(value)
	if err != nil {
		verr.Add(field, msgInvalidDate)
	}
	return d
}

// checkOrder flags end when it does not fall after start. Zero dates are
// skipped since they already carry their own error.
func checkOrder(verr *apperr.ValidationError, field string, start, end datatypes.Date) {
	s, e := time.Time(start), time.Time(end)
	if s.IsZero() || e.IsZero() {
		return
	}
	if !e.After(s) {
		verr.Add(field, msgDateOrder)
	}
}

// parseAmount accepts a non-negative number with at most two decimal places
// that fits decimal(10,2).
func parseAmount(verr *apperr.ValidationError, raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		verr.Add("amount", "enter a number")
		return decimal.Zero
	}
	// Exponent notation can scale the coefficient without bound, so the
	// exponent is checked before any rounding or comparison.
	switch {
	case d.Exponent() > maxAmountExponent:
		verr.Add("amount", "ensure that there are no more than 10 digits in total")
		return decimal.Zero
	case d.Exponent() < minAmountExponent:
		verr.Add("amount", "ensure that there are no more than 2 decimal places")
		return decimal.Zero
	}
	switch {
	case d.IsNegative():
		verr.Add("amount", "ensure this value is greater than or equal to 0")
	case !d.Equal(d.Round(2)):
		verr.Add("amount", "ensure that there are no more than 2 decimal places")
	case d.GreaterThanOrEqual(maxAmount):
		verr.Add("amount", "ensure that there are no more than 10 digits in total")
	}
	return d.Round(2)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
