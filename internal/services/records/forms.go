package records

import "strings"

// Amount accepts either a JSON number or a JSON string and keeps the raw text
// so the decimal rules can report on it.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = ""
		return nil
	}
	*a = Amount(strings.Trim(s, `"`))
	return nil
}

type CustomerInput struct {
	CompanyName      string `json:"company_name" validate:"required,max=200"`
	ContactName      string `json:"contact_name" validate:"required,max=200"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Email2           string `json:"email2" validate:"omitempty,email,max=254"`
	Email3           string `json:"email3" validate:"omitempty,email,max=254"`
	Phone            string `json:"phone" validate:"required,max=20"`
	Address          string `json:"address"`
	TaxOffice        string `json:"tax_office" validate:"max=200"`
	TaxNumber        string `json:"tax_number" validate:"max=50"`
	RegistrationDate string `json:"registration_date"`
	Notes            string `json:"notes"`
}

func (in *CustomerInput) normalize() {
	trim(&in.CompanyName, &in.ContactName, &in.Email, &in.Email2, &in.Email3, &in.Phone,
		&in.TaxOffice, &in.TaxNumber, &in.RegistrationDate)
}

type DomainInput struct {
	CustomerID       uint   `json:"customer_id" validate:"required"`
	Name             string `json:"name" validate:"required,max=200"`
	RegistrationDate string `json:"registration_date" validate:"required"`
	ExpirationDate   string `json:"expiration_date" validate:"required"`
	IsActive         *bool  `json:"is_active"`
	Nameserver1      string `json:"nameserver1" validate:"required,max=200"`
	Nameserver2      string `json:"nameserver2" validate:"required,max=200"`
	Nameserver3      string `json:"nameserver3" validate:"max=200"`
	Nameserver4      string `json:"nameserver4" validate:"max=200"`
}

func (in *DomainInput) normalize() {
	trim(&in.Name, &in.RegistrationDate, &in.ExpirationDate,
		&in.Nameserver1, &in.Nameserver2, &in.Nameserver3, &in.Nameserver4)
}

// HostingInput selects an existing domain with DomainID or names a new one
// with DomainName; a name wins when both are given.
type HostingInput struct {
	CustomerID     uint   `json:"customer_id" validate:"required"`
	DomainID       uint   `json:"domain_id"`
	DomainName     string `json:"domain_name" validate:"max=200"`
	Package        string `json:"package" validate:"required,max=100"`
	Status         string `json:"status" validate:"required,oneof=active suspended cancelled"`
	StartDate      string `json:"start_date" validate:"required"`
	ExpirationDate string `json:"expiration_date" validate:"required"`
	Notes          string `json:"notes"`
}

func (in *HostingInput) normalize() {
	trim(&in.DomainName, &in.Package, &in.Status, &in.StartDate, &in.ExpirationDate)
}

type SSLInput struct {
	CustomerID     uint   `json:"customer_id" validate:"required"`
	DomainID       uint   `json:"domain_id"`
	DomainName     string `json:"domain_name" validate:"max=200"`
	StartDate      string `json:"start_date" validate:"required"`
	ExpirationDate string `json:"expiration_date" validate:"required"`
	IsActive       *bool  `json:"is_active"`
}

func (in *SSLInput) normalize() {
	trim(&in.DomainName, &in.StartDate, &in.ExpirationDate)
}

type InvoiceInput struct {
	CustomerID    uint   `json:"customer_id" validate:"required"`
	InvoiceNumber string `json:"invoice_number" validate:"required,max=50"`
	Description   string `json:"description"`
	Amount        Amount `json:"amount" validate:"required"`
	IssueDate     string `json:"issue_date" validate:"required"`
	DueDate       string `json:"due_date" validate:"required"`
	PaymentStatus string `json:"payment_status" validate:"omitempty,oneof=paid pending overdue"`
	PaymentDate   string `json:"payment_date"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=bank_transfer credit_card other"`
	PaymentNotes  string `json:"payment_notes"`
	Notes         string `json:"notes"`
}

func (in *InvoiceInput) normalize() {
	amount := string(in.Amount)
	trim(&in.InvoiceNumber, &amount, &in.IssueDate, &in.DueDate, &in.PaymentStatus,
		&in.PaymentDate, &in.PaymentMethod)
	in.Amount = Amount(amount)
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
