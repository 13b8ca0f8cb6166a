package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusOverdue = "overdue"
)

const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodOther        = "other"
)

type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CustomerID    uint            `gorm:"not null;index" json:"customer_id"`
	Customer      *Customer       `gorm:"constraint:OnDelete:CASCADE;" json:"customer,omitempty"`
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"invoice_number"`
	Description   string          `gorm:"type:text" json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	IssueDate     datatypes.Date  `gorm:"not null" json:"issue_date"`
	DueDate       datatypes.Date  `gorm:"not null;index" json:"due_date"`
	PaymentStatus string          `gorm:"type:varchar(10);not null;default:'pending';index" json:"payment_status"`
	PaymentDate   *datatypes.Date `json:"payment_date"`
	PaymentMethod string          `gorm:"type:varchar(20)" json:"payment_method"`
	PaymentNotes  string          `gorm:"type:text" json:"payment_notes"`
	Notes         string          `gorm:"type:text" json:"notes"`
}
