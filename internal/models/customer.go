package models

import (
	"time"

	"gorm.io/datatypes"
)

// Customer is the root record; every other entity hangs off a customer.
type Customer struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	CompanyName      string         `gorm:"type:varchar(200);not null;index" json:"company_name"`
	ContactName      string         `gorm:"type:varchar(200);not null" json:"contact_name"`
	Email            string         `gorm:"type:varchar(254);not null" json:"email"`
	Email2           string         `gorm:"type:varchar(254)" json:"email2"`
	Email3           string         `gorm:"type:varchar(254)" json:"email3"`
	Phone            string         `gorm:"type:varchar(20);not null" json:"phone"`
	Address          string         `gorm:"type:text" json:"address"`
	TaxOffice        string         `gorm:"type:varchar(200)" json:"tax_office"`
	TaxNumber        string         `gorm:"type:varchar(50)" json:"tax_number"`
	RegistrationDate datatypes.Date `gorm:"not null" json:"registration_date"`
	Notes            string         `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time      `gorm:"not null;index" json:"created_at"`
}
