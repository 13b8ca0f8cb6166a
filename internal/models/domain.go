package models

import "gorm.io/datatypes"

// Placeholder nameservers given to domains created from a free-text name.
const (
	DefaultNameserver1 = "ns1.example.com"
	DefaultNameserver2 = "ns2.example.com"
)

type Domain struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	CustomerID       uint           `gorm:"not null;index" json:"customer_id"`
	Customer         *Customer      `gorm:"constraint:OnDelete:CASCADE;" json:"customer,omitempty"`
	Name             string         `gorm:"type:varchar(200);not null;index" json:"name"`
	RegistrationDate datatypes.Date `gorm:"not null" json:"registration_date"`
	ExpirationDate   datatypes.Date `gorm:"not null;index" json:"expiration_date"`
	IsActive         bool           `gorm:"not null" json:"is_active"`
	Nameserver1      string         `gorm:"type:varchar(200);not null" json:"nameserver1"`
	Nameserver2      string         `gorm:"type:varchar(200);not null" json:"nameserver2"`
	Nameserver3      string         `gorm:"type:varchar(200)" json:"nameserver3"`
	Nameserver4      string         `gorm:"type:varchar(200)" json:"nameserver4"`
}
