package models

import "gorm.io/datatypes"

type SSLCertificate struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CustomerID     uint           `gorm:"not null;index" json:"customer_id"`
	Customer       *Customer      `gorm:"constraint:OnDelete:CASCADE;" json:"customer,omitempty"`
	DomainID       uint           `gorm:"not null;uniqueIndex" json:"domain_id"`
	Domain         *Domain        `gorm:"constraint:OnDelete:CASCADE;" json:"domain,omitempty"`
	StartDate      datatypes.Date `gorm:"not null" json:"start_date"`
	ExpirationDate datatypes.Date `gorm:"not null;index" json:"expiration_date"`
	IsActive       bool           `gorm:"not null" json:"is_active"`
}

// TableName keeps the acronym readable in SQL.
func (SSLCertificate) TableName() string {
	return "ssl_certificates"
}
