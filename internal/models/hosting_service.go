package models

import "gorm.io/datatypes"

const (
	HostingStatusActive    = "active"
	HostingStatusSuspended = "suspended"
	HostingStatusCancelled = "cancelled"
)

// HostingService is a hosting package sold for exactly one domain.
type HostingService struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CustomerID     uint           `gorm:"not null;index" json:"customer_id"`
	Customer       *Customer      `gorm:"constraint:OnDelete:CASCADE;" json:"customer,omitempty"`
	DomainID       uint           `gorm:"not null;uniqueIndex" json:"domain_id"`
	Domain         *Domain        `gorm:"constraint:OnDelete:CASCADE;" json:"domain,omitempty"`
	Package        string         `gorm:"type:varchar(100);not null;index" json:"package"`
	Status         string         `gorm:"type:varchar(20);not null;index" json:"status"`
	StartDate      datatypes.Date `gorm:"not null" json:"start_date"`
	ExpirationDate datatypes.Date `gorm:"not null;index" json:"expiration_date"`
	RenewalCount   int            `gorm:"not null;default:0" json:"renewal_count"`
	Notes          string         `gorm:"type:text" json:"notes"`
}
