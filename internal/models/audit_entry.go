package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AuditActionCreated = "created"
	AuditActionUpdated = "updated"
	AuditActionDeleted = "deleted"
)

// AuditEntry records one write against a business record. Entries are kept
// after the record itself is deleted, so there is no foreign key.
type AuditEntry struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Entity      string         `gorm:"type:varchar(30);not null;index:idx_audit_entity" json:"entity"`
	EntityID    uint           `gorm:"not null;index:idx_audit_entity" json:"entity_id"`
	Action      string         `gorm:"type:varchar(10);not null" json:"action"`
	PerformedBy string         `gorm:"type:varchar(100)" json:"performed_by"`
	Changes     datatypes.JSON `json:"changes"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"created_at"`
}

// All lists every table in migration order.
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&Domain{},
		&HostingService{},
		&SSLCertificate{},
		&Invoice{},
		&AuditEntry{},
	}
}
