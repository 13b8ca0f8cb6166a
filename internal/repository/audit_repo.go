package repository

import (
	"context"

	"gorm.io/gorm"

	"reseller-backend/internal/models"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

type AuditFilter struct {
	Entity   string
	EntityID uint
	Limit    int
}

func (r *AuditRepository) Record(ctx context.Context, e *models.AuditEntry) error {
	return translate(r.db.WithContext(ctx).Create(e).Error)
}

// List returns the newest entries first.
func (r *AuditRepository) List(ctx context.Context, f AuditFilter) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	q := r.db.WithContext(ctx).Model(&models.AuditEntry{})
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	err := q.Order("created_at DESC").Order("id DESC").Find(&entries).Error
	return entries, translate(err)
}
