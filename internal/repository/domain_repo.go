package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reseller-backend/internal/models"
)

type DomainRepository struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) *DomainRepository {
	return &DomainRepository{db: db}
}

type DomainFilter struct {
	CustomerID uint
	Query      string
	Active     *bool
}

func (r *DomainRepository) Create(ctx context.Context, d *models.Domain) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error)
}

func (r *DomainRepository) GetByID(ctx context.Context, id uint) (*models.Domain, error) {
	var d models.Domain
	if err := r.db.WithContext(ctx).Preload("Customer").First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *DomainRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &models.Domain{}, "id = ?", id)
}

func (r *DomainRepository) Update(ctx context.Context, d *models.Domain) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(d).Error)
}

// Delete removes the domain; the database cascades to its hosting service
// and SSL certificate.
func (r *DomainRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Domain{}, id)
}

func (r *DomainRepository) List(ctx context.Context, f DomainFilter) ([]models.Domain, error) {
	var domains []models.Domain
	q := r.db.WithContext(ctx).Model(&models.Domain{}).Preload("Customer")
	if f.CustomerID != 0 {
		q = q.Where("domains.customer_id = ?", f.CustomerID)
	}
	if f.Active != nil {
		q = q.Where("domains.is_active = ?", *f.Active)
	}
	if f.Query != "" {
		pattern := like(strings.ToLower(f.Query))
		q = q.Joins("JOIN customers ON customers.id = domains.customer_id").
			Where("LOWER(domains.name) LIKE ? OR LOWER(customers.company_name) LIKE ?", pattern, pattern)
	}
	err := q.Order("domains.name ASC").Order("domains.id ASC").Find(&domains).Error
	return domains, translate(err)
}
