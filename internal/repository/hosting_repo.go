package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reseller-backend/internal/models"
)

type HostingRepository struct {
	db *gorm.DB
}

func NewHostingRepository(db *gorm.DB) *HostingRepository {
	return &HostingRepository{db: db}
}

type HostingFilter struct {
	CustomerID uint
	Status     string
}

func (r *HostingRepository) Create(ctx context.Context, h *models.HostingService) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(h).Error)
}

func (r *HostingRepository) GetByID(ctx context.Context, id uint) (*models.HostingService, error) {
	var h models.HostingService
	err := r.db.WithContext(ctx).Preload("Customer").Preload("Domain").First(&h, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &h, nil
}

// DomainTaken reports whether another hosting service already uses domainID.
// exceptID skips the record being edited.
func (r *HostingRepository) DomainTaken(ctx context.Context, domainID, exceptID uint) (bool, error) {
	return exists(ctx, r.db, &models.HostingService{}, "domain_id = ? AND id <> ?", domainID, exceptID)
}

func (r *HostingRepository) Update(ctx context.Context, h *models.HostingService) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(h).Error)
}

func (r *HostingRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.HostingService{}, id)
}

func (r *HostingRepository) List(ctx context.Context, f HostingFilter) ([]models.HostingService, error) {
	var services []models.HostingService
	q := r.db.WithContext(ctx).Model(&models.HostingService{}).Preload("Customer").Preload("Domain")
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	err := q.Order("expiration_date ASC").Order("id ASC").Find(&services).Error
	return services, translate(err)
}
