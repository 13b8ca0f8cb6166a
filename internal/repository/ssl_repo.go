package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reseller-backend/internal/models"
)

type SSLRepository struct {
	db *gorm.DB
}

func NewSSLRepository(db *gorm.DB) *SSLRepository {
	return &SSLRepository{db: db}
}

type SSLFilter struct {
	CustomerID uint
	Active     *bool
}

func (r *SSLRepository) Create(ctx context.Context, c *models.SSLCertificate) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *SSLRepository) GetByID(ctx context.Context, id uint) (*models.SSLCertificate, error) {
	var c models.SSLCertificate
	err := r.db.WithContext(ctx).Preload("Customer").Preload("Domain.Customer").First(&c, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *SSLRepository) DomainTaken(ctx context.Context, domainID, exceptID uint) (bool, error) {
	return exists(ctx, r.db, &models.SSLCertificate{}, "domain_id = ? AND id <> ?", domainID, exceptID)
}

func (r *SSLRepository) Update(ctx context.Context, c *models.SSLCertificate) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error)
}

func (r *SSLRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.SSLCertificate{}, id)
}

// List filters on the customer that owns the certificate's domain, which is
// how certificates are grouped under a customer.
func (r *SSLRepository) List(ctx context.Context, f SSLFilter) ([]models.SSLCertificate, error) {
	var certs []models.SSLCertificate
	q := r.db.WithContext(ctx).Model(&models.SSLCertificate{}).
		Preload("Customer").Preload("Domain.Customer")
	if f.CustomerID != 0 {
		q = q.Joins("JOIN domains ON domains.id = ssl_certificates.domain_id").
			Where("domains.customer_id = ?", f.CustomerID)
	}
	if f.Active != nil {
		q = q.Where("ssl_certificates.is_active = ?", *f.Active)
	}
	err := q.Order("ssl_certificates.expiration_date ASC").Order("ssl_certificates.id ASC").Find(&certs).Error
	return certs, translate(err)
}
