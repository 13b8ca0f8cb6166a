package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"reseller-backend/internal/models"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// CustomerFilter narrows List. Query matches company, contact or email.
type CustomerFilter struct {
	Query string
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &models.Customer{}, "id = ?", id)
}

// Update writes every column of c back.
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Customer{}, id)
}

func (r *CustomerRepository) List(ctx context.Context, f CustomerFilter) ([]models.Customer, error) {
	var customers []models.Customer
	q := r.db.WithContext(ctx).Model(&models.Customer{})
	if f.Query != "" {
		pattern := like(strings.ToLower(f.Query))
		q = q.Where("LOWER(company_name) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern)
	}
	err := q.Order("company_name ASC").Order("id ASC").Find(&customers).Error
	return customers, translate(err)
}

// Recent returns the most recently created customers first.
func (r *CustomerRepository) Recent(ctx context.Context, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&customers).Error
	return customers, translate(err)
}
