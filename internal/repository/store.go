package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate key")
	ErrForeignKey = errors.New("foreign key violation")
)

// translate maps gorm errors onto the repository sentinels. Other errors pass
// through untouched.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Join(ErrForeignKey, err)
	}
	return err
}

// Store bundles the repositories that share one connection or transaction.
type Store struct {
	db *gorm.DB

	Customers *CustomerRepository
	Domains   *DomainRepository
	Hosting   *HostingRepository
	SSL       *SSLRepository
	Invoices  *InvoiceRepository
	Audit     *AuditRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Customers: NewCustomerRepository(db),
		Domains:   NewDomainRepository(db),
		Hosting:   NewHostingRepository(db),
		SSL:       NewSSLRepository(db),
		Invoices:  NewInvoiceRepository(db),
		Audit:     NewAuditRepository(db),
	}
}

// DB exposes the underlying handle for read-only reporting queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a Store bound to a single database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uint) error {
	res := db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error
	return count > 0, translate(err)
}

func like(q string) string {
	return "%" + q + "%"
}
