package reporting

import (
	"time"

	"gorm.io/gorm"

	"reseller-backend/internal/models"
)

type scope = func(*gorm.DB) *gorm.DB

// expiredBefore matches rows whose expiration date is strictly before today,
// whatever their active flag or status.
func expiredBefore(table string, today time.Time) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".expiration_date < ?", today)
	}
}

// activeUntil matches active domains or certificates expiring on or before
// the horizon. Already expired rows are included.
func activeUntil(table string, horizon time.Time) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".is_active = ? AND "+table+".expiration_date <= ?", true, horizon)
	}
}

func activeHostingUntil(horizon time.Time) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("hosting_services.status = ? AND hosting_services.expiration_date <= ?",
			models.HostingStatusActive, horizon)
	}
}

func overdueOn(today time.Time) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("invoices.payment_status = ? AND invoices.due_date < ?",
			models.PaymentStatusPending, today)
	}
}

func expiringFirst(table string) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".expiration_date ASC").Order(table + ".id ASC")
	}
}
