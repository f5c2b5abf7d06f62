// Package repo holds the gorm persistence layer. Each aggregate gets
// its own file; everything shares the one *gorm.DB handle.
package repo

import "gorm.io/gorm"

type GormRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

// Ping reports database liveness for the readiness probe.
func (r *GormRepo) Ping() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
