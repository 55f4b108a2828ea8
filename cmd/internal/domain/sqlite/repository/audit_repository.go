package repository

import (
	"radarcnpj/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// DefaultAuditRepository appends to the consultation audit trail.
// There is intentionally no read path: the trail is write-only for the
// service and inspected directly in the database when needed.
type DefaultAuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *DefaultAuditRepository {
	return &DefaultAuditRepository{db: db}
}

func (r *DefaultAuditRepository) Append(entry *entity.ConsultationLog) error {
	return r.db.Create(entry).Error
}
