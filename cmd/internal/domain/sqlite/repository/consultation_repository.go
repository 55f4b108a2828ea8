package repository

import (
	"errors"

	"radarcnpj/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// DateCount is one row of the history date listing.
type DateCount struct {
	QueryDate string
	Total     int64
}

type DefaultConsultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) *DefaultConsultationRepository {
	return &DefaultConsultationRepository{db: db}
}

// FindRecent returns the most recent consultation for the CNPJ with
// query_date >= since, or nil when none is fresh enough.
func (r *DefaultConsultationRepository) FindRecent(cnpj, since string) (*entity.Consultation, error) {
	var row entity.Consultation
	err := r.db.
		Where("cnpj = ? AND query_date >= ?", cnpj, since).
		Order("query_date DESC").
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Save inserts a new row. It deliberately does not check for an existing
// same-day row: callers go through FindRecent first, and a duplicate row
// from a concurrent request is harmless since reads take the most recent.
func (r *DefaultConsultationRepository) Save(row *entity.Consultation) error {
	return r.db.Create(row).Error
}

func (r *DefaultConsultationRepository) DeleteExpired(before string) (int64, error) {
	res := r.db.
		Where("query_date < ?", before).
		Delete(&entity.Consultation{})
	return res.RowsAffected, res.Error
}

func (r *DefaultConsultationRepository) FindByDate(date string) ([]*entity.Consultation, error) {
	var rows []*entity.Consultation
	err := r.db.
		Where("query_date = ?", date).
		Order("cnpj").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DefaultConsultationRepository) FindByRange(from, to string) ([]*entity.Consultation, error) {
	var rows []*entity.Consultation
	err := r.db.
		Where("query_date BETWEEN ? AND ?", from, to).
		Order("query_date, cnpj").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// StampExportedByDate records who exported the rows of a given day.
// This is the only mutation ever applied to a consultation row.
func (r *DefaultConsultationRepository) StampExportedByDate(name, date string) error {
	return r.db.Model(&entity.Consultation{}).
		Where("query_date = ?", date).
		Update("exported_by", name).Error
}

func (r *DefaultConsultationRepository) StampExportedByRange(name, from, to string) error {
	return r.db.Model(&entity.Consultation{}).
		Where("query_date BETWEEN ? AND ?", from, to).
		Update("exported_by", name).Error
}

func (r *DefaultConsultationRepository) CountByDate() ([]*DateCount, error) {
	var rows []*DateCount
	err := r.db.Model(&entity.Consultation{}).
		Select("query_date, COUNT(*) AS total").
		Group("query_date").
		Order("query_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
