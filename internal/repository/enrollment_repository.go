package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
)

type EnrollmentRepository interface {
	// Текущий (active или trial) абонемент ученика, самый свежий.
	// Возвращает (nil, nil), если такого нет — это штатная ситуация.
	FindCurrentByStudent(ctx context.Context, studentID string) (*model.Enrollment, error)
}

type GormEnrollmentRepository struct {
	db *gorm.DB
}

func NewGormEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

func (r *GormEnrollmentRepository) FindCurrentByStudent(ctx context.Context, studentID string) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("status IN ?", []model.EnrollmentStatus{
			model.EnrollmentStatusActive,
			model.EnrollmentStatusTrial,
		}).
		Order("created_at DESC").
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
