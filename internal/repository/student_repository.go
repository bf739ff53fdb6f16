package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
)

type StudentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Student, error)
}

type GormStudentRepository struct {
	db *gorm.DB
}

func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

func (r *GormStudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var s model.Student
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
