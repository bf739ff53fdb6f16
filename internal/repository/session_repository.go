package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
)

type SessionRepository interface {
	// Найти занятие по ID.
	GetByID(ctx context.Context, id string) (*model.ClassSession, error)
	// Занятия филиала за интервал дат (границы включительно),
	// отфильтрованные по типу курса. Сортировка: дата, затем время начала.
	ListByBranchRange(ctx context.Context, branchID string, courseType model.CourseType, from, to time.Time) ([]model.ClassSession, error)
	// Создать занятие (административное планирование).
	Create(ctx context.Context, session *model.ClassSession) error
}

// Реализация на GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) GetByID(ctx context.Context, id string) (*model.ClassSession, error) {
	var s model.ClassSession
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormSessionRepository) ListByBranchRange(
	ctx context.Context,
	branchID string,
	courseType model.CourseType,
	from, to time.Time,
) ([]model.ClassSession, error) {
	var sessions []model.ClassSession
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Where("branch_id = ?", branchID).
		Where("course_type = ?", courseType).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *GormSessionRepository) Create(ctx context.Context, session *model.ClassSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}
