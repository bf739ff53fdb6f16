package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Тип курса, к которому относится занятие.
type CourseType string

const (
	CourseTypeKids   CourseType = "kids"
	CourseTypeAdults CourseType = "adults"
)

// class_sessions — одно запланированное занятие в филиале.
// После создания не изменяется и не удаляется ядром бронирования.
type ClassSession struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Чистая дата без времени — datatypes.Date.
	Date datatypes.Date `gorm:"type:date;not null;index"`

	// Время начала/конца в формате "HH:MM" — сортируется лексикографически.
	StartTime string `gorm:"type:varchar(5);not null"`
	EndTime   string `gorm:"type:varchar(5);not null"`

	CourseType CourseType `gorm:"type:varchar(32);not null;default:'kids';index"`

	// Максимум учеников. 0 означает «не задано» — применяется дефолт из конфига.
	Capacity int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля (опционально, но удобно для Preload).
	Branch *Branch `gorm:"foreignKey:BranchID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
