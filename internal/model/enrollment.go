package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Статус абонемента.
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusTrial     EnrollmentStatus = "trial"
	EnrollmentStatusPaused    EnrollmentStatus = "paused"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// enrollments — абонемент ученика: филиал, тип курса и месячная квота занятий.
// Ядро бронирования читает абонементы, но не управляет их жизненным циклом.
type Enrollment struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	StudentID uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;index"`

	CourseType CourseType `gorm:"type:varchar(32);not null;default:'kids'"`

	// Сколько занятий в месяц покрывает абонемент.
	SessionsPerMonth int `gorm:"not null;default:4"`

	Status EnrollmentStatus `gorm:"type:varchar(32);not null;default:'active';index"`

	StartedAt *datatypes.Date `gorm:"type:date"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Student *Student `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Branch  *Branch  `gorm:"foreignKey:BranchID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// IsCurrent сообщает, даёт ли абонемент право бронировать занятия.
func (e *Enrollment) IsCurrent() bool {
	return e.Status == EnrollmentStatusActive || e.Status == EnrollmentStatusTrial
}
