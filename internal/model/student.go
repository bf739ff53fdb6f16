package model

import (
	"time"

	"github.com/google/uuid"
)

// students
type Student struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	FullName string `gorm:"type:varchar(255);not null"`

	// Контакт родителя/опекуна.
	GuardianName  string `gorm:"type:varchar(255)"`
	GuardianPhone string `gorm:"type:varchar(32)"`

	Note string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля (опционально)
	Enrollments []Enrollment `gorm:"foreignKey:StudentID"`
	Bookings    []Booking    `gorm:"foreignKey:StudentID"`
}
