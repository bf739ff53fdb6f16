package model

import (
	"time"

	"github.com/google/uuid"
)

// bookings — заявка ученика на конкретное занятие.
// Пара (session_id, student_id) уникальна на уровне БД: это страховка
// от гонки check-then-insert при параллельных бронированиях.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_session_student;index"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_session_student;index"`
	CreatedAt time.Time `gorm:"not null;default:now()"`

	Session *ClassSession `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Student *Student      `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
