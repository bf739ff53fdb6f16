package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
)

// Ошибки, которые CreateChecked возвращает при повторной проверке внутри транзакции.
var (
	ErrDuplicateBooking = errors.New("booking already exists")
	ErrSessionFull      = errors.New("session is full")
	ErrQuotaExceeded    = errors.New("monthly quota exceeded")
)

type BookingRepository interface {
	// Есть ли уже бронь пары (занятие, ученик).
	Exists(ctx context.Context, sessionID, studentID string) (bool, error)
	// Сколько броней у занятия.
	CountBySession(ctx context.Context, sessionID string) (int64, error)
	// Количество броней по каждому из занятий одним запросом.
	CountsBySessions(ctx context.Context, sessionIDs []string) (map[string]int64, error)
	// Все занятия, когда-либо забронированные учеником (полная история).
	ListSessionIDsByStudent(ctx context.Context, studentID string) ([]string, error)
	// Брони ученика, чьи занятия датированы внутри интервала —
	// по всем филиалам и типам курса.
	CountByStudentInDateRange(ctx context.Context, studentID string, from, to time.Time) (int64, error)
	// Создать бронь с повторной проверкой дубликата, вместимости и квоты
	// внутри одной транзакции.
	CreateChecked(ctx context.Context, booking *model.Booking, capacity int, quota int, monthFrom, monthTo time.Time) error
	// Удалить бронь пары (занятие, ученик). Ноль удалённых строк — не ошибка.
	DeleteBySessionAndStudent(ctx context.Context, sessionID, studentID string) (int64, error)
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Exists(ctx context.Context, sessionID, studentID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("session_id = ? AND student_id = ?", sessionID, studentID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormBookingRepository) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("session_id = ?", sessionID).
		Count(&n).Error
	return n, err
}

func (r *GormBookingRepository) CountsBySessions(ctx context.Context, sessionIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		SessionID string
		Cnt       int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Select("session_id, count(*) as cnt").
		Where("session_id IN ?", sessionIDs).
		Group("session_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.SessionID] = row.Cnt
	}
	return counts, nil
}

func (r *GormBookingRepository) ListSessionIDsByStudent(ctx context.Context, studentID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("student_id = ?", studentID).
		Pluck("session_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormBookingRepository) CountByStudentInDateRange(
	ctx context.Context,
	studentID string,
	from, to time.Time,
) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Joins("JOIN class_sessions ON class_sessions.id = bookings.session_id").
		Where("bookings.student_id = ?", studentID).
		Where("class_sessions.date >= ? AND class_sessions.date <= ?", from, to).
		Count(&n).Error
	return n, err
}

// CreateChecked повторяет проверки гварда внутри одной транзакции, удерживая
// блокировку строки занятия, чтобы два конкурентных бронирования последнего
// места не прошли проверку одновременно.
func (r *GormBookingRepository) CreateChecked(
	ctx context.Context,
	booking *model.Booking,
	capacity int,
	quota int,
	monthFrom, monthTo time.Time,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SELECT ... FOR UPDATE по строке занятия. sqlite не поддерживает
		// FOR UPDATE, там транзакции и так сериализуются.
		lockTx := tx
		if tx.Dialector.Name() == "postgres" {
			lockTx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var session model.ClassSession
		if err := lockTx.First(&session, "id = ?", booking.SessionID).Error; err != nil {
			return err
		}

		var dup int64
		if err := tx.Model(&model.Booking{}).
			Where("session_id = ? AND student_id = ?", booking.SessionID, booking.StudentID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicateBooking
		}

		var taken int64
		if err := tx.Model(&model.Booking{}).
			Where("session_id = ?", booking.SessionID).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken >= int64(capacity) {
			return ErrSessionFull
		}

		var inMonth int64
		if err := tx.Model(&model.Booking{}).
			Joins("JOIN class_sessions ON class_sessions.id = bookings.session_id").
			Where("bookings.student_id = ?", booking.StudentID).
			Where("class_sessions.date >= ? AND class_sessions.date <= ?", monthFrom, monthTo).
			Count(&inMonth).Error; err != nil {
			return err
		}
		if inMonth >= int64(quota) {
			return ErrQuotaExceeded
		}

		if booking.ID == uuid.Nil {
			booking.ID = uuid.New()
		}
		return tx.Create(booking).Error
	})
}

func (r *GormBookingRepository) DeleteBySessionAndStudent(ctx context.Context, sessionID, studentID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("session_id = ? AND student_id = ?", sessionID, studentID).
		Delete(&model.Booking{})
	return res.RowsAffected, res.Error
}
