package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/config"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/repository"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/schedule"
)

// BookingService — гвард бронирования и отмена.
type BookingService struct {
	sessions    repository.SessionRepository
	bookings    repository.BookingRepository
	enrollments repository.EnrollmentRepository
	events      repository.EventRepository

	defaults config.Booking
}

func NewBookingService(
	sessions repository.SessionRepository,
	bookings repository.BookingRepository,
	enrollments repository.EnrollmentRepository,
	events repository.EventRepository,
	defaults config.Booking,
) *BookingService {
	return &BookingService{
		sessions:    sessions,
		bookings:    bookings,
		enrollments: enrollments,
		events:      events,
		defaults:    defaults,
	}
}

// Book проверяет дубликат, вместимость и месячную квоту — в этом порядке,
// первый непройденный чек выигрывает — и создаёт бронь. Предварительные
// проверки дают понятную причину отказа; финальная вставка повторяет их
// внутри транзакции хранилища, чтобы закрыть гонку check-then-insert.
func (s *BookingService) Book(ctx context.Context, sessionID, studentID string) (*model.Booking, error) {
	if sessionID == "" || studentID == "" {
		return nil, reject(ReasonMissingFields, "session id and student id are required")
	}
	sessionUUID, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, reject(ReasonMissingFields, "invalid session id")
	}
	studentUUID, err := uuid.Parse(studentID)
	if err != nil {
		return nil, reject(ReasonMissingFields, "invalid student id")
	}

	// 1. Дубликат.
	exists, err := s.bookings.Exists(ctx, sessionID, studentID)
	if err != nil {
		return nil, storageError(err)
	}
	if exists {
		return nil, reject(ReasonAlreadyBooked, "student already booked this session")
	}

	// 2. Вместимость.
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(ReasonMissingFields, "session not found")
		}
		return nil, storageError(err)
	}
	capacity := session.Capacity
	if capacity <= 0 {
		capacity = s.defaults.DefaultCapacity
	}
	taken, err := s.bookings.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, storageError(err)
	}
	if taken >= int64(capacity) {
		return nil, reject(ReasonSessionFull, "session has no spots left")
	}

	// 3. Месячная квота — по календарному месяцу даты занятия, брони
	// считаются по всем филиалам и типам курса.
	eff, err := schedule.ResolveEnrollment(
		ctx, s.enrollments, studentID,
		model.CourseType(s.defaults.DefaultCourseType), s.defaults.DefaultQuota,
	)
	if err != nil {
		return nil, storageError(err)
	}
	date := time.Time(session.Date)
	monthFrom, monthTo, err := schedule.MonthRange(date.Year(), int(date.Month()))
	if err != nil {
		return nil, storageError(err)
	}
	inMonth, err := s.bookings.CountByStudentInDateRange(ctx, studentID, monthFrom, monthTo)
	if err != nil {
		return nil, storageError(err)
	}
	if inMonth >= int64(eff.Quota) {
		return nil, &Rejection{
			Reason:  ReasonQuotaExceeded,
			Message: fmt.Sprintf("monthly quota of %d sessions reached", eff.Quota),
			Quota:   eff.Quota,
		}
	}

	// 4. Вставка с повторной проверкой внутри транзакции.
	booking := &model.Booking{SessionID: sessionUUID, StudentID: studentUUID}
	if err := s.bookings.CreateChecked(ctx, booking, capacity, eff.Quota, monthFrom, monthTo); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateBooking):
			return nil, reject(ReasonAlreadyBooked, "student already booked this session")
		case errors.Is(err, repository.ErrSessionFull):
			return nil, reject(ReasonSessionFull, "session has no spots left")
		case errors.Is(err, repository.ErrQuotaExceeded):
			return nil, &Rejection{
				Reason:  ReasonQuotaExceeded,
				Message: fmt.Sprintf("monthly quota of %d sessions reached", eff.Quota),
				Quota:   eff.Quota,
			}
		default:
			return nil, storageError(err)
		}
	}

	// Аудит — best-effort, отказ записи события не откатывает бронь.
	_ = s.events.Record(ctx, &model.Event{
		EventType: model.EventTypeBookingCreated,
		StudentID: &studentUUID,
		SessionID: &sessionUUID,
		Details:   fmt.Sprintf("booked session on %s %s", date.Format("2006-01-02"), session.StartTime),
	})

	return booking, nil
}

// Cancel удаляет бронь пары (занятие, ученик). Отмена идемпотентна:
// отсутствие брони — тоже успех. Квота и вместимость не перепроверяются,
// это условия создания брони, а не её снятия.
func (s *BookingService) Cancel(ctx context.Context, sessionID, studentID string) error {
	if sessionID == "" || studentID == "" {
		return reject(ReasonMissingFields, "session id and student id are required")
	}

	removed, err := s.bookings.DeleteBySessionAndStudent(ctx, sessionID, studentID)
	if err != nil {
		return storageError(err)
	}

	if removed > 0 {
		studentUUID, sErr := uuid.Parse(studentID)
		sessionUUID, pErr := uuid.Parse(sessionID)
		if sErr == nil && pErr == nil {
			_ = s.events.Record(ctx, &model.Event{
				EventType: model.EventTypeBookingCancelled,
				StudentID: &studentUUID,
				SessionID: &sessionUUID,
			})
		}
	}
	return nil
}

// Параметры административного планирования занятия.
type ScheduleSessionInput struct {
	BranchID   string
	Date       time.Time
	StartTime  string
	EndTime    string
	CourseType model.CourseType
	Capacity   int
}

// ScheduleSession создаёт занятие. Нулевая вместимость остаётся «не задано» —
// дефолт применяется при чтении, чтобы смена конфига действовала задним числом.
func (s *BookingService) ScheduleSession(ctx context.Context, in ScheduleSessionInput) (*model.ClassSession, error) {
	branchUUID, err := uuid.Parse(in.BranchID)
	if err != nil {
		return nil, reject(ReasonMissingFields, "invalid branch id")
	}
	if in.Date.IsZero() {
		return nil, reject(ReasonMissingFields, "date is required")
	}
	if in.StartTime == "" || in.EndTime == "" || in.EndTime <= in.StartTime {
		return nil, reject(ReasonMissingFields, "invalid time range")
	}
	courseType := in.CourseType
	if courseType == "" {
		courseType = model.CourseType(s.defaults.DefaultCourseType)
	}
	capacity := in.Capacity
	if capacity < 0 {
		capacity = 0
	}

	session := &model.ClassSession{
		ID:         uuid.New(),
		BranchID:   branchUUID,
		Date:       datatypes.Date(in.Date.UTC()),
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		CourseType: courseType,
		Capacity:   capacity,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, storageError(err)
	}

	_ = s.events.Record(ctx, &model.Event{
		EventType: model.EventTypeSessionScheduled,
		SessionID: &session.ID,
		Details:   fmt.Sprintf("%s %s-%s", in.Date.Format("2006-01-02"), in.StartTime, in.EndTime),
	})

	return session, nil
}
