package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/config"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/repository"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/schedule"
)

var ErrStudentNotFound = errors.New("student not found")

// SessionView — занятие глазами ученика: сколько мест осталось
// и записан ли он сам.
type SessionView struct {
	ID         string           `json:"id"`
	Date       string           `json:"date"` // YYYY-MM-DD
	StartTime  string           `json:"start_time"`
	EndTime    string           `json:"end_time"`
	BranchName string           `json:"branch_name"`
	CourseType model.CourseType `json:"course_type"`
	SpotsLeft  int              `json:"spots_left"`
	IsBooked   bool             `json:"is_booked"`
}

// MonthAvailability — выдача листера за месяц.
// BookedCount считается по всем филиалам, независимо от фильтра списка.
type MonthAvailability struct {
	Year        int           `json:"year"`
	Month       int           `json:"month"`
	Sessions    []SessionView `json:"sessions"`
	BookedCount int           `json:"booked_count"`
	Quota       int           `json:"quota"`
}

// AvailabilityService строит список доступных занятий месяца.
type AvailabilityService struct {
	sessions    repository.SessionRepository
	bookings    repository.BookingRepository
	enrollments repository.EnrollmentRepository
	students    repository.StudentRepository

	defaults config.Booking
}

func NewAvailabilityService(
	sessions repository.SessionRepository,
	bookings repository.BookingRepository,
	enrollments repository.EnrollmentRepository,
	students repository.StudentRepository,
	defaults config.Booking,
) *AvailabilityService {
	return &AvailabilityService{
		sessions:    sessions,
		bookings:    bookings,
		enrollments: enrollments,
		students:    students,
		defaults:    defaults,
	}
}

// ListAvailableSessions возвращает занятия месяца в филиале ученика с
// отметками занятости. Нулевые year/month — текущий месяц; courseType
// используется, только если у ученика нет абонемента.
func (s *AvailabilityService) ListAvailableSessions(
	ctx context.Context,
	studentID string,
	year, month int,
	courseType model.CourseType,
) (*MonthAvailability, error) {
	if studentID == "" {
		return nil, schedule.ErrMissingStudent
	}
	from, to, err := schedule.MonthRange(year, month)
	if err != nil {
		return nil, err
	}

	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("resolve student: %w", err)
	}

	eff, err := schedule.ResolveEnrollment(ctx, s.enrollments, studentID, courseType, s.defaults.DefaultQuota)
	if err != nil {
		return nil, fmt.Errorf("resolve enrollment: %w", err)
	}

	out := &MonthAvailability{
		Year:     from.Year(),
		Month:    int(from.Month()),
		Sessions: []SessionView{},
		Quota:    eff.Quota,
	}

	// Счётчик броней месяца не зависит от фильтра по филиалу.
	booked, err := s.bookings.CountByStudentInDateRange(ctx, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count month bookings: %w", err)
	}
	out.BookedCount = int(booked)

	// Без абонемента филиал не определён: отдаём пустой список, а не
	// запрос «по всем филиалам».
	if !eff.HasEnrollment {
		return out, nil
	}

	sessions, err := s.sessions.ListByBranchRange(ctx, eff.BranchID, eff.CourseType, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(sessions))
	for _, session := range sessions {
		ids = append(ids, session.ID.String())
	}
	counts, err := s.bookings.CountsBySessions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count session bookings: %w", err)
	}

	// Полная история броней ученика, не только этот месяц.
	mineIDs, err := s.bookings.ListSessionIDsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student bookings: %w", err)
	}
	mine := make(map[string]struct{}, len(mineIDs))
	for _, id := range mineIDs {
		mine[id] = struct{}{}
	}

	for _, session := range sessions {
		id := session.ID.String()
		capacity := session.Capacity
		if capacity <= 0 {
			capacity = s.defaults.DefaultCapacity
		}
		branchName := ""
		if session.Branch != nil {
			branchName = session.Branch.Name
		}
		_, isBooked := mine[id]

		out.Sessions = append(out.Sessions, SessionView{
			ID:         id,
			Date:       time.Time(session.Date).Format("2006-01-02"),
			StartTime:  session.StartTime,
			EndTime:    session.EndTime,
			BranchName: branchName,
			CourseType: session.CourseType,
			SpotsLeft:  capacity - int(counts[id]),
			IsBooked:   isBooked,
		})
	}

	return out, nil
}
