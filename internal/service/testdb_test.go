package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/config"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/repository"
)

func testDefaults() config.Booking {
	return config.Booking{
		DefaultCapacity:   6,
		DefaultQuota:      4,
		DefaultCourseType: "kids",
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Minimal schema for the booking core (sqlite-friendly).
	schema := []string{
		`CREATE TABLE students (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			guardian_name TEXT,
			guardian_phone TEXT,
			note TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE branches (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE enrollments (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL,
			branch_id TEXT NOT NULL,
			course_type TEXT NOT NULL,
			sessions_per_month INTEGER NOT NULL,
			status TEXT NOT NULL,
			started_at DATE,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE class_sessions (
			id TEXT PRIMARY KEY,
			branch_id TEXT NOT NULL,
			date DATE NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			course_type TEXT NOT NULL,
			capacity INTEGER NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			student_id TEXT NOT NULL,
			created_at DATETIME,
			UNIQUE(session_id, student_id)
		);`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			created_at DATETIME,
			student_id TEXT,
			session_id TEXT,
			details TEXT
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

type fixture struct {
	db *gorm.DB

	availability *AvailabilityService
	booking      *BookingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	sessions := repository.NewGormSessionRepository(db)
	bookings := repository.NewGormBookingRepository(db)
	enrollments := repository.NewGormEnrollmentRepository(db)
	students := repository.NewGormStudentRepository(db)
	events := repository.NewGormEventRepository(db)

	return &fixture{
		db:           db,
		availability: NewAvailabilityService(sessions, bookings, enrollments, students, testDefaults()),
		booking:      NewBookingService(sessions, bookings, enrollments, events, testDefaults()),
	}
}

func (f *fixture) addStudent(t *testing.T, name string) uuid.UUID {
	t.Helper()
	s := model.Student{ID: uuid.New(), FullName: name}
	if err := f.db.Create(&s).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return s.ID
}

func (f *fixture) addBranch(t *testing.T, name string) uuid.UUID {
	t.Helper()
	b := model.Branch{ID: uuid.New(), Name: name}
	if err := f.db.Create(&b).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	return b.ID
}

func (f *fixture) addEnrollment(t *testing.T, studentID, branchID uuid.UUID, quota int, status model.EnrollmentStatus) uuid.UUID {
	t.Helper()
	e := model.Enrollment{
		ID:               uuid.New(),
		StudentID:        studentID,
		BranchID:         branchID,
		CourseType:       model.CourseTypeKids,
		SessionsPerMonth: quota,
		Status:           status,
	}
	if err := f.db.Create(&e).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return e.ID
}

func (f *fixture) addSession(t *testing.T, branchID uuid.UUID, date time.Time, start string, capacity int) uuid.UUID {
	t.Helper()
	s := model.ClassSession{
		ID:         uuid.New(),
		BranchID:   branchID,
		Date:       datatypes.Date(date),
		StartTime:  start,
		EndTime:    "23:59",
		CourseType: model.CourseTypeKids,
		Capacity:   capacity,
	}
	if err := f.db.Create(&s).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return s.ID
}

func (f *fixture) bookingCount(t *testing.T, sessionID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&model.Booking{}).Where("session_id = ?", sessionID.String()).Count(&n).Error; err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	return n
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
