package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/repository"
)

func assertReason(t *testing.T, err error, want RejectReason) *Rejection {
	t.Helper()
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected rejection %s, got %v", want, err)
	}
	if rej.Reason != want {
		t.Fatalf("expected reason %s, got %s (%s)", want, rej.Reason, rej.Message)
	}
	return rej
}

func TestBook_MissingFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.booking.Book(ctx, "", uuid.NewString())
	assertReason(t, err, ReasonMissingFields)

	_, err = f.booking.Book(ctx, uuid.NewString(), "")
	assertReason(t, err, ReasonMissingFields)

	_, err = f.booking.Book(ctx, "not-a-uuid", uuid.NewString())
	assertReason(t, err, ReasonMissingFields)
}

func TestBook_UnknownSession(t *testing.T) {
	f := newFixture(t)
	student := f.addStudent(t, "Dana")

	_, err := f.booking.Book(context.Background(), uuid.NewString(), student.String())
	assertReason(t, err, ReasonMissingFields)
}

func TestBook_CapacityInvariant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	branch := f.addBranch(t, "Central")
	session := f.addSession(t, branch, date(2026, time.March, 10), "10:00", 6)

	for i := 0; i < 6; i++ {
		student := f.addStudent(t, fmt.Sprintf("student-%d", i))
		f.addEnrollment(t, student, branch, 4, model.EnrollmentStatusActive)
		if _, err := f.booking.Book(ctx, session.String(), student.String()); err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
	}

	seventh := f.addStudent(t, "seventh")
	f.addEnrollment(t, seventh, branch, 4, model.EnrollmentStatusActive)
	_, err := f.booking.Book(ctx, session.String(), seventh.String())
	assertReason(t, err, ReasonSessionFull)

	if n := f.bookingCount(t, session); n != 6 {
		t.Fatalf("expected 6 bookings, got %d", n)
	}
}

func TestBook_DefaultCapacityWhenUnset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	branch := f.addBranch(t, "Central")
	// capacity 0 — «не задано», действует дефолт 6
	session := f.addSession(t, branch, date(2026, time.March, 12), "10:00", 0)

	for i := 0; i < 6; i++ {
		student := f.addStudent(t, fmt.Sprintf("student-%d", i))
		if _, err := f.booking.Book(ctx, session.String(), student.String()); err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
	}

	extra := f.addStudent(t, "extra")
	_, err := f.booking.Book(ctx, session.String(), extra.String())
	assertReason(t, err, ReasonSessionFull)
}

func TestBook_DuplicateRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	branch := f.addBranch(t, "Central")
	student := f.addStudent(t, "Alex")
	f.addEnrollment(t, student, branch, 4, model.EnrollmentStatusActive)
	session := f.addSession(t, branch, date(2026, time.March, 10), "10:00", 6)

	if _, err := f.booking.Book(ctx, session.String(), student.String()); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := f.booking.Book(ctx, session.String(), student.String())
	assertReason(t, err, ReasonAlreadyBooked)

	if n := f.bookingCount(t, session); n != 1 {
		t.Fatalf("expected 1 booking, got %d", n)
	}
}

func TestBook_MonthlyQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	branch := f.addBranch(t, "Central")
	student := f.addStudent(t, "Alex")
	f.addEnrollment(t, student, branch, 4, model.EnrollmentStatusActive)

	for d := 1; d <= 4; d++ {
		session := f.addSession(t, branch, date(2026, time.March, d), "10:00", 6)
		if _, err := f.booking.Book(ctx, session.String(), student.String()); err != nil {
			t.Fatalf("march booking %d: %v", d, err)
		}
	}

	fifth := f.addSession(t, branch, date(2026, time.March, 20), "10:00", 6)
	_, err := f.booking.Book(ctx, fifth.String(), student.String())
	rej := assertReason(t, err, ReasonQuotaExceeded)
	if rej.Quota != 4 {
		t.Fatalf("expected quota 4, got %d", rej.Quota)
	}
	if !strings.Contains(rej.Message, "4") {
		t.Fatalf("expected message to contain the quota, got %q", rej.Message)
	}

	// Квота помесячная: апрель свободен.
	april := f.addSession(t, branch, date(2026, time.April, 2), "10:00", 6)
	if _, err := f.booking.Book(ctx, april.String(), student.String()); err != nil {
		t.Fatalf("april booking: %v", err)
	}
}

func TestBook_QuotaCountsAcrossBranches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	home := f.addBranch(t, "Home")
	other := f.addBranch(t, "Other")
	student := f.addStudent(t, "Alex")
	f.addEnrollment(t, student, home, 4, model.EnrollmentStatusActive)

	// Четыре мартовские брони в чужом филиале тоже тратят квоту.
	for d := 1; d <= 4; d++ {
		session := f.addSession(t, other, date(2026, time.March, d), "09:00", 6)
		if _, err := f.booking.Book(ctx, session.String(), student.String()); err != nil {
			t.Fatalf("other-branch booking %d: %v", d, err)
		}
	}

	session := f.addSession(t, home, date(2026, time.March, 25), "10:00", 6)
	_, err := f.booking.Book(ctx, session.String(), student.String())
	assertReason(t, err, ReasonQuotaExceeded)
}

func TestBook_NoEnrollmentFallsBackToDefaultQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	branch := f.addBranch(t, "Central")
	student := f.addStudent(t, "Alex") // без абонемента

	for d := 1; d <= 4; d++ {
		session := f.addSession(t, branch, date(2026, time.March, d), "10:00", 6)
		if _, err := f.booking.Book(ctx, session.String(), student.String()); err != nil {
			t.Fatalf("booking %d: %v", d, err)
		}
	}

	fifth := f.addSession(t, branch, date(2026, time.March, 20), "10:00", 6)
	_, err := f.booking.Book(ctx, fifth.String(), student.String())
	rej := assertReason(t, err, ReasonQuotaExceeded)
	if rej.Quota != 4 {
		t.Fatalf("expected default quota 4, got %d", rej.Quota)
	}
}

func TestBook_RecordsAuditEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	branch := f.addBranch(t, "Central")
	student := f.addStudent(t, "Alex")
	session := f.addSession(t, branch, date(2026, time.March, 10), "10:00", 6)

	if _, err := f.booking.Book(ctx, session.String(), student.String()); err != nil {
		t.Fatalf("booking: %v", err)
	}

	var n int64
	if err := f.db.Model(&model.Event{}).
		Where("event_type = ?", model.EventTypeBookingCreated).
		Count(&n).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 booking_created event, got %d", n)
	}
}

func TestCancel_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	branch := f.addBranch(t, "Central")
	student := f.addStudent(t, "Alex")
	session := f.addSession(t, branch, date(2026, time.March, 10), "10:00", 6)

	// Отмена несуществующей брони — успех.
	if err := f.booking.Cancel(ctx, session.String(), student.String()); err != nil {
		t.Fatalf("cancel of nothing: %v", err)
	}

	if _, err := f.booking.Book(ctx, session.String(), student.String()); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if err := f.booking.Cancel(ctx, session.String(), student.String()); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := f.booking.Cancel(ctx, session.String(), student.String()); err != nil {
		t.Fatalf("second cancel: %v", err)
	}

	if n := f.bookingCount(t, session); n != 0 {
		t.Fatalf("expected 0 bookings, got %d", n)
	}
}

func TestCancel_FreesSpotAndQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	branch := f.addBranch(t, "Central")
	student := f.addStudent(t, "Alex")
	session := f.addSession(t, branch, date(2026, time.March, 10), "10:00", 1)

	if _, err := f.booking.Book(ctx, session.String(), student.String()); err != nil {
		t.Fatalf("booking: %v", err)
	}

	rival := f.addStudent(t, "Rival")
	_, err := f.booking.Book(ctx, session.String(), rival.String())
	assertReason(t, err, ReasonSessionFull)

	if err := f.booking.Cancel(ctx, session.String(), student.String()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.booking.Book(ctx, session.String(), rival.String()); err != nil {
		t.Fatalf("rebooking after cancel: %v", err)
	}
}

// Проверки внутри транзакции должны держать инвариант и без advisory-чеков
// сервиса — так закрыта гонка check-then-insert.
func TestCreateChecked_RevalidatesInsideTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := repository.NewGormBookingRepository(f.db)

	branch := f.addBranch(t, "Central")
	session := f.addSession(t, branch, date(2026, time.March, 10), "10:00", 1)
	first := f.addStudent(t, "first")
	second := f.addStudent(t, "second")

	from, to := date(2026, time.March, 1), date(2026, time.March, 31)

	b1 := &model.Booking{SessionID: session, StudentID: first}
	if err := repo.CreateChecked(ctx, b1, 1, 4, from, to); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	b2 := &model.Booking{SessionID: session, StudentID: second}
	if err := repo.CreateChecked(ctx, b2, 1, 4, from, to); !errors.Is(err, repository.ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull, got %v", err)
	}

	dup := &model.Booking{SessionID: session, StudentID: first}
	if err := repo.CreateChecked(ctx, dup, 10, 4, from, to); !errors.Is(err, repository.ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}
}

func TestScheduleSession_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	branch := f.addBranch(t, "Central")

	_, err := f.booking.ScheduleSession(ctx, ScheduleSessionInput{
		BranchID: "nope", Date: date(2026, time.May, 1), StartTime: "10:00", EndTime: "11:00",
	})
	assertReason(t, err, ReasonMissingFields)

	_, err = f.booking.ScheduleSession(ctx, ScheduleSessionInput{
		BranchID: branch.String(), Date: date(2026, time.May, 1), StartTime: "11:00", EndTime: "10:00",
	})
	assertReason(t, err, ReasonMissingFields)

	session, err := f.booking.ScheduleSession(ctx, ScheduleSessionInput{
		BranchID:  branch.String(),
		Date:      date(2026, time.May, 1),
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if session.CourseType != model.CourseTypeKids {
		t.Fatalf("expected default course type kids, got %s", session.CourseType)
	}
}
