package schedule

import (
	"context"
	"errors"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
)

var ErrMissingStudent = errors.New("student id is required")

// Источник данных об абонементах.
// В реале это обёртка над БД, в тестах — мок.
type EnrollmentStore interface {
	FindCurrentByStudent(ctx context.Context, studentID string) (*model.Enrollment, error)
}

// Эффективные параметры бронирования, выведенные из абонемента ученика.
// Если абонемента нет, BranchID остаётся пустым: фильтр по филиалу в этом
// случае не должен «расширяться» до всех филиалов.
type EffectiveEnrollment struct {
	HasEnrollment bool
	BranchID      string
	CourseType    model.CourseType
	Quota         int
}

// ResolveEnrollment:
//   - проверяет идентификатор ученика;
//   - берёт самый свежий active/trial абонемент из хранилища;
//   - при его отсутствии деградирует к fallback-типу курса и дефолтной квоте;
//   - возвращает нормализованный результат.
func ResolveEnrollment(
	ctx context.Context,
	store EnrollmentStore,
	studentID string,
	fallbackCourseType model.CourseType,
	defaultQuota int,
) (EffectiveEnrollment, error) {
	if studentID == "" {
		return EffectiveEnrollment{}, ErrMissingStudent
	}
	if fallbackCourseType == "" {
		fallbackCourseType = model.CourseTypeKids
	}

	e, err := store.FindCurrentByStudent(ctx, studentID)
	if err != nil {
		return EffectiveEnrollment{}, err
	}
	if e == nil {
		return EffectiveEnrollment{
			HasEnrollment: false,
			CourseType:    fallbackCourseType,
			Quota:         defaultQuota,
		}, nil
	}

	courseType := e.CourseType
	if courseType == "" {
		courseType = fallbackCourseType
	}
	quota := e.SessionsPerMonth
	if quota <= 0 {
		quota = defaultQuota
	}

	return EffectiveEnrollment{
		HasEnrollment: true,
		BranchID:      e.BranchID.String(),
		CourseType:    courseType,
		Quota:         quota,
	}, nil
}
