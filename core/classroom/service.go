package classroom

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// errors.
	// Absent and not-owned resources are deliberately indistinguishable:
	// both report "not found" so callers cannot probe other teachers' data.
	ErrNotFound           = errors.New("class not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this class")
	ErrNoStudentsMatched  = errors.New("no students matched the given semester and section")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		// QueryTeacherClasses returns all classes owned by the teacher, newest first.
		QueryTeacherClasses(ctx context.Context, teacherID string) ([]Class, error)
		GetClass(ctx context.Context, teacherID, classID string) (Class, error)
		// DeleteClass removes the class; the store cascades the removal of its
		// enrollments, assignments and notes.
		DeleteClass(ctx context.Context, teacherID, classID string) error
		// OwnsClass is the single ownership predicate used by every
		// class-scoped operation in this and dependent packages.
		OwnsClass(ctx context.Context, teacherID, classID string) (bool, error)
		QueryEnrolledStudents(ctx context.Context, classID string) ([]EnrolledStudent, error)
		// CreateEnrollment fails with ErrAlreadyEnrolled on a duplicate
		// (student_id, class_id) pair and returns the joined roster view.
		CreateEnrollment(ctx context.Context, enr Enrollment) (EnrolledStudent, error)
		// BulkCreateEnrollments enrolls every student matching the filter,
		// skipping existing enrollments, and returns the matched student count.
		BulkCreateEnrollments(ctx context.Context, classID, semester, section string, createdAt time.Time) (int, error)
		UpdateEnrollmentStatus(ctx context.Context, teacherID, enrollmentID, status string) (Enrollment, error)
		DeleteEnrollment(ctx context.Context, teacherID, enrollmentID string) error
	}

	Service interface {
		CreateClass(ctx context.Context, teacherID string, nc NewClass) (Class, error)
		ListClasses(ctx context.Context, teacherID string) ([]Class, error)
		GetClass(ctx context.Context, teacherID, classID string) (Class, error)
		DeleteClass(ctx context.Context, teacherID, classID string) error
		ListEnrolled(ctx context.Context, teacherID, classID string) ([]EnrolledStudent, error)
		AddEnrollment(ctx context.Context, teacherID, classID, studentID string) (EnrolledStudent, error)
		BulkEnroll(ctx context.Context, teacherID, classID string, be BulkEnroll) (BulkEnrollResult, error)
		UpdateEnrollmentStatus(ctx context.Context, teacherID, enrollmentID, status string) (Enrollment, error)
		RemoveEnrollment(ctx context.Context, teacherID, enrollmentID string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) CreateClass(ctx context.Context, teacherID string, nc NewClass) (Class, error) {
	return svc.repo.CreateClass(ctx, Class{
		TeacherID:   teacherID,
		Name:        nc.Name,
		CourseCode:  nc.Code,
		Semester:    nc.Semester,
		Section:     nc.Section,
		Description: nc.Description,
		CreatedAt:   time.Now().UTC(),
	})
}

func (svc *service) ListClasses(ctx context.Context, teacherID string) ([]Class, error) {
	return svc.repo.QueryTeacherClasses(ctx, teacherID)
}

func (svc *service) GetClass(ctx context.Context, teacherID, classID string) (Class, error) {
	return svc.repo.GetClass(ctx, teacherID, classID)
}

func (svc *service) DeleteClass(ctx context.Context, teacherID, classID string) error {
	return svc.repo.DeleteClass(ctx, teacherID, classID)
}

func (svc *service) checkOwnership(ctx context.Context, teacherID, classID string) error {
	owns, err := svc.repo.OwnsClass(ctx, teacherID, classID)
	if err != nil {
		return errors.Wrap(err, "checking class ownership")
	}
	if !owns {
		return ErrNotFound
	}
	return nil
}

func (svc *service) ListEnrolled(ctx context.Context, teacherID, classID string) ([]EnrolledStudent, error) {
	if err := svc.checkOwnership(ctx, teacherID, classID); err != nil {
		return nil, err
	}
	return svc.repo.QueryEnrolledStudents(ctx, classID)
}

func (svc *service) AddEnrollment(ctx context.Context, teacherID, classID, studentID string) (EnrolledStudent, error) {
	if err := svc.checkOwnership(ctx, teacherID, classID); err != nil {
		return EnrolledStudent{}, err
	}
	return svc.repo.CreateEnrollment(ctx, Enrollment{
		StudentID: studentID,
		ClassID:   classID,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *service) BulkEnroll(ctx context.Context, teacherID, classID string, be BulkEnroll) (BulkEnrollResult, error) {
	if err := svc.checkOwnership(ctx, teacherID, classID); err != nil {
		return BulkEnrollResult{}, err
	}

	matched, err := svc.repo.BulkCreateEnrollments(ctx, classID, be.SourceSemester, be.SourceSection, time.Now().UTC())
	if err != nil {
		return BulkEnrollResult{}, err
	}
	if matched == 0 {
		return BulkEnrollResult{}, ErrNoStudentsMatched
	}
	return BulkEnrollResult{StudentsProcessed: matched}, nil
}

func (svc *service) UpdateEnrollmentStatus(ctx context.Context, teacherID, enrollmentID, status string) (Enrollment, error) {
	return svc.repo.UpdateEnrollmentStatus(ctx, teacherID, enrollmentID, status)
}

func (svc *service) RemoveEnrollment(ctx context.Context, teacherID, enrollmentID string) error {
	return svc.repo.DeleteEnrollment(ctx, teacherID, enrollmentID)
}
