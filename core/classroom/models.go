package classroom

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// Enrollment statuses. Any status is freely reassignable to any other by the
// owning teacher; an enrollment always starts out pending.
const (
	StatusPending    = "pending"
	StatusEligible   = "eligible"
	StatusIneligible = "ineligible"
)

var AllStatuses = []string{StatusPending, StatusEligible, StatusIneligible}

// Class is owned by exactly one teacher; only the owner may read or mutate it.
type Class struct {
	ID          string    `json:"class_id"`
	TeacherID   string    `json:"teacher_id"`
	Name        string    `json:"class_name"`
	CourseCode  string    `json:"course_code"`
	Semester    string    `json:"semester"`
	Section     string    `json:"section"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// Enrollment links one student to one class; (student_id, class_id) is unique.
type Enrollment struct {
	ID        string    `json:"enrollment_id"`
	StudentID string    `json:"student_id"`
	ClassID   string    `json:"class_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// EnrolledStudent is the roster view: student details joined with their enrollment.
type EnrolledStudent struct {
	UserID       string `json:"user_id"`
	FullName     string `json:"full_name"`
	UniversityID string `json:"university_id,omitempty"`
	EnrollmentID string `json:"enrollment_id"`
	Status       string `json:"status"`
}

// NewClass contains information needed to create a Class.
// Duplicate course codes are allowed.
type NewClass struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Semester    string `json:"semester" validate:"required"`
	Section     string `json:"section" validate:"required"`
	Description string `json:"description"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Code = core.CleanString(nc.Code)
	nc.Semester = core.CleanString(nc.Semester)
	nc.Section = core.CleanString(nc.Section)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}

type NewEnrollment struct {
	StudentID string `json:"student_id" validate:"required"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	ne.StudentID = core.CleanString(ne.StudentID)
	return validate.Struct(ne)
}

// BulkEnroll selects every student matching the semester+section filter.
type BulkEnroll struct {
	SourceSemester string `json:"source_semester" validate:"required"`
	SourceSection  string `json:"source_section" validate:"required"`
}

func (be *BulkEnroll) Validate(validate *validator.Validate) error {
	be.SourceSemester = core.CleanString(be.SourceSemester)
	be.SourceSection = core.CleanString(be.SourceSection)
	return validate.Struct(be)
}

// BulkEnrollResult reports the number of students matched by the filter, not
// the number of enrollments actually inserted; already-enrolled students are
// silently skipped.
type BulkEnrollResult struct {
	StudentsProcessed int `json:"students_processed"`
}

type UpdateEnrollment struct {
	Status string `json:"status" validate:"required,enrollstatus"`
}

func (ue *UpdateEnrollment) Validate(validate *validator.Validate) error {
	ue.Status = core.CleanString(ue.Status, true /* lower */)
	return validate.Struct(ue)
}
