package report

import (
	"github.com/darasahq/darasa/core/classroom"
)

// TeacherStats are the teacher home view counters, recomputed on every call.
type TeacherStats struct {
	ClassCount        int `json:"class_count"`
	StudentCount      int `json:"student_count"`
	UpcomingDeadlines int `json:"upcoming_deadlines"`
}

// TeacherSummary combines the counters with the teacher's class list.
type TeacherSummary struct {
	Stats   TeacherStats      `json:"stats"`
	Classes []classroom.Class `json:"classes"`
}

// StudentClass is a class the student is enrolled in, annotated with the
// owning teacher's display name and the enrollment status.
type StudentClass struct {
	classroom.Class
	TeacherName      string `json:"teacher_name"`
	EnrollmentStatus string `json:"enrollment_status"`
}
