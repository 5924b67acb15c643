package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/report"
)

type reportRepository struct {
	db *sqlx.DB
}

var _ report.Repository = (*reportRepository)(nil)

func NewReportRepository(db *sqlx.DB) *reportRepository {
	return &reportRepository{db: db}
}

func (repo reportRepository) CountTeacherClasses(ctx context.Context, teacherID string) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM classes WHERE teacher_id = $1`, teacherID)
	if err != nil {
		return 0, errors.Wrap(err, "counting classes")
	}
	return count, nil
}

func (repo reportRepository) CountDistinctStudents(ctx context.Context, teacherID string) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count,
		`SELECT COUNT(DISTINCT e.student_id)
		 FROM enrollments e
		 JOIN classes c ON e.class_id = c.class_id
		 WHERE c.teacher_id = $1`, teacherID)
	if err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return count, nil
}

func (repo reportRepository) CountAssignmentsDueBetween(ctx context.Context, teacherID string, from, to time.Time) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count,
		`SELECT COUNT(*)
		 FROM assignments a
		 JOIN classes c ON a.class_id = c.class_id
		 WHERE c.teacher_id = $1 AND a.due_date BETWEEN $2 AND $3`,
		teacherID, from, to)
	if err != nil {
		return 0, errors.Wrap(err, "counting upcoming deadlines")
	}
	return count, nil
}

type studentClassRow struct {
	classRow
	TeacherName      string `db:"teacher_name"`
	EnrollmentStatus string `db:"enrollment_status"`
}

func (repo reportRepository) QueryStudentClasses(ctx context.Context, studentID string) ([]report.StudentClass, error) {
	var rows []studentClassRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT c.class_id, c.teacher_id, c.class_name, c.course_code, c.semester, c.section, c.description, c.created_at,
		        u.full_name AS teacher_name, e.status AS enrollment_status
		 FROM enrollments e
		 JOIN classes c ON e.class_id = c.class_id
		 JOIN users u ON c.teacher_id = u.user_id
		 WHERE e.student_id = $1
		 ORDER BY c.created_at DESC`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying student classes")
	}
	classes := make([]report.StudentClass, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, report.StudentClass{
			Class: classroom.Class{
				ID:          row.ID,
				TeacherID:   row.TeacherID,
				Name:        row.Name,
				CourseCode:  row.CourseCode,
				Semester:    row.Semester,
				Section:     row.Section,
				Description: row.Description,
				CreatedAt:   row.CreatedAt,
			},
			TeacherName:      row.TeacherName,
			EnrollmentStatus: row.EnrollmentStatus,
		})
	}
	return classes, nil
}
