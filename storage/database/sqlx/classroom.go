package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/user"
)

const classColumns = `class_id, teacher_id, class_name, course_code, semester, section, description, created_at`

type classroomRepository struct {
	db *sqlx.DB
}

var _ classroom.Repository = (*classroomRepository)(nil)

func NewClassroomRepository(db *sqlx.DB) *classroomRepository {
	return &classroomRepository{db: db}
}

type (
	classRow struct {
		ID          string    `db:"class_id"`
		TeacherID   string    `db:"teacher_id"`
		Name        string    `db:"class_name"`
		CourseCode  string    `db:"course_code"`
		Semester    string    `db:"semester"`
		Section     string    `db:"section"`
		Description string    `db:"description"`
		CreatedAt   time.Time `db:"created_at"`
	}

	enrollmentRow struct {
		ID        string    `db:"enrollment_id"`
		StudentID string    `db:"student_id"`
		ClassID   string    `db:"class_id"`
		Status    string    `db:"status"`
		CreatedAt time.Time `db:"created_at"`
	}

	enrolledStudentRow struct {
		UserID       string      `db:"user_id"`
		FullName     string      `db:"full_name"`
		UniversityID null.String `db:"university_id"`
		EnrollmentID string      `db:"enrollment_id"`
		Status       string      `db:"status"`
	}
)

func (repo classroomRepository) fromClassRow(row classRow) classroom.Class {
	return classroom.Class{
		ID:          row.ID,
		TeacherID:   row.TeacherID,
		Name:        row.Name,
		CourseCode:  row.CourseCode,
		Semester:    row.Semester,
		Section:     row.Section,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}

func (repo classroomRepository) fromEnrolledStudentRow(row enrolledStudentRow) classroom.EnrolledStudent {
	return classroom.EnrolledStudent{
		UserID:       row.UserID,
		FullName:     row.FullName,
		UniversityID: row.UniversityID.String,
		EnrollmentID: row.EnrollmentID,
		Status:       row.Status,
	}
}

func (repo classroomRepository) CreateClass(ctx context.Context, cls classroom.Class) (classroom.Class, error) {
	cls.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO classes (`+classColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cls.ID, cls.TeacherID, cls.Name, cls.CourseCode, cls.Semester, cls.Section, cls.Description, cls.CreatedAt.UTC())
	if err != nil {
		return classroom.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo classroomRepository) QueryTeacherClasses(ctx context.Context, teacherID string) ([]classroom.Class, error) {
	var rows []classRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+classColumns+` FROM classes WHERE teacher_id = $1 ORDER BY created_at DESC`, teacherID)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	classes := make([]classroom.Class, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, repo.fromClassRow(row))
	}
	return classes, nil
}

func (repo classroomRepository) GetClass(ctx context.Context, teacherID, classID string) (classroom.Class, error) {
	if _, err := uuid.Parse(classID); err != nil {
		return classroom.Class{}, classroom.ErrNotFound
	}
	var row classRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+classColumns+` FROM classes WHERE class_id = $1 AND teacher_id = $2`, classID, teacherID)
	if err != nil {
		return classroom.Class{}, trapNoRowsErr(err, classroom.ErrNotFound, "finding class")
	}
	return repo.fromClassRow(row), nil
}

func (repo classroomRepository) DeleteClass(ctx context.Context, teacherID, classID string) error {
	if _, err := uuid.Parse(classID); err != nil {
		return classroom.ErrNotFound
	}
	res, err := repo.db.ExecContext(ctx,
		`DELETE FROM classes WHERE class_id = $1 AND teacher_id = $2`, classID, teacherID)
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return classroom.ErrNotFound
	}
	return nil
}

func (repo classroomRepository) OwnsClass(ctx context.Context, teacherID, classID string) (bool, error) {
	if _, err := uuid.Parse(classID); err != nil {
		return false, nil
	}
	var owns bool
	err := repo.db.GetContext(ctx, &owns,
		`SELECT EXISTS (SELECT 1 FROM classes WHERE class_id = $1 AND teacher_id = $2)`, classID, teacherID)
	if err != nil {
		return false, errors.Wrap(err, "checking class ownership")
	}
	return owns, nil
}

func (repo classroomRepository) QueryEnrolledStudents(ctx context.Context, classID string) ([]classroom.EnrolledStudent, error) {
	var rows []enrolledStudentRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT u.user_id, u.full_name, u.university_id, e.enrollment_id, e.status
		 FROM users u
		 JOIN enrollments e ON u.user_id = e.student_id
		 WHERE e.class_id = $1
		 ORDER BY u.full_name`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying enrolled students")
	}
	students := make([]classroom.EnrolledStudent, 0, len(rows))
	for _, row := range rows {
		students = append(students, repo.fromEnrolledStudentRow(row))
	}
	return students, nil
}

func (repo classroomRepository) CreateEnrollment(ctx context.Context, enr classroom.Enrollment) (classroom.EnrolledStudent, error) {
	// the student ID comes from the request body; a malformed one would
	// otherwise surface as a postgres uuid cast error
	if _, err := uuid.Parse(enr.StudentID); err != nil {
		return classroom.EnrolledStudent{}, user.ErrNotFound
	}
	enr.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO enrollments (enrollment_id, student_id, class_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		enr.ID, enr.StudentID, enr.ClassID, enr.Status, enr.CreatedAt.UTC())
	if err != nil {
		if violatesUnique(err, "enrollments_student_id_class_id_key") {
			return classroom.EnrolledStudent{}, classroom.ErrAlreadyEnrolled
		}
		if violatesForeignKey(err, "enrollments_student_id_fkey") {
			return classroom.EnrolledStudent{}, user.ErrNotFound
		}
		return classroom.EnrolledStudent{}, errors.Wrap(err, "inserting enrollment")
	}

	var row enrolledStudentRow
	err = repo.db.GetContext(ctx, &row,
		`SELECT u.user_id, u.full_name, u.university_id, e.enrollment_id, e.status
		 FROM users u
		 JOIN enrollments e ON u.user_id = e.student_id
		 WHERE e.enrollment_id = $1`, enr.ID)
	if err != nil {
		return classroom.EnrolledStudent{}, errors.Wrap(err, "finding enrolled student")
	}
	return repo.fromEnrolledStudentRow(row), nil
}

func (repo classroomRepository) BulkCreateEnrollments(ctx context.Context, classID, semester, section string, createdAt time.Time) (int, error) {
	var studentIDs []string
	err := repo.db.SelectContext(ctx, &studentIDs,
		`SELECT user_id FROM users WHERE role = 'student' AND semester = $1 AND section = $2`, semester, section)
	if err != nil {
		return 0, errors.Wrap(err, "querying matching students")
	}

	// one insert per student; already-enrolled students are silently skipped
	for _, studentID := range studentIDs {
		_, err = repo.db.ExecContext(ctx,
			`INSERT INTO enrollments (enrollment_id, student_id, class_id, status, created_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (student_id, class_id) DO NOTHING`,
			uuid.New().String(), studentID, classID, classroom.StatusPending, createdAt.UTC())
		if err != nil {
			return 0, errors.Wrap(err, "bulk inserting enrollment")
		}
	}
	return len(studentIDs), nil
}

func (repo classroomRepository) UpdateEnrollmentStatus(ctx context.Context, teacherID, enrollmentID, status string) (classroom.Enrollment, error) {
	if _, err := uuid.Parse(enrollmentID); err != nil {
		return classroom.Enrollment{}, classroom.ErrEnrollmentNotFound
	}
	var row enrollmentRow
	err := repo.db.GetContext(ctx, &row,
		`UPDATE enrollments SET status = $1
		 WHERE enrollment_id = $2
		 AND class_id IN (SELECT class_id FROM classes WHERE teacher_id = $3)
		 RETURNING enrollment_id, student_id, class_id, status, created_at`,
		status, enrollmentID, teacherID)
	if err != nil {
		return classroom.Enrollment{}, trapNoRowsErr(err, classroom.ErrEnrollmentNotFound, "updating enrollment status")
	}
	return classroom.Enrollment{
		ID:        row.ID,
		StudentID: row.StudentID,
		ClassID:   row.ClassID,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (repo classroomRepository) DeleteEnrollment(ctx context.Context, teacherID, enrollmentID string) error {
	if _, err := uuid.Parse(enrollmentID); err != nil {
		return classroom.ErrEnrollmentNotFound
	}
	res, err := repo.db.ExecContext(ctx,
		`DELETE FROM enrollments
		 WHERE enrollment_id = $1
		 AND class_id IN (SELECT class_id FROM classes WHERE teacher_id = $2)`,
		enrollmentID, teacherID)
	if err != nil {
		return errors.Wrap(err, "deleting enrollment")
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return classroom.ErrEnrollmentNotFound
	}
	return nil
}
