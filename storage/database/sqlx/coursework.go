package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/coursework"
)

const (
	assignmentColumns = `assignment_id, class_id, title, description, due_date, created_at`
	noteColumns       = `note_id, class_id, title, drive_link, uploaded_at`
)

type courseworkRepository struct {
	db *sqlx.DB
}

var _ coursework.Repository = (*courseworkRepository)(nil)

func NewCourseworkRepository(db *sqlx.DB) *courseworkRepository {
	return &courseworkRepository{db: db}
}

type (
	assignmentRow struct {
		ID          string    `db:"assignment_id"`
		ClassID     string    `db:"class_id"`
		Title       string    `db:"title"`
		Description string    `db:"description"`
		DueDate     time.Time `db:"due_date"`
		CreatedAt   time.Time `db:"created_at"`
	}

	noteRow struct {
		ID         string    `db:"note_id"`
		ClassID    string    `db:"class_id"`
		Title      string    `db:"title"`
		DriveLink  string    `db:"drive_link"`
		UploadedAt time.Time `db:"uploaded_at"`
	}
)

func (repo courseworkRepository) fromAssignmentRow(row assignmentRow) coursework.Assignment {
	return coursework.Assignment{
		ID:          row.ID,
		ClassID:     row.ClassID,
		Title:       row.Title,
		Description: row.Description,
		DueDate:     row.DueDate,
		CreatedAt:   row.CreatedAt,
	}
}

func (repo courseworkRepository) fromNoteRow(row noteRow) coursework.Note {
	return coursework.Note{
		ID:         row.ID,
		ClassID:    row.ClassID,
		Title:      row.Title,
		DriveLink:  row.DriveLink,
		UploadedAt: row.UploadedAt,
	}
}

func (repo courseworkRepository) CreateAssignment(ctx context.Context, a coursework.Assignment) (coursework.Assignment, error) {
	a.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO assignments (`+assignmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.ClassID, a.Title, a.Description, a.DueDate, a.CreatedAt)
	if err != nil {
		return coursework.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return a, nil
}

func (repo courseworkRepository) QueryClassAssignments(ctx context.Context, classID string) ([]coursework.Assignment, error) {
	var rows []assignmentRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+assignmentColumns+` FROM assignments WHERE class_id = $1 ORDER BY due_date ASC`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	assignments := make([]coursework.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, repo.fromAssignmentRow(row))
	}
	return assignments, nil
}

func (repo courseworkRepository) UpdateAssignment(ctx context.Context, teacherID, assignmentID string, ua coursework.UpdateAssignment) (coursework.Assignment, error) {
	if _, err := uuid.Parse(assignmentID); err != nil {
		return coursework.Assignment{}, coursework.ErrAssignmentNotFound
	}
	var row assignmentRow
	err := repo.db.GetContext(ctx, &row,
		`UPDATE assignments SET title = $1, description = $2, due_date = $3
		 WHERE assignment_id = $4
		 AND class_id IN (SELECT class_id FROM classes WHERE teacher_id = $5)
		 RETURNING `+assignmentColumns,
		ua.Title, ua.Description, ua.DueDate, assignmentID, teacherID)
	if err != nil {
		return coursework.Assignment{}, trapNoRowsErr(err, coursework.ErrAssignmentNotFound, "updating assignment")
	}
	return repo.fromAssignmentRow(row), nil
}

func (repo courseworkRepository) DeleteAssignment(ctx context.Context, teacherID, assignmentID string) error {
	if _, err := uuid.Parse(assignmentID); err != nil {
		return coursework.ErrAssignmentNotFound
	}
	res, err := repo.db.ExecContext(ctx,
		`DELETE FROM assignments
		 WHERE assignment_id = $1
		 AND class_id IN (SELECT class_id FROM classes WHERE teacher_id = $2)`,
		assignmentID, teacherID)
	if err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return coursework.ErrAssignmentNotFound
	}
	return nil
}

func (repo courseworkRepository) CreateNote(ctx context.Context, n coursework.Note) (coursework.Note, error) {
	n.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.ClassID, n.Title, n.DriveLink, n.UploadedAt)
	if err != nil {
		return coursework.Note{}, errors.Wrap(err, "inserting note")
	}
	return n, nil
}

func (repo courseworkRepository) QueryClassNotes(ctx context.Context, classID string) ([]coursework.Note, error) {
	var rows []noteRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+noteColumns+` FROM notes WHERE class_id = $1 ORDER BY uploaded_at DESC`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	notes := make([]coursework.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, repo.fromNoteRow(row))
	}
	return notes, nil
}

func (repo courseworkRepository) DeleteNote(ctx context.Context, teacherID, noteID string) error {
	if _, err := uuid.Parse(noteID); err != nil {
		return coursework.ErrNoteNotFound
	}
	res, err := repo.db.ExecContext(ctx,
		`DELETE FROM notes
		 WHERE note_id = $1
		 AND class_id IN (SELECT class_id FROM classes WHERE teacher_id = $2)`,
		noteID, teacherID)
	if err != nil {
		return errors.Wrap(err, "deleting note")
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return coursework.ErrNoteNotFound
	}
	return nil
}
