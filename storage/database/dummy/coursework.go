package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core/coursework"
)

type courseworkRepository struct {
	db *DB
}

var _ coursework.Repository = (*courseworkRepository)(nil) // interface compliance check

func NewCourseworkRepository(db *DB) coursework.Repository {
	return &courseworkRepository{db: db}
}

func (repo *courseworkRepository) CreateAssignment(ctx context.Context, a coursework.Assignment) (coursework.Assignment, error) {
	repo.db.assignment.Lock()
	defer repo.db.assignment.Unlock()

	a.ID = uuid.New().String()
	repo.db.assignment.table[a.ID] = &a
	return a, nil
}

func (repo *courseworkRepository) QueryClassAssignments(ctx context.Context, classID string) ([]coursework.Assignment, error) {
	repo.db.assignment.RLock()
	defer repo.db.assignment.RUnlock()

	var assignments []coursework.Assignment
	for _, a := range repo.db.assignment.table {
		if a.ClassID == classID {
			assignments = append(assignments, *a)
		}
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].DueDate.Before(assignments[j].DueDate) })
	return assignments, nil
}

func (repo *courseworkRepository) UpdateAssignment(ctx context.Context, teacherID, assignmentID string, ua coursework.UpdateAssignment) (coursework.Assignment, error) {
	// lock order: class before assignment, same as DeleteClass's cascade
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()
	repo.db.assignment.Lock()
	defer repo.db.assignment.Unlock()

	a, ok := repo.db.assignment.table[assignmentID]
	if !ok || !repo.teacherOwns(teacherID, a.ClassID) {
		return coursework.Assignment{}, coursework.ErrAssignmentNotFound
	}
	a.Title = ua.Title
	a.Description = ua.Description
	a.DueDate = ua.DueDate
	return *a, nil
}

func (repo *courseworkRepository) DeleteAssignment(ctx context.Context, teacherID, assignmentID string) error {
	// lock order: class before assignment, same as DeleteClass's cascade
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()
	repo.db.assignment.Lock()
	defer repo.db.assignment.Unlock()

	a, ok := repo.db.assignment.table[assignmentID]
	if !ok || !repo.teacherOwns(teacherID, a.ClassID) {
		return coursework.ErrAssignmentNotFound
	}
	delete(repo.db.assignment.table, assignmentID)
	return nil
}

func (repo *courseworkRepository) CreateNote(ctx context.Context, n coursework.Note) (coursework.Note, error) {
	repo.db.note.Lock()
	defer repo.db.note.Unlock()

	n.ID = uuid.New().String()
	repo.db.note.table[n.ID] = &n
	return n, nil
}

func (repo *courseworkRepository) QueryClassNotes(ctx context.Context, classID string) ([]coursework.Note, error) {
	repo.db.note.RLock()
	defer repo.db.note.RUnlock()

	var notes []coursework.Note
	for _, n := range repo.db.note.table {
		if n.ClassID == classID {
			notes = append(notes, *n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].UploadedAt.After(notes[j].UploadedAt) })
	return notes, nil
}

func (repo *courseworkRepository) DeleteNote(ctx context.Context, teacherID, noteID string) error {
	// lock order: class before note, same as DeleteClass's cascade
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()
	repo.db.note.Lock()
	defer repo.db.note.Unlock()

	n, ok := repo.db.note.table[noteID]
	if !ok || !repo.teacherOwns(teacherID, n.ClassID) {
		return coursework.ErrNoteNotFound
	}
	delete(repo.db.note.table, noteID)
	return nil
}

// teacherOwns reports whether classID belongs to teacherID.
// The caller must hold the class lock.
func (repo *courseworkRepository) teacherOwns(teacherID, classID string) bool {
	cls, ok := repo.db.class.table[classID]
	return ok && cls.TeacherID == teacherID
}
