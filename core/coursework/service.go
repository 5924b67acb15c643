package coursework

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/classroom"
)

var (
	// errors; same anti-enumeration rule as the classroom package.
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrNoteNotFound       = errors.New("note not found")
)

type (
	Repository interface {
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		// QueryClassAssignments returns the class's assignments ordered by due date ascending.
		QueryClassAssignments(ctx context.Context, classID string) ([]Assignment, error)
		// UpdateAssignment re-verifies ownership in the mutation statement via a
		// class→teacher sub-select; zero rows affected means ErrAssignmentNotFound.
		UpdateAssignment(ctx context.Context, teacherID, assignmentID string, ua UpdateAssignment) (Assignment, error)
		DeleteAssignment(ctx context.Context, teacherID, assignmentID string) error
		CreateNote(ctx context.Context, n Note) (Note, error)
		// QueryClassNotes returns the class's notes ordered by upload time descending.
		QueryClassNotes(ctx context.Context, classID string) ([]Note, error)
		DeleteNote(ctx context.Context, teacherID, noteID string) error
	}

	Service interface {
		CreateAssignment(ctx context.Context, teacherID, classID string, na NewAssignment) (Assignment, error)
		ListAssignments(ctx context.Context, teacherID, classID string) ([]Assignment, error)
		UpdateAssignment(ctx context.Context, teacherID, assignmentID string, ua UpdateAssignment) (Assignment, error)
		DeleteAssignment(ctx context.Context, teacherID, assignmentID string) error
		CreateNote(ctx context.Context, teacherID, classID string, nn NewNote) (Note, error)
		ListNotes(ctx context.Context, teacherID, classID string) ([]Note, error)
		DeleteNote(ctx context.Context, teacherID, noteID string) error
	}

	service struct {
		repo     Repository
		classSvc classroom.Service
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, classSvc classroom.Service) Service {
	return &service{
		repo:     repo,
		classSvc: classSvc,
	}
}

func (svc *service) checkOwnership(ctx context.Context, teacherID, classID string) error {
	_, err := svc.classSvc.GetClass(ctx, teacherID, classID)
	return err
}

func (svc *service) CreateAssignment(ctx context.Context, teacherID, classID string, na NewAssignment) (Assignment, error) {
	if err := svc.checkOwnership(ctx, teacherID, classID); err != nil {
		return Assignment{}, err
	}
	return svc.repo.CreateAssignment(ctx, Assignment{
		ClassID:     classID,
		Title:       na.Title,
		Description: na.Description,
		DueDate:     na.DueDate.UTC(),
		CreatedAt:   time.Now().UTC(),
	})
}

func (svc *service) ListAssignments(ctx context.Context, teacherID, classID string) ([]Assignment, error) {
	if err := svc.checkOwnership(ctx, teacherID, classID); err != nil {
		return nil, err
	}
	return svc.repo.QueryClassAssignments(ctx, classID)
}

func (svc *service) UpdateAssignment(ctx context.Context, teacherID, assignmentID string, ua UpdateAssignment) (Assignment, error) {
	ua.DueDate = ua.DueDate.UTC()
	return svc.repo.UpdateAssignment(ctx, teacherID, assignmentID, ua)
}

func (svc *service) DeleteAssignment(ctx context.Context, teacherID, assignmentID string) error {
	return svc.repo.DeleteAssignment(ctx, teacherID, assignmentID)
}

func (svc *service) CreateNote(ctx context.Context, teacherID, classID string, nn NewNote) (Note, error) {
	if err := svc.checkOwnership(ctx, teacherID, classID); err != nil {
		return Note{}, err
	}
	return svc.repo.CreateNote(ctx, Note{
		ClassID:    classID,
		Title:      nn.Title,
		DriveLink:  nn.DriveLink,
		UploadedAt: time.Now().UTC(),
	})
}

func (svc *service) ListNotes(ctx context.Context, teacherID, classID string) ([]Note, error) {
	if err := svc.checkOwnership(ctx, teacherID, classID); err != nil {
		return nil, err
	}
	return svc.repo.QueryClassNotes(ctx, classID)
}

func (svc *service) DeleteNote(ctx context.Context, teacherID, noteID string) error {
	return svc.repo.DeleteNote(ctx, teacherID, noteID)
}
