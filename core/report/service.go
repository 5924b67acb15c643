package report

import (
	"context"
	"time"

	"github.com/darasahq/darasa/core/classroom"
)

// upcomingWindow is the look-ahead used for the "due this week" counter.
const upcomingWindow = 7 * 24 * time.Hour

type (
	Repository interface {
		CountTeacherClasses(ctx context.Context, teacherID string) (int, error)
		// CountDistinctStudents counts distinct students enrolled across all
		// of the teacher's classes.
		CountDistinctStudents(ctx context.Context, teacherID string) (int, error)
		// CountAssignmentsDueBetween counts assignments in the teacher's
		// classes with a due date in [from, to].
		CountAssignmentsDueBetween(ctx context.Context, teacherID string, from, to time.Time) (int, error)
		// QueryStudentClasses returns every class the student is enrolled in,
		// each annotated with its teacher's full name.
		QueryStudentClasses(ctx context.Context, studentID string) ([]StudentClass, error)
	}

	Service interface {
		TeacherSummary(ctx context.Context, teacherID string) (TeacherSummary, error)
		StudentClasses(ctx context.Context, studentID string) ([]StudentClass, error)
	}

	service struct {
		repo     Repository
		classSvc classroom.Service
		nowFunc  func() time.Time // mockable
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, classSvc classroom.Service) Service {
	return &service{
		repo:     repo,
		classSvc: classSvc,
		nowFunc:  time.Now,
	}
}

func (svc *service) TeacherSummary(ctx context.Context, teacherID string) (TeacherSummary, error) {
	var summary TeacherSummary
	var err error

	if summary.Stats.ClassCount, err = svc.repo.CountTeacherClasses(ctx, teacherID); err != nil {
		return TeacherSummary{}, err
	}
	if summary.Stats.StudentCount, err = svc.repo.CountDistinctStudents(ctx, teacherID); err != nil {
		return TeacherSummary{}, err
	}
	now := svc.nowFunc().UTC()
	if summary.Stats.UpcomingDeadlines, err = svc.repo.CountAssignmentsDueBetween(ctx, teacherID, now, now.Add(upcomingWindow)); err != nil {
		return TeacherSummary{}, err
	}
	if summary.Classes, err = svc.classSvc.ListClasses(ctx, teacherID); err != nil {
		return TeacherSummary{}, err
	}
	if summary.Classes == nil {
		summary.Classes = []classroom.Class{}
	}
	return summary, nil
}

func (svc *service) StudentClasses(ctx context.Context, studentID string) ([]StudentClass, error) {
	classes, err := svc.repo.QueryStudentClasses(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if classes == nil {
		classes = []StudentClass{}
	}
	return classes, nil
}
