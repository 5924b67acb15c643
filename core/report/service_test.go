package report

import (
	"context"
	"testing"
	"time"

	"github.com/darasahq/darasa/core/classroom"
)

// stubRepo records the window passed to CountAssignmentsDueBetween.
type stubRepo struct {
	classCount   int
	studentCount int
	dueCount     int
	gotFrom      time.Time
	gotTo        time.Time
}

var _ Repository = (*stubRepo)(nil)

func (r *stubRepo) CountTeacherClasses(ctx context.Context, teacherID string) (int, error) {
	return r.classCount, nil
}

func (r *stubRepo) CountDistinctStudents(ctx context.Context, teacherID string) (int, error) {
	return r.studentCount, nil
}

func (r *stubRepo) CountAssignmentsDueBetween(ctx context.Context, teacherID string, from, to time.Time) (int, error) {
	r.gotFrom, r.gotTo = from, to
	return r.dueCount, nil
}

func (r *stubRepo) QueryStudentClasses(ctx context.Context, studentID string) ([]StudentClass, error) {
	return nil, nil
}

type stubClassService struct {
	classroom.Service
	classes []classroom.Class
}

func (s *stubClassService) ListClasses(ctx context.Context, teacherID string) ([]classroom.Class, error) {
	return s.classes, nil
}

func TestTeacherSummaryWindow(t *testing.T) {
	repo := &stubRepo{classCount: 3, studentCount: 12, dueCount: 2}
	now := time.Date(2021, 3, 15, 9, 0, 0, 0, time.UTC)
	svc := NewServiceMock(repo, &stubClassService{}, func() time.Time { return now })

	summary, err := svc.TeacherSummary(context.Background(), "t1")
	if err != nil {
		t.Fatalf("TeacherSummary() failed: %v", err)
	}

	want := TeacherStats{ClassCount: 3, StudentCount: 12, UpcomingDeadlines: 2}
	if summary.Stats != want {
		t.Errorf("stats = %+v; want %+v", summary.Stats, want)
	}
	if !repo.gotFrom.Equal(now) {
		t.Errorf("window start = %v; want %v", repo.gotFrom, now)
	}
	if wantTo := now.Add(7 * 24 * time.Hour); !repo.gotTo.Equal(wantTo) {
		t.Errorf("window end = %v; want %v", repo.gotTo, wantTo)
	}
	if summary.Classes == nil || len(summary.Classes) != 0 {
		t.Errorf("classes = %v; want empty non-nil list", summary.Classes)
	}
}

func TestStudentClassesNeverNil(t *testing.T) {
	svc := NewServiceMock(&stubRepo{}, &stubClassService{}, time.Now)

	classes, err := svc.StudentClasses(context.Background(), "s1")
	if err != nil {
		t.Fatalf("StudentClasses() failed: %v", err)
	}
	if classes == nil || len(classes) != 0 {
		t.Errorf("classes = %v; want empty non-nil list", classes)
	}
}
