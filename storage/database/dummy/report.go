package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/darasahq/darasa/core/report"
)

type reportRepository struct {
	db *DB
}

var _ report.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *DB) report.Repository {
	return &reportRepository{db: db}
}

func (repo *reportRepository) CountTeacherClasses(ctx context.Context, teacherID string) (int, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()

	var count int
	for _, cls := range repo.db.class.table {
		if cls.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

func (repo *reportRepository) CountDistinctStudents(ctx context.Context, teacherID string) (int, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()
	repo.db.enrollment.RLock()
	defer repo.db.enrollment.RUnlock()

	students := make(map[string]struct{})
	for _, enr := range repo.db.enrollment.table {
		if cls, ok := repo.db.class.table[enr.ClassID]; ok && cls.TeacherID == teacherID {
			students[enr.StudentID] = struct{}{}
		}
	}
	return len(students), nil
}

func (repo *reportRepository) CountAssignmentsDueBetween(ctx context.Context, teacherID string, from, to time.Time) (int, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()
	repo.db.assignment.RLock()
	defer repo.db.assignment.RUnlock()

	var count int
	for _, a := range repo.db.assignment.table {
		cls, ok := repo.db.class.table[a.ClassID]
		if !ok || cls.TeacherID != teacherID {
			continue
		}
		if !a.DueDate.Before(from) && !a.DueDate.After(to) {
			count++
		}
	}
	return count, nil
}

func (repo *reportRepository) QueryStudentClasses(ctx context.Context, studentID string) ([]report.StudentClass, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()
	repo.db.enrollment.RLock()
	defer repo.db.enrollment.RUnlock()
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	var classes []report.StudentClass
	for _, enr := range repo.db.enrollment.table {
		if enr.StudentID != studentID {
			continue
		}
		cls, ok := repo.db.class.table[enr.ClassID]
		if !ok {
			continue
		}
		sc := report.StudentClass{
			Class:            *cls,
			EnrollmentStatus: enr.Status,
		}
		if teacher, ok := repo.db.user.table[cls.TeacherID]; ok {
			sc.TeacherName = teacher.FullName
		}
		classes = append(classes, sc)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].CreatedAt.After(classes[j].CreatedAt) })
	return classes, nil
}
