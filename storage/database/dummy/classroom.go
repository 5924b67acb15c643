package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/user"
)

type classroomRepository struct {
	db *DB
}

var _ classroom.Repository = (*classroomRepository)(nil) // interface compliance check

func NewClassroomRepository(db *DB) classroom.Repository {
	return &classroomRepository{db: db}
}

func (repo *classroomRepository) CreateClass(ctx context.Context, cls classroom.Class) (classroom.Class, error) {
	repo.db.class.Lock()
	defer repo.db.class.Unlock()

	cls.ID = uuid.New().String()
	repo.db.class.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classroomRepository) QueryTeacherClasses(ctx context.Context, teacherID string) ([]classroom.Class, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()

	var classes []classroom.Class
	for _, cls := range repo.db.class.table {
		if cls.TeacherID == teacherID {
			classes = append(classes, *cls)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].CreatedAt.After(classes[j].CreatedAt) })
	return classes, nil
}

func (repo *classroomRepository) GetClass(ctx context.Context, teacherID, classID string) (classroom.Class, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()

	if cls, ok := repo.db.class.table[classID]; ok && cls.TeacherID == teacherID {
		return *cls, nil
	}
	return classroom.Class{}, classroom.ErrNotFound
}

func (repo *classroomRepository) DeleteClass(ctx context.Context, teacherID, classID string) error {
	repo.db.class.Lock()
	defer repo.db.class.Unlock()

	cls, ok := repo.db.class.table[classID]
	if !ok || cls.TeacherID != teacherID {
		return classroom.ErrNotFound
	}
	delete(repo.db.class.table, classID)

	// cascade, like the real store's foreign keys
	repo.db.enrollment.Lock()
	for id, enr := range repo.db.enrollment.table {
		if enr.ClassID == classID {
			delete(repo.db.enrollment.table, id)
		}
	}
	repo.db.enrollment.Unlock()

	repo.db.assignment.Lock()
	for id, a := range repo.db.assignment.table {
		if a.ClassID == classID {
			delete(repo.db.assignment.table, id)
		}
	}
	repo.db.assignment.Unlock()

	repo.db.note.Lock()
	for id, n := range repo.db.note.table {
		if n.ClassID == classID {
			delete(repo.db.note.table, id)
		}
	}
	repo.db.note.Unlock()

	return nil
}

func (repo *classroomRepository) OwnsClass(ctx context.Context, teacherID, classID string) (bool, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()

	cls, ok := repo.db.class.table[classID]
	return ok && cls.TeacherID == teacherID, nil
}

func (repo *classroomRepository) enrolledStudent(enr classroom.Enrollment) classroom.EnrolledStudent {
	es := classroom.EnrolledStudent{
		UserID:       enr.StudentID,
		EnrollmentID: enr.ID,
		Status:       enr.Status,
	}
	if usr, ok := repo.db.user.table[enr.StudentID]; ok {
		es.FullName = usr.FullName
		es.UniversityID = usr.UniversityID
	}
	return es
}

func (repo *classroomRepository) QueryEnrolledStudents(ctx context.Context, classID string) ([]classroom.EnrolledStudent, error) {
	repo.db.enrollment.RLock()
	defer repo.db.enrollment.RUnlock()
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	var students []classroom.EnrolledStudent
	for _, enr := range repo.db.enrollment.table {
		if enr.ClassID == classID {
			students = append(students, repo.enrolledStudent(*enr))
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].FullName < students[j].FullName })
	return students, nil
}

func (repo *classroomRepository) CreateEnrollment(ctx context.Context, enr classroom.Enrollment) (classroom.EnrolledStudent, error) {
	repo.db.enrollment.Lock()
	defer repo.db.enrollment.Unlock()
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	// the real store rejects unknown students via the foreign key
	if _, ok := repo.db.user.table[enr.StudentID]; !ok {
		return classroom.EnrolledStudent{}, user.ErrNotFound
	}

	for _, existing := range repo.db.enrollment.table {
		if existing.StudentID == enr.StudentID && existing.ClassID == enr.ClassID {
			return classroom.EnrolledStudent{}, classroom.ErrAlreadyEnrolled
		}
	}

	enr.ID = uuid.New().String()
	repo.db.enrollment.table[enr.ID] = &enr
	return repo.enrolledStudent(enr), nil
}

func (repo *classroomRepository) BulkCreateEnrollments(ctx context.Context, classID, semester, section string, createdAt time.Time) (int, error) {
	repo.db.enrollment.Lock()
	defer repo.db.enrollment.Unlock()
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	var matched int
	for _, usr := range repo.db.user.table {
		if !usr.IsStudent() || usr.Semester != semester || usr.Section != section {
			continue
		}
		matched++

		var enrolled bool
		for _, existing := range repo.db.enrollment.table {
			if existing.StudentID == usr.ID && existing.ClassID == classID {
				enrolled = true
				break
			}
		}
		if enrolled {
			continue
		}

		enr := classroom.Enrollment{
			ID:        uuid.New().String(),
			StudentID: usr.ID,
			ClassID:   classID,
			Status:    classroom.StatusPending,
			CreatedAt: createdAt,
		}
		repo.db.enrollment.table[enr.ID] = &enr
	}
	return matched, nil
}

func (repo *classroomRepository) UpdateEnrollmentStatus(ctx context.Context, teacherID, enrollmentID, status string) (classroom.Enrollment, error) {
	// lock order: class before enrollment, same as DeleteClass's cascade
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()
	repo.db.enrollment.Lock()
	defer repo.db.enrollment.Unlock()

	enr, ok := repo.db.enrollment.table[enrollmentID]
	if !ok || !repo.teacherOwns(teacherID, enr.ClassID) {
		return classroom.Enrollment{}, classroom.ErrEnrollmentNotFound
	}
	enr.Status = status
	return *enr, nil
}

func (repo *classroomRepository) DeleteEnrollment(ctx context.Context, teacherID, enrollmentID string) error {
	// lock order: class before enrollment, same as DeleteClass's cascade
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()
	repo.db.enrollment.Lock()
	defer repo.db.enrollment.Unlock()

	enr, ok := repo.db.enrollment.table[enrollmentID]
	if !ok || !repo.teacherOwns(teacherID, enr.ClassID) {
		return classroom.ErrEnrollmentNotFound
	}
	delete(repo.db.enrollment.table, enrollmentID)
	return nil
}

// teacherOwns reports whether classID belongs to teacherID.
// The caller must hold the class lock.
func (repo *classroomRepository) teacherOwns(teacherID, classID string) bool {
	cls, ok := repo.db.class.table[classID]
	return ok && cls.TeacherID == teacherID
}
