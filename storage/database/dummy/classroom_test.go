package dummydb

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/user"
)

// Class deletion cascades into the enrollment table while enrollment
// mutations check class ownership; both paths must take the class lock
// before the enrollment lock or concurrent calls deadlock.
func Test_classroomRepository_concurrentDeleteAndEnrollmentMutations(t *testing.T) {
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() failed! err %v", err)
	}
	repo := NewClassroomRepository(db)
	ctx := context.Background()

	teacher := &user.User{ID: "teacher-1", FullName: "Prof X", Role: user.RoleTeacher}
	db.user.table[teacher.ID] = teacher

	const classes = 50
	var wg sync.WaitGroup
	for i := 0; i < classes; i++ {
		cls, err := repo.CreateClass(ctx, classroom.Class{
			TeacherID:  teacher.ID,
			Name:       "Algorithms",
			CourseCode: "CS-201",
			CreatedAt:  time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("CreateClass() failed! err %v", err)
		}

		student := &user.User{ID: fmt.Sprintf("student-%d", i), FullName: "Jane Hero", Role: user.RoleStudent}
		db.user.table[student.ID] = student

		enrolled, err := repo.CreateEnrollment(ctx, classroom.Enrollment{
			StudentID: student.ID,
			ClassID:   cls.ID,
			Status:    classroom.StatusPending,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("CreateEnrollment() failed! err %v", err)
		}

		wg.Add(3)
		go func(classID string) {
			defer wg.Done()
			_ = repo.DeleteClass(ctx, teacher.ID, classID)
		}(cls.ID)
		go func(enrollmentID string) {
			defer wg.Done()
			_, _ = repo.UpdateEnrollmentStatus(ctx, teacher.ID, enrollmentID, classroom.StatusEligible)
		}(enrolled.EnrollmentID)
		go func(enrollmentID string) {
			defer wg.Done()
			_ = repo.DeleteEnrollment(ctx, teacher.ID, enrollmentID)
		}(enrolled.EnrollmentID)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("failed! concurrent class deletion and enrollment mutations never finished")
	}
}
