package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/coursework"
	"github.com/darasahq/darasa/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role string,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		FullName:  name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, semester, section, universityID string,
) user.User {
	tstamp := time.Now().UTC()
	usr := user.User{
		FullName:     name,
		Email:        email,
		Role:         user.RoleStudent,
		Semester:     semester,
		Section:      section,
		UniversityID: universityID,
		CreatedAt:    tstamp,
		UpdatedAt:    tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateStudent() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return usr
}

func CreateClass(
	t *testing.T,
	repo classroom.Repository,
	teacherID, name, code, semester, section string,
	createdAt ...time.Time,
) classroom.Class {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	cls, err := repo.CreateClass(context.Background(), classroom.Class{
		TeacherID:  teacherID,
		Name:       name,
		CourseCode: code,
		Semester:   semester,
		Section:    section,
		CreatedAt:  tstamp,
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return cls
}

func CreateEnrollment(
	t *testing.T,
	repo classroom.Repository,
	studentID, classID, status string,
) classroom.EnrolledStudent {
	enrolled, err := repo.CreateEnrollment(context.Background(), classroom.Enrollment{
		StudentID: studentID,
		ClassID:   classID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment() failed: %v", err)
	}
	return enrolled
}

func CreateAssignment(
	t *testing.T,
	repo coursework.Repository,
	classID, title string,
	dueDate time.Time,
) coursework.Assignment {
	a, err := repo.CreateAssignment(context.Background(), coursework.Assignment{
		ClassID:   classID,
		Title:     title,
		DueDate:   dueDate.UTC(),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

func CreateNote(
	t *testing.T,
	repo coursework.Repository,
	classID, title, driveLink string,
) coursework.Note {
	n, err := repo.CreateNote(context.Background(), coursework.Note{
		ClassID:    classID,
		Title:      title,
		DriveLink:  driveLink,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}
	return n
}
