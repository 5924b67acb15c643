package dummydb

import (
	"sync"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/coursework"
	"github.com/darasahq/darasa/core/user"
)

type (
	DB struct {
		user       *userTable
		class      *classTable
		enrollment *enrollmentTable
		assignment *assignmentTable
		note       *noteTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	classTable struct {
		sync.RWMutex
		table map[string]*classroom.Class
	}

	enrollmentTable struct {
		sync.RWMutex
		table map[string]*classroom.Enrollment
	}

	assignmentTable struct {
		sync.RWMutex
		table map[string]*coursework.Assignment
	}

	noteTable struct {
		sync.RWMutex
		table map[string]*coursework.Note
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		class:      &classTable{table: make(map[string]*classroom.Class)},
		enrollment: &enrollmentTable{table: make(map[string]*classroom.Enrollment)},
		assignment: &assignmentTable{table: make(map[string]*coursework.Assignment)},
		note:       &noteTable{table: make(map[string]*coursework.Note)},
	}
	return db, nil
}
