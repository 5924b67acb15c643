package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.table))
	for _, u := range repo.db.table {
		users = append(users, *u)
	}
	return users
}

func (repo *userRepository) CheckUserUniqueness(ctx context.Context, email, universityID string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.query() {
		if usr.Email == email {
			return user.ErrEmailExists
		}
		if universityID != "" && usr.UniversityID == universityID {
			return user.ErrUniversityIDExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.table {
		if existing.Email == usr.Email {
			return user.User{}, user.ErrEmailExists
		}
		if usr.UniversityID != "" && existing.UniversityID == usr.UniversityID {
			return user.User{}, user.ErrUniversityIDExists
		}
	}

	usr.ID = uuid.New().String()
	repo.db.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.db.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.query() {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) QueryStudents(ctx context.Context) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var students []user.User
	for _, usr := range repo.query() {
		if usr.IsStudent() {
			students = append(students, usr)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].FullName < students[j].FullName })
	return students, nil
}

func (repo *userRepository) SetUserLastLogin(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origUsr, ok := repo.db.table[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	origUsr.LastLogin = usr.LastLogin
	return *origUsr, nil
}
