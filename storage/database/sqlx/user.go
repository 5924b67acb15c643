package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/darasahq/darasa/core/user"
)

const userColumns = `user_id, full_name, email, password_hash, role, date_of_birth,
	phone_number, semester, section, university_id, teacher_id, created_at, updated_at, last_login`

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

type userRow struct {
	ID           string      `db:"user_id"`
	FullName     string      `db:"full_name"`
	Email        string      `db:"email"`
	PasswordHash []byte      `db:"password_hash"`
	Role         string      `db:"role"`
	DateOfBirth  null.Time   `db:"date_of_birth"`
	Phone        null.String `db:"phone_number"`
	Semester     null.String `db:"semester"`
	Section      null.String `db:"section"`
	UniversityID null.String `db:"university_id"`
	TeacherID    null.String `db:"teacher_id"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
	LastLogin    null.Time   `db:"last_login"`
}

func (repo userRepository) toRow(usr user.User) userRow {
	row := userRow{
		ID:           usr.ID,
		FullName:     usr.FullName,
		Email:        usr.Email,
		PasswordHash: usr.PasswordHash,
		Role:         usr.Role,
		Phone:        null.NewString(usr.Phone, usr.Phone != ""),
		Semester:     null.NewString(usr.Semester, usr.Semester != ""),
		Section:      null.NewString(usr.Section, usr.Section != ""),
		UniversityID: null.NewString(usr.UniversityID, usr.UniversityID != ""),
		TeacherID:    null.NewString(usr.TeacherID, usr.TeacherID != ""),
		CreatedAt:    usr.CreatedAt.UTC(),
		UpdatedAt:    usr.UpdatedAt.UTC(),
		LastLogin:    null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
	if usr.DateOfBirth != nil {
		row.DateOfBirth = null.TimeFrom(usr.DateOfBirth.UTC())
	}
	return row
}

func (repo userRepository) fromRow(row userRow) user.User {
	usr := user.User{
		ID:           row.ID,
		FullName:     row.FullName,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		Phone:        row.Phone.String,
		Semester:     row.Semester.String,
		Section:      row.Section.String,
		UniversityID: row.UniversityID.String,
		TeacherID:    row.TeacherID.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		LastLogin:    row.LastLogin.Time,
	}
	if row.DateOfBirth.Valid {
		dob := row.DateOfBirth.Time
		usr.DateOfBirth = &dob
	}
	return usr
}

func (repo userRepository) fromRows(rows []userRow) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, repo.fromRow(row))
	}
	return users
}

func (repo userRepository) CheckUserUniqueness(ctx context.Context, email, universityID string) error {
	var taken struct {
		Email        bool `db:"email_taken"`
		UniversityID bool `db:"university_id_taken"`
	}
	err := repo.db.GetContext(ctx, &taken,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1) AS email_taken,
		        EXISTS (SELECT 1 FROM users WHERE university_id = $2 AND $2 <> '') AS university_id_taken`,
		email, universityID)
	if err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	if taken.Email {
		return user.ErrEmailExists
	}
	if taken.UniversityID {
		return user.ErrUniversityIDExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	row := repo.toRow(usr)
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (:user_id, :full_name, :email, :password_hash, :role, :date_of_birth,
		         :phone_number, :semester, :section, :university_id, :teacher_id,
		         :created_at, :updated_at, :last_login)`,
		row)
	if err != nil {
		// a concurrent registration may win the unique index race
		if violatesUnique(err, "users_email_key") {
			return user.User{}, user.ErrEmailExists
		}
		if violatesUnique(err, "users_university_id_key") {
			return user.User{}, user.ErrUniversityIDExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrNotFound
	}
	var row userRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	if err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user by ID")
	}
	return repo.fromRow(row), nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user by email")
	}
	return repo.fromRow(row), nil
}

func (repo userRepository) QueryStudents(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY full_name`, user.RoleStudent)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return repo.fromRows(rows), nil
}

func (repo userRepository) SetUserLastLogin(ctx context.Context, usr user.User) (user.User, error) {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE users SET last_login = $1 WHERE user_id = $2`, usr.LastLogin.UTC(), usr.ID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "setting last login")
	}
	return usr, nil
}
