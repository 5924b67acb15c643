package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/darasahq/darasa/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

var AllRoles = []string{RoleStudent, RoleTeacher}

// User is the stored identity record. Role is immutable after creation.
type User struct {
	ID           string     `json:"user_id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Phone        string     `json:"phone_number,omitempty"`
	Semester     string     `json:"semester,omitempty"`
	Section      string     `json:"section,omitempty"`
	UniversityID string     `json:"university_id,omitempty"`
	TeacherID    string     `json:"teacher_id,omitempty"`
	PasswordHash []byte     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"` // UTC
	UpdatedAt    time.Time  `json:"updated_at"` // UTC
	LastLogin    time.Time  `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// NewUser contains information needed to register a new User.
type NewUser struct {
	Role         string `json:"role" validate:"required,userrole"`
	FullName     string `json:"full_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	DOB          string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Phone        string `json:"phone" validate:"omitempty"`
	Semester     string `json:"semester" validate:"required_if=Role student"`
	Section      string `json:"section" validate:"required_if=Role student"`
	UniversityID string `json:"university_id" validate:"required_if=Role student"`
	TeacherID    string `json:"teacher_id" validate:"required_if=Role teacher"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc Service) error {
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.FullName = core.CleanString(nu.FullName)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Semester = core.CleanString(nu.Semester)
	nu.Section = core.CleanString(nu.Section)
	nu.UniversityID = core.CleanString(nu.UniversityID)
	nu.TeacherID = core.CleanString(nu.TeacherID)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	if nu.Role != RoleStudent {
		// university IDs are only unique-checked for students
		return svc.CheckUniqueness(ctx, nu.Email, "")
	}
	return svc.CheckUniqueness(ctx, nu.Email, nu.UniversityID)
}

// dateOfBirth parses the (already validated) DOB field.
func (nu NewUser) dateOfBirth() *time.Time {
	if nu.DOB == "" {
		return nil
	}
	dob, err := time.Parse("2006-01-02", nu.DOB)
	if err != nil {
		return nil
	}
	return &dob
}
