package user

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrUniversityIDExists = errors.New("a student with this university id already exists")
)

type (
	Repository interface {
		// CheckUserUniqueness fails with ErrEmailExists or ErrUniversityIDExists.
		// universityID may be empty in which case only the email is checked.
		CheckUserUniqueness(ctx context.Context, email, universityID string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		// QueryStudents returns all users with RoleStudent ordered by full name.
		QueryStudents(ctx context.Context) ([]User, error)
		SetUserLastLogin(ctx context.Context, usr User) (User, error)
	}

	Service interface {
		Register(ctx context.Context, nu NewUser) (User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		ListStudents(ctx context.Context) ([]User, error)
		SetLastLogin(ctx context.Context, usr User) (User, error)
		CheckUniqueness(ctx context.Context, email, universityID string) error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// uniquenessError maps the repository's uniqueness sentinels to field errors.
func uniquenessError(err error) error {
	var field string
	switch errors.Cause(err) {
	case ErrEmailExists:
		field = "email"
	case ErrUniversityIDExists:
		field = "university_id"
	default:
		return err
	}
	return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
}

func (svc *service) CheckUniqueness(ctx context.Context, email, universityID string) error {
	if err := svc.repo.CheckUserUniqueness(ctx, email, universityID); err != nil {
		return uniquenessError(err)
	}
	return nil
}

func (svc *service) Register(ctx context.Context, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		FullName:     nu.FullName,
		Email:        nu.Email,
		Role:         nu.Role,
		DateOfBirth:  nu.dateOfBirth(),
		Phone:        nu.Phone,
		Semester:     nu.Semester,
		Section:      nu.Section,
		UniversityID: nu.UniversityID,
		TeacherID:    nu.TeacherID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		// the pre-insert uniqueness check races with concurrent
		// registrations; the insert's unique index is the arbiter
		return User{}, uniquenessError(err)
	}
	svc.sendWelcomeMail(usr)
	return usr, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *service) ListStudents(ctx context.Context) ([]User, error) {
	return svc.repo.QueryStudents(ctx)
}

func (svc *service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.SetUserLastLogin(ctx, usr)
}

func (svc *service) sendWelcomeMail(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.FullName, Address: usr.Email}},
		Subject:      "Welcome to " + svc.conf.AppName,
		TemplateName: "welcome",
		TemplateData: struct{ FullName, Role string }{usr.FullName, usr.Role},
	})
}
