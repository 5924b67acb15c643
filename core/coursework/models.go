package coursework

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// Assignment belongs to a class; only the class's owning teacher may touch it.
type Assignment struct {
	ID          string    `json:"assignment_id"`
	ClassID     string    `json:"class_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// Note is a reference link (external URL) attached to a class.
type Note struct {
	ID         string    `json:"note_id"`
	ClassID    string    `json:"class_id"`
	Title      string    `json:"title"`
	DriveLink  string    `json:"drive_link"`
	UploadedAt time.Time `json:"uploaded_at"` // UTC
}

type NewAssignment struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return validate.Struct(na)
}

type UpdateAssignment struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	ua.Title = core.CleanString(ua.Title)
	ua.Description = core.CleanString(ua.Description)
	return validate.Struct(ua)
}

type NewNote struct {
	Title     string `json:"title" validate:"required"`
	DriveLink string `json:"drive_link" validate:"required,url"`
}

func (nn *NewNote) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	nn.DriveLink = core.CleanString(nn.DriveLink)
	return validate.Struct(nn)
}
