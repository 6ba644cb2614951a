package author

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// minAuthorAge: authors must be at least 14 years old.
const minAuthorAge = 14

// CreateAuthorRequest - POST /books/:id/authors
type CreateAuthorRequest struct {
	Name        string  `json:"name"`
	Bio         *string `json:"bio"`
	DateOfBirth string  `json:"date_of_birth"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(5, 255).Error("name must be 5-255 characters"),
		),
		validation.Field(&r.DateOfBirth,
			validation.Required.Error("date_of_birth is required"),
			validation.Date(DateLayout).Error("date_of_birth must be YYYY-MM-DD"),
			validation.By(checkMinAge),
		),
	)
}

// ParsedDateOfBirth converts the validated wire date.
func (r CreateAuthorRequest) ParsedDateOfBirth() (time.Time, error) {
	return time.Parse(DateLayout, r.DateOfBirth)
}

// UpdateAuthorRequest - PATCH /authors/:id, nil fields are left unchanged.
type UpdateAuthorRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name must not be empty"),
			validation.Length(5, 255).Error("name must be 5-255 characters"),
		),
	)
}

func checkMinAge(value interface{}) error {
	s, _ := value.(string)
	dob, err := time.Parse(DateLayout, s)
	if err != nil {
		// The Date rule already reports the format error
		return nil
	}
	if dob.After(time.Now().AddDate(-minAuthorAge, 0, 0)) {
		return errors.New("author must be at least 14 years old")
	}
	return nil
}

// AuthorDTO is the public view of an author.
type AuthorDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Bio         *string   `json:"bio,omitempty"`
	DateOfBirth string    `json:"date_of_birth"`
	BookID      uuid.UUID `json:"book_id"`
}

func (a *Author) ToDTO() AuthorDTO {
	return AuthorDTO{
		ID:          a.ID,
		Name:        a.Name,
		Bio:         a.Bio,
		DateOfBirth: a.DateOfBirth.Format(DateLayout),
		BookID:      a.BookID,
	}
}
