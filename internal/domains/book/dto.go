package book

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// ========================================
// REQUEST DTOs
// ========================================

// CreateBookRequest - POST /books
type CreateBookRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DateOfPub   string   `json:"date_of_pub"`
	Genres      []string `json:"genres"`

	// Optional: defaults to DefaultAvailableCount.
	AvailableCount *int `json:"available_count"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(5, 0).Error("description must be at least 5 characters"),
		),
		validation.Field(&r.DateOfPub,
			validation.Required.Error("date_of_pub is required"),
			validation.Date(DateLayout).Error("date_of_pub must be YYYY-MM-DD"),
			validation.By(checkNotFuture),
		),
		validation.Field(&r.Genres,
			validation.Required.Error("at least one genre is required"),
			validation.Each(validation.By(checkGenre)),
		),
		validation.Field(&r.AvailableCount,
			validation.Min(0).Error("available_count must not be negative"),
		),
	)
}

// ParsedDateOfPub converts the validated wire date.
func (r CreateBookRequest) ParsedDateOfPub() (time.Time, error) {
	return time.Parse(DateLayout, r.DateOfPub)
}

// UpdateBookRequest - PATCH /books/:id, nil fields are left unchanged.
type UpdateBookRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	AvailableCount *int    `json:"available_count"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(5, 0).Error("description must be at least 5 characters"),
		),
		validation.Field(&r.AvailableCount,
			validation.Min(0).Error("available_count must not be negative"),
		),
	)
}

func checkNotFuture(value interface{}) error {
	s, _ := value.(string)
	date, err := time.Parse(DateLayout, s)
	if err != nil {
		// The Date rule already reports the format error
		return nil
	}
	if date.After(time.Now()) {
		return errors.New("publication date must not be in the future")
	}
	return nil
}

func checkGenre(value interface{}) error {
	s, _ := value.(string)
	if !Genre(s).IsValid() {
		return errors.New("unknown genre: " + s)
	}
	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type BookDTO struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	DateOfPub      string    `json:"date_of_pub"`
	Genres         []Genre   `json:"genres"`
	AvailableCount int       `json:"available_count"`
}

func (b *Book) ToDTO() BookDTO {
	return BookDTO{
		ID:             b.ID,
		Title:          b.Title,
		Description:    b.Description,
		DateOfPub:      b.DateOfPub.Format(DateLayout),
		Genres:         b.Genres,
		AvailableCount: b.AvailableCount,
	}
}
