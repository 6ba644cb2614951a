package book

import (
	"time"

	"github.com/google/uuid"
)

// Genre enum - the fixed tag vocabulary for catalog entries.
type Genre string

const (
	GenreArt           Genre = "art"
	GenreAutobiography Genre = "autobiography"
	GenreBiography     Genre = "biography"
	GenreComics        Genre = "comics"
	GenreFantasy       Genre = "fantasy"
	GenreFiction       Genre = "fiction"
	GenreNonFiction    Genre = "nonfiction"
	GenreRomance       Genre = "romance"
	GenreScience       Genre = "science"
	GenreTravel        Genre = "travel"
)

// AllGenres returns the valid genre tags.
func AllGenres() []Genre {
	return []Genre{
		GenreArt, GenreAutobiography, GenreBiography, GenreComics,
		GenreFantasy, GenreFiction, GenreNonFiction, GenreRomance,
		GenreScience, GenreTravel,
	}
}

func (g Genre) IsValid() bool {
	for _, known := range AllGenres() {
		if g == known {
			return true
		}
	}
	return false
}

func (g Genre) String() string {
	return string(g)
}

// DefaultAvailableCount is used when a new book omits the copy count.
const DefaultAvailableCount = 5

// Book is the catalog entity. available_count is the number of copies
// not currently on loan; the lending service keeps it in step with the
// ledger inside one transaction.
type Book struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	DateOfPub      time.Time `db:"date_of_pub" json:"date_of_pub"`
	Genres         []Genre   `db:"genres" json:"genres"`
	AvailableCount int       `db:"available_count" json:"available_count"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
