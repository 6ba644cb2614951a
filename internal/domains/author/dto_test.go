package author_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/domains/author"
)

func Test_CreateAuthorRequest_Valid(t *testing.T) {
	bio := "Essayist and novelist."
	req := author.CreateAuthorRequest{
		Name:        "Ursula K. Le Guin",
		Bio:         &bio,
		DateOfBirth: "1929-10-21",
	}
	assert.NoError(t, req.Validate())
}

func Test_CreateAuthorRequest_BioIsOptional(t *testing.T) {
	req := author.CreateAuthorRequest{
		Name:        "Ursula K. Le Guin",
		DateOfBirth: "1929-10-21",
	}
	assert.NoError(t, req.Validate())
}

func Test_CreateAuthorRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  author.CreateAuthorRequest
	}{
		{
			name: "short_name",
			req:  author.CreateAuthorRequest{Name: "Bo", DateOfBirth: "1929-10-21"},
		},
		{
			name: "missing_date_of_birth",
			req:  author.CreateAuthorRequest{Name: "Ursula K. Le Guin"},
		},
		{
			name: "bad_date_format",
			req:  author.CreateAuthorRequest{Name: "Ursula K. Le Guin", DateOfBirth: "21.10.1929"},
		},
		{
			name: "under_fourteen",
			req: author.CreateAuthorRequest{
				Name:        "Precocious Child",
				DateOfBirth: time.Now().AddDate(-10, 0, 0).Format(author.DateLayout),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.req.Validate())
		})
	}
}

func Test_CreateAuthorRequest_ExactlyFourteenIsValid(t *testing.T) {
	req := author.CreateAuthorRequest{
		Name:        "Young Novelist",
		DateOfBirth: time.Now().AddDate(-14, 0, -1).Format(author.DateLayout),
	}
	assert.NoError(t, req.Validate())
}

func Test_UpdateAuthorRequest(t *testing.T) {
	assert.NoError(t, author.UpdateAuthorRequest{}.Validate())

	empty := ""
	assert.Error(t, author.UpdateAuthorRequest{Name: &empty}.Validate())

	name := "Ursula K. Le Guin"
	assert.NoError(t, author.UpdateAuthorRequest{Name: &name}.Validate())
}
