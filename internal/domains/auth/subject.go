package auth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Subject is the decoded identity embedded in a bearer credential and
// used as the revocation key in the credential store.
// Wire form: "user:<user_id>:<role>".
type Subject struct {
	UserID uuid.UUID
	Role   string
}

const subjectPrefix = "user"

func (s Subject) String() string {
	return fmt.Sprintf("%s:%s:%s", subjectPrefix, s.UserID, s.Role)
}

// ParseSubject decodes the wire form back into its parts.
func ParseSubject(raw string) (Subject, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 || parts[0] != subjectPrefix {
		return Subject{}, fmt.Errorf("malformed subject %q", raw)
	}

	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return Subject{}, fmt.Errorf("malformed subject user id: %w", err)
	}

	return Subject{UserID: userID, Role: parts[2]}, nil
}
