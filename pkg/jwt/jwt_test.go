package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/pkg/jwt"
)

const testSecret = "unit-test-secret"

func Test_GenerateAndParse_RoundTrip(t *testing.T) {
	manager := jwt.NewManager(testSecret, time.Hour)

	token, err := manager.Generate("user:4e8bb1c9-6ae5-4f52-b577-17d9f4b46c5e:reader")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user:4e8bb1c9-6ae5-4f52-b577-17d9f4b46c5e:reader", subject)
}

func Test_Parse_RejectsExpiredToken(t *testing.T) {
	manager := jwt.NewManager(testSecret, -time.Minute)

	token, err := manager.Generate("user:4e8bb1c9-6ae5-4f52-b577-17d9f4b46c5e:reader")
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func Test_Parse_RejectsWrongSecret(t *testing.T) {
	token, err := jwt.NewManager(testSecret, time.Hour).Generate("user:4e8bb1c9-6ae5-4f52-b577-17d9f4b46c5e:admin")
	require.NoError(t, err)

	_, err = jwt.NewManager("a-different-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func Test_Parse_RejectsGarbage(t *testing.T) {
	manager := jwt.NewManager(testSecret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not_a_jwt", token: "definitely-not-a-token"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIi"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manager.Parse(tc.token)
			assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		})
	}
}

func Test_Expiry_ReturnsConfiguredLifetime(t *testing.T) {
	manager := jwt.NewManager(testSecret, 30*time.Minute)
	assert.Equal(t, 30*time.Minute, manager.Expiry())
}
