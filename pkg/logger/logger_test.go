package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"library-backend/pkg/logger"
)

func Test_Init_LevelPerEnvironment(t *testing.T) {
	logger.Init("development")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logger.Init("production")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func Test_Init_LogLevelOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	logger.Init("development")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func Test_Init_IgnoresInvalidOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	logger.Init("production")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
