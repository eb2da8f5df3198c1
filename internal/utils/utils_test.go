package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("LYRICSHEET_TEST_A", "a")
	t.Setenv("LYRICSHEET_TEST_B", "b")

	env, err := LoadEnv([]string{"LYRICSHEET_TEST_A", "LYRICSHEET_TEST_B"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"LYRICSHEET_TEST_A": "a", "LYRICSHEET_TEST_B": "b"}, env)
}

func TestLoadEnvMissing(t *testing.T) {
	t.Setenv("LYRICSHEET_TEST_EMPTY", "")

	_, err := LoadEnv([]string{"LYRICSHEET_TEST_EMPTY"})
	assert.EqualError(t, err, "missing required environment variable: LYRICSHEET_TEST_EMPTY")
}

func TestGetenv(t *testing.T) {
	t.Setenv("LYRICSHEET_TEST_SET", "value")
	t.Setenv("LYRICSHEET_TEST_UNSET", "")

	assert.Equal(t, "value", Getenv("LYRICSHEET_TEST_SET", "fallback"))
	assert.Equal(t, "fallback", Getenv("LYRICSHEET_TEST_UNSET", "fallback"))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("LYRICSHEET_TEST_TTL", "90m")
	d, err := GetDuration("LYRICSHEET_TEST_TTL", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	t.Setenv("LYRICSHEET_TEST_TTL", "")
	d, err = GetDuration("LYRICSHEET_TEST_TTL", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)

	t.Setenv("LYRICSHEET_TEST_TTL", "soon")
	_, err = GetDuration("LYRICSHEET_TEST_TTL", time.Hour)
	assert.Error(t, err)
}
