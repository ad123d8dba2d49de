package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ROCKETRUN_TEST_HOST", "example.org")
	assert.Equal(t, "example.org", GetEnv("ROCKETRUN_TEST_HOST", "fallback"))
	assert.Equal(t, "fallback", GetEnv("ROCKETRUN_TEST_UNSET", "fallback"))

	t.Setenv("ROCKETRUN_TEST_EMPTY", "")
	assert.Equal(t, "", GetEnv("ROCKETRUN_TEST_EMPTY", "fallback"), "set but empty")
}

func TestGetEnvInt(t *testing.T) {
	n, err := GetEnvInt("ROCKETRUN_TEST_UNSET", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	t.Setenv("ROCKETRUN_TEST_INT", "600")
	n, err = GetEnvInt("ROCKETRUN_TEST_INT", 7)
	require.NoError(t, err)
	assert.Equal(t, 600, n)

	t.Setenv("ROCKETRUN_TEST_INT", "six")
	n, err = GetEnvInt("ROCKETRUN_TEST_INT", 7)
	assert.ErrorIs(t, err, ErrInvalidEnv)
	assert.ErrorContains(t, err, "ROCKETRUN_TEST_INT")
	assert.Equal(t, 7, n)
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("ROCKETRUN_TEST_FLOAT", "29.97")
	f, err := GetEnvFloat("ROCKETRUN_TEST_FLOAT", 60)
	require.NoError(t, err)
	assert.InDelta(t, 29.97, f, 1e-9)

	t.Setenv("ROCKETRUN_TEST_FLOAT", "")
	f, err = GetEnvFloat("ROCKETRUN_TEST_FLOAT", 60)
	require.NoError(t, err)
	assert.Equal(t, 60.0, f)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{"1", true, false},
		{"false", false, false},
		{"TRUE", true, false},
		{"nope", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("ROCKETRUN_TEST_BOOL", tt.value)
			b, err := GetEnvBool("ROCKETRUN_TEST_BOOL", true)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEnv)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, b)
		})
	}
}
