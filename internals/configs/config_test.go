package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_GetEnv_DefaultOnEmpty(t *testing.T) {
	t.Setenv("DSR_TEST_KEY", "")
	assert.Equal(t, "fallback", GetEnv("DSR_TEST_KEY", "fallback"))

	t.Setenv("DSR_TEST_KEY", "isi")
	assert.Equal(t, "isi", GetEnv("DSR_TEST_KEY", "fallback"))
}

func Test_GetEnvDuration(t *testing.T) {
	tests := []struct {
		val  string
		want time.Duration
	}{
		{"", 10 * time.Second},
		{"3s", 3 * time.Second},
		{"2m", 2 * time.Minute},
		{"15", 15 * time.Second},
		{"-5s", 10 * time.Second},
		{"abc", 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv("DSR_TEST_DUR", tt.val)
			assert.Equal(t, tt.want, GetEnvDuration("DSR_TEST_DUR", 10*time.Second))
		})
	}
}

func Test_GetEnvBoolInt(t *testing.T) {
	t.Setenv("DSR_TEST_BOOL", "true")
	assert.True(t, GetEnvBool("DSR_TEST_BOOL", false))
	t.Setenv("DSR_TEST_BOOL", "nope")
	assert.False(t, GetEnvBool("DSR_TEST_BOOL", false))

	t.Setenv("DSR_TEST_INT", "14")
	assert.Equal(t, 14, GetEnvInt("DSR_TEST_INT", 7))
	t.Setenv("DSR_TEST_INT", "x")
	assert.Equal(t, 7, GetEnvInt("DSR_TEST_INT", 7))
}

func Test_LoadEnv_DSRAPIURLTrimmed(t *testing.T) {
	t.Setenv("RAILWAY_ENVIRONMENT", "test")
	t.Setenv("DSR_API_URL", "http://dsr.local/api/")
	t.Setenv("DSR_API_TIMEOUT", "")
	LoadEnv()
	assert.Equal(t, "http://dsr.local/api", DSRAPIURL)
	assert.Equal(t, 10*time.Second, DSRAPITimeout)
}
