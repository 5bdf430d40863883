package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, StorageBadger, c.Storage)
	assert.Equal(t, CacheMemory, c.CacheBackend)
	assert.Equal(t, 20*time.Second, c.IndexCacheTTL)
	assert.Equal(t, 10, c.PostsPerPage)
	assert.False(t, c.Debug)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("BIND_ADDRESS", "127.0.0.1:9000")
	t.Setenv("STORAGE", "sql")
	t.Setenv("SQL_DRIVER", "postgres")
	t.Setenv("POSTS_PER_PAGE", "25")
	t.Setenv("INDEX_CACHE_TTL", "45")
	t.Setenv("DEBUG_MODE", "yes")
	t.Setenv("SESSION_SECURE", "on")

	c := FromEnv()
	assert.Equal(t, "127.0.0.1:9000", c.BindAddress)
	assert.Equal(t, StorageSQL, c.Storage)
	assert.Equal(t, "postgres", c.SQLDriver)
	assert.Equal(t, 25, c.PostsPerPage)
	assert.Equal(t, 45*time.Second, c.IndexCacheTTL)
	assert.True(t, c.Debug)
	assert.True(t, c.SessionSecure)
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("POSTS_PER_PAGE", "many")
	t.Setenv("INDEX_CACHE_TTL", "soon")
	t.Setenv("DEBUG_MODE", "maybe")

	c := FromEnv()
	assert.Equal(t, 10, c.PostsPerPage)
	assert.Equal(t, 20*time.Second, c.IndexCacheTTL)
	assert.False(t, c.Debug)
}

func TestReadEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "go duration", value: "1m30s", want: 90 * time.Second},
		{name: "seconds", value: "5", want: 5 * time.Second},
		{name: "empty keeps default", value: "", want: time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			d := time.Hour
			readEnvDuration("TEST_DURATION", &d)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestLoadDotEnvs(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("MEDIA_ROOT=/from/test\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MEDIA_ROOT=/from/shared\nS3_BUCKET=shared-bucket\n"), 0644))

	t.Setenv("YATUBE_ENV", "test")
	t.Setenv("MEDIA_ROOT", "")
	t.Setenv("S3_BUCKET", "")
	os.Unsetenv("MEDIA_ROOT")
	os.Unsetenv("S3_BUCKET")

	c := Load()
	assert.Equal(t, "/from/test", c.MediaRoot)
	assert.Equal(t, "shared-bucket", c.S3Bucket)
}
