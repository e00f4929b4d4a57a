package blobstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blobstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
provider: minio
endpoint: minio.internal:9000
bucket: samples
prefix: roadmaps/
access_key: ak
secret_key: sk
use_ssl: true
rate_limit_bytes: 1048576
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "minio", cfg.Provider)
	assert.Equal(t, "minio.internal:9000", cfg.Endpoint)
	assert.Equal(t, "samples", cfg.Bucket)
	assert.Equal(t, "roadmaps/", cfg.Prefix)
	assert.True(t, cfg.UseSSL)
	assert.Equal(t, 1048576, cfg.RateLimitBytes)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "provider: [unterminated")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid s3",
			cfg:  Config{Provider: "s3", Bucket: "b"},
		},
		{
			name: "valid minio",
			cfg:  Config{Provider: "minio", Endpoint: "e", Bucket: "b"},
		},
		{
			name:    "minio without endpoint",
			cfg:     Config{Provider: "minio", Bucket: "b"},
			wantErr: "requires an endpoint",
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "gcs", Bucket: "b"},
			wantErr: "unknown provider",
		},
		{
			name:    "missing bucket",
			cfg:     Config{Provider: "s3"},
			wantErr: "bucket is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
