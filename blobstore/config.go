package blobstore

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a remote blob store in a YAML file, so deployments can
// point archive tooling at object storage without code changes.
//
// Example:
//
//	provider: minio
//	endpoint: minio.internal:9000
//	bucket: samples
//	prefix: roadmaps/
//	access_key: ...
//	secret_key: ...
//	use_ssl: true
//	rate_limit_bytes: 10485760
type Config struct {
	// Provider selects the backend: "minio" or "s3".
	Provider string `yaml:"provider"`
	// Endpoint is the object store endpoint (minio only; s3 uses the
	// default AWS resolution).
	Endpoint string `yaml:"endpoint"`
	// Region is the bucket region (s3 only, optional).
	Region string `yaml:"region"`
	// Bucket is the bucket name.
	Bucket string `yaml:"bucket"`
	// Prefix is prepended to all blob names.
	Prefix string `yaml:"prefix"`
	// AccessKey and SecretKey are static credentials (minio only; s3 uses
	// the default AWS credential chain).
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	// UseSSL enables TLS for the endpoint (minio only).
	UseSSL bool `yaml:"use_ssl"`
	// RateLimitBytes throttles uploads to this many bytes per second.
	// Zero disables throttling.
	RateLimitBytes int `yaml:"rate_limit_bytes"`
}

// LoadConfig reads and validates a Config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blobstore config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse blobstore config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields for the configured provider.
func (c *Config) Validate() error {
	switch c.Provider {
	case "minio":
		if c.Endpoint == "" {
			return fmt.Errorf("blobstore config: minio provider requires an endpoint")
		}
	case "s3":
	default:
		return fmt.Errorf("blobstore config: unknown provider %q", c.Provider)
	}
	if c.Bucket == "" {
		return fmt.Errorf("blobstore config: bucket is required")
	}
	return nil
}
