package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket transient payloads are written to.
	Bucket string `mapstructure:"bucket" default:"grain"`
	// Prefix is the key prefix under which payloads of a pass are stored.
	Prefix string `mapstructure:"prefix" default:"scratch"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// SweepAfterHours removes payloads under Prefix older than this many hours when a
	// pass starts. Zero disables the sweep.
	SweepAfterHours int `mapstructure:"sweep_after_hours" default:"24"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
