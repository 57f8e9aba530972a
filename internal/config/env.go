package config

import "os"

// ApplyEnv fills empty connection settings from the environment.
// It reads DATABASE_URL, RESUME_S3_BUCKET, RESUME_S3_ENDPOINT, AWS_REGION and
// the RESUME_S3_ACCESS_KEY / RESUME_S3_SECRET_KEY pair.
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.S3Bucket == "" {
		c.S3Bucket = os.Getenv("RESUME_S3_BUCKET")
	}
	if c.S3Endpoint == "" {
		c.S3Endpoint = os.Getenv("RESUME_S3_ENDPOINT")
	}
	if c.S3Region == "" {
		c.S3Region = os.Getenv("AWS_REGION")
	}
	if c.S3AccessKey == "" && c.S3SecretKey == "" {
		c.S3AccessKey = os.Getenv("RESUME_S3_ACCESS_KEY")
		c.S3SecretKey = os.Getenv("RESUME_S3_SECRET_KEY")
	}
}
