package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/storage"
)

func TestS3Config_PassesCredentials(t *testing.T) {
	cfg := config.Config{
		S3Bucket:    "resumes",
		S3Prefix:    "team/",
		S3Region:    "eu-west-1",
		S3Endpoint:  "http://localhost:9000",
		S3AccessKey: "minio",
		S3SecretKey: "minio123",
	}

	assert.Equal(t, storage.S3Config{
		Bucket:    "resumes",
		Prefix:    "team/",
		Region:    "eu-west-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	}, s3Config(cfg))
}

func TestS3Config_DefaultChainWithoutKeys(t *testing.T) {
	got := s3Config(config.Config{S3Bucket: "resumes"})
	assert.Empty(t, got.AccessKey)
	assert.Empty(t, got.SecretKey)
}
