package service

import (
	"context"
	"strings"
	"testing"

	"github.com/knockknock1010/Back/config"
)

func TestNewMinioService(t *testing.T) {
	cfg := &config.MinioConfig{
		Endpoint:   "localhost:9000",
		AccessKey:  "test",
		SecretKey:  "test",
		Bucket:     "contracts",
		UseSSL:     false,
		ExpireDays: 7,
	}

	svc, err := NewMinioService(cfg)
	if err != nil {
		t.Fatalf("Expected client creation to succeed, got %v", err)
	}
	if svc == nil {
		t.Fatal("Expected non-nil service")
	}
}

func TestNewMinioServiceInvalidEndpoint(t *testing.T) {
	cfg := &config.MinioConfig{
		Endpoint:  "not a valid endpoint",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "contracts",
	}

	if _, err := NewMinioService(cfg); err == nil {
		t.Error("Expected error for malformed endpoint")
	} else if !strings.Contains(err.Error(), "minio client") {
		t.Errorf("Expected wrapped client error, got %v", err)
	}
}

func TestMinioServiceWithCancelledContext(t *testing.T) {
	cfg := &config.MinioConfig{
		Endpoint:   "localhost:9000",
		AccessKey:  "test",
		SecretKey:  "test",
		Bucket:     "contracts",
		ExpireDays: 7,
	}

	svc, err := NewMinioService(cfg)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.ArchiveOriginal(ctx, "alice/1/lease.pdf", strings.NewReader("data"), 4, "application/pdf"); err == nil {
		t.Error("Expected archive with cancelled context to fail")
	}
}

func TestMinioServiceBucketOperations(t *testing.T) {
	// EnsureBucket, GetPresignedURL and RemoveOriginal need a reachable
	// MinIO endpoint; covered by integration tests against a live server.
	t.Skip("requires a live MinIO endpoint")
}
