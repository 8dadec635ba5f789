package blob

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	appcfg "github.com/avdeyev/bodylens/internal/config"
)

func TestNewBlobStoreMemoryForced(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	store, mode, err := NewBlobStore(appcfg.BlobConfig{
		Mode: appcfg.BlobModeMemory,
		S3:   appcfg.S3Config{},
	}, logger)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mode != appcfg.BlobModeMemory {
		t.Fatalf("expected mode=memory, got %s", mode)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected *MemoryStore, got %T", store)
	}
	if !strings.Contains(buf.String(), "mode=memory (forced)") {
		t.Fatalf("expected memory mode log, got: %s", buf.String())
	}
}

func TestNewBlobStoreAutoEmptyS3FallsBackToMemory(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	store, mode, err := NewBlobStore(appcfg.BlobConfig{
		Mode: appcfg.BlobModeAuto,
		S3:   appcfg.S3Config{},
	}, logger)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mode != appcfg.BlobModeMemory {
		t.Fatalf("expected mode=memory fallback, got %s", mode)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected *MemoryStore on auto fallback, got %T", store)
	}

	logOut := buf.String()
	if !strings.Contains(logOut, "code=s3_not_configured") {
		t.Fatalf("expected s3_not_configured diagnostics, got: %s", logOut)
	}
	if !strings.Contains(logOut, "mode=memory (auto, S3 not configured)") {
		t.Fatalf("expected auto fallback to memory log, got: %s", logOut)
	}
}

func TestNewBlobStoreS3MissingRequiredReturnsError(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	store, mode, err := NewBlobStore(appcfg.BlobConfig{
		Mode: appcfg.BlobModeS3,
		S3: appcfg.S3Config{
			Endpoint: "https://storage.yandexcloud.net",
		},
	}, logger)
	if err == nil {
		t.Fatal("expected error when mode=s3 and required env are missing")
	}
	if store != nil || mode != "" {
		t.Fatalf("expected nil store and empty mode on error, got store=%v mode=%q", store, mode)
	}
	if !strings.Contains(err.Error(), "missing required config") {
		t.Fatalf("expected missing required config error, got: %v", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	n, err := store.PutObject(ctx, "photos/abc", []byte{0x89, 0x50, 0x4e, 0x47}, "image/png")
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected size=4, got %d", n)
	}

	data, err := store.GetObject(ctx, "photos/abc")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(data) != 4 || data[0] != 0x89 {
		t.Fatalf("unexpected object bytes: %v", data)
	}
	if ct := store.ContentType("photos/abc"); ct != "image/png" {
		t.Fatalf("expected content type image/png, got %q", ct)
	}

	if err := store.DeleteObject(ctx, "photos/abc"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetObject(ctx, "photos/abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
