package service

import (
	"context"
	"course_backend/internal/config"
	"course_backend/internal/util"
	"os"
	"path/filepath"
	"testing"
)

func TestNewStorageServiceDisabled(t *testing.T) {
	for _, typ := range []string{"", util.StorageNone} {
		s, err := NewStorageService(&config.StorageConfig{Type: typ})
		if err != nil {
			t.Fatalf("type %q: %v", typ, err)
		}
		if s.Enabled() {
			t.Fatalf("type %q should be disabled", typ)
		}
	}

	var nilService *StorageService
	if nilService.Enabled() {
		t.Fatal("nil service reported enabled")
	}
}

func TestNewStorageServiceUnknownType(t *testing.T) {
	if _, err := NewStorageService(&config.StorageConfig{Type: "ftp"}); err == nil {
		t.Fatal("expected error for unsupported storage type")
	}
}

func TestLocalPutBytes(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: dir})
	if err != nil {
		t.Fatalf("NewStorageService: %v", err)
	}
	if !s.Enabled() {
		t.Fatal("local storage should be enabled")
	}

	url, err := s.PutBytes(context.Background(), "grade-reports/1/a.json", []byte(`{"ok":true}`), util.MimeJSON)
	if err != nil {
		t.Fatalf("PutBytes: %v", err)
	}
	if url != "/uploads/grade-reports/1/a.json" {
		t.Fatalf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "grade-reports", "1", "a.json"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("content = %s", data)
	}
}
