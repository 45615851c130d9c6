package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"mvvideos/internal/fileutil"
)

func TestCopyFilePreservesContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mkv")
	dst := filepath.Join(dir, "dst.mkv")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile returned error: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("destination content = %q", data)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("copy must not remove the source: %v", err)
	}
}

func TestCopyFileModeAppliesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	if err := os.WriteFile(src, []byte("x"), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := fileutil.CopyFileMode(src, dst, 0o600); err != nil {
		t.Fatalf("CopyFileMode returned error: %v", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat destination: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("destination mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestMoveFileRenamesWithinDevice(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.mp4")
	dst := filepath.Join(dir, "b.mp4")
	if err := os.WriteFile(src, []byte("video"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := fileutil.MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile returned error: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, stat err = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "video" {
		t.Fatalf("destination content = %q", data)
	}
}

func TestMoveFileFailsWhenSourceMissing(t *testing.T) {
	dir := t.TempDir()
	err := fileutil.MoveFile(filepath.Join(dir, "absent"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}
