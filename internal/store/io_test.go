package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"opkit/internal/store"
)

func TestWriteFile_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Info.plist")

	if err := store.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := store.WriteFile(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("second write: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "new" {
		t.Fatalf("content = %q", b)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteFile_MissingDirFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "control")
	if err := store.WriteFile(path, []byte("x"), 0o644); err == nil {
		t.Fatal("expected error for missing parent dir")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "icon.png")
	dst := filepath.Join(dir, "copy.png")
	if err := os.WriteFile(src, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := store.CopyFile(src, dst, 0o644); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil || string(b) != "png" {
		t.Fatalf("copy = %q, %v", b, err)
	}

	ok, err := store.Exists(dst)
	if err != nil || !ok {
		t.Fatalf("Exists(dst) = %v, %v", ok, err)
	}
	ok, err = store.Exists(filepath.Join(dir, "missing"))
	if err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v", ok, err)
	}
}
