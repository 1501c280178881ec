package crypto_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"opkit/internal/crypto"
)

func TestFileDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.zip")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := crypto.FileDigest(path)
	if err != nil {
		t.Fatalf("FileDigest: %v", err)
	}
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("digest = %s, want %s", got, want)
	}
}

func TestFileDigest_Missing(t *testing.T) {
	_, err := crypto.FileDigest(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
}

func TestCheckCertificate_NotAContainerIsInconclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cert.pfx")
	if err := os.WriteFile(path, []byte("not der"), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := crypto.CheckCertificate(path, "secret")
	if err != nil {
		t.Fatalf("CheckCertificate: %v", err)
	}
	if res.Verified || res.Reason == "" {
		t.Fatalf("result = %+v", res)
	}
}

func TestCheckCertificate_MissingFile(t *testing.T) {
	_, err := crypto.CheckCertificate(filepath.Join(t.TempDir(), "cert.pfx"), "x")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3}
	crypto.Wipe(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("b[%d] = %d", i, v)
		}
	}
}
