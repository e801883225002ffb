package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/storage"
)

func TestAcquire_ClearsLeftoverContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace")
	ws := storage.NewWorkspace(path)

	// simulate a prior run that never released
	if err := os.MkdirAll(filepath.Join(path, "stale"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "stale", "old.xml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ws.Acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		t.Fatalf("workspace dir missing after acquire: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("workspace not cleared, contains %d entries", len(entries))
	}
}

func TestRelease_RemovesTheDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace")
	ws := storage.NewWorkspace(path)

	if err := ws.Acquire(); err != nil {
		t.Fatal(err)
	}
	if err := ws.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("workspace %s still exists", path)
	}

	// releasing an already-released workspace is a no-op
	if err := ws.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
}

func TestPersistBlob_WritesUnderTheWorkspace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace")
	ws := storage.NewWorkspace(path)
	if err := ws.Acquire(); err != nil {
		t.Fatal(err)
	}
	defer ws.Release()

	dst, err := ws.PersistBlob("upload.zip", []byte("payload"))
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if filepath.Dir(dst) != path {
		t.Fatalf("blob landed at %s, want directly under %s", dst, path)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("payload = %q", data)
	}
}
