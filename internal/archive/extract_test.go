package archive_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/archive"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/storage"
)

func zipBlob(t *testing.T, files map[string]string, dirs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, d := range dirs {
		if _, err := zw.Create(d); err != nil {
			t.Fatal(err)
		}
	}
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtract_EveryFileEntryBecomesALeaf(t *testing.T) {
	blob := zipBlob(t, map[string]string{
		"imsmanifest.xml": "<manifest/>",
		"res/quiz1.xml":   "<questestinterop/>",
	}, "res/")

	tree, err := archive.Extract(blob, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	for _, p := range []string{"imsmanifest.xml", "res/quiz1.xml"} {
		node, ok := tree.Lookup(p)
		if !ok || !node.IsFile() {
			t.Fatalf("%s missing from tree", p)
		}
	}
}

func TestExtract_GarbageBlobFails(t *testing.T) {
	ws := storage.NewWorkspace(filepath.Join(t.TempDir(), "ws"))
	if err := ws.Acquire(); err != nil {
		t.Fatal(err)
	}
	defer ws.Release()

	_, err := archive.Extract([]byte("not a zip"), ws)
	if err == nil {
		t.Fatal("expected error for garbage blob")
	}
}

func TestExtract_EmptyArchiveFails(t *testing.T) {
	blob := zipBlob(t, nil)
	_, err := archive.Extract(blob, nil)
	if !errors.Is(err, archive.ErrNoEntries) {
		t.Fatalf("err = %v, want ErrNoEntries", err)
	}
}
