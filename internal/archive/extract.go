package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/storage"
)

// ErrNoEntries is returned when the container opens but holds nothing.
var ErrNoEntries = errors.New("archive has no entries")

// Extract unpacks a zip blob into a package tree. If the in-memory blob
// cannot be opened directly, the blob is persisted into the workspace once
// and reopened from disk; a second failure propagates. The workspace may be
// nil, in which case no retry is attempted.
func Extract(blob []byte, ws *storage.Workspace) (*FileNode, error) {
	entries, err := readZip(blob)
	if err != nil {
		if ws == nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		entries, err = readZipFromDisk(blob, ws)
		if err != nil {
			return nil, fmt.Errorf("open archive (after disk retry): %w", err)
		}
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return NewTree(entries), nil
}

func readZip(blob []byte) ([]Entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, err
	}
	return readEntries(zr.File)
}

func readZipFromDisk(blob []byte, ws *storage.Workspace) ([]Entry, error) {
	path, err := ws.PersistBlob("upload.zip", blob)
	if err != nil {
		return nil, err
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return readEntries(zr.File)
}

func readEntries(files []*zip.File) ([]Entry, error) {
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if f.FileInfo().IsDir() {
			name := f.Name
			if !strings.HasSuffix(name, "/") {
				name += "/"
			}
			entries = append(entries, Entry{Path: name})
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read entry %s: %w", f.Name, err)
		}
		entries = append(entries, Entry{Path: f.Name, Data: data})
	}
	return entries, nil
}
