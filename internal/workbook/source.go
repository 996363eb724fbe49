package workbook

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Source identifies a workbook to reconcile: either raw bytes (an upload or
// a download) or a path on disk. Exactly one of the two should be set.
type Source struct {
	Name string // display name for logs and cache invalidation
	Path string
	Data []byte
}

// FromPath builds a Source backed by a file on disk.
func FromPath(path string) Source {
	return Source{Name: path, Path: path}
}

// FromBytes builds a Source backed by in-memory workbook bytes.
func FromBytes(name string, data []byte) Source {
	return Source{Name: name, Data: data}
}

// Load returns the workbook bytes, reading from disk when path-backed.
func (s Source) Load() ([]byte, error) {
	if s.Data != nil {
		return s.Data, nil
	}
	if s.Path == "" {
		return nil, eris.New("workbook: source has neither data nor path")
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, eris.Wrap(err, "workbook: read source file")
	}
	return data, nil
}

// Open parses the workbook bytes.
func Open(data []byte) (*xlsx.File, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "workbook: parse xlsx")
	}
	return f, nil
}

// Digest returns a content hash of the workbook bytes. The cache keys on it,
// so editing the underlying file naturally invalidates cached results.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
