package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"

	"TickerReport/internal/model"
)

// WriteResult describes what WriteFile did.
type WriteResult struct {
	Path     string
	Checksum uint64
	Bytes    int
	Skipped  bool // existing file already had identical content
}

// WriteFile renders result and replaces path atomically. When the file on
// disk already holds the same content the write is skipped.
func WriteFile(path string, result *model.RunResult, now time.Time) (WriteResult, error) {
	var buf bytes.Buffer
	if err := Render(&buf, result, now); err != nil {
		return WriteResult{}, err
	}
	content := buf.Bytes()
	out := WriteResult{Path: path, Checksum: xxhash.Sum64(content), Bytes: len(content)}

	if existing, err := os.ReadFile(path); err == nil && xxhash.Sum64(existing) == out.Checksum {
		out.Skipped = true
		return out, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return out, fmt.Errorf("create report dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return out, fmt.Errorf("create temp report: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return out, fmt.Errorf("write temp report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return out, fmt.Errorf("close temp report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return out, fmt.Errorf("chmod report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return out, fmt.Errorf("replace report: %w", err)
	}
	return out, nil
}
