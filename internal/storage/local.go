package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore menyimpan bukti transfer/pembayaran ke disk lokal.
type LocalStore struct {
	Dir string
}

// SaveDataURL decodes a base64 data-URL (or bare base64 string) and writes it
// under the store directory with the given stored name. Returns the path.
func (s LocalStore) SaveDataURL(storedName, dataURL string) (string, error) {
	raw := strings.TrimSpace(dataURL)
	if raw == "" {
		return "", fmt.Errorf("file kosong")
	}
	if i := strings.Index(raw, "base64,"); i >= 0 {
		raw = raw[i+len("base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decode file gagal: %w", err)
	}

	dir := s.Dir
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, storedName)
	if err := os.WriteFile(path, decoded, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
