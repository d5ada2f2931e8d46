package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrCreatePepper reads the pepper stored at path. When the file does not
// exist a new 256-bit pepper is generated and written with 0600 permissions.
// Losing this file invalidates every stored password hash.
func LoadOrCreatePepper(path string) (string, error) {
	data, err := LoadOrCreateFile(path, func() ([]byte, error) {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		return []byte(base64.RawURLEncoding.EncodeToString(buf)), nil
	})
	if err != nil {
		return "", fmt.Errorf("cryptox: pepper: %w", err)
	}

	pepper := strings.TrimSpace(string(data))
	if pepper == "" {
		return "", fmt.Errorf("cryptox: pepper file %s is empty", path)
	}
	return pepper, nil
}

// LoadOrCreateFile returns the contents of path, creating it from generate
// when it does not exist yet. Parent directories are created with 0750.
func LoadOrCreateFile(path string, generate func() ([]byte, error)) ([]byte, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	data, err = generate()
	if err != nil {
		return nil, err
	}

	// O_EXCL so two processes racing on first start do not overwrite each other
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return os.ReadFile(path)
		}
		return nil, err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return nil, err
	}
	return data, nil
}
