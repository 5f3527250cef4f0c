// FILE: lixenwraith/ini/io.go
package ini

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultMaxFileSize bounds how much of a configuration file is read.
const DefaultMaxFileSize int64 = 10 << 20

// LoadFile parses the INI file at path.
// A missing file fails with ErrConfigNotFound.
func LoadFile(path string) (*Config, error) {
	return loadFile(path, DefaultMaxFileSize)
}

// LoadFileWithSchema parses the INI file at path and validates it against schm.
func LoadFileWithSchema(path string, schm *Schema, mode Mode) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg, schm, mode); err != nil {
		return nil, fmt.Errorf("config file '%s': %w", path, err)
	}
	return cfg, nil
}

// SaveFile writes cfg to path atomically as plain INI text.
func SaveFile(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := Write(&buf, cfg); err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	return atomicWriteFile(path, buf.Bytes())
}

// SaveFileWithSchema writes cfg to path atomically, annotated from schm.
func SaveFileWithSchema(path string, cfg *Config, schm *Schema) error {
	var buf bytes.Buffer
	if err := WriteWithSchema(&buf, cfg, schm); err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	return atomicWriteFile(path, buf.Bytes())
}

// readFile reads at most maxSize bytes from path.
// A non-positive maxSize disables the limit.
func readFile(path string, maxSize int64) ([]byte, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat config file '%s': %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("config path '%s' is a directory", path)
	}
	if maxSize > 0 && fileInfo.Size() > maxSize {
		return nil, fmt.Errorf("%w: '%s' exceeds %d bytes", ErrFileTooLarge, path, maxSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if maxSize > 0 {
		// +1 detects growth between Stat and Read
		reader = io.LimitReader(file, maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: '%s' exceeds %d bytes", ErrFileTooLarge, path, maxSize)
	}
	return data, nil
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op after a successful rename

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
