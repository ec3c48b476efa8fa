package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed idle_config.lua
var defaultScript []byte

// DefaultScript returns the script written on first run.
func DefaultScript() []byte {
	out := make([]byte, len(defaultScript))
	copy(out, defaultScript)
	return out
}

// EnsureScript creates path from the embedded default script when it does
// not exist. It reports whether a file was written. Only .lua paths are
// provisioned.
func EnsureScript(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat script %s: %w", path, err)
	}
	if filepath.Ext(path) != ".lua" {
		return false, fmt.Errorf("script %s does not exist", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return false, fmt.Errorf("create script directory: %w", err)
	}
	if err := os.WriteFile(path, defaultScript, filePerm); err != nil {
		return false, fmt.Errorf("write default script: %w", err)
	}
	return true, nil
}
