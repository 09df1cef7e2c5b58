// Package api holds the versioned configuration types of pgn and the file
// helpers they share.
package api

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/macropower/pgn/pkg/yaml"
)

// GetConfigPath returns the path to filename in the pgn config directory.
// It checks $XDG_CONFIG_HOME first, then falls back to ~/.config, and
// finally to a temp directory.
func GetConfigPath(filename string) string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "pgn", filename)
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", "pgn", filename)
	}

	tmpPath := filepath.Join(os.TempDir(), "pgn", filename)

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("err", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpPath
}

// ReadFile reads a regular file.
func ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	switch {
	case info.IsDir():
		return nil, fmt.Errorf("%s: path is a directory", path)
	case !info.Mode().IsRegular():
		return nil, fmt.Errorf("%s: unknown file state", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Reading user-selected files.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// MarshalYAML serializes obj to YAML.
func MarshalYAML(obj any, opts ...yaml.EncoderOpt) ([]byte, error) {
	b, err := yaml.Marshal(obj, opts...)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b, nil
}

// WriteDefaultFile writes data to path unless a file is already there.
// With force, an existing file is renamed to a timestamped backup first.
// kind names the file in log messages.
func WriteDefaultFile(path string, data []byte, force bool, kind string) error {
	exists := false

	info, err := os.Stat(path)
	if info != nil {
		switch {
		case err == nil && info.Mode().IsRegular():
			exists = true
		case info.IsDir():
			return fmt.Errorf("%s: path is a directory", path)
		default:
			return fmt.Errorf("%s: unknown file state", path)
		}
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if exists && !force {
		slog.Debug("file already exists, skipping write",
			slog.String("type", kind),
			slog.String("path", path),
		)

		return nil
	}

	if exists {
		backupPath := filepath.Join(filepath.Dir(path),
			fmt.Sprintf("%s.%d.old", filepath.Base(path), time.Now().UnixNano()))

		slog.Info("backing up existing file",
			slog.String("type", kind),
			slog.String("path", backupPath),
		)

		err = os.Rename(path, backupPath)
		if err != nil {
			return fmt.Errorf("rename existing %s file to backup: %w", kind, err)
		}
	}

	slog.Info("write default file",
		slog.String("type", kind),
		slog.String("path", path),
	)

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("write %s file: %w", kind, err)
	}

	return nil
}
