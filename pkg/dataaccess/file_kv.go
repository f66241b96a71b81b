package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type fileKV struct {
	// dir is the root directory. Records live at <dir>/<namespace>/<guild>.json.
	dir string
}

// NewFileKV creates a KV that stores each record as a JSON file under dir.
func NewFileKV(dir string) (KV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}
	return &fileKV{dir: dir}, nil
}

func (f *fileKV) path(ns Namespace, guildID string) (string, error) {
	if guildID == "" || strings.ContainsAny(guildID, `/\.`) {
		return "", fmt.Errorf("invalid guild id %q", guildID)
	}
	return filepath.Join(f.dir, string(ns), guildID+".json"), nil
}

func (f *fileKV) Get(_ context.Context, ns Namespace, guildID string) ([]byte, error) {
	defer observe(BackendFile, "get", ns)()

	p, err := f.path(ns, guildID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", p, err)
	}
	return data, nil
}

// Put writes to a temporary file and renames it over the record so readers never see a partial write.
func (f *fileKV) Put(_ context.Context, ns Namespace, guildID string, data []byte) error {
	defer observe(BackendFile, "put", ns)()

	p, err := f.path(ns, guildID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("error creating namespace directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), guildID+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("error replacing %s: %w", p, err)
	}
	return nil
}

func (f *fileKV) Delete(_ context.Context, ns Namespace, guildID string) error {
	defer observe(BackendFile, "delete", ns)()

	p, err := f.path(ns, guildID)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error deleting %s: %w", p, err)
	}
	return nil
}

func (f *fileKV) Ping(_ context.Context) error {
	defer observe(BackendFile, "ping", "-")()

	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("error checking data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", f.dir)
	}
	return nil
}

func (f *fileKV) Close(_ context.Context) error {
	return nil
}
