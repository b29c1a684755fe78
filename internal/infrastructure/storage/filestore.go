package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/assistitk12/assistitk12/internal/application/ticket/usecases"
)

var (
	_ usecases.FileStore  = (*FileStore)(nil)
	_ usecases.FileLister = (*FileStore)(nil)
)

// FileStore keeps attachment files flat under one directory of an afero
// filesystem. Names never contain path separators.
type FileStore struct {
	fs afero.Fs
}

// NewLocalFileStore roots the store at dir on the OS filesystem, creating it
// if needed.
func NewLocalFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return NewFileStore(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

func NewFileStore(fs afero.Fs) *FileStore {
	return &FileStore{fs: fs}
}

func cleanName(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return name, nil
}

func (s *FileStore) Save(_ context.Context, name string, r io.Reader) (int64, error) {
	name, err := cleanName(name)
	if err != nil {
		return 0, err
	}

	f, err := s.fs.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0640)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(name)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	return n, nil
}

// DetectContentType sniffs the file signature, e.g. "image/png" or
// "application/pdf".
func (s *FileStore) DetectContentType(_ context.Context, name string) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}

	f, err := s.fs.Open(name)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to detect content type: %w", err)
	}
	return mt.String(), nil
}

func (s *FileStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

func (s *FileStore) Remove(_ context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (s *FileStore) List(_ context.Context) ([]usecases.StoredFile, error) {
	infos, err := afero.ReadDir(s.fs, "/")
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]usecases.StoredFile, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		files = append(files, usecases.StoredFile{Name: info.Name(), ModTime: info.ModTime()})
	}
	return files, nil
}
