package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/flaneur2020/pngme/pngme/logger"
)

// LocalStorage reads and writes images on the local filesystem.
type LocalStorage struct {
	backup   bool
	progress ProgressCallback
}

// NewLocalStorage creates a filesystem-backed ImageStore.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

// WithBackup makes WriteImage keep the replaced file as <name>.bak.
func (s *LocalStorage) WithBackup(backup bool) *LocalStorage {
	return &LocalStorage{
		backup:   backup,
		progress: s.progress,
	}
}

// WithProgress reports read progress to callback.
func (s *LocalStorage) WithProgress(callback ProgressCallback) *LocalStorage {
	return &LocalStorage{
		backup:   s.backup,
		progress: callback,
	}
}

// ReadImage reads the whole file at name.
func (s *LocalStorage) ReadImage(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrImageNotFound)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s is a directory", name)
	}
	logger.Debug("Reading image %s (%d bytes)", name, stat.Size())

	var reader io.Reader = f
	if s.progress != nil {
		reader = &progressReader{
			reader:   f,
			total:    stat.Size(),
			callback: s.progress,
		}
	}

	data := make([]byte, 0, stat.Size())
	buf := make([]byte, 32*1024)
	for {
		n, err := reader.Read(buf)
		data = append(data, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
	}
	return data, nil
}

// WriteImage replaces name with data atomically: the data goes to a
// temporary file in the same directory which is then renamed over name.
func (s *LocalStorage) WriteImage(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(name)
	mode := fs.FileMode(0644)
	existing, err := os.Stat(name)
	switch {
	case err == nil:
		mode = existing.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat image: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once renamed
		os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close image: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set image mode: %w", err)
	}

	if s.backup && existing != nil {
		backupName := name + ".bak"
		if err := copyFile(name, backupName, mode); err != nil {
			return fmt.Errorf("failed to back up image: %w", err)
		}
		logger.Info("Backed up %s to %s", name, backupName)
	}

	if err := os.Rename(tmpName, name); err != nil {
		return fmt.Errorf("failed to replace image: %w", err)
	}
	logger.Debug("Wrote image %s (%d bytes)", name, len(data))
	return nil
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// progressReader wraps an io.Reader to report read progress
type progressReader struct {
	reader   io.Reader
	total    int64
	current  int64
	callback ProgressCallback
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.current += int64(n)
	if pr.callback != nil {
		pr.callback(pr.current, pr.total)
	}
	return n, err
}
