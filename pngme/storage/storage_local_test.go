package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorage_ReadWrite(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "image.png")
	ctx := context.Background()
	store := NewLocalStorage()

	if err := store.WriteImage(ctx, name, []byte("first")); err != nil {
		t.Fatalf("WriteImage() error = %v", err)
	}
	if err := store.WriteImage(ctx, name, []byte("second")); err != nil {
		t.Fatalf("WriteImage() error = %v", err)
	}

	got, err := store.ReadImage(ctx, name)
	if err != nil {
		t.Fatalf("ReadImage() error = %v", err)
	}
	if string(got) != "second" {
		t.Errorf("ReadImage() = %q, want %q", got, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contains %v, want only image.png", names)
	}
}

func TestLocalStorage_Backup(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "image.png")
	ctx := context.Background()

	if err := os.WriteFile(name, []byte("original"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	store := NewLocalStorage().WithBackup(true)
	if err := store.WriteImage(ctx, name, []byte("updated")); err != nil {
		t.Fatalf("WriteImage() error = %v", err)
	}

	backup, err := os.ReadFile(name + ".bak")
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if string(backup) != "original" {
		t.Errorf("backup = %q, want %q", backup, "original")
	}

	stat, err := os.Stat(name)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if stat.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", stat.Mode().Perm())
	}
}

func TestLocalStorage_NotFound(t *testing.T) {
	store := NewLocalStorage()
	_, err := store.ReadImage(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("ReadImage() error = %v, want ErrImageNotFound", err)
	}
}

func TestLocalStorage_Progress(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "image.png")
	data := bytes.Repeat([]byte{0xAB}, 100*1024)
	if err := os.WriteFile(name, data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var last, total int64
	calls := 0
	store := NewLocalStorage().WithProgress(func(current, tot int64) {
		calls++
		last = current
		total = tot
	})

	got, err := store.ReadImage(context.Background(), name)
	if err != nil {
		t.Fatalf("ReadImage() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("ReadImage() returned %d bytes, want %d", len(got), len(data))
	}
	if calls == 0 {
		t.Fatal("progress callback never called")
	}
	if last != int64(len(data)) || total != int64(len(data)) {
		t.Errorf("progress = %d/%d, want %d/%d", last, total, len(data), len(data))
	}
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	name := filepath.Join(t.TempDir(), "image.png")
	if err := NewLocalStorage().WriteImage(ctx, name, []byte("data")); !errors.Is(err, context.Canceled) {
		t.Errorf("WriteImage() error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Errorf("image written despite cancelled context")
	}
}

func TestMockStorage(t *testing.T) {
	ctx := context.Background()
	store := NewMockStorage()
	store.AddImage("a.png", []byte("a"))

	if _, err := store.ReadImage(ctx, "b.png"); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("ReadImage(missing) error = %v, want ErrImageNotFound", err)
	}
	if err := store.WriteImage(ctx, "b.png", []byte("b")); err != nil {
		t.Fatalf("WriteImage() error = %v", err)
	}

	got, err := store.ReadImage(ctx, "b.png")
	if err != nil || string(got) != "b" {
		t.Errorf("ReadImage() = %q, %v, want %q", got, err, "b")
	}
	got[0] = 'x'
	again, _ := store.ReadImage(ctx, "b.png")
	if string(again) != "b" {
		t.Errorf("stored image mutated through returned slice: %q", again)
	}

	if names := store.Names(); len(names) != 2 || names[0] != "a.png" || names[1] != "b.png" {
		t.Errorf("Names() = %v", names)
	}
	if store.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", store.Writes())
	}
}
