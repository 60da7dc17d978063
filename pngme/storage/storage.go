package storage

import (
	"context"
	"errors"
)

// ErrImageNotFound is returned when the named image does not exist.
var ErrImageNotFound = errors.New("image not found")

// ProgressCallback is called while an image is read
// current: bytes read so far
// total: total image size (may be -1 if unknown)
type ProgressCallback func(current int64, total int64)

// ImageStore abstracts whole-image reads and writes. Images are small enough
// to be held in memory.
type ImageStore interface {
	ReadImage(ctx context.Context, name string) ([]byte, error)
	WriteImage(ctx context.Context, name string, data []byte) error
}
