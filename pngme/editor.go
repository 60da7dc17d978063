package pngme

import (
	"context"
	"fmt"

	"github.com/flaneur2020/pngme/pngme/logger"
	"github.com/flaneur2020/pngme/pngme/storage"
)

// Editor runs chunk operations against images held in an ImageStore. Images
// are written back only after the whole in-memory edit succeeded.
type Editor interface {
	// EncodeFile hides message in a chunk of chunkType. An empty output
	// rewrites input in place.
	EncodeFile(ctx context.Context, input string, chunkType string, message string, output string) error
	DecodeFile(ctx context.Context, input string, chunkType string) (Chunk, error)
	RemoveFile(ctx context.Context, input string, chunkType string) (Chunk, error)
	PrintFile(ctx context.Context, input string) (*Png, error)
}

type editor struct {
	store storage.ImageStore
}

func NewEditor(store storage.ImageStore) Editor {
	return &editor{
		store: store,
	}
}

func (e *editor) EncodeFile(ctx context.Context, input string, chunkType string, message string, output string) error {
	raw, err := e.store.ReadImage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	encoded, err := Encode(raw, chunkType, []byte(message))
	if err != nil {
		return err
	}

	if output == "" {
		output = input
	}
	if err := e.store.WriteImage(ctx, output, encoded); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	logger.Info("Encoded message=%q into %s chunk of %s (%d -> %d bytes)", message, chunkType, output, len(raw), len(encoded))
	return nil
}

func (e *editor) DecodeFile(ctx context.Context, input string, chunkType string) (Chunk, error) {
	raw, err := e.store.ReadImage(ctx, input)
	if err != nil {
		return Chunk{}, fmt.Errorf("failed to read image: %w", err)
	}

	chunk, err := Decode(raw, chunkType)
	if err != nil {
		return Chunk{}, err
	}
	logger.Debug("Found %s in %s", chunk, input)
	return chunk, nil
}

func (e *editor) RemoveFile(ctx context.Context, input string, chunkType string) (Chunk, error) {
	raw, err := e.store.ReadImage(ctx, input)
	if err != nil {
		return Chunk{}, fmt.Errorf("failed to read image: %w", err)
	}

	stripped, removed, err := Remove(raw, chunkType)
	if err != nil {
		return Chunk{}, err
	}

	if err := e.store.WriteImage(ctx, input, stripped); err != nil {
		return Chunk{}, fmt.Errorf("failed to write image: %w", err)
	}
	logger.Info("Removed %s from %s", removed, input)
	return removed, nil
}

func (e *editor) PrintFile(ctx context.Context, input string) (*Png, error) {
	raw, err := e.store.ReadImage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	p, err := Inspect(raw)
	if err != nil {
		return nil, err
	}
	for _, c := range p.Chunks() {
		if !c.ChunkType().IsValid() {
			logger.Warn("Chunk type %s in %s has an invalid reserved bit", c.ChunkType(), input)
		}
	}
	return p, nil
}
