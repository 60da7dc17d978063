package pngme

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Signature is the 8-byte header every PNG file starts with.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// IENDChunkType marks the end of a PNG file. The IEND chunk carries no data.
var IENDChunkType = ChunkType{b: [4]byte{'I', 'E', 'N', 'D'}}

// Png is an ordered list of chunks following the signature.
type Png struct {
	chunks []Chunk
}

// NewPng builds a Png from chunks in the given order. It does not require an
// IEND chunk, so it can be used for files under construction.
func NewPng(chunks []Chunk) *Png {
	return &Png{chunks: append([]Chunk(nil), chunks...)}
}

// ParsePng decodes a whole PNG file. Decoding stops after the IEND chunk or
// when the input is exhausted; anything after IEND is ignored.
func ParsePng(b []byte) (*Png, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, ErrSignatureMismatch
	}

	p := &Png{}
	offset := len(Signature)
	for offset < len(b) {
		rest := b[offset:]
		if len(rest) < ChunkOverhead {
			return nil, ErrTruncated.
				WithDetail("offset", offset).
				WithDetail("size", len(rest))
		}

		length := binary.BigEndian.Uint32(rest[0:4])
		if uint64(length)+ChunkOverhead > uint64(len(rest)) {
			return nil, ErrTruncated.
				WithDetail("offset", offset).
				WithDetail("declared", length).
				WithDetail("available", len(rest)-ChunkOverhead)
		}

		end := ChunkOverhead + int(length)
		chunk, err := ParseChunk(rest[:end])
		if err != nil {
			if pngErr, ok := err.(*PngError); ok {
				return nil, pngErr.WithDetail("offset", offset)
			}
			return nil, fmt.Errorf("chunk at offset %d: %w", offset, err)
		}

		p.chunks = append(p.chunks, chunk)
		offset += end

		if chunk.ChunkType() == IENDChunkType {
			break
		}
	}
	return p, nil
}

// Chunks returns the chunks in file order.
func (p *Png) Chunks() []Chunk {
	return append([]Chunk(nil), p.chunks...)
}

// Len returns the number of chunks.
func (p *Png) Len() int {
	return len(p.chunks)
}

// ChunkByType returns the first chunk with the given type.
func (p *Png) ChunkByType(chunkType ChunkType) (Chunk, bool) {
	if i := p.indexOf(chunkType); i >= 0 {
		return p.chunks[i], true
	}
	return Chunk{}, false
}

// AppendChunk inserts chunk right before the first IEND chunk, or at the end
// when there is no IEND chunk yet.
func (p *Png) AppendChunk(chunk Chunk) {
	i := p.indexOf(IENDChunkType)
	if i < 0 {
		p.chunks = append(p.chunks, chunk)
		return
	}
	p.chunks = append(p.chunks, Chunk{})
	copy(p.chunks[i+1:], p.chunks[i:])
	p.chunks[i] = chunk
}

// RemoveChunk removes and returns the first chunk with the given type. The
// Png is left unchanged when no chunk matches.
func (p *Png) RemoveChunk(chunkType ChunkType) (Chunk, error) {
	i := p.indexOf(chunkType)
	if i < 0 {
		return Chunk{}, NewChunkNotFoundError(chunkType.String())
	}
	removed := p.chunks[i]
	p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
	return removed, nil
}

// Bytes serializes the signature followed by every chunk.
func (p *Png) Bytes() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += c.Size()
	}
	out := make([]byte, 0, size)
	out = append(out, Signature[:]...)
	for _, c := range p.chunks {
		out = append(out, c.Bytes()...)
	}
	return out
}

func (p *Png) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Png{%d chunks}\n", len(p.chunks))
	for _, c := range p.chunks {
		fmt.Fprintf(&sb, "  %s\n", c)
	}
	return sb.String()
}

func (p *Png) indexOf(chunkType ChunkType) int {
	for i, c := range p.chunks {
		if c.ChunkType() == chunkType {
			return i
		}
	}
	return -1
}
