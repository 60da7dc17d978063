package pngme

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// ChunkOverhead is the number of bytes a chunk occupies besides its data.
	ChunkOverhead = lengthSize + typeSize + crcSize
)

// Chunk is a single length-prefixed, CRC-protected record of a PNG file.
// Length and CRC are always derived from the type and data.
type Chunk struct {
	chunkType ChunkType
	data      []byte
}

// NewChunk builds a chunk from trusted parts. The result is well formed by
// construction.
func NewChunk(chunkType ChunkType, data []byte) Chunk {
	return Chunk{
		chunkType: chunkType,
		data:      append([]byte(nil), data...),
	}
}

// ParseChunk decodes exactly one serialized chunk. The slice must hold the
// whole chunk and nothing more.
func ParseChunk(b []byte) (Chunk, error) {
	if len(b) < ChunkOverhead {
		return Chunk{}, ErrTruncated.
			WithDetail("size", len(b)).
			WithDetail("minimum", ChunkOverhead)
	}

	length := binary.BigEndian.Uint32(b[0:4])
	if uint64(len(b)) != uint64(length)+ChunkOverhead {
		return Chunk{}, NewLengthMismatchError(length, len(b)-ChunkOverhead)
	}

	var raw [4]byte
	copy(raw[:], b[4:8])
	chunkType, err := ParseChunkType(raw)
	if err != nil {
		return Chunk{}, NewInvalidChunkTypeError(err)
	}

	dataEnd := 8 + int(length)
	data := b[8:dataEnd]
	stored := binary.BigEndian.Uint32(b[dataEnd : dataEnd+crcSize])

	chunk := NewChunk(chunkType, data)
	if computed := chunk.CRC(); computed != stored {
		return Chunk{}, NewChecksumMismatchError(chunkType, stored, computed)
	}
	return chunk, nil
}

// Length returns the number of data bytes.
func (c Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// ChunkType returns the chunk's type.
func (c Chunk) ChunkType() ChunkType {
	return c.chunkType
}

// Data returns a copy of the chunk data.
func (c Chunk) Data() []byte {
	return append([]byte(nil), c.data...)
}

// CRC returns the CRC-32 (IEEE) of the type bytes followed by the data.
func (c Chunk) CRC() uint32 {
	typeBytes := c.chunkType.Bytes()
	crc := crc32.Update(0, crc32.IEEETable, typeBytes[:])
	return crc32.Update(crc, crc32.IEEETable, c.data)
}

// DataAsString interprets the data as UTF-8 text.
func (c Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrUTF8Decode.WithDetail("chunkType", c.chunkType.String())
	}
	return string(c.data), nil
}

// Size returns the serialized size of the chunk.
func (c Chunk) Size() int {
	return ChunkOverhead + len(c.data)
}

// Bytes serializes the chunk as length, type, data and CRC.
func (c Chunk) Bytes() []byte {
	out := make([]byte, 0, c.Size())
	out = binary.BigEndian.AppendUint32(out, c.Length())
	typeBytes := c.chunkType.Bytes()
	out = append(out, typeBytes[:]...)
	out = append(out, c.data...)
	return binary.BigEndian.AppendUint32(out, c.CRC())
}

// Equal reports whether two chunks have the same type and data.
func (c Chunk) Equal(other Chunk) bool {
	return c.chunkType == other.chunkType && string(c.data) == string(other.data)
}

func (c Chunk) String() string {
	return fmt.Sprintf("Chunk{type: %s, length: %d, crc: 0x%08x}", c.chunkType, c.Length(), c.CRC())
}
