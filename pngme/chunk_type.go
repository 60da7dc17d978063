package pngme

import "unicode/utf8"

// ChunkType is the 4-letter tag naming a chunk. The case of each letter
// carries one property bit (bit 5 of the byte).
type ChunkType struct {
	b [4]byte
}

const propertyBit = 1 << 5

// ParseChunkType builds a ChunkType from raw bytes. Every byte must be an
// ASCII letter; the reserved bit is not enforced here, see IsValid.
func ParseChunkType(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isASCIILetter(c) {
			return ChunkType{}, ErrInvalidByte.
				WithDetail("index", i).
				WithDetail("byte", c)
		}
	}
	return ChunkType{b: b}, nil
}

// ChunkTypeFromString parses a 4-character chunk type such as "RuSt".
func ChunkTypeFromString(s string) (ChunkType, error) {
	if n := utf8.RuneCountInString(s); n != 4 {
		return ChunkType{}, ErrInvalidLength.
			WithDetail("chunkType", s).
			WithDetail("length", n)
	}
	var b [4]byte
	i := 0
	for _, r := range s {
		if r >= utf8.RuneSelf || !isASCIILetter(byte(r)) {
			return ChunkType{}, ErrInvalidByte.
				WithDetail("index", i).
				WithDetail("char", string(r))
		}
		b[i] = byte(r)
		i++
	}
	return ChunkType{b: b}, nil
}

// Bytes returns the raw type bytes.
func (t ChunkType) Bytes() [4]byte {
	return t.b
}

func (t ChunkType) String() string {
	return string(t.b[:])
}

// IsCritical reports whether decoders must understand the chunk to render.
func (t ChunkType) IsCritical() bool {
	return t.b[0]&propertyBit == 0
}

// IsPublic reports whether the type is part of the public registry.
func (t ChunkType) IsPublic() bool {
	return t.b[1]&propertyBit == 0
}

// IsReservedBitValid reports whether the third letter is upper case.
func (t ChunkType) IsReservedBitValid() bool {
	return t.b[2]&propertyBit == 0
}

// IsSafeToCopy reports whether editors may copy the chunk after modifying
// critical chunks.
func (t ChunkType) IsSafeToCopy() bool {
	return t.b[3]&propertyBit != 0
}

// IsValid reports whether the type follows the format rules. A type with an
// invalid reserved bit still parses and can be used.
func (t ChunkType) IsValid() bool {
	return t.IsReservedBitValid()
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
