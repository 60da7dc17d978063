package pngme

// Encode appends a chunk of the given type carrying payload to the PNG in raw
// and returns the re-serialized file.
func Encode(raw []byte, chunkType string, payload []byte) ([]byte, error) {
	ct, err := ChunkTypeFromString(chunkType)
	if err != nil {
		return nil, err
	}
	p, err := ParsePng(raw)
	if err != nil {
		return nil, err
	}
	p.AppendChunk(NewChunk(ct, payload))
	return p.Bytes(), nil
}

// Decode returns the first chunk of the given type.
func Decode(raw []byte, chunkType string) (Chunk, error) {
	ct, err := ChunkTypeFromString(chunkType)
	if err != nil {
		return Chunk{}, err
	}
	p, err := ParsePng(raw)
	if err != nil {
		return Chunk{}, err
	}
	chunk, ok := p.ChunkByType(ct)
	if !ok {
		return Chunk{}, NewChunkNotFoundError(chunkType)
	}
	return chunk, nil
}

// Remove deletes the first chunk of the given type and returns the
// re-serialized file along with the removed chunk.
func Remove(raw []byte, chunkType string) ([]byte, Chunk, error) {
	ct, err := ChunkTypeFromString(chunkType)
	if err != nil {
		return nil, Chunk{}, err
	}
	p, err := ParsePng(raw)
	if err != nil {
		return nil, Chunk{}, err
	}
	removed, err := p.RemoveChunk(ct)
	if err != nil {
		return nil, Chunk{}, err
	}
	return p.Bytes(), removed, nil
}

// Inspect decodes raw for display.
func Inspect(raw []byte) (*Png, error) {
	return ParsePng(raw)
}
