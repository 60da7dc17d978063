package pngme

import (
	_ "crypto/sha256"
	"strings"

	"github.com/opencontainers/go-digest"
)

// ChunkSummary describes a chunk for display.
type ChunkSummary struct {
	Index  int
	Offset int64 // byte offset of the chunk in the serialized file
	Type   ChunkType
	Length uint32
	CRC    uint32
	Digest digest.Digest // sha256 of the chunk data
}

// Flags renders the property bits as four characters: critical (C) or
// ancillary (a), public (P) or private (p), reserved bit valid (R) or not
// (r), unsafe (U) or safe (s) to copy.
func (s ChunkSummary) Flags() string {
	var sb strings.Builder
	sb.WriteByte(pick(s.Type.IsCritical(), 'C', 'a'))
	sb.WriteByte(pick(s.Type.IsPublic(), 'P', 'p'))
	sb.WriteByte(pick(s.Type.IsReservedBitValid(), 'R', 'r'))
	sb.WriteByte(pick(s.Type.IsSafeToCopy(), 's', 'U'))
	return sb.String()
}

// Summarize lists every chunk of p with its position in the serialized file.
func Summarize(p *Png) []ChunkSummary {
	summaries := make([]ChunkSummary, 0, len(p.chunks))
	offset := int64(len(Signature))
	for i, c := range p.chunks {
		summaries = append(summaries, ChunkSummary{
			Index:  i,
			Offset: offset,
			Type:   c.ChunkType(),
			Length: c.Length(),
			CRC:    c.CRC(),
			Digest: digest.FromBytes(c.data),
		})
		offset += int64(c.Size())
	}
	return summaries
}

func pick(cond bool, yes, no byte) byte {
	if cond {
		return yes
	}
	return no
}
