package pngme

import (
	"testing"

	"github.com/opencontainers/go-digest"
)

func TestSummarize(t *testing.T) {
	p := testingPng(t)
	summaries := Summarize(p)

	if len(summaries) != p.Len() {
		t.Fatalf("len(Summarize()) = %d, want %d", len(summaries), p.Len())
	}

	raw := p.Bytes()
	for i, s := range summaries {
		chunk := p.Chunks()[i]
		if s.Index != i {
			t.Errorf("summary %d Index = %d", i, s.Index)
		}
		if s.Type != chunk.ChunkType() {
			t.Errorf("summary %d Type = %s, want %s", i, s.Type, chunk.ChunkType())
		}
		if string(raw[s.Offset+4:s.Offset+8]) != s.Type.String() {
			t.Errorf("summary %d Offset = %d does not point at its chunk", i, s.Offset)
		}
		if s.Digest != digest.FromBytes(chunk.Data()) {
			t.Errorf("summary %d Digest = %s", i, s.Digest)
		}
		if s.CRC != chunk.CRC() || s.Length != chunk.Length() {
			t.Errorf("summary %d length/crc = %d/%d", i, s.Length, s.CRC)
		}
	}
}

func TestChunkSummaryFlags(t *testing.T) {
	tests := []struct {
		chunkType string
		want      string
	}{
		{"RuSt", "CpRs"},
		{"IEND", "CPRU"},
		{"tEXt", "aPRs"},
		{"rust", "aprs"},
	}

	for _, tt := range tests {
		t.Run(tt.chunkType, func(t *testing.T) {
			ct, _ := ChunkTypeFromString(tt.chunkType)
			if got := (ChunkSummary{Type: ct}).Flags(); got != tt.want {
				t.Errorf("Flags() = %q, want %q", got, tt.want)
			}
		})
	}
}
