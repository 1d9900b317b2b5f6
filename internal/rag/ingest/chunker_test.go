package ingest

import (
	"strings"
	"testing"
)

func TestSplitText_ShortTextSingleChunk(t *testing.T) {
	text := "shorter than one window"
	chunks := SplitText(text, 1000, 200)
	if len(chunks) != 1 || chunks[0] != text {
		t.Fatalf("expected one chunk equal to the text, got %d chunks", len(chunks))
	}
}

func TestSplitText_WindowCoverage(t *testing.T) {
	// No sentence terminators, so every window keeps its full size and the
	// slice offsets are exact.
	text := strings.Repeat("a", 3000)
	chunks := SplitText(text, 1000, 200)

	wantStarts := []int{0, 800, 1600, 2400}
	if len(chunks) != len(wantStarts) {
		t.Fatalf("expected %d chunks, got %d", len(wantStarts), len(chunks))
	}

	covered := 0
	for i, chunk := range chunks {
		start := wantStarts[i]
		if text[start:start+len(chunk)] != chunk {
			t.Errorf("chunk %d does not start at offset %d", i, start)
		}
		if end := start + len(chunk); end > covered {
			covered = end
		}
	}
	if covered < len(text) {
		t.Errorf("final chunk ends at %d, want >= %d", covered, len(text))
	}
}

func TestSplitText_OverlapBetweenWindows(t *testing.T) {
	text := strings.Repeat("x", 500) + strings.Repeat("y", 500) + strings.Repeat("z", 500)
	chunks := SplitText(text, 1000, 200)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	tail := chunks[0][len(chunks[0])-200:]
	if !strings.HasPrefix(chunks[1], tail) {
		t.Errorf("second chunk does not begin with the 200-char overlap of the first")
	}
}

func TestSplitText_SentenceSnap(t *testing.T) {
	// A period falls inside the overlap region of the first window; the
	// window end should snap to just after it.
	text := strings.Repeat("a", 950) + ". " + strings.Repeat("b", 600)
	chunks := SplitText(text, 1000, 200)

	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk should end at the sentence terminator, got %q", chunks[0][len(chunks[0])-10:])
	}
	// Starts still advance by the full step regardless of the snap.
	if !strings.HasPrefix(chunks[1], text[800:810]) {
		t.Errorf("second chunk should start at offset 800")
	}
}

func TestSplitText_Deterministic(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 60)
	first := SplitText(text, 1000, 200)
	second := SplitText(text, 1000, 200)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunkKey(t *testing.T) {
	if got := ChunkKey("doc-1", 0); got != "doc-1_chunk_0" {
		t.Errorf("ChunkKey = %q, want doc-1_chunk_0", got)
	}
	if got := ChunkKey("policy_handbook", 17); got != "policy_handbook_chunk_17" {
		t.Errorf("ChunkKey = %q, want policy_handbook_chunk_17", got)
	}
}
