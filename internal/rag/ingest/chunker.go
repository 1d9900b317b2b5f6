package ingest

import (
	"fmt"
	"strings"
)

//splitter

// SplitText walks the text in fixed windows of chunkSize characters. Each
// subsequent window starts chunkSize-overlap after the previous one, so
// consecutive windows share overlap characters; the final window may be
// shorter. Same input always yields the same sequence, which keeps
// re-indexing idempotent.
func SplitText(text string, chunkSize int, overlap int) []string {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 || overlap <= 0 || overlap >= chunkSize {
		chunkSize = 1000
		overlap = 200
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	var chunks []string

	for start := 0; start < len(text); start += step {
		end := start + chunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		chunks = append(chunks, text[start:snapToSentence(text, end, overlap)])
	}
	return chunks
}

// snapToSentence pulls the window end back to just after the nearest sentence
// terminator, retreating at most overlap characters. The snapped end never
// falls before the next window's start, so no text is lost between chunks.
func snapToSentence(text string, end int, overlap int) int {
	floor := end - overlap
	for i := end - 1; i > floor; i-- {
		switch text[i] {
		case '.', '!', '?':
			return i + 1
		}
	}
	return end
}

// ChunkKey builds the deterministic chunk id. Re-upserting the same source
// produces the same ids, so a re-index overwrites instead of duplicating.
func ChunkKey(sourceID string, ordinal int) string {
	return fmt.Sprintf("%s_chunk_%d", sourceID, ordinal)
}

// normalizeWhitespace collapses runs of blank lines left behind by PDF text
// extraction so they don't eat chunk budget.
func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blank := false
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}
