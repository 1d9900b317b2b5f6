package commonModels

import "time"

// SourceType identifies which evidence pool a chunk or hit came from.
type SourceType string

const (
	SourceUserDocument   SourceType = "user_document"
	SourcePolicyDocument SourceType = "policy_document"
)

type Document struct {
	Id                  string     `json:"source_doc_id"`
	Name                string     `json:"doc_name"`
	LastIngestTimestamp time.Time  `json:"ingested_at"`
	ContentType         DocType    `json:"contentType"`
	Source              SourceType `json:"source"`
}

// DocChunk is the unit of indexing. ChunkId is deterministic
// ("{sourceId}_chunk_{ordinal}") so re-ingesting identical content
// overwrites instead of duplicating.
type DocChunk struct {
	Doc         Document
	ChunkId     string `json:"chunk_id"`
	Chunk       string `json:"content"`
	PageNum     int    `json:"page_num"`
	Ordinal     int    `json:"chunk_order"`
	TotalChunks int    `json:"total_chunks"`
}

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"

// Provenance identifies where a retrieved piece of text originated.
type Provenance struct {
	Source       SourceType `json:"source"`
	DocumentId   string     `json:"document_id,omitempty"`
	FileName     string     `json:"file_name,omitempty"`
	Page         int        `json:"page,omitempty"`
	ChunkOrdinal int        `json:"chunk,omitempty"`
	TotalChunks  int        `json:"total_chunks,omitempty"`
}

// RetrievalHit is one chunk returned by a similarity query. Transient,
// produced per query and never persisted.
type RetrievalHit struct {
	Text       string
	Score      float32
	Source     SourceType
	Provenance Provenance
}

// RetrievalBundle is what the fallback orchestrator reasons over: hits in
// retrieval order plus per-pool counts. Collections are concatenated, not
// ranked against each other.
type RetrievalBundle struct {
	Hits      []RetrievalHit
	PerSource map[SourceType]int
}

func (b RetrievalBundle) Empty() bool {
	return len(b.Hits) == 0
}

func (b RetrievalBundle) DocumentsFound() int {
	return len(b.Hits)
}

func (b RetrievalBundle) Provenances() []Provenance {
	out := make([]Provenance, 0, len(b.Hits))
	for _, h := range b.Hits {
		out = append(out, h.Provenance)
	}
	return out
}
