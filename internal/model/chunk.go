package model

// Chunk is the atomic retrieval unit: one contiguous slice of a document's
// extracted text together with its embedding. Document metadata is
// denormalized onto every chunk so retrieval results are self-describing.
type Chunk struct {
	DocumentID string            `json:"document_id"`
	Index      int               `json:"index"`
	Text       string            `json:"text"`
	Embedding  []float32         `json:"embedding"`
	Filename   string            `json:"filename"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ScoredChunk pairs a chunk with its similarity score against a query.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// SourceRef describes the provenance of one retrieved chunk in an answer.
type SourceRef struct {
	DocumentID string  `json:"document_id"`
	Excerpt    string  `json:"excerpt"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
}

// Answer is the synthesized reply to a question plus its grounding sources.
type Answer struct {
	Text    string      `json:"text"`
	Sources []SourceRef `json:"sources"`
}

// IngestResult reports the outcome of a successful document ingestion.
type IngestResult struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
	TextLength int    `json:"text_length"`
}

// StoreStats is a point-in-time snapshot of the vector store.
type StoreStats struct {
	DocumentCount int `json:"document_count"`
	ChunkCount    int `json:"chunk_count"`
}
