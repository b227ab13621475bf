package service

import (
	"errors"

	"vyron/entities"
	"vyron/pkg/brain/extractor"
	"vyron/pkg/brain/repository"
)

var (
	// ErrNoChunks guards against a document that chunked to nothing even
	// though extraction reported text.
	ErrNoChunks = errors.New("no chunks produced")
	// ErrPersistence marks a failed (and fully rolled back) chunk insert.
	ErrPersistence = errors.New("persistence failed")
)

// IngestSummary reports a completed ingestion.
type IngestSummary struct {
	SourceName  string `json:"source_name"`
	TotalPages  int    `json:"total_pages"`
	TotalChunks int    `json:"total_chunks"`
	Status      string `json:"status"`
}

// ScoredChunk is one retrieval hit. Score is 1 - cosine distance: 1.0 is a
// perfect match, negative values mean anti-correlation.
type ScoredChunk struct {
	ID            string             `json:"id"`
	SourceName    string             `json:"source_name"`
	SequenceIndex int                `json:"sequence_index"`
	Content       string             `json:"content"`
	Score         float64            `json:"score"`
	Metadata      entities.ChunkMeta `json:"metadata"`
}

// StatusSummary is the aggregate inventory of the chunk store.
type StatusSummary struct {
	TotalChunks int64                    `json:"total_chunks"`
	TotalFiles  int                      `json:"total_files"`
	Files       []repository.SourceCount `json:"files"`
}

// Embedder converts text into fixed-width vectors. Implementations degrade to
// zero vectors instead of failing.
type Embedder interface {
	EmbedBatch(texts []string) [][]float32
	EmbedOne(text string) []float32
}

// Extractor pulls page-ordered text out of a source document.
type Extractor interface {
	FromFile(path string) (*extractor.Result, error)
	FromBytes(data []byte, name string) (*extractor.Result, error)
}

type BrainService interface {
	IngestFile(path, nameOverride string, replace bool) (*IngestSummary, error)
	IngestBytes(data []byte, filename string, replace bool) (*IngestSummary, error)
	IngestText(text string, pages int, sourceName string, replace bool) (*IngestSummary, error)
	Search(query string, limit int, sourceFilter string) ([]ScoredChunk, error)
	Status() StatusSummary
	DeleteSource(source string) (int64, error)
}
