package repository

import "vyron/entities"

// SourceCount is one row of the per-source chunk inventory.
type SourceCount struct {
	SourceName string `json:"source_name"`
	ChunkCount int64  `json:"chunk_count"`
}

type ChunkRepository interface {
	// BulkInsert persists all chunks in one transaction, all-or-nothing.
	BulkInsert(chunks []entities.DocumentChunk) error
	// ReplaceSource deletes every chunk of source and inserts the new set
	// inside the same transaction.
	ReplaceSource(source string, chunks []entities.DocumentChunk) error
	// NextSequence returns the first free sequence index for source.
	NextSequence(source string) (int, error)
	// CandidatesBySource returns chunks in insertion order, restricted to
	// source when non-empty.
	CandidatesBySource(source string) ([]entities.DocumentChunk, error)
	Count() (int64, error)
	CountBySource() ([]SourceCount, error)
	DeleteBySource(source string) (int64, error)
}
