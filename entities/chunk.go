package entities

import "time"

// ChunkMeta is write-once ingestion metadata kept for display/audit only.
type ChunkMeta struct {
	TotalPages  int `json:"total_pages"`
	TotalChunks int `json:"total_chunks"`
	ChunkSize   int `json:"chunk_size"`
}

// DocumentChunk is one bounded segment of an ingested document together with
// its embedding vector (1536 float32, little-endian BLOB).
type DocumentChunk struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	SourceName    string    `gorm:"uniqueIndex:idx_source_seq;index" json:"source_name"`
	SequenceIndex int       `gorm:"uniqueIndex:idx_source_seq" json:"sequence_index"`
	Content       string    `json:"content"`
	Embedding     []byte    `json:"-"`
	Metadata      ChunkMeta `gorm:"serializer:json" json:"metadata"`
	CreatedAt     time.Time `json:"created_at"`
}
