package serviceImp

import (
	"errors"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"vyron/entities"
	"vyron/pkg/brain/chunker"
	"vyron/pkg/brain/embedder"
	"vyron/pkg/brain/repository"
	"vyron/pkg/brain/service"
)

const (
	defaultBatchSize   = 50
	defaultSearchLimit = 3
)

type Svc struct {
	r         repository.ChunkRepository
	emb       service.Embedder
	ext       service.Extractor
	split     *chunker.Splitter
	batchSize int
}

func New(r repository.ChunkRepository, emb service.Embedder, ext service.Extractor, split *chunker.Splitter, batchSize int) *Svc {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Svc{r: r, emb: emb, ext: ext, split: split, batchSize: batchSize}
}

func (s *Svc) IngestFile(path, nameOverride string, replace bool) (*service.IngestSummary, error) {
	res, err := s.ext.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", path, err)
	}
	name := nameOverride
	if name == "" {
		name = filepath.Base(path)
	}
	return s.ingest(res.Text, res.Pages, name, replace)
}

func (s *Svc) IngestBytes(data []byte, filename string, replace bool) (*service.IngestSummary, error) {
	res, err := s.ext.FromBytes(data, filename)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", filename, err)
	}
	return s.ingest(res.Text, res.Pages, filename, replace)
}

// IngestText takes pre-extracted text, for non-file sources such as web pages.
// The source name is a synthetic label chosen by the caller.
func (s *Svc) IngestText(text string, pages int, sourceName string, replace bool) (*service.IngestSummary, error) {
	if strings.TrimSpace(sourceName) == "" {
		return nil, errors.New("source name is required")
	}
	return s.ingest(text, pages, sourceName, replace)
}

func (s *Svc) ingest(text string, pages int, sourceName string, replace bool) (*service.IngestSummary, error) {
	chunks := s.split.Split(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("ingest %s: %w", sourceName, service.ErrNoChunks)
	}
	log.Printf("[brain] %s: %d chunks from %d pages", sourceName, len(chunks), pages)

	vectors := make([][]float32, 0, len(chunks))
	batches := 0
	for i := 0; i < len(chunks); i += s.batchSize {
		end := i + s.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		vectors = append(vectors, s.emb.EmbedBatch(chunks[i:end])...)
		batches++
	}
	log.Printf("[brain] %s: embedded %d chunks in %d batches", sourceName, len(chunks), batches)

	base := 0
	if !replace {
		var err error
		if base, err = s.r.NextSequence(sourceName); err != nil {
			return nil, fmt.Errorf("ingest %s: %w: %v", sourceName, service.ErrPersistence, err)
		}
	}

	rows := make([]entities.DocumentChunk, len(chunks))
	for i := range chunks {
		rows[i] = entities.DocumentChunk{
			ID:            uuid.NewString(),
			SourceName:    sourceName,
			SequenceIndex: base + i,
			Content:       chunks[i],
			Embedding:     embedder.FloatsToBytes(vectors[i]),
			Metadata: entities.ChunkMeta{
				TotalPages:  pages,
				TotalChunks: len(chunks),
				ChunkSize:   utf8.RuneCountInString(chunks[i]),
			},
		}
	}

	var err error
	if replace {
		err = s.r.ReplaceSource(sourceName, rows)
	} else {
		err = s.r.BulkInsert(rows)
	}
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w: %v", sourceName, service.ErrPersistence, err)
	}

	summary := &service.IngestSummary{
		SourceName:  sourceName,
		TotalPages:  pages,
		TotalChunks: len(chunks),
		Status:      "success",
	}
	log.Printf("[brain] ingested %+v", summary)
	return summary, nil
}

func (s *Svc) Search(query string, limit int, sourceFilter string) ([]service.ScoredChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, errors.New("query is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	qvec := s.emb.EmbedOne(q)
	cands, err := s.r.CandidatesBySource(sourceFilter)
	if err != nil {
		return nil, err
	}

	out := make([]service.ScoredChunk, 0, len(cands))
	for _, ch := range cands {
		vec := embedder.BytesToFloats(ch.Embedding)
		if len(vec) != embedder.Dimension || len(qvec) != embedder.Dimension {
			// never compare across mismatched dimensions
			log.Printf("[brain] WARN: skipping chunk %s with %d-dim vector", ch.ID, len(vec))
			continue
		}
		out = append(out, service.ScoredChunk{
			ID:            ch.ID,
			SourceName:    ch.SourceName,
			SequenceIndex: ch.SequenceIndex,
			Content:       ch.Content,
			Score:         cosine(vec, qvec),
			Metadata:      ch.Metadata,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Svc) Status() service.StatusSummary {
	zero := service.StatusSummary{Files: []repository.SourceCount{}}
	total, err := s.r.Count()
	if err != nil {
		log.Printf("[brain] WARN: status count: %v", err)
		return zero
	}
	files, err := s.r.CountBySource()
	if err != nil {
		log.Printf("[brain] WARN: status group-by: %v", err)
		return zero
	}
	if files == nil {
		files = []repository.SourceCount{}
	}
	return service.StatusSummary{TotalChunks: total, TotalFiles: len(files), Files: files}
}

func (s *Svc) DeleteSource(source string) (int64, error) {
	return s.r.DeleteBySource(source)
}

// cosine returns the cosine similarity, which equals 1 - cosine distance.
// A zero-magnitude vector (the embedding fallback sentinel) scores 0 so that
// fallback rows are ranked last rather than excluded.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		va, vb := float64(a[i]), float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
