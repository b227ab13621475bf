package embedder

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Dimension is the system-wide embedding width. Every stored vector and every
// query vector must have exactly this length.
const Dimension = 1536

// Client talks to an OpenAI-compatible embeddings endpoint. It never fails:
// a missing key or any provider error degrades to zero vectors so that
// ingestion and search keep working with reduced quality.
type Client struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
}

func New(endpoint, key, model string) *Client {
	if endpoint == "" {
		endpoint = "https://api.openai.com"
	}
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &Client{
		endpoint: endpoint,
		key:      key,
		model:    model,
		httpc:    &http.Client{Timeout: 20 * time.Second},
	}
}

// EmbedBatch returns one vector per input text, in input order. The provider
// may answer out of order; results are re-sorted by the echoed index.
func (c *Client) EmbedBatch(texts []string) [][]float32 {
	if len(texts) == 0 {
		return nil
	}
	if c.key == "" {
		log.Printf("[emb] no API key configured, returning zero vectors for %d texts", len(texts))
		return zeroVectors(len(texts))
	}

	vecs, err := c.request(texts)
	if err != nil {
		log.Printf("[emb] WARN: %v, returning zero vectors for %d texts", err, len(texts))
		return zeroVectors(len(texts))
	}
	return vecs
}

// EmbedOne is the single-text form of EmbedBatch.
func (c *Client) EmbedOne(text string) []float32 {
	return c.EmbedBatch([]string{text})[0]
}

func (c *Client) request(texts []string) ([][]float32, error) {
	body := map[string]any{"model": c.model, "input": texts}
	b, _ := json.Marshal(body)
	req, err := http.NewRequest("POST", strings.TrimRight(c.endpoint, "/")+"/v1/embeddings", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embeddings API: %s", resp.Status)
	}

	var out struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	if len(out.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings API returned %d vectors for %d texts", len(out.Data), len(texts))
	}

	sort.Slice(out.Data, func(i, j int) bool { return out.Data[i].Index < out.Data[j].Index })
	vecs := make([][]float32, len(out.Data))
	for i := range out.Data {
		if len(out.Data[i].Embedding) != Dimension {
			return nil, fmt.Errorf("embeddings API returned %d-dim vector, want %d", len(out.Data[i].Embedding), Dimension)
		}
		vecs[i] = out.Data[i].Embedding
	}
	return vecs, nil
}

// ZeroVector is the fallback sentinel stored when embedding is unavailable.
func ZeroVector() []float32 { return make([]float32, Dimension) }

func zeroVectors(n int) [][]float32 {
	vecs := make([][]float32, n)
	for i := range vecs {
		vecs[i] = ZeroVector()
	}
	return vecs
}

// FloatsToBytes encodes a vector as little-endian float32 for BLOB storage.
func FloatsToBytes(v []float32) []byte {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, v)
	return buf.Bytes()
}

// BytesToFloats decodes a BLOB written by FloatsToBytes.
func BytesToFloats(b []byte) []float32 {
	n := len(b) / 4
	out := make([]float32, n)
	_ = binary.Read(bytes.NewReader(b), binary.LittleEndian, &out)
	return out
}
