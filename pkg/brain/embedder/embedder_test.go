package embedder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingItem struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

func vecWithMark(mark float32) []float32 {
	v := make([]float32, Dimension)
	v[0] = mark
	return v
}

func TestEmbedBatchRestoresProviderOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// answer in reverse order, relying on the echoed index
		items := make([]embeddingItem, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			items = append(items, embeddingItem{Index: i, Embedding: vecWithMark(float32(i + 1))})
		}
		json.NewEncoder(w).Encode(map[string]any{"data": items})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "")
	vecs := c.EmbedBatch([]string{"a", "b", "c"})
	require.Len(t, vecs, 3)
	assert.Equal(t, float32(1), vecs[0][0])
	assert.Equal(t, float32(2), vecs[1][0])
	assert.Equal(t, float32(3), vecs[2][0])
}

func TestEmbedBatchNoKeyReturnsZeroVectors(t *testing.T) {
	c := New("", "", "")
	vecs := c.EmbedBatch([]string{"a", "b"})
	require.Len(t, vecs, 2)
	for _, v := range vecs {
		require.Len(t, v, Dimension)
		for _, f := range v {
			require.Zero(t, f)
		}
	}
}

func TestEmbedBatchServerErrorDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	vecs := New(srv.URL, "test-key", "").EmbedBatch([]string{"a"})
	require.Len(t, vecs, 1)
	assert.Equal(t, ZeroVector(), vecs[0])
}

func TestEmbedBatchWrongDimensionDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []embeddingItem{{Index: 0, Embedding: []float32{1, 2, 3}}},
		})
	}))
	defer srv.Close()

	vecs := New(srv.URL, "test-key", "").EmbedBatch([]string{"a"})
	require.Len(t, vecs, 1)
	assert.Equal(t, ZeroVector(), vecs[0])
}

func TestEmbedBatchCountMismatchDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []embeddingItem{{Index: 0, Embedding: vecWithMark(1)}},
		})
	}))
	defer srv.Close()

	vecs := New(srv.URL, "test-key", "").EmbedBatch([]string{"a", "b"})
	require.Len(t, vecs, 2)
	assert.Equal(t, ZeroVector(), vecs[0])
	assert.Equal(t, ZeroVector(), vecs[1])
}

func TestEmbedOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []embeddingItem{{Index: 0, Embedding: vecWithMark(7)}},
		})
	}))
	defer srv.Close()

	v := New(srv.URL, "test-key", "").EmbedOne("hello")
	require.Len(t, v, Dimension)
	assert.Equal(t, float32(7), v[0])
}

func TestVectorBytesRoundTrip(t *testing.T) {
	v := vecWithMark(0.5)
	v[10] = -3.25
	v[Dimension-1] = 42

	b := FloatsToBytes(v)
	require.Len(t, b, Dimension*4)
	assert.Equal(t, v, BytesToFloats(b))
}
