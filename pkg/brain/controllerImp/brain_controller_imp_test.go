package controllerImp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vyron/pkg/brain/extractor"
	"vyron/pkg/brain/service"
)

type fakeService struct {
	ingestErr error
	summary   *service.IngestSummary
	results   []service.ScoredChunk
	deleted   int64
}

func (f *fakeService) IngestFile(string, string, bool) (*service.IngestSummary, error) {
	return f.summary, f.ingestErr
}
func (f *fakeService) IngestBytes([]byte, string, bool) (*service.IngestSummary, error) {
	return f.summary, f.ingestErr
}
func (f *fakeService) IngestText(string, int, string, bool) (*service.IngestSummary, error) {
	return f.summary, f.ingestErr
}
func (f *fakeService) Search(string, int, string) ([]service.ScoredChunk, error) {
	return f.results, nil
}
func (f *fakeService) Status() service.StatusSummary      { return service.StatusSummary{} }
func (f *fakeService) DeleteSource(string) (int64, error) { return f.deleted, nil }

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestIngestRequiresFilePath(t *testing.T) {
	h := New(&fakeService{})
	rec := doJSON(t, h.Ingest, http.MethodPost, "/brain/ingest", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestMapsNotFound(t *testing.T) {
	h := New(&fakeService{ingestErr: fmt.Errorf("ingest x: %w", extractor.ErrNotFound)})
	rec := doJSON(t, h.Ingest, http.MethodPost, "/brain/ingest", `{"file_path":"/tmp/x.pdf"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIngestMapsExtractionFailed(t *testing.T) {
	h := New(&fakeService{ingestErr: fmt.Errorf("ingest x: %w", extractor.ErrExtractionFailed)})
	rec := doJSON(t, h.Ingest, http.MethodPost, "/brain/ingest", `{"file_path":"/tmp/x.pdf"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestIngestMapsPersistenceToServerError(t *testing.T) {
	h := New(&fakeService{ingestErr: fmt.Errorf("ingest x: %w: disk full", service.ErrPersistence)})
	rec := doJSON(t, h.Ingest, http.MethodPost, "/brain/ingest", `{"file_path":"/tmp/x.pdf"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIngestSuccess(t *testing.T) {
	h := New(&fakeService{summary: &service.IngestSummary{
		SourceName: "x.pdf", TotalPages: 2, TotalChunks: 3, Status: "success",
	}})
	rec := doJSON(t, h.Ingest, http.MethodPost, "/brain/ingest", `{"file_path":"/tmp/x.pdf"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out service.IngestSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, 3, out.TotalChunks)
}

func TestSearchRequiresQuery(t *testing.T) {
	h := New(&fakeService{})
	rec := doJSON(t, h.Search, http.MethodPost, "/brain/search", `{"query":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchReturnsResults(t *testing.T) {
	h := New(&fakeService{results: []service.ScoredChunk{
		{SourceName: "x.pdf", SequenceIndex: 0, Content: "hit", Score: 0.9},
	}})
	rec := doJSON(t, h.Search, http.MethodPost, "/brain/search", `{"query":"contract terms"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Total   int                   `json:"total"`
		Results []service.ScoredChunk `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "hit", out.Results[0].Content)
}

func TestIngestURLRejectsUnknownDomain(t *testing.T) {
	h := New(&fakeService{})
	rec := doJSON(t, h.IngestURL, http.MethodPost, "/brain/ingest/url", `{"url":"https://example.com/page"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteSource(t *testing.T) {
	h := New(&fakeService{deleted: 4})
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/brain/documents/x.pdf", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("source")
	c.SetParamValues("x.pdf")
	require.NoError(t, h.DeleteSource(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted_chunks":4`)
}
