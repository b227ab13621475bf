package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"

	"vyron/pkg/brain/extractor"
	"vyron/pkg/brain/service"
)

type BrainCtrl struct {
	s        service.BrainService
	allow    map[string]bool
	maxBytes int
}

func New(s service.BrainService) *BrainCtrl {
	allow := map[string]bool{}
	for _, h := range strings.Split(os.Getenv("BRAIN_ALLOWED_DOMAINS"), ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			allow[strings.ToLower(h)] = true
		}
	}
	mb := 1500000
	if v := os.Getenv("BRAIN_MAX_BYTES_PER_PAGE"); v != "" {
		fmt.Sscanf(v, "%d", &mb)
	}
	return &BrainCtrl{s: s, allow: allow, maxBytes: mb}
}

type ingestReq struct {
	FilePath string `json:"file_path"`
	Filename string `json:"filename"`
	Replace  bool   `json:"replace"`
}

func (h *BrainCtrl) Ingest(c echo.Context) error {
	var req ingestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
	}
	if strings.TrimSpace(req.FilePath) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file_path is required"})
	}

	summary, err := h.s.IngestFile(req.FilePath, req.Filename, req.Replace)
	if err != nil {
		return ingestError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *BrainCtrl) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".pdf", ".xlsx", ".xlsm":
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "only PDF and XLSX uploads are accepted"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	replace := c.QueryParam("replace") == "true"
	summary, err := h.s.IngestBytes(data, fh.Filename, replace)
	if err != nil {
		return ingestError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

type ingestURLReq struct {
	URL     string `json:"url"`
	Name    string `json:"name"`
	Replace bool   `json:"replace"`
}

func (h *BrainCtrl) IngestURL(c echo.Context) error {
	var req ingestURLReq
	if err := c.Bind(&req); err != nil || req.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url required"})
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad url"})
	}
	if !h.allow[strings.ToLower(u.Host)] {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "domain not allowed"})
	}

	text, err := fetchMainText(req.URL, h.maxBytes)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}

	name := req.Name
	if name == "" {
		name = req.URL
	}
	summary, err := h.s.IngestText(text, 1, name, req.Replace)
	if err != nil {
		return ingestError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

type searchReq struct {
	Query    string `json:"query"`
	Limit    int    `json:"limit"`
	Filename string `json:"filename"`
}

func (h *BrainCtrl) Search(c echo.Context) error {
	var req searchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}

	results, err := h.s.Search(req.Query, req.Limit, req.Filename)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"query":   req.Query,
		"results": results,
		"total":   len(results),
	})
}

func (h *BrainCtrl) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.Status())
}

func (h *BrainCtrl) DeleteSource(c echo.Context) error {
	source := c.Param("source")
	if source == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "source is required"})
	}
	n, err := h.s.DeleteSource(source)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"source_name": source, "deleted_chunks": n})
}

func ingestError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, extractor.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, extractor.ErrExtractionFailed), errors.Is(err, service.ErrNoChunks):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// --- helpers ---

func fetchMainText(u string, maxBytes int) (string, error) {
	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Get(u)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.ContentLength > 0 && resp.ContentLength > int64(maxBytes) {
		return "", fmt.Errorf("page too large")
	}
	limited := io.LimitedReader{R: resp.Body, N: int64(maxBytes)}
	b, err := io.ReadAll(&limited)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(ct, "text/plain") {
		return string(b), nil
	}
	if !strings.Contains(ct, "text/html") {
		return "", fmt.Errorf("unsupported content-type: %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if len(t) > 0 {
			parts = append(parts, t)
		}
	})
	return cleanWhitespace(strings.Join(parts, "\n")), nil
}

var wsRX = regexp.MustCompile(`\s+\n`)

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return wsRX.ReplaceAllString(s, "\n")
}
