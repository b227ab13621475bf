package controllerImp

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"vyron/pkg/ai"
	"vyron/pkg/brain/service"
)

const contextChunks = 3

// ChatCtrl answers questions with retrieval-augmented generation: top chunks
// from the brain service are joined into context for the LLM client.
type ChatCtrl struct {
	llm ai.Client
	s   service.BrainService
}

func New(llm ai.Client, s service.BrainService) *ChatCtrl {
	return &ChatCtrl{llm: llm, s: s}
}

type chatReq struct {
	Query string `json:"query"`
}

func (h *ChatCtrl) Chat(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}

	hits, err := h.s.Search(req.Query, contextChunks, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	parts := make([]string, 0, len(hits))
	for _, hit := range hits {
		parts = append(parts, fmt.Sprintf("[%s #%d, score %.3f]\n%s", hit.SourceName, hit.SequenceIndex, hit.Score, hit.Content))
	}

	answer, err := h.llm.Answer(req.Query, strings.Join(parts, "\n\n---\n\n"))
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"answer": answer, "sources": hits})
}
