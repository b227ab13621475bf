package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	brainCtrl interface {
		Ingest(echo.Context) error
		Upload(echo.Context) error
		IngestURL(echo.Context) error
		Search(echo.Context) error
		Status(echo.Context) error
		DeleteSource(echo.Context) error
	},
	chatCtrl interface{ Chat(echo.Context) error },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	api := e.Group("")

	// Brain endpoints (document RAG)
	api.POST("/brain/ingest", brainCtrl.Ingest)
	api.POST("/brain/ingest/url", brainCtrl.IngestURL)
	api.POST("/brain/upload", brainCtrl.Upload)
	api.POST("/brain/search", brainCtrl.Search)
	api.GET("/brain/status", brainCtrl.Status)
	api.DELETE("/brain/documents/:source", brainCtrl.DeleteSource)

	api.POST("/ai/chat", chatCtrl.Chat)

	e.GET("/health", healthCtrl.Health)
	return e
}
