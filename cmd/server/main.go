package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"vyron/config"
	"vyron/database"
	"vyron/router"

	"vyron/pkg/ai"
	"vyron/pkg/brain/chunker"
	brainCtrlImp "vyron/pkg/brain/controllerImp"
	"vyron/pkg/brain/embedder"
	"vyron/pkg/brain/extractor"
	brainRepoImp "vyron/pkg/brain/repositoryImp"
	brainSvcImp "vyron/pkg/brain/serviceImp"
	chatCtrlImp "vyron/pkg/chat/controllerImp"
	healthCtrlImp "vyron/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())

	// 4) Brain wiring — one embedding client shared across calls
	emb := embedder.New(cfg.EmbEndpoint, cfg.EmbAPIKey, cfg.EmbModel)
	split := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	brainRepo := brainRepoImp.New(db)
	brainSvc := brainSvcImp.New(brainRepo, emb, extractor.New(), split, cfg.EmbBatchSize)
	brainCtrl := brainCtrlImp.New(brainSvc)

	// 5) LLM (mock fallback when unconfigured)
	var llm ai.Client
	if cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		llm = ai.NewMock()
	}
	chatCtrl := chatCtrlImp.New(llm, brainSvc)

	// 6) Health
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 7) Router
	r := router.New(e, brainCtrl, chatCtrl, hCtrl)

	// 8) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
