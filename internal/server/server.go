package server

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/common"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/export"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/extraction"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/llm"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/middleware"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/recon"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/repository"
)

// Server wires the extraction pipeline, the reconciliation engine, and the
// repositories behind an HTTP API.
type Server struct {
	cfg       *common.Config
	db        *sql.DB
	contracts repository.ContractRepository
	invoices  repository.InvoiceRepository
	results   repository.ResultRepository
	extractor llm.DocumentExtractor
	parser    *extraction.Parser
	engine    *recon.Engine
	exporter  *export.Service
	logger    *slog.Logger
}

func New(cfg *common.Config, db *sql.DB, extractor llm.DocumentExtractor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	results := repository.NewResultRepository(db, logger)
	matcher := recon.NewTieredMatcher(cfg.Recon.MinOverlapWords, cfg.Recon.OverlapRatio)
	engine := recon.NewEngine(logger, matcher, recon.Config{
		PriceTolerance:     cfg.Recon.PriceTolerance,
		CompareSupplier:    cfg.Recon.CompareSupplier,
		SupplierSimilarity: cfg.Recon.SupplierSimilarity,
	})

	return &Server{
		cfg:       cfg,
		db:        db,
		contracts: repository.NewContractRepository(db, logger),
		invoices:  repository.NewInvoiceRepository(db, logger),
		results:   results,
		extractor: extractor,
		parser:    extraction.NewParser(logger),
		engine:    engine,
		exporter:  export.NewService(results, logger),
		logger:    logger,
	}
}

// Router builds the gin engine with middleware and all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())

	router.GET("/health", s.health)

	api := router.Group("/api")
	{
		api.POST("/contracts", s.createContract)
		api.GET("/contracts", s.listContracts)
		api.GET("/contracts/:id", s.getContract)
		api.DELETE("/contracts/:id", s.deleteContract)
		api.GET("/contracts/:id/comparisons", s.listComparisons)

		api.POST("/invoices/process", s.processInvoice)
		api.GET("/invoices", s.listInvoices)
		api.GET("/invoices/:id", s.getInvoice)
		api.POST("/invoices/compare", s.compareInvoice)

		api.GET("/comparisons/:id", s.getComparison)
		api.GET("/comparisons/:id/export", s.exportComparison)
	}

	return router
}

func (s *Server) health(c *gin.Context) {
	if err := repository.HealthCheck(c.Request.Context(), s.db, 2*time.Second); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"error":      err.Error(),
		"request_id": middleware.GetRequestID(c),
	})
}
