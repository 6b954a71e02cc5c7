// Package server exposes the annotation pipeline over HTTP. Endpoints mirror
// the CLI: direct variant submission, batch analysis with a clinical report,
// and VCF upload with parse-and-filter statistics.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/genoinsight/genoinsight/internal/clinical"
	"github.com/genoinsight/genoinsight/internal/duckdb"
	"github.com/genoinsight/genoinsight/internal/knowledge"
	"github.com/genoinsight/genoinsight/internal/pipeline"
)

const (
	// DefaultMaxUpload caps VCF uploads at 16 MiB.
	DefaultMaxUpload = 16 << 20

	// DefaultCacheSize bounds the annotation cache.
	DefaultCacheSize = 4096

	// uploadPreviewLimit caps the number of parsed variants echoed back
	// from an upload.
	uploadPreviewLimit = 50
)

// Server hosts the HTTP API over a shared pipeline and knowledge tables.
type Server struct {
	pipeline  *pipeline.Pipeline
	tables    *knowledge.Tables
	store     *duckdb.Store
	cache     *lru.Cache[string, *clinical.Annotation]
	logger    *zap.Logger
	maxUpload int64
}

// Option configures a Server.
type Option func(*Server)

// WithStore attaches a duckdb store; batch results are persisted and
// variant lookups are served from it.
func WithStore(store *duckdb.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMaxUpload overrides the upload size cap in bytes.
func WithMaxUpload(n int64) Option {
	return func(s *Server) { s.maxUpload = n }
}

// New creates a Server. The pipeline handles scoring and annotation; the
// tables back the sample-data and upload endpoints.
func New(p *pipeline.Pipeline, tables *knowledge.Tables, opts ...Option) (*Server, error) {
	s := &Server{
		pipeline:  p,
		tables:    tables,
		logger:    zap.NewNop(),
		maxUpload: DefaultMaxUpload,
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := lru.New[string, *clinical.Annotation](DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create annotation cache: %w", err)
	}
	s.cache = cache

	return s, nil
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.logger))
	r.MaxMultipartMemory = s.maxUpload

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/sample-data", s.handleSampleData)
	api.POST("/upload-vcf", s.handleUploadVCF)
	api.POST("/analyze-variant", s.handleAnalyzeVariant)
	api.POST("/analyze-batch", s.handleAnalyzeBatch)
	api.GET("/variant/:id", s.handleLookupVariant)
	api.GET("/stats", s.handleStats)

	return r
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting api server", zap.String("addr", addr))
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	return srv.ListenAndServe()
}
