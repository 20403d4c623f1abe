package server

import (
	"net/http"
	"time"

	"minutes-pipeline/internal/logger"
	"minutes-pipeline/internal/pipeline"
)

// Server exposes the upload/status/download surface over HTTP.
type Server struct {
	orch           pipeline.Orchestrator
	logger         logger.Logger
	uploadDir      string
	maxUploadBytes int64
	mux            *http.ServeMux
	now            func() time.Time
}

// New creates a Server submitting runs to the given orchestrator. Uploaded
// files are stored under uploadDir.
func New(orch pipeline.Orchestrator, log logger.Logger, uploadDir string, maxUploadMB int64) *Server {
	s := &Server{
		orch:           orch,
		logger:         log,
		uploadDir:      uploadDir,
		maxUploadBytes: maxUploadMB << 20,
		mux:            http.NewServeMux(),
		now:            time.Now,
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /upload", s.handleUpload)
	s.mux.HandleFunc("GET /status/{id}", s.handleStatus)
	s.mux.HandleFunc("GET /download/{id}", s.handleDownload)
}
