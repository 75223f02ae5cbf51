package api

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

func (s *Server) setupRoutes() {
	s.router.Use(loggingMiddleware)
	s.router.Use(recoveryMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	v1 := s.router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/estimate", s.handleEstimate).Methods(http.MethodPost)
	v1.HandleFunc("/simulate", s.handleSimulate).Methods(http.MethodPost)
	v1.HandleFunc("/probability", s.handleProbability).Methods(http.MethodPost)
	v1.HandleFunc("/history", s.handleListHistory).Methods(http.MethodGet)
	v1.HandleFunc("/history", s.handleRecordOutcome).Methods(http.MethodPost)
	v1.HandleFunc("/history/{id}", s.handleGetOutcome).Methods(http.MethodGet)
	v1.HandleFunc("/history/{id}", s.handleDeleteOutcome).Methods(http.MethodDelete)
	v1.HandleFunc("/calibration", s.handleCalibration).Methods(http.MethodGet)

	page, _ := fs.Sub(staticFiles, "static")
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(page))).Methods(http.MethodGet)
}
