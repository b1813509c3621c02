// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package web exposes the parsing pipeline over HTTP: batch document
// upload, registry listing, and export download. All requests share one
// session registry, so identity resolution spans uploads.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"property-scan/internal/export"
	"property-scan/internal/formatters"
	"property-scan/internal/processor"
	"property-scan/internal/version"

	// Import formatters to register them
	_ "property-scan/internal/formatters/csv"
	_ "property-scan/internal/formatters/json"
	_ "property-scan/internal/formatters/text"
)

// WebServer serves the property intake API
type WebServer struct {
	port      string
	processor *processor.Processor
	exporter  *export.Service
	fields    []string
	logger    *slog.Logger
	server    *http.Server
}

// UploadFileStatus reports the outcome for one uploaded file
type UploadFileStatus struct {
	File    string `json:"file"`
	Key     string `json:"key,omitempty"`
	Address string `json:"address,omitempty"`
	Updated bool   `json:"updated,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UploadResponse wraps the per-file statuses of one batch upload
type UploadResponse struct {
	Success bool               `json:"success"`
	Results []UploadFileStatus `json:"results"`
	Total   int                `json:"total_properties"`
}

// NewWebServer creates a new web server instance
func NewWebServer(port string, proc *processor.Processor, exporter *export.Service, fields []string, logger *slog.Logger) *WebServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebServer{
		port:      port,
		processor: proc,
		exporter:  exporter,
		fields:    fields,
		logger:    logger,
	}
}

// Start starts the web server, trying successive ports when the
// configured one is busy.
func (ws *WebServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", ws.serveHome)
	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/upload", ws.handleUpload)
	mux.HandleFunc("/properties", ws.handleProperties)
	mux.HandleFunc("/properties/export", ws.handleExport)

	var lastError error
	for _, currentPort := range fallbackPorts(ws.port) {
		listener, err := net.Listen("tcp", ":"+currentPort)
		if err != nil {
			lastError = err
			continue
		}

		ws.server = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 15 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		ws.logger.Info("web server started", "port", currentPort, "session_id", ws.processor.Registry().SessionID)
		return ws.server.Serve(listener)
	}
	return fmt.Errorf("no available port: %w", lastError)
}

// fallbackPorts returns the configured port followed by the next nine
// ports above it. A missing or non-numeric port starts from 8080.
func fallbackPorts(port string) []string {
	base, err := strconv.Atoi(port)
	if err != nil || base <= 0 {
		base = 8080
	}

	ports := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		ports = append(ports, strconv.Itoa(base+i))
	}
	return ports
}

// Stop shuts the server down.
func (ws *WebServer) Stop() error {
	if ws.server == nil {
		return nil
	}
	return ws.server.Close()
}

// serveHome describes the API endpoints
func (ws *WebServer) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "property-scan",
		"version": version.Short(),
		"endpoints": []string{
			"POST /upload",
			"GET /properties?format=text|json|csv",
			"GET /properties/export?format=text|json|csv|xlsx",
			"GET /health",
		},
	})
}

// handleHealth reports liveness and registry size
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"properties": ws.processor.Registry().Len(),
	})
}

// handleUpload accepts a multipart batch of documents and processes them
// sequentially in upload order. A failed document is reported in its slot
// and never blocks the remaining files.
func (ws *WebServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, UploadResponse{Success: false})
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "No files uploaded", http.StatusBadRequest)
		return
	}

	resp := UploadResponse{Success: true}
	for _, fh := range files {
		status := ws.processUploadedFile(fh)
		if status.Error != "" {
			resp.Success = false
		}
		resp.Results = append(resp.Results, status)
	}
	resp.Total = ws.processor.Registry().Len()

	writeJSON(w, http.StatusOK, resp)
}

// processUploadedFile stages one upload into a temp file and runs the
// pipeline on it.
func (ws *WebServer) processUploadedFile(fh *multipart.FileHeader) UploadFileStatus {
	name := filepath.Base(fh.Filename)
	status := UploadFileStatus{File: name}

	src, err := fh.Open()
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer src.Close()

	tempFile, err := os.CreateTemp("", "property_upload_*"+filepath.Ext(name))
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer os.Remove(tempFile.Name())

	if _, err := io.Copy(tempFile, src); err != nil {
		tempFile.Close()
		status.Error = err.Error()
		return status
	}
	tempFile.Close()

	result := ws.processor.ProcessFile(tempFile.Name())
	if result.Err != nil {
		// Report the original name, not the temp path.
		status.Error = fmt.Sprintf("error parsing %s: %v", name, result.Err)
		return status
	}

	status.Key = result.Key
	status.Address = result.Record.Address()
	status.Updated = result.Updated
	return status
}

// handleProperties renders the registry with a formatter (default json)
func (ws *WebServer) handleProperties(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	keys, records := ws.processor.Registry().Snapshot()
	content, mimeType, _, err := formatters.ExportForWeb(format, keys, records, ws.fields, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	fmt.Fprint(w, content)
}

// handleExport downloads the registry as an attachment, including the
// xlsx workbook format.
func (ws *WebServer) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	if format == "xlsx" {
		data, err := ws.exporter.ExportXLSX(ws.processor.Registry())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="property-scan-results.xlsx"`)
		w.Write(data)
		return
	}

	keys, records := ws.processor.Registry().Snapshot()
	content, mimeType, filename, err := formatters.ExportForWeb(format, keys, records, ws.fields, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	fmt.Fprint(w, content)
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
