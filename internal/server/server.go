// Package server exposes the simulation engine over HTTP, serving both a
// JSON API and the embedded web UI.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"rendafixa-simulator/internal/config"
	"rendafixa-simulator/pkg/constants"
	"rendafixa-simulator/pkg/output"
	"rendafixa-simulator/pkg/simulation"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger        *zap.Logger
	engine        *simulation.Engine
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// simulation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		engine:        simulation.NewEngine(logger),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Simulation API endpoint (YAML file upload)
	mux.HandleFunc("/api/simulate", h.handleSimulate)

	// Simulation API endpoint for editor-driven JSON payloads
	mux.HandleFunc("/api/editor/simulate", h.handleSimulateEditor)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return mux
}

type simulateResponse struct {
	Products []productSummary `json:"products"`
	Best     *productSummary  `json:"best,omitempty"`
	Rows     []trajectoryRow  `json:"rows"`
	CSV      string           `json:"csv"`
	Skipped  []skippedProduct `json:"skipped,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
	Duration string           `json:"duration"`
}

type productSummary struct {
	Name         string  `json:"name"`
	MonthlyRate  float64 `json:"monthlyRate"`
	GrossGain    float64 `json:"grossGain"`
	TaxRate      float64 `json:"taxRate"`
	TaxWithheld  float64 `json:"taxWithheld"`
	NetGain      float64 `json:"netGain"`
	FinalBalance float64 `json:"finalBalance"`
	TaxExempt    bool    `json:"taxExempt"`
}

type trajectoryRow struct {
	Month  int       `json:"month"`
	Values []float64 `json:"values"`
}

type skippedProduct struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleSimulate")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleSimulate")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleSimulate")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleSimulate"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleSimulate")
		return
	}

	h.runSimulation(w, buf.Bytes(), start, "server.handleSimulate")
}

func (h *handler) handleSimulateEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleSimulateEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handleSimulateEditor")
			return
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleSimulateEditor")
		return
	}

	h.runSimulation(w, configBytes, start, "server.handleSimulateEditor")
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runSimulation(w http.ResponseWriter, configBytes []byte, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	cfg.ApplyDefaults()

	batch, err := h.engine.ProjectAll(cfg.ToProducts(), cfg.ToPlan(), cfg.ToScenario())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	elapsed := time.Since(start)

	response := simulateResponse{
		Products: buildSummaries(batch),
		Best:     buildBest(batch),
		Rows:     buildRows(batch),
		CSV:      output.CsvString(batch),
		Skipped:  buildSkipped(batch),
		Warnings: warnings,
		Duration: elapsed.String(),
	}

	h.logger.Info("simulation computed",
		zap.String("op", op),
		zap.Int("products", len(response.Products)),
		zap.Int("skipped", len(response.Skipped)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg, op string) {
	h.logger.Error("simulation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func buildSummaries(batch simulation.Batch) []productSummary {
	summaries := make([]productSummary, 0, len(batch.Results))
	for _, result := range batch.Results {
		summaries = append(summaries, newProductSummary(result))
	}
	return summaries
}

func buildBest(batch simulation.Batch) *productSummary {
	if batch.Best == nil {
		return nil
	}
	summary := newProductSummary(*batch.Best)
	return &summary
}

func newProductSummary(result simulation.Result) productSummary {
	return productSummary{
		Name:         result.ProductName,
		MonthlyRate:  result.MonthlyRate,
		GrossGain:    result.GrossGain,
		TaxRate:      result.TaxRate,
		TaxWithheld:  result.TaxWithheld,
		NetGain:      result.NetGain,
		FinalBalance: result.FinalBalance,
		TaxExempt:    result.TaxExempt,
	}
}

func buildRows(batch simulation.Batch) []trajectoryRow {
	months := 0
	for _, result := range batch.Results {
		if len(result.Trajectory) > months {
			months = len(result.Trajectory)
		}
	}

	rows := make([]trajectoryRow, 0, months)
	for month := 0; month < months; month++ {
		row := trajectoryRow{Month: month}
		for _, result := range batch.Results {
			if month < len(result.Trajectory) {
				row.Values = append(row.Values, result.Trajectory[month])
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func buildSkipped(batch simulation.Batch) []skippedProduct {
	if len(batch.Skipped) == 0 {
		return nil
	}
	skipped := make([]skippedProduct, 0, len(batch.Skipped))
	for _, entry := range batch.Skipped {
		skipped = append(skipped, skippedProduct{Name: entry.ProductName, Error: entry.Err.Error()})
	}
	return skipped
}
