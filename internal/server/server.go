// Package server exposes the amortization calculator over HTTP: a small
// embedded web UI plus JSON and XLSX endpoints.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/Gms006/emprestimos/internal/config"
	"github.com/Gms006/emprestimos/internal/excel"
	"github.com/Gms006/emprestimos/internal/report"
	"github.com/Gms006/emprestimos/pkg/constants"
	"github.com/Gms006/emprestimos/pkg/datetime"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// calculation API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxRequestSize: maxRequestSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Calculation API endpoint (JSON in, JSON out)
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Spreadsheet download of the same calculation
	mux.HandleFunc("/api/calculate/xlsx", h.handleCalculateXLSX)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type calculateRequest struct {
	Name               string  `json:"name"`
	Principal          float64 `json:"principal"`
	AnnualInterestRate float64 `json:"annualInterestRate"`
	TermMonths         int     `json:"termMonths"`
	StartDate          string  `json:"startDate"`
	BaseDate           string  `json:"baseDate,omitempty"`
}

type calculateResponse struct {
	Name           string                `json:"name"`
	Summary        summaryPayload        `json:"summary"`
	Schedule       []entryPayload        `json:"schedule"`
	Classification classificationPayload `json:"classification"`
	CSV            string                `json:"csv"`
	Warnings       []string              `json:"warnings,omitempty"`
	Duration       string                `json:"duration"`
}

type summaryPayload struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalInterest  float64 `json:"totalInterest"`
}

type entryPayload struct {
	Period           int     `json:"period"`
	DueDate          string  `json:"dueDate"`
	Payment          float64 `json:"payment"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	RemainingBalance float64 `json:"remainingBalance"`
	Bucket           string  `json:"bucket"`
}

type classificationPayload struct {
	CutoffDate          string  `json:"cutoffDate"`
	CurrentPrincipal    float64 `json:"currentPrincipal"`
	CurrentInterest     float64 `json:"currentInterest"`
	NonCurrentPrincipal float64 `json:"nonCurrentPrincipal"`
	NonCurrentInterest  float64 `json:"nonCurrentInterest"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	op := "server.handleCalculate"

	rep, warnings, ok := h.buildReport(w, r, op)
	if !ok {
		return
	}

	elapsed := time.Since(start)
	response := calculateResponse{
		Name:           rep.Terms.Name,
		Summary:        buildSummary(rep),
		Schedule:       buildEntries(rep),
		Classification: buildClassification(rep),
		CSV:            report.CsvString(rep, report.FilterAll),
		Warnings:       warnings,
		Duration:       elapsed.String(),
	}

	h.logger.Info("schedule computed",
		zap.String("op", op),
		zap.Int("periods", len(response.Schedule)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleCalculateXLSX(w http.ResponseWriter, r *http.Request) {
	op := "server.handleCalculateXLSX"

	rep, _, ok := h.buildReport(w, r, op)
	if !ok {
		return
	}

	data, err := excel.ScheduleXLSX(rep.Terms, rep.Schedule, rep.Classification)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build workbook: %v", err), op)
		return
	}

	name := strings.ReplaceAll(rep.Terms.Name, " ", "_")
	if name == "" {
		name = "emprestimo"
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_tabela_amortizacao.xlsx", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write workbook response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

// buildReport decodes a calculation request and runs the engine. On failure
// it writes the error response itself and reports ok=false.
func (h *handler) buildReport(w http.ResponseWriter, r *http.Request, op string) (report.Report, []string, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return report.Report{}, nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var payload calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return report.Report{}, nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return report.Report{}, nil, false
	}

	cfg := config.Configuration{
		Loan: config.LoanConfig{
			Name:               payload.Name,
			Principal:          payload.Principal,
			AnnualInterestRate: payload.AnnualInterestRate,
			TermMonths:         payload.TermMonths,
			StartDate:          payload.StartDate,
		},
		BaseDate: payload.BaseDate,
	}
	warnings := cfg.ValidateConfiguration()

	terms, err := cfg.Terms()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return report.Report{}, nil, false
	}

	baseDate, err := cfg.ParseBaseDate()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return report.Report{}, nil, false
	}

	rep, err := report.Build(terms, baseDate)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return report.Report{}, nil, false
	}

	return rep, warnings, true
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

func buildSummary(rep report.Report) summaryPayload {
	return summaryPayload{
		MonthlyPayment: rep.Summary.MonthlyPayment,
		TotalPaid:      rep.Summary.TotalPaid,
		TotalInterest:  rep.Summary.TotalInterest,
	}
}

func buildEntries(rep report.Report) []entryPayload {
	entries := make([]entryPayload, 0, len(rep.Schedule))
	cutoff := rep.Classification.CutoffDate
	for _, entry := range rep.Schedule {
		bucket := "current"
		if entry.DueDate.After(cutoff) {
			bucket = "non-current"
		}
		entries = append(entries, entryPayload{
			Period:           entry.Period,
			DueDate:          entry.DueDate.Format(datetime.DateLayout),
			Payment:          entry.Payment,
			Interest:         entry.Interest,
			Principal:        entry.Principal,
			RemainingBalance: entry.RemainingBalance,
			Bucket:           bucket,
		})
	}
	return entries
}

func buildClassification(rep report.Report) classificationPayload {
	c := rep.Classification
	return classificationPayload{
		CutoffDate:          c.CutoffDate.Format(datetime.DateLayout),
		CurrentPrincipal:    c.CurrentPrincipal,
		CurrentInterest:     c.CurrentInterest,
		NonCurrentPrincipal: c.NonCurrentPrincipal,
		NonCurrentInterest:  c.NonCurrentInterest,
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculation request failed",
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
