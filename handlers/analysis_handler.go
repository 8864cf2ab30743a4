package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rallyops/rally-planner/services"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
}

func NewAnalysisHandler(analysisService services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// AnalyzeHandler handles POST /analyze-document and OPTIONS preflight.
// It always answers 200: provider failures are folded into the body as a
// fallback analysis, so clients only ever branch on "source".
func (h *AnalysisHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		errorResponse(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	var input struct {
		DocumentText string `json:"documentText"`
	}
	// A missing or unreadable body analyses the empty document; this
	// endpoint never hard-fails on caller input.
	_ = json.NewDecoder(r.Body).Decode(&input)

	result := h.analysisService.Analyze(r.Context(), input.DocumentText)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		serverErrorResponse(w, r, err)
	}
}
