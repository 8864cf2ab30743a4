package handlers

import (
	"net/http"

	"github.com/rallyops/rally-planner/middleware"
	"github.com/rallyops/rally-planner/services"
)

type RallyHandler struct {
	rallyService    services.RallyService
	overviewService services.OverviewService
}

func NewRallyHandler(rallyService services.RallyService, overviewService services.OverviewService) *RallyHandler {
	return &RallyHandler{
		rallyService:    rallyService,
		overviewService: overviewService,
	}
}

// CreateHandler handles POST /rallies
func (h *RallyHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateRallyInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rally, err := h.rallyService.CreateRally(r.Context(), currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"rally": rally}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /rallies
func (h *RallyHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	rallies, err := h.rallyService.ListRallies(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// An empty list is a normal response, not an error.
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rallies": rallies}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /rallies/{rallyID}
func (h *RallyHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	id, err := getIDFromURL(r, "rallyID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rally, err := h.rallyService.GetRally(r.Context(), currentUserID, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rally": rally}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// OverviewHandler handles GET /rallies/{rallyID}/overview
func (h *RallyHandler) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	id, err := getIDFromURL(r, "rallyID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	overview, err := h.overviewService.RallyOverview(r.Context(), currentUserID, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"overview": overview}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PUT /rallies/{rallyID}
func (h *RallyHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	id, err := getIDFromURL(r, "rallyID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateRallyInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rally, err := h.rallyService.UpdateRally(r.Context(), currentUserID, id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rally": rally}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /rallies/{rallyID}
func (h *RallyHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	id, err := getIDFromURL(r, "rallyID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rallyService.DeleteRally(r.Context(), currentUserID, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
