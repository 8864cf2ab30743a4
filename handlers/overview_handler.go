package handlers

import (
	"net/http"

	"github.com/rallyops/rally-planner/middleware"
	"github.com/rallyops/rally-planner/services"
)

type OverviewHandler struct {
	overviewService services.OverviewService
}

func NewOverviewHandler(overviewService services.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

// DashboardHandler handles GET /dashboard
func (h *OverviewHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	dashboard, err := h.overviewService.Dashboard(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"dashboard": dashboard}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
