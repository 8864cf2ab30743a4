package handlers

import (
	"net/http"

	"github.com/rallyops/rally-planner/middleware"
	"github.com/rallyops/rally-planner/services"
)

type AssignmentHandler struct {
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// CreateHandler handles POST /rallies/{rallyID}/assignments
func (h *AssignmentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	rallyID, err := getIDFromURL(r, "rallyID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamMemberID int `json:"team_member_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assignment, err := h.assignmentService.Assign(r.Context(), currentUserID, rallyID, input.TeamMemberID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"assignment": assignment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /rallies/{rallyID}/assignments
func (h *AssignmentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	rallyID, err := getIDFromURL(r, "rallyID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assignments, err := h.assignmentService.ListByRally(r.Context(), currentUserID, rallyID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"assignments": assignments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /assignments/{assignmentID}
func (h *AssignmentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	id, err := getIDFromURL(r, "assignmentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.assignmentService.Unassign(r.Context(), currentUserID, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
