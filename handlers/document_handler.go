package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rallyops/rally-planner/middleware"
	"github.com/rallyops/rally-planner/services"
)

const maxDocumentSize = 20 << 20 // 20MB

type DocumentHandler struct {
	documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// UploadHandler handles POST /rallies/{rallyID}/documents (multipart).
func (h *DocumentHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		badRequestResponse(w, r, errors.New("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		badRequestResponse(w, r, errors.New("document file is required"))
		return
	}
	defer file.Close()

	upload, err := h.documentService.UploadRallyDocument(
		r.Context(),
		currentUserID,
		rallyID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"document": upload}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /rallies/{rallyID}/documents/*, where the
// wildcard is the full object key returned at upload time.
func (h *DocumentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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

	key := chi.URLParam(r, "*")
	if key == "" {
		badRequestResponse(w, r, errors.New("document key is required"))
		return
	}

	if err := h.documentService.DeleteRallyDocument(r.Context(), currentUserID, rallyID, key); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
