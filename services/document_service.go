package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/rallyops/rally-planner/repositories"
	"github.com/rallyops/rally-planner/storage"
)

// DocumentUpload describes a stored rally document.
type DocumentUpload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

type DocumentService interface {
	UploadRallyDocument(ctx context.Context, ownerID, rallyID int, fileName, contentType string, reader io.Reader) (*DocumentUpload, error)
	DeleteRallyDocument(ctx context.Context, ownerID, rallyID int, key string) error
}

type documentService struct {
	uploader  storage.FileUploader
	rallyRepo repositories.RallyRepository
}

func NewDocumentService(uploader storage.FileUploader, rallyRepo repositories.RallyRepository) DocumentService {
	return &documentService{uploader: uploader, rallyRepo: rallyRepo}
}

func (s *documentService) UploadRallyDocument(ctx context.Context, ownerID, rallyID int, fileName, contentType string, reader io.Reader) (*DocumentUpload, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	if _, err := s.rallyRepo.GetByID(ctx, ownerID, rallyID); err != nil {
		if errors.Is(err, repositories.ErrRallyNotFound) {
			return nil, ErrRallyNotFound
		}
		return nil, err
	}

	ext := strings.ToLower(path.Ext(fileName))
	key := fmt.Sprintf("documents/%d/%s%s", rallyID, uuid.NewString(), ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload rally document: %w", err)
	}

	return &DocumentUpload{
		Key:         result.Key,
		URL:         result.Location,
		FileName:    fileName,
		ContentType: contentType,
	}, nil
}

// DeleteRallyDocument removes a stored document after checking the rally
// belongs to the caller and the key belongs to the rally, so one owner's
// delete cannot reach into another rally's documents.
func (s *documentService) DeleteRallyDocument(ctx context.Context, ownerID, rallyID int, key string) error {
	if s.uploader == nil {
		return ErrStorageUnavailable
	}
	if _, err := s.rallyRepo.GetByID(ctx, ownerID, rallyID); err != nil {
		if errors.Is(err, repositories.ErrRallyNotFound) {
			return ErrRallyNotFound
		}
		return err
	}
	if !strings.HasPrefix(key, fmt.Sprintf("documents/%d/", rallyID)) {
		return ErrDocumentInvalidKey
	}

	if err := s.uploader.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete rally document: %w", err)
	}
	return nil
}
