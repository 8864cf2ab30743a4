package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rallyops/rally-planner/models"
	"github.com/rallyops/rally-planner/repositories"
	"github.com/rallyops/rally-planner/storage"
)

type fakeUploader struct {
	uploadedKey string
	uploadErr   error
	deleted     []string
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploadedKey = key
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestUploadRallyDocument(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewDocumentService(uploader, &fakeRallyRepo{})

	doc, err := svc.UploadRallyDocument(context.Background(), 7, 42, "regs.pdf", "application/pdf", strings.NewReader("content"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.Key, "documents/42/"), "key %q must be scoped to the rally", doc.Key)
	assert.True(t, strings.HasSuffix(doc.Key, ".pdf"))
	assert.Equal(t, "regs.pdf", doc.FileName)
	assert.Equal(t, uploader.uploadedKey, doc.Key)
}

func TestUploadRallyDocumentChecksOwnership(t *testing.T) {
	uploader := &fakeUploader{}
	rallyRepo := &fakeRallyRepo{
		getByID: func(ownerID, id int) (*models.RallyEvent, error) {
			return nil, repositories.ErrRallyNotFound
		},
	}
	svc := NewDocumentService(uploader, rallyRepo)

	_, err := svc.UploadRallyDocument(context.Background(), 7, 42, "regs.pdf", "", strings.NewReader("content"))

	assert.ErrorIs(t, err, ErrRallyNotFound)
	assert.Empty(t, uploader.uploadedKey)
}

func TestUploadRallyDocumentWithoutStorage(t *testing.T) {
	svc := NewDocumentService(nil, &fakeRallyRepo{})

	_, err := svc.UploadRallyDocument(context.Background(), 7, 42, "regs.pdf", "", strings.NewReader("content"))

	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestDeleteRallyDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the stored object", func(t *testing.T) {
		uploader := &fakeUploader{}
		svc := NewDocumentService(uploader, &fakeRallyRepo{})

		err := svc.DeleteRallyDocument(ctx, 7, 42, "documents/42/abc.pdf")

		require.NoError(t, err)
		assert.Equal(t, []string{"documents/42/abc.pdf"}, uploader.deleted)
	})

	t.Run("rejects a key from another rally", func(t *testing.T) {
		uploader := &fakeUploader{}
		svc := NewDocumentService(uploader, &fakeRallyRepo{})

		err := svc.DeleteRallyDocument(ctx, 7, 42, "documents/43/abc.pdf")

		assert.ErrorIs(t, err, ErrDocumentInvalidKey)
		assert.Empty(t, uploader.deleted)
	})

	t.Run("checks rally ownership first", func(t *testing.T) {
		uploader := &fakeUploader{}
		rallyRepo := &fakeRallyRepo{
			getByID: func(ownerID, id int) (*models.RallyEvent, error) {
				return nil, repositories.ErrRallyNotFound
			},
		}
		svc := NewDocumentService(uploader, rallyRepo)

		err := svc.DeleteRallyDocument(ctx, 7, 42, "documents/42/abc.pdf")

		assert.ErrorIs(t, err, ErrRallyNotFound)
		assert.Empty(t, uploader.deleted)
	})

	t.Run("fails cleanly without storage", func(t *testing.T) {
		svc := NewDocumentService(nil, &fakeRallyRepo{})

		err := svc.DeleteRallyDocument(ctx, 7, 42, "documents/42/abc.pdf")

		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}
