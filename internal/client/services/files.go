package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jitensha/sharebox/internal/client/api"
	"github.com/jitensha/sharebox/internal/client/models"
	"github.com/jitensha/sharebox/internal/client/policy"
	"github.com/jitensha/sharebox/internal/client/query"
	"github.com/jitensha/sharebox/internal/client/share"
	"github.com/jitensha/sharebox/internal/client/store"
	"github.com/jitensha/sharebox/internal/logging"
)

// HistoryStore is the slice of the local cache the file service needs.
type HistoryStore interface {
	AddHistory(ctx context.Context, e store.HistoryEntry) error
	RecentHistory(ctx context.Context, limit int) ([]store.HistoryEntry, error)
}

// FileService covers uploads and the uploaded-files collection.
type FileService interface {
	// Upload validates the policy against the file's metadata, serializes
	// both into a multipart request, submits it, and reconciles the
	// response into a ShareResult. Validation failures are returned as
	// policy.ValidationErrors before any network activity.
	Upload(ctx context.Context, p *policy.Policy, filePath string) (*models.ShareResult, error)

	List(ctx context.Context, q query.Query) (*models.FileListing, error)
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, limit int) ([]store.HistoryEntry, error)
}

type fileService struct {
	api     api.Client
	history HistoryStore
	limits  policy.Limits
	log     logging.Logger
}

// NewFileService binds a FileService to the transport client and the local
// upload-history cache.
func NewFileService(apiClient api.Client, history HistoryStore, limits policy.Limits, log logging.Logger) FileService {
	if log == nil {
		log = logging.NewNop()
	}
	return &fileService{api: apiClient, history: history, limits: limits, log: log}
}

func (s *fileService) Upload(ctx context.Context, p *policy.Policy, filePath string) (*models.ShareResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filePath, err)
	}
	meta := policy.FileMeta{Name: filepath.Base(filePath), Size: info.Size()}

	if err := policy.Validate(p, meta, s.limits); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	contentType, err := policy.EncodeUpload(&body, p, meta.Name, f)
	if err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}

	raw, err := s.api.Upload(ctx, contentType, &body)
	if err != nil {
		return nil, err
	}

	result, err := share.Reconcile(raw)
	if err != nil {
		return nil, err
	}

	s.record(ctx, result)
	return result, nil
}

// record appends the outcome to the local upload history. A cache failure
// must not fail an upload that already succeeded remotely.
func (s *fileService) record(ctx context.Context, result *models.ShareResult) {
	if s.history == nil {
		return
	}
	err := s.history.AddHistory(ctx, store.HistoryEntry{
		ID:          uuid.NewString(),
		ResourceID:  result.ResourceID,
		DisplayName: result.DisplayName,
		ShareLink:   result.ShareLink,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn(ctx, "recording upload history failed", "error", err)
	}
}

func (s *fileService) List(ctx context.Context, q query.Query) (*models.FileListing, error) {
	return s.api.ListFiles(ctx, q)
}

func (s *fileService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteFile(ctx, id)
}

func (s *fileService) History(ctx context.Context, limit int) ([]store.HistoryEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.RecentHistory(ctx, limit)
}
