package tags

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"tag-manager/core/reconcile"
	"tag-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportPrefix is the storage prefix holding import files.
const ImportPrefix = "imports/"

// ErrStorageNotConfigured is returned by storage operations of a service without a client.
var ErrStorageNotConfigured = errors.New("storage is not configured")

// ImportOptions controls one import into a project.
type ImportOptions struct {
	// Mode selects interactive (default) or silent conflict resolution.
	Mode reconcile.Mode
	// Settings are the pass settings.
	Settings reconcile.Settings
	// Hooks are the interactive collaborators for ModeDefault.
	Hooks reconcile.Hooks[*Tag]
	// ApplyDeletes removes tags flagged Delete from the database.
	ApplyDeletes bool
	// DryRun plans the import without changing anything.
	DryRun bool
}

// ImportResult is the outcome of an import.
type ImportResult struct {
	Project string                `json:"project"`
	Source  string                `json:"source"`
	DryRun  bool                  `json:"dry_run"`
	Saved   int                   `json:"saved"`
	Removed int                   `json:"removed"`
	Plan    *reconcile.Plan[*Tag] `json:"plan"`
}

// ImportFile is an import file available in storage.
type ImportFile struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Format Format `json:"format"`
}

// Service handles tag listing and imports.
type Service struct {
	store    *Store
	client   storage.Client
	bucket   string
	defaults reconcile.Config
	logger   *zap.Logger
	cache    *listCache

	// importMu serializes imports; a pass mutates the loaded tag list in place.
	importMu sync.Mutex
}

// NewService creates a new tag service. client may be nil when no storage is configured.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, defaults reconcile.Config) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    NewStore(db),
		client:   client,
		bucket:   bucket,
		defaults: defaults,
		logger:   logger,
		cache:    newListCache(listCacheTTL),
	}
}

// Prepare migrates and verifies the tags table.
func (s *Service) Prepare(ctx context.Context) error {
	return s.store.Prepare(ctx)
}

// DefaultOptions returns import options built from the configured defaults.
func (s *Service) DefaultOptions() (ImportOptions, error) {
	mode, err := reconcile.ParseMode(s.defaults.Mode)
	if err != nil {
		return ImportOptions{}, err
	}
	return ImportOptions{
		Mode:         mode,
		Settings:     s.defaults.Settings(),
		ApplyDeletes: s.defaults.ApplyDeletes,
	}, nil
}

// ListTags returns the tags of a project. The list is shared and must not be modified.
func (s *Service) ListTags(ctx context.Context, project string) ([]*Tag, error) {
	return s.cache.get(ctx, project, s.store.List)
}

// ListProjects returns the projects that have tags.
func (s *Service) ListProjects(ctx context.Context) ([]string, error) {
	return s.store.Projects(ctx)
}

// Import merges records into the project's tags and saves the result.
// A declined verification returns reconcile.ErrCancelled together with the unsaved result.
func (s *Service) Import(ctx context.Context, project, source string, records []reconcile.Record, opts ImportOptions) (*ImportResult, error) {
	project = strings.TrimSpace(project)
	if project == "" {
		return nil, errors.New("project name is required")
	}

	s.importMu.Lock()
	defer s.importMu.Unlock()

	existing, err := s.store.List(ctx, project)
	if err != nil {
		return nil, err
	}

	l := s.logger.With(zap.String("project", project), zap.String("source", source))
	engine := reconcile.NewEngine[*Tag](NewAdapter(project), opts.Hooks, l)
	result := &ImportResult{Project: project, Source: source, DryRun: opts.DryRun}

	if opts.DryRun {
		plan, err := engine.Plan(ctx, existing, records, opts.Mode, opts.Settings)
		if err != nil {
			return nil, err
		}
		result.Plan = plan
		l.Info("Planned tag import (dry run)", zap.Int("decisions", len(plan.Decisions)))
		return result, nil
	}

	plan, err := engine.MergeLists(ctx, existing, records, opts.Mode, opts.Settings)
	result.Plan = plan
	if err != nil {
		return result, err
	}

	saved, removed, err := s.store.Save(ctx, project, plan, opts.ApplyDeletes)
	s.cache.invalidate(project)
	if err != nil {
		return result, err
	}
	result.Saved, result.Removed = saved, removed

	l.Info("Tag import saved",
		zap.Int("saved", saved),
		zap.Int("removed", removed),
		zap.Int("skipped", plan.Summary.Skipped),
		zap.Int("invalid", plan.Summary.Invalid),
	)
	return result, nil
}

// ImportReader parses r in the given format and imports it.
func (s *Service) ImportReader(ctx context.Context, project, source string, r io.Reader, format Format, opts ImportOptions) (*ImportResult, error) {
	records, err := Parse(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return s.Import(ctx, project, source, records, opts)
}

// ImportFile imports a local file; the format follows the file extension.
func (s *Service) ImportFile(ctx context.Context, project, path string, opts ImportOptions) (*ImportResult, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()
	return s.ImportReader(ctx, project, path, f, format, opts)
}

// ImportFromStorage imports an object from the storage bucket. Names without a
// directory are looked up under ImportPrefix.
func (s *Service) ImportFromStorage(ctx context.Context, project, name string, opts ImportOptions) (*ImportResult, error) {
	if s.client == nil {
		return nil, ErrStorageNotConfigured
	}
	object := objectName(name)
	format, err := FormatOf(object)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", object, err)
	}
	defer obj.Close()
	return s.ImportReader(ctx, project, object, obj, format, opts)
}

// ListImportFiles lists the supported import files under ImportPrefix.
func (s *Service) ListImportFiles(ctx context.Context) ([]ImportFile, error) {
	if s.client == nil {
		return nil, ErrStorageNotConfigured
	}
	var files []ImportFile
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: ImportPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list import files: %w", obj.Err)
		}
		format, err := FormatOf(obj.Key)
		if err != nil {
			continue
		}
		files = append(files, ImportFile{Name: obj.Key, Size: obj.Size, Format: format})
	}
	return files, nil
}

func objectName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if strings.Contains(name, "/") {
		return name
	}
	return ImportPrefix + name
}
