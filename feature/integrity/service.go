package integrity

import (
	"context"
	"errors"

	"tag-manager/core/storage"
	"tag-manager/feature/integrity/checks"
	"tag-manager/feature/tags"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	tags   *tags.Service
}

// NewService creates a new integrity service. client and db may be nil; the
// checks that need them then fail.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, tagService *tags.Service) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		tags:   tagService,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, tags.ErrStorageNotConfigured
	}
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return tags.ErrStorageNotConfigured
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the tag model with the database.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, &tags.Tag{})
}

// CheckProject inspects the tags of one project.
func (s *Service) CheckProject(ctx context.Context, project string) (*checks.TagReport, error) {
	if s.tags == nil {
		return nil, errors.New("tag service is not configured")
	}
	list, err := s.tags.ListTags(ctx, project)
	if err != nil {
		return nil, err
	}
	report := checks.CheckTags(project, list)
	if !report.OK() {
		s.logger.Warn("Tag check found problems",
			zap.String("project", project),
			zap.Int("collisions", len(report.Collisions)),
			zap.Int("unaddressed", len(report.Unaddressed)),
			zap.Int("invalid", len(report.Invalid)),
		)
	}
	return report, nil
}

// CheckProjects inspects every project.
func (s *Service) CheckProjects(ctx context.Context) ([]*checks.TagReport, error) {
	if s.tags == nil {
		return nil, errors.New("tag service is not configured")
	}
	projects, err := s.tags.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]*checks.TagReport, 0, len(projects))
	for _, project := range projects {
		report, err := s.CheckProject(ctx, project)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
