package tags

import (
	"context"
	"fmt"
	"strings"

	"tag-manager/core/database"
	"tag-manager/core/reconcile"

	"gorm.io/gorm"
)

// tagColumns are the columns the tags table must provide.
var tagColumns = []string{
	"id", "project", "name", "tag_group", "description", "data_type",
	"addresses", "access_rights", "poll_group", "log_to_audit_trail",
}

// Store persists tags with GORM.
type Store struct {
	db *gorm.DB
}

// NewStore creates a tag store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Prepare migrates the tags table and verifies its columns.
func (s *Store) Prepare(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Tag{}); err != nil {
		return fmt.Errorf("failed to migrate tags table: %w", err)
	}
	return s.Verify(ctx)
}

// Verify checks that the tags table has every column the model needs.
func (s *Store) Verify(ctx context.Context) error {
	missing, err := database.MissingColumns(s.db.WithContext(ctx), Tag{}.TableName(), tagColumns...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("tags table is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// List returns the tags of a project ordered by id, which is the order they were imported in.
func (s *Store) List(ctx context.Context, project string) ([]*Tag, error) {
	var tags []*Tag
	if err := s.db.WithContext(ctx).Where("project = ?", project).Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags of %s: %w", project, err)
	}
	return tags, nil
}

// Projects returns the distinct project names.
func (s *Store) Projects(ctx context.Context) ([]string, error) {
	var projects []string
	if err := s.db.WithContext(ctx).Model(&Tag{}).Distinct().Order("project").Pluck("project", &projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Save writes an applied plan in one transaction: every imported tag is upserted and,
// with applyDeletes, every tag flagged Delete is removed.
// It returns the number of tags written and removed.
func (s *Store) Save(ctx context.Context, project string, plan *reconcile.Plan[*Tag], applyDeletes bool) (saved, removed int, err error) {
	if !plan.Applied() {
		return 0, 0, fmt.Errorf("save %s: plan has not been applied", project)
	}

	written := make(map[*Tag]struct{})
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, tag := range plan.ImportedItems() {
			if _, done := written[tag]; done {
				continue
			}
			tag.Project = project
			if err := tx.Save(tag).Error; err != nil {
				return fmt.Errorf("failed to save tag %s: %w", tag.Name, err)
			}
			written[tag] = struct{}{}
		}

		if !applyDeletes {
			return nil
		}
		for _, d := range plan.Deleted() {
			if d.Item == nil || d.Item.ID == 0 {
				continue
			}
			res := tx.Delete(d.Item)
			if res.Error != nil {
				return fmt.Errorf("failed to delete tag %s: %w", d.Name, res.Error)
			}
			removed += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return len(written), removed, nil
}
