package tags

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tag-manager/core/reconcile"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ExportPrefix is the storage prefix export files are written to.
const ExportPrefix = "exports/"

// ExportResult describes an export written to storage.
type ExportResult struct {
	Project string `json:"project"`
	Object  string `json:"object"`
	Format  Format `json:"format"`
	Count   int    `json:"count"`
	Size    int64  `json:"size"`
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

// exportRow is the JSON and YAML shape of a tag. List fields expand back into
// indexed record fields on import.
type exportRow struct {
	Name            string   `json:"Name" yaml:"Name"`
	Group           string   `json:"Group,omitempty" yaml:"Group,omitempty"`
	Description     string   `json:"Description,omitempty" yaml:"Description,omitempty"`
	DataType        string   `json:"DataType,omitempty" yaml:"DataType,omitempty"`
	Addresses       []string `json:"Addresses,omitempty" yaml:"Addresses,omitempty"`
	AccessRights    []string `json:"AccessRights,omitempty" yaml:"AccessRights,omitempty"`
	PollGroup       int      `json:"PollGroup" yaml:"PollGroup"`
	LogToAuditTrail bool     `json:"LogToAuditTrail" yaml:"LogToAuditTrail"`
}

// Encode writes tags in an import format, so that the output imports back
// into the same tags.
func Encode(w io.Writer, list []*Tag, format Format) error {
	switch format {
	case FormatCSV:
		return encodeCSV(w, list)
	case FormatJSON, FormatYAML:
		rows := make([]exportRow, 0, len(list))
		for _, tag := range list {
			rec := ToRecord(tag)
			row := exportRow{
				Name:            rec.Name(),
				Group:           tag.Group,
				Description:     tag.Description,
				DataType:        tag.DataType,
				Addresses:       tag.Addresses,
				PollGroup:       tag.PollGroup,
				LogToAuditTrail: tag.LogToAuditTrail,
			}
			for _, r := range tag.AccessRights {
				row.AccessRights = append(row.AccessRights, string(r))
			}
			rows = append(rows, row)
		}
		if format == FormatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func encodeCSV(w io.Writer, list []*Tag) error {
	addresses, rights := 0, 0
	for _, tag := range list {
		addresses = max(addresses, len(tag.Addresses))
		rights = max(rights, len(tag.AccessRights))
	}

	header := []string{reconcile.FieldName, FieldGroup, FieldDescription, FieldDataType}
	for i := 0; i < addresses; i++ {
		header = append(header, reconcile.IndexedKey(reconcile.FieldAddress, i))
	}
	for i := 0; i < rights; i++ {
		header = append(header, reconcile.IndexedKey(FieldAccessRight, i))
	}
	header = append(header, FieldPollGroup, FieldLogToAuditTrail)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, tag := range list {
		rec := ToRecord(tag)
		for i, column := range header {
			row[i] = rec.Get(column)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export writes the tags of a project to w and returns how many were written.
func (s *Service) Export(ctx context.Context, project string, w io.Writer, format Format) (int, error) {
	list, err := s.ListTags(ctx, project)
	if err != nil {
		return 0, err
	}
	if err := Encode(w, list, format); err != nil {
		return 0, fmt.Errorf("failed to encode %s export: %w", format, err)
	}
	return len(list), nil
}

// ExportToStorage writes the tags of a project to exports/<project>.<format>,
// creating the bucket if it does not exist yet.
func (s *Service) ExportToStorage(ctx context.Context, project string, format Format) (*ExportResult, error) {
	if s.client == nil {
		return nil, ErrStorageNotConfigured
	}

	var buf bytes.Buffer
	count, err := s.Export(ctx, project, &buf, format)
	if err != nil {
		return nil, err
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
		s.logger.Info("Created storage bucket", zap.String("bucket", s.bucket))
	}

	object := exportObject(project, format)
	size := int64(buf.Len())
	if _, err := s.client.PutObject(ctx, s.bucket, object, &buf, size, minio.PutObjectOptions{
		ContentType: format.ContentType(),
	}); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", object, err)
	}

	s.logger.Info("Tags exported",
		zap.String("project", project),
		zap.String("object", object),
		zap.Int("count", count),
	)
	return &ExportResult{Project: project, Object: object, Format: format, Count: count, Size: size}, nil
}

func exportObject(project string, format Format) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(project))
	if name == "" {
		name = "project"
	}
	return ExportPrefix + name + "." + string(format)
}

// exportFilename is the download name offered by the HTTP export.
func exportFilename(project string, format Format) string {
	return strconv.Quote(strings.TrimPrefix(exportObject(project, format), ExportPrefix))
}
