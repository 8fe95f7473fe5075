package tags

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"tag-manager/core/reconcile"
	"tag-manager/core/utils"

	"gopkg.in/yaml.v3"
)

// Format is an import file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrUnsupportedFormat is returned for files that are not CSV, JSON or YAML.
	ErrUnsupportedFormat = errors.New("unsupported import format")
	// ErrParse is returned for import files that cannot be read as records.
	ErrParse = errors.New("malformed import file")
)

// FormatOf derives the format from a file or object name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ParseFormat converts a format name ("csv", "json", "yaml" or "yml").
func ParseFormat(s string) (Format, error) {
	return FormatOf("import." + s)
}

// Parse reads import records from r.
//
// CSV files carry a header row naming the record fields; the delimiter is ',' or ';'.
// JSON files hold an array of objects, YAML files a list of mappings. In both, a list
// value expands into indexed fields: "Addresses: [a, b]" becomes Address_1 and Address_2.
func Parse(r io.Reader, format Format) ([]reconcile.Record, error) {
	switch format {
	case FormatCSV:
		return parseCSV(r)
	case FormatJSON:
		var rows []map[string]any
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("%w: decode json: %w", ErrParse, err)
		}
		return flattenAll(rows)
	case FormatYAML:
		var rows []map[string]any
		if err := yaml.NewDecoder(r).Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: decode yaml: %w", ErrParse, err)
		}
		return flattenAll(rows)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func parseCSV(r io.Reader) ([]reconcile.Record, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read csv import: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	if line, _, _ := bytes.Cut(head, []byte("\n")); bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		reader.Comma = ';'
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: csv header: %w", ErrParse, err)
	}
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			return nil, fmt.Errorf("%w: csv header column %d is empty", ErrParse, i+1)
		}
		if _, dup := seen[h]; dup {
			return nil, fmt.Errorf("%w: csv header column %q appears twice", ErrParse, h)
		}
		seen[h] = struct{}{}
		header[i] = h
	}

	var records []reconcile.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv row %d: %w", ErrParse, len(records)+2, err)
		}
		rec := make(reconcile.Record, len(header))
		for i, h := range header {
			rec[h] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

func flattenAll(rows []map[string]any) ([]reconcile.Record, error) {
	records := make([]reconcile.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := flatten(row)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrParse, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func flatten(row map[string]any) (reconcile.Record, error) {
	rec := make(reconcile.Record, len(row))
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := row[key].(type) {
		case []any:
			prefix := strings.TrimSuffix(key, "s")
			for i, item := range v {
				if !scalar(item) {
					return nil, fmt.Errorf("field %q: element %d is not a scalar", key, i+1)
				}
				rec[reconcile.IndexedKey(prefix, i)] = utils.ToString(item)
			}
		default:
			if !scalar(v) {
				return nil, fmt.Errorf("field %q is not a scalar", key)
			}
			rec[key] = utils.ToString(v)
		}
	}
	return rec, nil
}

func scalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}
