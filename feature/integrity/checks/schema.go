package checks

import (
	"errors"
	"fmt"
	"sync"

	"tag-manager/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport is the result of comparing models against the connected database.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors,omitempty"`
}

// TableReport lists the columns a table lacks.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies that every column of the given GORM models exists in the database.
// Inspection failures are reported per table; only an unusable model is an error.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
	}

	cache := &sync.Map{}
	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		missing, err := database.MissingColumns(db, s.Table, s.DBNames...)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to inspect table %s: %v", s.Table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: missing, Status: "ok"}
		if missing == nil {
			tbl.MissingColumns = []string{}
		}
		if len(missing) > 0 {
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[s.Table] = tbl
	}
	return report, nil
}
