package cmd

import (
	"context"
	"fmt"

	"tag-manager/core/config"
	"tag-manager/core/database"
	"tag-manager/core/logger"
	"tag-manager/core/storage"
	"tag-manager/feature/integrity"
	"tag-manager/feature/tags"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	fixFlag         bool
	integrityJSON   bool
	integrityDBOnly bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage, schema and tags",
	Long:  `Checks the storage folder structure, the database schema and the tags of every project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), func(ctx context.Context, svc *integrity.Service, l *zap.Logger) error {
			if !integrityDBOnly {
				if err := checkStructure(ctx, svc, l); err != nil {
					l.Error("Structure check failed", zap.Error(err))
				}
			}
			if err := checkSchema(svc, l); err != nil {
				return err
			}
			reports, err := svc.CheckProjects(ctx)
			if err != nil {
				return err
			}
			if integrityJSON {
				return printJSON(reports)
			}
			for _, r := range reports {
				logTagReport(l, r.Project, r.OK(), len(r.Collisions), len(r.Unaddressed), len(r.Invalid))
			}
			return nil
		})
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the storage folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkStructure)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the tags table against the tag model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), func(_ context.Context, svc *integrity.Service, l *zap.Logger) error {
			return checkSchema(svc, l)
		})
	},
}

// tagCheckCmd represents the integrity tags command
var tagCheckCmd = &cobra.Command{
	Use:   "tags <project>",
	Short: "Check the tags of a project",
	Long:  `Reports addresses used by several tags on one controller, tags without addresses and tags that would fail an import.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), func(ctx context.Context, svc *integrity.Service, l *zap.Logger) error {
			report, err := svc.CheckProject(ctx, args[0])
			if err != nil {
				return err
			}
			if integrityJSON {
				return printJSON(report)
			}
			logTagReport(l, report.Project, report.OK(), len(report.Collisions), len(report.Unaddressed), len(report.Invalid))
			for _, c := range report.Collisions {
				l.Warn("Address collision", zap.Int("controller", c.Controller), zap.String("address", c.Address), zap.Strings("tags", c.Tags))
			}
			for _, name := range report.Unaddressed {
				l.Warn("Tag without address", zap.String("name", name))
			}
			for _, inv := range report.Invalid {
				l.Warn("Invalid tag", zap.String("name", inv.Name), zap.String("error", inv.Error))
			}
			return nil
		})
	},
}

func init() {
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	integrityCmd.Flags().BoolVar(&integrityDBOnly, "db-only", false, "Skip the storage checks")
	integrityCmd.PersistentFlags().BoolVar(&integrityJSON, "json", false, "Print tag reports as JSON")

	integrityCmd.AddCommand(structureCmd)
	integrityCmd.AddCommand(schemaCmd)
	integrityCmd.AddCommand(tagCheckCmd)
	RootCmd.AddCommand(integrityCmd)
}

type integrityCheck func(ctx context.Context, svc *integrity.Service, l *zap.Logger) error

// runIntegrityChecks wires the integrity service and runs check. The database and
// the storage are optional; checks that need a missing one report an error.
func runIntegrityChecks(ctx context.Context, check integrityCheck) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	var db *gorm.DB
	var tagService *tags.Service
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
		tagService = tags.NewService(client, cfg.Storage.Bucket, logg, db, cfg.Import)
	}

	svc := integrity.NewService(client, cfg.Storage.Bucket, logg, db, tagService)
	return check(ctx, svc, logg)
}

func checkStructure(ctx context.Context, svc *integrity.Service, l *zap.Logger) error {
	l.Info("Checking storage structure...")
	missing, err := svc.CheckStructure(ctx)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		l.Info("Storage structure is complete")
		return nil
	}

	l.Warn("Missing folders detected", zap.Strings("missing", missing))
	if !fixFlag {
		l.Info("Run with --fix to create them")
		return nil
	}
	if err := svc.FixStructure(ctx, missing); err != nil {
		return err
	}
	l.Info("Storage structure fixed", zap.Strings("created", missing))
	return nil
}

func checkSchema(svc *integrity.Service, l *zap.Logger) error {
	report, err := svc.CheckSchema()
	if err != nil {
		return err
	}
	if report.Matched {
		l.Info("Database schema matches", zap.String("driver", report.Driver))
		return nil
	}
	for table, t := range report.Tables {
		if len(t.MissingColumns) > 0 {
			l.Warn("Table is missing columns", zap.String("table", table), zap.Strings("columns", t.MissingColumns))
		}
	}
	for _, e := range report.Errors {
		l.Error("Schema inspection failed", zap.String("error", e))
	}
	return nil
}

func logTagReport(l *zap.Logger, project string, ok bool, collisions, unaddressed, invalid int) {
	fields := []zap.Field{
		zap.String("project", project),
		zap.Int("collisions", collisions),
		zap.Int("unaddressed", unaddressed),
		zap.Int("invalid", invalid),
	}
	if ok {
		l.Info("Tags are consistent", fields...)
		return
	}
	l.Warn("Tag problems found", fields...)
}
