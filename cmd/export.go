package cmd

import (
	"fmt"
	"io"
	"os"

	"tag-manager/core/config"
	"tag-manager/core/database"
	"tag-manager/core/logger"
	"tag-manager/core/storage"
	"tag-manager/feature/tags"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat    string
	exportOutput    string
	exportToStorage bool
)

// exportCmd writes the tags of a project as an import file.
var exportCmd = &cobra.Command{
	Use:   "export <project>",
	Short: "Export the tags of a project",
	Long: `Write the tags of a project as CSV, JSON or YAML. The output imports back into the same tags.

Examples:
  # Print a project as CSV
  export plant

  # Write YAML to a file
  export plant --format yaml --output plant.yaml

  # Upload to the storage bucket (exports/plant.json)
  export plant --format json --to-storage`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Export format: csv, json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportToStorage, "to-storage", false, "Upload to the storage bucket instead")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	project := args[0]

	format, err := tags.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	var client storage.Client
	if exportToStorage {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := tags.NewService(client, cfg.Storage.Bucket, l, db, cfg.Import)
	if err := svc.Prepare(ctx); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	if exportToStorage {
		_, err := svc.ExportToStorage(ctx, project, format)
		return err
	}

	var w io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	count, err := svc.Export(ctx, project, w, format)
	if err != nil {
		return err
	}
	if exportOutput != "" {
		l.Info("Tags exported", zap.String("project", project), zap.String("file", exportOutput), zap.Int("count", count))
	}
	return nil
}
