package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"tag-manager/core/config"
	"tag-manager/core/database"
	"tag-manager/core/logger"
	"tag-manager/feature/tags"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tagsJSON bool

// tagsCmd lists projects, or the tags of one project.
var tagsCmd = &cobra.Command{
	Use:   "tags [project]",
	Short: "List projects or the tags of a project",
	Long:  `Without arguments lists every project that has tags; with a project name lists its tags.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTags,
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "Print the result as JSON")
	RootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	svc := tags.NewService(nil, cfg.Storage.Bucket, l, db, cfg.Import)
	if err := svc.Prepare(ctx); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	if len(args) == 0 {
		projects, err := svc.ListProjects(ctx)
		if err != nil {
			return err
		}
		if tagsJSON {
			return printJSON(projects)
		}
		l.Info("Projects", zap.Int("count", len(projects)), zap.Strings("projects", projects))
		return nil
	}

	list, err := svc.ListTags(ctx, args[0])
	if err != nil {
		return err
	}
	if tagsJSON {
		return printJSON(list)
	}

	l.Info("Tags", zap.String("project", args[0]), zap.Int("count", len(list)))
	for _, t := range list {
		l.Info("Tag",
			zap.String("name", t.Name),
			zap.String("data_type", t.DataType),
			zap.String("addresses", strings.Join(t.Addresses, ", ")),
		)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
