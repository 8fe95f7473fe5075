package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"tag-manager/core/config"
	"tag-manager/core/database"
	"tag-manager/core/logger"
	"tag-manager/core/reconcile"
	"tag-manager/core/storage"
	"tag-manager/feature/tags"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	// Flags for the import command; unset flags fall back to the import configuration.
	importProject          string
	importMode             string
	importRules            string
	importController       int
	importControllerCount  int
	importFromStorage      bool
	importCompareAddresses bool
	importDeleteUnused     bool
	importApplyDeletes     bool
	importReportUntouched  bool
	importVerify           bool
	importDryRun           bool
	importYes              bool
)

// importCmd merges an import file into a project's tags.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import tags from a CSV, JSON or YAML file",
	Long: `Merge an import file into the tags of a project.

Records matching an existing tag by name are merged; new records are added.
In the default (interactive) mode every conflict is asked on the terminal;
silent mode resolves everything automatically.

Examples:
  # Interactive import of a local file
  import plant.csv --project plant

  # Silent import of a storage object (imports/plant.yaml) for the second controller
  import plant.yaml --project plant --from-storage --mode silent --controller 1

  # Only import addresses of data block 10, flag unknown tags, preview only
  import plant.csv --project plant --rules "DB10.*" --delete-unused --dry-run

  # Remove tags missing from the file without asking
  import plant.csv --project plant --mode silent --delete-unused --apply-deletes --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	bindImportFlags(importCmd.Flags())
	RootCmd.AddCommand(importCmd)
}

func bindImportFlags(f *pflag.FlagSet) {
	f.StringVarP(&importProject, "project", "p", "default", "Project to import into")
	f.StringVar(&importMode, "mode", "", "Import mode: default (interactive) or silent")
	f.StringVar(&importRules, "rules", "", `Automatic import rules, e.g. "DB10.* | *.X0"`)
	f.IntVar(&importController, "controller", 0, "0-based controller the file's addresses belong to")
	f.IntVar(&importControllerCount, "controller-count", 0, "Number of controllers (0 derives it from the data)")
	f.BoolVar(&importFromStorage, "from-storage", false, "Read the file from the storage bucket (imports/ prefix)")
	f.BoolVar(&importCompareAddresses, "compare-addresses", false, "Skip records whose address belongs to another tag")
	f.BoolVar(&importDeleteUnused, "delete-unused", false, "Flag tags missing from the file as deleted")
	f.BoolVar(&importApplyDeletes, "apply-deletes", false, "Remove flagged tags from the database")
	f.BoolVar(&importReportUntouched, "report-untouched", false, "Report tags the file does not mention")
	f.BoolVar(&importVerify, "verify", false, "Show the plan and ask before applying it")
	f.BoolVar(&importDryRun, "dry-run", false, "Plan only, change nothing")
	f.BoolVar(&importYes, "yes", false, "Auto-confirm the plan (non-interactive)")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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
	if importFromStorage {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := tags.NewService(client, cfg.Storage.Bucket, l, db, cfg.Import)
	if err := svc.Prepare(ctx); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	opts, err := importOptions(cmd, svc, l)
	if err != nil {
		return err
	}

	l.Info("Starting tag import",
		zap.String("project", importProject),
		zap.String("file", args[0]),
		zap.String("mode", string(opts.Mode)),
		zap.Int("controller", opts.Settings.ControllerIndex),
	)

	var result *tags.ImportResult
	if importFromStorage {
		result, err = svc.ImportFromStorage(ctx, importProject, args[0], opts)
	} else {
		result, err = svc.ImportFile(ctx, importProject, args[0], opts)
	}
	if errors.Is(err, reconcile.ErrCancelled) {
		l.Warn("Import cancelled by user. No changes were made.")
		return nil
	}
	if err != nil {
		return err
	}

	// The verification dialog already showed the plan.
	printImportReport(l, result, opts.Settings.UseVerificationDialog && !result.DryRun)
	return nil
}

// importOptions merges the changed flags over the configured defaults and wires the prompts.
func importOptions(cmd *cobra.Command, svc *tags.Service, l *zap.Logger) (tags.ImportOptions, error) {
	opts, err := svc.DefaultOptions()
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		if opts.Mode, err = reconcile.ParseMode(importMode); err != nil {
			return opts, err
		}
	}
	s := &opts.Settings
	if flags.Changed("rules") {
		s.AutomaticImportRules = importRules
	}
	if flags.Changed("controller") {
		s.ControllerIndex = importController
	}
	if flags.Changed("controller-count") {
		s.ControllerCount = importControllerCount
	}
	if flags.Changed("compare-addresses") {
		s.CompareAddresses = importCompareAddresses
	}
	if flags.Changed("delete-unused") {
		s.DeleteUnused = importDeleteUnused
	}
	if flags.Changed("report-untouched") {
		s.ReportUntouched = importReportUntouched
	}
	if flags.Changed("verify") {
		s.UseVerificationDialog = importVerify
	}
	if flags.Changed("apply-deletes") {
		opts.ApplyDeletes = importApplyDeletes
	}
	opts.DryRun = importDryRun

	if blank := reconcile.ValidateRules(s.AutomaticImportRules); len(blank) > 0 {
		l.Warn("Ignoring empty import rule clauses", zap.Ints("positions", blank))
	}

	if opts.Mode == reconcile.ModeDefault {
		opts.Hooks.Conflict = newConflictPrompter().Ask
	}
	// Deleting rows is destructive; without --yes the plan is always shown first.
	if opts.ApplyDeletes && s.DeleteUnused && !importYes {
		s.UseVerificationDialog = true
	}
	if importYes {
		s.UseVerificationDialog = false
	}
	if s.UseVerificationDialog {
		opts.Hooks.Verify = verifyPlan(l)
	}
	return opts, s.Validate()
}

// printPlan logs the decisions of a plan, a sample of each kind.
func printPlan(l *zap.Logger, plan *reconcile.Plan[*tags.Tag]) {
	s := plan.Summary
	l.Info("Import plan",
		zap.Int("records", s.Records),
		zap.Int("existing", s.Existing),
		zap.Int("add", s.Added),
		zap.Int("merge", s.Merged),
		zap.Int("overwrite", s.OverWritten),
		zap.Int("change_name", s.Renamed),
		zap.Int("skip", s.Skipped),
		zap.Int("delete", s.Deleted),
		zap.Int("untouched", s.Untouched),
	)

	const maxShow = 5
	for _, action := range []reconcile.MergeAction{
		reconcile.ActionAdd, reconcile.ActionMerge, reconcile.ActionOverWrite,
		reconcile.ActionChangeName, reconcile.ActionSkip, reconcile.ActionDelete,
	} {
		decisions := plan.ByAction(action)
		for i, d := range decisions {
			if i == maxShow {
				l.Info("Additional decisions not shown", zap.String("action", string(action)), zap.Int("count", len(decisions)-maxShow))
				break
			}
			l.Info("Decision",
				zap.String("action", string(d.Action)),
				zap.String("name", d.Name),
				zap.String("reason", d.Reason),
			)
		}
	}

	for _, inv := range plan.Invalid {
		l.Warn("Invalid record", zap.Int("row", inv.Index+1), zap.String("name", inv.Name), zap.String("error", inv.Message))
	}
}

// printImportReport logs the outcome of an import.
func printImportReport(l *zap.Logger, result *tags.ImportResult, planShown bool) {
	if !planShown {
		printPlan(l, result.Plan)
	}
	if result.DryRun {
		l.Info("Dry-run mode: No changes were made.")
		return
	}
	l.Info("Import saved",
		zap.String("project", result.Project),
		zap.Int("saved", result.Saved),
		zap.Int("removed", result.Removed),
	)
	if n := len(result.Plan.Deleted()); n > result.Removed {
		l.Info("Flagged tags were kept. Use --apply-deletes to remove them.", zap.Int("count", n-result.Removed))
	}
}
