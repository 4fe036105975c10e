package cmd

import (
	"context"
	"fmt"
	"strings"

	"source-manager/feature/datasource/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// forceAdd adds a candidate despite duplicate path or name issues.
	forceAdd bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List data sources found on attached volumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withScannedManager(func(ctx context.Context, a *app) error {
			for _, ds := range a.manager.DataSources() {
				fmt.Printf("%-12s %-17s %-24s %s\n", ds.Status, ds.Record.Type, ds.Name(), ds.RootFolder)
			}
			return nil
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check whether a directory can be added as a data source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withScannedManager(func(ctx context.Context, a *app) error {
			report := a.manager.Validate(ctx, args[0])
			logReport(a.logger, args[0], report)
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a directory as a data source",
	Long: `Validates the directory and writes it into the configuration document at the
root of its volume. Duplicate paths or names are refused unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withScannedManager(func(ctx context.Context, a *app) error {
			report := a.manager.Validate(ctx, args[0])
			logReport(a.logger, args[0], report)

			if report.Candidate == nil {
				return fmt.Errorf("%s is not a known data source layout", args[0])
			}
			if len(report.Issues) > 0 && !forceAdd {
				return fmt.Errorf("refusing to add %s: %s (use --force to override)", args[0], joinIssues(report.Issues))
			}
			if err := a.manager.AddDataSource(ctx, *report.Candidate); err != nil {
				return err
			}
			a.logger.Info("Data source added", zap.String("name", report.Candidate.Name()))
			return nil
		})
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate <name>",
	Short: "Mark a data source active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(args[0], models.StatusActive)
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate <name>",
	Short: "Mark a data source inactive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(args[0], models.StatusInactive)
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Forget data sources whose volume is not attached",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withScannedManager(func(ctx context.Context, a *app) error {
			var names []string
			for _, ds := range a.manager.DataSources() {
				if ds.Status == models.StatusUnavailable {
					names = append(names, ds.Name())
				}
			}
			if len(names) == 0 {
				a.logger.Info("No unavailable data sources")
				return nil
			}

			a.logger.Warn("Unavailable data sources will be forgotten", zap.Strings("names", names))
			if !confirmDestructiveAction() {
				a.logger.Warn("Operation cancelled by user. No changes were made.")
				return nil
			}

			removed, err := a.manager.DeleteUnavailable(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("Removed unavailable data sources", zap.Int("count", removed))
			return nil
		})
	},
}

func init() {
	addCmd.Flags().BoolVar(&forceAdd, "force", false, "Add despite duplicate path or name")
	pruneCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(listCmd, validateCmd, addCmd, activateCmd, deactivateCmd, pruneCmd)
}

// withScannedManager bootstraps the manager and fills its registry with one scan,
// since every CLI invocation starts with an empty registry.
func withScannedManager(fn func(ctx context.Context, a *app) error) error {
	ctx := context.Background()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	if _, err := a.manager.ScanDataSources(ctx); err != nil {
		return fmt.Errorf("failed to scan data sources: %w", err)
	}
	return fn(ctx, a)
}

func setStatus(name string, status models.Status) error {
	return withScannedManager(func(ctx context.Context, a *app) error {
		if err := a.manager.UpdateStatus(ctx, name, status); err != nil {
			return err
		}
		a.logger.Info("Data source status updated", zap.String("name", name), zap.String("status", string(status)))
		return nil
	})
}

func logReport(l *zap.Logger, path string, report models.ValidationReport) {
	fields := []zap.Field{zap.String("path", path), zap.String("issues", joinIssues(report.Issues))}
	if c := report.Candidate; c != nil {
		fields = append(fields,
			zap.String("name", c.Name()),
			zap.String("type", string(c.Record.Type)),
			zap.String("relative_path", c.Record.RelativePath))
	}
	l.Info("Validation report", fields...)
}

func joinIssues(issues []models.ValidationIssue) string {
	parts := make([]string, 0, len(issues))
	for _, i := range issues {
		parts = append(parts, string(i))
	}
	return strings.Join(parts, ",")
}
