package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"source-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// yesConfirm skips the interactive confirmation of destructive commands.
	yesConfirm bool
	// verboseScan prints every planned action instead of a sample.
	verboseScan bool
)

// scanCmd runs one reconciliation pass.
var scanCmd = &cobra.Command{
	Use:     "scan",
	Aliases: []string{"reconcile"},
	Short:   "Scan removable volumes and reconcile data sources",
	Long: `Reads the configuration document of every attached removable volume and
reconciles it with the persisted active set.

Examples:
  # Report what the attached volumes hold
  scan

  # Show every transition
  scan --verbose`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&verboseScan, "verbose", false, "Print every planned action")
	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	plan, err := a.manager.ScanDataSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan data sources: %w", err)
	}

	printReconcileReport(a.logger, plan, verboseScan)
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.Plan, all bool) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_keys", s.TotalKeys),
		zap.Int("loaded", s.Loaded),
		zap.Int("discovered", s.Discovered),
		zap.Int("persisted", s.Persisted),
		zap.Int("changed", s.Changed),
		zap.Int("active_changed", s.ActiveChanged),
	)

	if len(plan.Actions) == 0 {
		return
	}

	maxShow := 5
	if all || len(plan.Actions) < maxShow {
		maxShow = len(plan.Actions)
	}
	for i := 0; i < maxShow; i++ {
		action := plan.Actions[i]
		l.Info("Applied action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.Uint8("case", uint8(action.Case)),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
