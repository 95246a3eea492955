package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the index and keep it synchronised",
	Long: `Performs the initial full build and then keeps the index
synchronised with the source of truth until interrupted. With polling
disabled in the configuration, the index is built once and the process
exits.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	cmd.Printf("Synchronising from %s source...\n", eng.source.Type())

	if err := eng.syncer.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
		return fmt.Errorf("sync failed: %w", err)
	}

	status := eng.syncer.Status()
	cmd.Printf("Stopped after %d completed cycles.\n", status.CyclesCompleted)
	return nil
}
