package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a single synchronisation cycle",
	Long: `Performs one check-rebuild-publish cycle against the source of
truth and reports the resulting index, then exits.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	cmd.Printf("Synchronising from %s source...\n", eng.source.Type())

	if err := eng.syncer.SyncOnce(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	status := eng.syncer.Status()
	if status.LastError != "" {
		return fmt.Errorf("sync failed: %s", status.LastError)
	}

	snapshot := eng.store.Current()
	if snapshot == nil {
		cmd.Println("No snapshot published.")
		return nil
	}

	cmd.Printf("Published snapshot %s at %s.\n",
		snapshot.ID, snapshot.PublishedAt.Format("2006-01-02 15:04:05"))
	for _, lang := range snapshot.Languages() {
		if p, ok := snapshot.Partition(lang); ok {
			cmd.Printf("  %s: %d posts\n", lang, len(p.Posts))
		}
	}
	return nil
}
