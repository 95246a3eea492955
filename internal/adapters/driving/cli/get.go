package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
)

var (
	getLang string
	getRaw  bool
)

var getCmd = &cobra.Command{
	Use:   "get <slug>",
	Short: "Show a single post from a freshly built index",
	Long: `Runs one synchronisation cycle and prints one post identified
by its slug: resolved metadata followed by the rendered HTML, or the
raw markdown with --raw.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVarP(&getLang, "lang", "l", "en", "language of the post")
	getCmd.Flags().BoolVar(&getRaw, "raw", false, "print raw markdown instead of rendered HTML")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.syncer.SyncOnce(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	if status := eng.syncer.Status(); status.LastError != "" {
		return fmt.Errorf("sync failed: %s", status.LastError)
	}

	slug := args[0]
	post, err := eng.query.Get(ctx, getLang, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("post %q not found in language %q", slug, getLang)
	}
	if err != nil {
		return fmt.Errorf("get post: %w", err)
	}

	cmd.Printf("Title:     %s\n", post.Meta.Title)
	cmd.Printf("Created:   %s\n", post.Meta.CreatedAt.Format("2006-01-02"))
	cmd.Printf("Updated:   %s\n", post.Meta.UpdatedAt.Format("2006-01-02"))
	if post.Meta.Author != "" {
		cmd.Printf("Author:    %s\n", post.Meta.Author)
	}
	if post.Meta.Category != "" {
		cmd.Printf("Category:  %s\n", post.Meta.Category)
	}
	if len(post.Meta.Tags) > 0 {
		cmd.Printf("Tags:      %s\n", strings.Join(post.Meta.Tags, ", "))
	}
	if !post.Meta.Published {
		cmd.Println("Published: false")
	}
	cmd.Println()

	if getRaw {
		cmd.Println(string(post.Raw))
	} else {
		cmd.Println(string(post.Rendered))
	}
	return nil
}
