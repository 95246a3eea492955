package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitpress-labs/gitpress/internal/core/ports/driving"
)

var (
	listLang      string
	listPublished bool
	listCategory  string
	listTag       string
	listMonth     string
	listLimit     int
	listOffset    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts from a freshly built index",
	Long: `Runs one synchronisation cycle and lists the posts of one
language, optionally filtered by category, tag or month.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listLang, "lang", "l", "en", "language to list")
	listCmd.Flags().BoolVar(&listPublished, "published", false, "only published posts")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	listCmd.Flags().StringVar(&listTag, "tag", "", "filter by tag")
	listCmd.Flags().StringVar(&listMonth, "month", "", "filter by month (YYYY-MM)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of posts (0 = all)")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "number of posts to skip")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
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

	posts, err := eng.query.List(ctx, listLang, driving.ListOptions{
		PublishedOnly: listPublished,
		Category:      listCategory,
		Tag:           listTag,
		YearMonth:     listMonth,
		Limit:         listLimit,
		Offset:        listOffset,
	})
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}

	if len(posts) == 0 {
		cmd.Println("No posts found.")
		return nil
	}

	for _, post := range posts {
		line := fmt.Sprintf("%s  %s  %s",
			post.Meta.CreatedAt.Format("2006-01-02"), post.Slug, post.Meta.Title)
		var extras []string
		if post.Meta.Category != "" {
			extras = append(extras, "category: "+post.Meta.Category)
		}
		if len(post.Meta.Tags) > 0 {
			extras = append(extras, "tags: "+strings.Join(post.Meta.Tags, ", "))
		}
		if !post.Meta.Published {
			extras = append(extras, "draft")
		}
		if len(extras) > 0 {
			line += "  (" + strings.Join(extras, "; ") + ")"
		}
		cmd.Println(line)
	}
	return nil
}
