package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/prosecheck/prosecheck/internal/history"
)

var (
	historyLimit  int
	historySource string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analyses",
	Long: `History lists analyses recorded in the local database.

Example:
  prosecheck history
  prosecheck history --limit 50
  prosecheck history --source essay.txt`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to list")
	historyCmd.Flags().StringVar(&historySource, "source", "", "only entries for this source name")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := historyPath(cfg)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No history recorded yet.")
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	var entries []history.Entry
	if historySource != "" {
		entries, err = store.BySource(ctx, historySource)
	} else {
		entries, err = store.Recent(ctx, historyLimit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No history recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ANALYZED\tSOURCE\tFORMAT\tWORDS\tFLESCH\tISSUES")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f\t%d\n",
			e.AnalyzedAt.Local().Format("2006-01-02 15:04"),
			e.Source, e.Format, e.WordCount, e.Flesch, e.IssueCount)
	}
	return w.Flush()
}
