package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Build the index from a directory of course documents",
	Long: `Reads every PDF, text and markdown file under the given directory,
splits the extracted text into overlapping passages, embeds them and
replaces the persisted index. With no argument the configured source
directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()

	var dir string
	if len(args) > 0 {
		dir = args[0]
	}

	stats, err := ingestService.Ingest(context.Background(), dir)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Ingested %d files (%d pages, %d chunks)\n",
		stats.FilesProcessed, stats.TotalPages, stats.TotalChunks)
	cmd.Printf("Index written to %s\n", stats.IndexPath)
	return nil
}
