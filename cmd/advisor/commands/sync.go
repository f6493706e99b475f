// ABOUTME: CLI command to reconcile the vector index with the catalog
// ABOUTME: Reports fresh/rebuilt; --force always re-embeds the whole catalog
package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/harper/course-advisor/internal/catalog"
	"github.com/harper/course-advisor/internal/indexsync"
	"github.com/harper/course-advisor/internal/llm"
)

var syncForce bool

// NewSyncCmd creates the sync command
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the vector index with the catalog",
		Long: `Compare the live catalog against the index manifest and rebuild
the vector index if they diverge.

A rebuild re-embeds every course and atomically replaces both the
index and the manifest. Blocking; time grows with catalog size.

Examples:
  advisor sync
  advisor sync --force`,
		RunE: runSync,
	}

	cmd.Flags().BoolVar(&syncForce, "force", false, "Rebuild even if the index looks fresh")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}

	store, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return fmt.Errorf("creating OpenAI client: %w", err)
	}

	synchronizer := indexsync.New(store, client, indexsync.Options{
		IndexPath:    cfg.IndexPath,
		ManifestPath: cfg.ManifestPath,
		Dimension:    cfg.VectorDimension,
		ContentHash:  cfg.ContentHash,
	})

	if verbose {
		log.Printf("catalog: %d courses from %s", store.Len(), store.Path())
	}

	var result indexsync.Result
	if syncForce {
		_, result, err = synchronizer.Rebuild(cmd.Context())
	} else {
		_, result, err = synchronizer.EnsureFresh(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("synchronizing index: %w", err)
	}

	if !quiet {
		switch result.Status {
		case indexsync.StatusFresh:
			fmt.Fprintf(cmd.OutOrStdout(), "Index is fresh (%d courses)\n", result.Courses)
		case indexsync.StatusRebuilt:
			fmt.Fprintf(cmd.OutOrStdout(), "Index rebuilt (%d courses re-embedded)\n", result.Courses)
		}
	}

	return nil
}
