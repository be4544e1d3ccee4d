package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brewatlas/curator-cli/internal/pipeline"
	anthropicpkg "github.com/brewatlas/curator-cli/pkg/anthropic"
	"github.com/brewatlas/curator-cli/pkg/mapscrape"
)

var (
	processPreview bool
	processLimit   int
	processVerbose bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process pending submissions",
	Long:  "Fetches the oldest pending submissions and walks each through extraction, duplicate detection, classification and, for borderline cases, Claude adjudication.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		scrapeClient := mapscrape.NewClient(cfg.Scraper.Key, mapscrape.WithBaseURL(cfg.Scraper.BaseURL))
		scraper := pipeline.NewScraper(scrapeClient, cfg.Scraper)

		// Without a key the adjudicator flags every borderline case
		// instead of calling out.
		var completer anthropicpkg.Client
		if cfg.Anthropic.Key != "" {
			completer = anthropicpkg.NewClient(cfg.Anthropic.Key)
		} else {
			zap.L().Warn("no anthropic key configured, borderline submissions will be flagged")
		}
		adjudicator := pipeline.NewAdjudicator(completer, cfg.Anthropic)

		p := pipeline.New(cfg, st, scraper, adjudicator)
		summary, err := p.Run(ctx, pipeline.Options{
			Preview: processPreview,
			Limit:   processLimit,
		})
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		if processVerbose {
			for _, r := range summary.Results {
				fmt.Fprintf(os.Stderr, "%s  %-9s  %s\n", r.SubmissionID, r.Action, r.Notes)
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

func init() {
	processCmd.Flags().BoolVar(&processPreview, "preview", false, "run decision logic without persisting anything")
	processCmd.Flags().IntVar(&processLimit, "limit", 0, "max submissions to process (0 = configured default)")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "print per-submission outcomes to stderr")
	rootCmd.AddCommand(processCmd)
}
