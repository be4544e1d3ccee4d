package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/brewatlas/curator-cli/internal/model"
)

var (
	submitName     string
	submitLink     string
	submitLocation string
	submitBy       string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Queue a place submission",
	Long:  "Adds a submission to the pending queue. Location is WKT or hex-encoded WKB, e.g. 'POINT(126.9780 37.5665)'.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		sub, err := st.CreateSubmission(ctx, model.Submission{
			Name:        submitName,
			SourceLink:  submitLink,
			RawLocation: submitLocation,
			SubmittedBy: submitBy,
		})
		if err != nil {
			return eris.Wrap(err, "create submission")
		}

		fmt.Println(sub.ID)
		return nil
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitName, "name", "", "place name (required)")
	submitCmd.Flags().StringVar(&submitLink, "link", "", "map link (required)")
	submitCmd.Flags().StringVar(&submitLocation, "location", "", "claimed coordinates as WKT or hex WKB (required)")
	submitCmd.Flags().StringVar(&submitBy, "by", "", "submitter identifier")
	_ = submitCmd.MarkFlagRequired("name")
	_ = submitCmd.MarkFlagRequired("link")
	_ = submitCmd.MarkFlagRequired("location")
	rootCmd.AddCommand(submitCmd)
}
