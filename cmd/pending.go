package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var pendingLimit int

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Inspect the pending submission queue",
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

		total, err := st.CountPending(ctx)
		if err != nil {
			return eris.Wrap(err, "count pending")
		}

		subs, err := st.FetchPending(ctx, pendingLimit)
		if err != nil {
			return eris.Wrap(err, "fetch pending")
		}

		fmt.Printf("%d pending submission(s)\n\n", total)
		if len(subs) == 0 {
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSUBMITTED BY\tCREATED")
		for _, s := range subs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.SubmittedBy, s.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

func init() {
	pendingCmd.Flags().IntVar(&pendingLimit, "limit", 25, "max submissions to list")
	rootCmd.AddCommand(pendingCmd)
}
