package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/abhisek/mindspark/internal/auth"
	"github.com/abhisek/mindspark/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the logged-in user's saved results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withStore(cmd, func(s *store.Store) error {
			return printHistory(context.Background(), cmd.OutOrStdout(), auth.NewService(s.Bucket()), limit)
		})
	},
}

func printHistory(ctx context.Context, w io.Writer, svc *auth.Service, limit int) error {
	sess, err := svc.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if sess == nil {
		fmt.Fprintln(w, "Not logged in. Launch mindspark and log in first.")
		return nil
	}

	history, err := svc.History(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(history) == 0 {
		fmt.Fprintf(w, "%s has no saved results yet.\n", sess.Name)
		return nil
	}

	st := auth.Stats(history)
	fmt.Fprintf(w, "%s (%s): %d assessments, latest %q\n\n", sess.Name, sess.Email, st.Total, st.LatestArchetype)
	t := newTable([]string{"Date", "Archetype", "Tagline"})
	for i, r := range history {
		if limit > 0 && i >= limit {
			break
		}
		date := "unknown"
		if ts := r.Time(); !ts.IsZero() {
			date = ts.Local().Format("2006-01-02")
		}
		t.Row(date, truncate(r.Archetype, 28), r.Tagline)
	}
	printTable(w, t)
	if limit > 0 && len(history) > limit {
		fmt.Fprintf(w, "... %d more\n", len(history)-limit)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 0, "Number of results to show (0 for all)")
}
