package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/mindspark/internal/selfupdate"
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "mindspark", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}

		res, err := selfupdate.NewChecker().Check(cmd.Context(), &selfupdate.CheckInput{Version: version})
		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Fprintln(cmd.OutOrStdout(), "Development build; skipping the release check.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if res.UpdateAvailable {
			fmt.Fprintf(cmd.OutOrStdout(), "A newer release is available: %s\n%s\n", res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "You are on the latest release.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Compare with the latest GitHub release")
}
