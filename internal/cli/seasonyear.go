package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redsoxbot/soxbot/internal/config"
	"github.com/redsoxbot/soxbot/internal/seasonyear"
)

var (
	flagOldYear  int
	flagNewYear  int
	flagSiteRoot string
)

func newSeasonYearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season-year",
		Short: "Update hardcoded season years in the team site",
		Long: `Replace references to the old season with the new one in index.markdown
and assets/js/dashboard.js: postseason header and data files, year-over-year
chart identifiers and labels, the Jekyll standings fallback and pitch data
links.`,
		Example: `  # Preview changes for the 2026 season
  soxbot season-year --old-year 2025 --new-year 2026 --dry-run

  # Apply them
  soxbot season-year --old-year 2025 --new-year 2026`,
		Args: cobra.NoArgs,
		RunE: runSeasonYear,
	}

	cmd.Flags().IntVar(&flagOldYear, "old-year", 0, "Previous season year, e.g. 2025 (required)")
	cmd.Flags().IntVar(&flagNewYear, "new-year", 0, "New season year, e.g. 2026 (required)")
	cmd.Flags().StringVar(&flagSiteRoot, "root", ".", "Root directory of the site checkout")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Preview changes without modifying files")

	cmd.MarkFlagRequired("old-year")
	cmd.MarkFlagRequired("new-year")

	return cmd
}

func runSeasonYear(cmd *cobra.Command, args []string) error {
	if flagOldYear <= 0 || flagNewYear <= 0 || flagOldYear == flagNewYear {
		return fmt.Errorf("%w: --old-year and --new-year must be different positive years", errUsage)
	}

	format, err := parseFormat(flagFormat)
	if err != nil {
		return err
	}

	team := config.DefaultTeam()
	if flagTeamFile != "" {
		if team, err = config.LoadTeam(flagTeamFile); err != nil {
			return err
		}
	}

	updater := &seasonyear.Updater{Root: flagSiteRoot, DryRun: flagDryRun}
	report := updater.Run(flagOldYear, flagNewYear, seasonyear.Plan(team.DataPrefix, flagOldYear, flagNewYear))

	if format == FormatJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	seasonyear.Render(cmd.OutOrStdout(), report)
	return nil
}
