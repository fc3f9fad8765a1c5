package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"watchlog/internal/microservices/http-api/dto"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Browse and add series and their seasons",
}

var seriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := newClient().ListSeries(cmdContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to list series: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No series yet")
			return nil
		}
		for _, s := range list {
			fmt.Fprintf(out, "%d. %s - %d season(s)\n", s.ID, s.Title, s.TotalSeasons)
		}
		return nil
	},
}

var seriesAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a series to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.CreateSeriesRequest{
			Title:        &args[0],
			TotalSeasons: optionalInt(cmd, "seasons"),
		}
		s, err := newClient().CreateSeries(cmdContext(cmd), req)
		if err != nil {
			return fmt.Errorf("failed to add series: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added series %q (ID: %d)\n", s.Title, s.ID)
		return nil
	},
}

var seriesShowCmd = &cobra.Command{
	Use:   "show [series_id]",
	Short: "Show a series with its seasons",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "series")
		if err != nil {
			return err
		}
		s, err := newClient().GetSeries(cmdContext(cmd), id)
		if err != nil {
			return fmt.Errorf("failed to fetch series: %w", err)
		}
		printSeries(cmd, s)
		return nil
	},
}

var seriesAddSeasonCmd = &cobra.Command{
	Use:   "add-season [series_id] [number]",
	Short: "Add a season to a series",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "series")
		if err != nil {
			return err
		}
		number, err := parseIDArg(args[1], "season")
		if err != nil {
			return err
		}
		n := int(number)
		req := dto.AddSeasonRequest{
			Number:        &n,
			EpisodesCount: optionalInt(cmd, "episodes"),
		}
		s, err := newClient().AddSeason(cmdContext(cmd), id, req)
		if err != nil {
			return fmt.Errorf("failed to add season: %w", err)
		}
		printSeries(cmd, s)
		return nil
	},
}

func printSeries(cmd *cobra.Command, s *dto.SeriesDetailResponse) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (ID: %d) - %d season(s)\n", s.Title, s.ID, s.TotalSeasons)
	for _, season := range s.Seasons {
		fmt.Fprintf(out, "  Season %d: %d episode(s)\n", season.Number, season.EpisodesCount)
	}
}

func init() {
	seriesAddCmd.Flags().Int("seasons", 0, "declared number of seasons")
	seriesAddSeasonCmd.Flags().Int("episodes", 0, "number of episodes in the season")

	seriesCmd.AddCommand(seriesListCmd, seriesAddCmd, seriesShowCmd, seriesAddSeasonCmd)
	rootCmd.AddCommand(seriesCmd)
}
