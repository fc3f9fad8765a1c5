package command

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"watchlog/internal/microservices/http-api/dto"
	"watchlog/internal/microservices/http-api/models"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Show your watchlist, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := newClient().Watchlist(cmdContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to fetch watchlist: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "Your watchlist is empty")
			return nil
		}
		fmt.Fprintf(out, "Your watchlist (%d)\n", len(entries))
		for _, e := range entries {
			printEntry(out, e)
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Start tracking a movie or a series",
}

var watchMovieCmd = &cobra.Command{
	Use:   "movie [movie_id]",
	Short: "Add a movie to your watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "movie")
		if err != nil {
			return err
		}
		e, err := newClient().WatchMovie(cmdContext(cmd), id)
		if err != nil {
			return fmt.Errorf("failed to add movie to watchlist: %w", err)
		}
		printEntry(cmd.OutOrStdout(), *e)
		return nil
	},
}

var watchSeriesCmd = &cobra.Command{
	Use:   "series [series_id]",
	Short: "Add a series to your watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "series")
		if err != nil {
			return err
		}
		e, err := newClient().WatchSeries(cmdContext(cmd), id)
		if err != nil {
			return fmt.Errorf("failed to add series to watchlist: %w", err)
		}
		printEntry(cmd.OutOrStdout(), *e)
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress [series_id]",
	Short: "Update your progress on a series",
	Long: `Only the flags you pass are sent, everything else is left as it is.

Example:
  watchlog progress 3 --season 2 --episode 4 --watched 16
  watchlog progress 3 --clear-position`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "series")
		if err != nil {
			return err
		}
		req := dto.UpdateProgressRequest{
			CurrentSeason:   models.OptionalFromPtr(optionalInt(cmd, "season")),
			CurrentEpisode:  models.OptionalFromPtr(optionalInt(cmd, "episode")),
			WatchedEpisodes: models.OptionalFromPtr(optionalInt(cmd, "watched")),
			TotalEpisodes:   models.OptionalFromPtr(optionalInt(cmd, "total")),
			Status:          models.OptionalFromPtr(optionalString(cmd, "status")),
		}
		if clear, _ := cmd.Flags().GetBool("clear-position"); clear {
			req.CurrentSeason = models.Null[int]()
			req.CurrentEpisode = models.Null[int]()
		}
		e, err := newClient().UpdateProgress(cmdContext(cmd), id, req)
		if err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}
		printEntry(cmd.OutOrStdout(), *e)
		return nil
	},
}

func printEntry(out io.Writer, e dto.WatchEntryResponse) {
	fmt.Fprintf(out, "- %s %d [%s] %d/%d episodes (%.2f%%)",
		e.ContentType, e.ContentID, e.Status, e.WatchedEpisodes, e.TotalEpisodes, e.PercentageWatched)
	if e.CurrentSeason != nil && e.CurrentEpisode != nil {
		fmt.Fprintf(out, " at S%02dE%02d", *e.CurrentSeason, *e.CurrentEpisode)
	}
	fmt.Fprintln(out)
}

func init() {
	progressCmd.Flags().Int("season", 0, "current season")
	progressCmd.Flags().Int("episode", 0, "current episode")
	progressCmd.Flags().Int("watched", 0, "episodes watched so far")
	progressCmd.Flags().Int("total", 0, "total episodes")
	progressCmd.Flags().String("status", "", "watching, completed, dropped or planned")
	progressCmd.Flags().Bool("clear-position", false, "unset the current season and episode")
	progressCmd.MarkFlagsMutuallyExclusive("clear-position", "season")
	progressCmd.MarkFlagsMutuallyExclusive("clear-position", "episode")

	watchCmd.AddCommand(watchMovieCmd, watchSeriesCmd)
	rootCmd.AddCommand(watchlistCmd, watchCmd, progressCmd)
}
