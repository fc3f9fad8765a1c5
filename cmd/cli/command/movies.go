package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"watchlog/internal/microservices/http-api/dto"
	"watchlog/internal/microservices/http-api/models"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Browse and add movies",
}

var moviesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := newClient().ListMovies(cmdContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to list movies: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(movies) == 0 {
			fmt.Fprintln(out, "No movies yet")
			return nil
		}
		for _, m := range movies {
			fmt.Fprintf(out, "%d. %s%s\n", m.ID, m.Title, movieSuffix(m))
		}
		return nil
	},
}

var moviesAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a movie to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.MovieRequest{
			Title:       models.Some(args[0]),
			Genre:       models.OptionalFromPtr(optionalString(cmd, "genre")),
			ReleaseYear: models.OptionalFromPtr(optionalInt(cmd, "year")),
		}
		m, err := newClient().CreateMovie(cmdContext(cmd), req)
		if err != nil {
			return fmt.Errorf("failed to add movie: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added movie %q (ID: %d)\n", m.Title, m.ID)
		return nil
	},
}

var moviesShowCmd = &cobra.Command{
	Use:   "show [movie_id]",
	Short: "Show one movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "movie")
		if err != nil {
			return err
		}
		m, err := newClient().GetMovie(cmdContext(cmd), id)
		if err != nil {
			return fmt.Errorf("failed to fetch movie: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (ID: %d)\n", m.Title, m.ID)
		if m.Genre != nil {
			fmt.Fprintf(out, "  Genre: %s\n", *m.Genre)
		}
		if m.ReleaseYear != nil {
			fmt.Fprintf(out, "  Year:  %d\n", *m.ReleaseYear)
		}
		fmt.Fprintf(out, "  Added: %s\n", m.CreatedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

func movieSuffix(m dto.MovieResponse) string {
	if m.ReleaseYear == nil {
		return ""
	}
	return fmt.Sprintf(" (%d)", *m.ReleaseYear)
}

func init() {
	moviesAddCmd.Flags().String("genre", "", "movie genre")
	moviesAddCmd.Flags().Int("year", 0, "release year")

	moviesCmd.AddCommand(moviesListCmd, moviesAddCmd, moviesShowCmd)
	rootCmd.AddCommand(moviesCmd)
}
