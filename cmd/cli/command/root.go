package command

// root.go defines the root command for the watchlog CLI and its global flags.

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"watchlog/cmd/cli/command/client"
)

var (
	apiURL string // Global flag for API server URL
	userID int64  // sent as X-User-Id
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "watchlog",
	Short: "watchlog - track what you watch",
	Long: `watchlog talks to the WatchLog API. It can:
- Manage the movie and series catalog
- Add movies and series to your watchlist
- Update how far you are into a series

Use "watchlog command -h" to see all available commands.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("WATCHLOG_API", "http://localhost:8080"), "API server URL")
	rootCmd.PersistentFlags().Int64Var(&userID, "user", 1, "user id sent as X-User-Id")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newClient() *client.HTTPClient {
	return client.NewHTTPClient(apiURL, userID)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseIDArg(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", name, raw)
	}
	return id, nil
}

// optionalInt returns a pointer to the flag value only when the user set it.
func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
