package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/samirrijal/restofinder/internal/frontend"
	"github.com/samirrijal/restofinder/internal/pkg/config"
	"github.com/samirrijal/restofinder/internal/pkg/logging"
)

var (
	apiURL string
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "restaurants",
	Short: "Browse restaurants through the Restofinder API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load("restofinder-cli")
		if err != nil {
			return err
		}
		// stdout carries results; logs go to stderr.
		slog.SetDefault(logging.New(os.Stderr, cfg.Log.Level, "text"))
		if apiURL == "" {
			apiURL = cfg.Client.BaseURL
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (default from client.base_url)")
	rootCmd.AddCommand(listCmd, showCmd)
}

func newSession() *frontend.Session {
	client := frontend.NewAPIClient(apiURL,
		frontend.WithTimeout(time.Duration(cfg.Client.Timeout)*time.Second))
	return frontend.NewSession(client,
		frontend.WithNotifier(frontend.NotifierFunc(func(msg string) {
			fmt.Fprintln(os.Stderr, "!", msg)
		})),
		frontend.WithLocationProvider(nearLocation),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
