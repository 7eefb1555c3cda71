package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prosecheck/prosecheck/internal/history"
	"github.com/prosecheck/prosecheck/internal/pipeline"
	"github.com/prosecheck/prosecheck/internal/server"
)

var (
	serveAddr        string
	serveWithHistory bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP API",
	Long: `Serve exposes the analyzer over HTTP:
- POST /v1/analyze  multipart file upload or JSON {"text": "..."}
- GET  /v1/history  recent analyses (when history is enabled)
- GET  /healthz     liveness probe

Example:
  prosecheck serve
  prosecheck serve --addr :9090 --with-history`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&serveWithHistory, "with-history", false, "record analyses in the history database")
	serveCmd.Flags().StringVar(&language, "language", "", "grammar check language (default from config, en-US)")
	serveCmd.Flags().StringVar(&endpoint, "endpoint", "", "LanguageTool-compatible server URL")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable grammar response cache")
	serveCmd.Flags().BoolVar(&toneEnabled, "tone", false, "enable sentiment/formality classification")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	logger := newLogger(true)

	var store *history.Store
	if serveWithHistory || cfg.History.Enabled {
		path, err := historyPath(cfg)
		if err != nil {
			return err
		}
		store, err = history.Open(path)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
		logger.Info("history enabled", "path", path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg, logger)
	srv := server.New(p, store, cfg, logger)
	return srv.Run(ctx)
}
