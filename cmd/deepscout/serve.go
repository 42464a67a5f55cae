package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matiasleandrokruk/deepscout/internal/infra/config"
	"github.com/matiasleandrokruk/deepscout/internal/infra/llm"
	"github.com/matiasleandrokruk/deepscout/internal/infra/logging"
	"github.com/matiasleandrokruk/deepscout/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the deepscout MCP server",
	Long:  `Start the MCP server on the configured transport (stdio or http) and begin accepting tool calls.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()

		log, err := logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer log.Sync() //nolint:errcheck

		geminiProfiles := llm.DefaultGeminiProfiles()
		perplexityProfiles := llm.DefaultPerplexityProfiles()
		if cfg.ProfilesFile != "" {
			overrides, err := config.LoadProfiles(cfg.ProfilesFile)
			if err != nil {
				return fmt.Errorf("failed to load profile overrides: %w", err)
			}
			geminiProfiles = geminiProfiles.Merge(overrides.Gemini)
			perplexityProfiles = perplexityProfiles.Merge(overrides.Perplexity)
		}

		// Missing API keys are not a startup failure: the adapter surfaces
		// a ConfigurationError at call time, so a single-provider setup
		// still serves its other tool.
		router := llm.NewRouter(map[string]llm.ResearchProvider{
			server.ProviderGemini:     llm.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiBaseURL, geminiProfiles, log),
			server.ProviderPerplexity: llm.NewPerplexityProvider(cfg.PerplexityAPIKey, cfg.PerplexityBaseURL, perplexityProfiles, log),
		}, server.ProviderPerplexity)

		srv := server.New(router, log, server.Config{
			Transport: cfg.Transport,
			HTTPAddr:  cfg.HTTPAddr,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func setupServeCmd() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("transport", "t", config.TransportStdio, "MCP transport: stdio or http")
	serveCmd.Flags().String("addr", "0.0.0.0:8080", "Listen address (http transport only)")
	serveCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")

	viper.BindPFlag("server.transport", serveCmd.Flags().Lookup("transport")) //nolint:errcheck
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))           //nolint:errcheck
	viper.BindPFlag("log.level", serveCmd.Flags().Lookup("log-level"))        //nolint:errcheck
}
