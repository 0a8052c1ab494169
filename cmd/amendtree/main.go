package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coolbeans/amendtree/pkg/api"
	"github.com/coolbeans/amendtree/pkg/config"
	"github.com/coolbeans/amendtree/pkg/document"
)

var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amendtree",
		Short: "French legislative amendment parser",
		Long: `Amendtree reads the articles of a French bill or a list of
amendements and turns each amending sentence into a canonical edit tree:
  - what to do (delete, replace, add, edit)
  - where, as an ordered chain of references from the most general unit
    (law, code, title, article) down to alinéa, phrase or words
  - with what new text, as quoted definitions`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Trace grammar rules on stderr")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Parse without printing the result")
	cmd.PersistentFlags().String("format", "json", "Output format (json, yaml)")
	cmd.PersistentFlags().IntSlice("article", []int{}, "Only parse the articles with these orders")
	cmd.PersistentFlags().String("config", "", "YAML config file")

	cmd.AddCommand(parseCmd())
	cmd.AddCommand(serveCmd())
	return cmd
}

// loadConfig resolves flags, environment and config file, then configures
// the global logger from the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cmd.Flags(), configPath)
	if err != nil {
		return config.Config{}, err
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
	return cfg, nil
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a bill or amendement document into edit trees",
		Long: `Parse reads a JSON document (or YAML when the file ends in .yaml or
.yml) from the given file or from standard input and prints the edit tree.

The document holds either "articles", each with "order" and numbered
"alineas", or "amendements", each with "sujet" and HTML "texte". A single
article object is accepted as well.

Examples:
  amendtree parse projet.json
  amendtree parse --article 2,3 --format yaml projet.json
  cat amendements.json | amendtree parse -v`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			doc, err := readDocument(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			tree, err := document.Parse(doc, document.Options{Articles: cfg.Articles, Logger: &log.Logger})
			if err != nil {
				return err
			}
			if cfg.Quiet {
				return nil
			}
			return document.Encode(cmd.OutOrStdout(), tree, cfg.OutputFormat())
		},
	}
}

func readDocument(args []string, stdin io.Reader) (*document.Document, error) {
	if len(args) == 0 {
		return document.Decode(stdin)
	}

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return document.DecodeYAML(file)
	default:
		return document.Decode(file)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Serve starts an HTTP server with two endpoints:
  GET  /health   liveness check
  POST /parse    parse the document in the request body
                 (query: format=json|yaml, article=1,2)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              cfg.Listen,
				Handler:           api.NewServer(log.Logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() {
				log.Info().Str("listen", cfg.Listen).Msg("serving")
				serveErr <- server.ListenAndServe()
			}()

			select {
			case err := <-serveErr:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serving: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			log.Info().Msg("shutting down")
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("listen", ":8080", "Address to listen on")
	return cmd
}
