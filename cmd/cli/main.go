// Package main provides the company-lookup command line tool.
//
// Run without arguments for the interactive prompt, or with a subcommand:
//
//	company-lookup
//	company-lookup lookup acme.com --json
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleveque/company-lookup/internal/config"
	"github.com/fleveque/company-lookup/internal/logging"
	"github.com/fleveque/company-lookup/internal/provider"
	"github.com/fleveque/company-lookup/internal/ui"
)

const prompt = "Enter company website domain or LinkedIn URL: "

// errNoData is returned by the lookup subcommand after the failure has already been printed.
var errNoData = errors.New("no data retrieved")

func main() {
	// A missing .env is fine; the environment may already carry the key.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "company-lookup",
		Short:         "Look up company data by website domain or LinkedIn URL",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.AddCommand(lookupCmd())
	return root
}

func lookupCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <domain|linkedin-url>",
		Short: "Look up a single company without prompting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), args[0], asJSON, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full record as JSON")
	return cmd
}

// newProvider loads config once and builds the provider and logger from it.
func newProvider() (*provider.AmplemarketProvider, *zap.Logger, error) {
	cfg, err := config.Load(os.Getenv("COMPANY_LOOKUP_CONFIG_PATH"))
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	p := provider.NewAmplemarketProvider(
		cfg.Amplemarket.APIKey,
		cfg.Amplemarket.BaseURL,
		cfg.Amplemarket.Timeout,
		logger.Named("amplemarket"),
	)
	return p, logger, nil
}

func runInteractive(ctx context.Context, in io.Reader, out io.Writer) error {
	p, logger, err := newProvider()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	u := ui.New(out)
	u.Linef("Amplemarket Company Data Fetcher")
	u.Linef("--------------------------------")
	fmt.Fprint(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading input: %w", err)
	}

	input := strings.TrimRight(line, "\r\n")
	if input == "" {
		u.Linef("No input provided. Exiting.")
		return nil
	}

	rec, err := p.FindCompany(ctx, input)
	if err != nil {
		u.RenderLookupError(input, err)
		u.RenderNoData()
		return nil
	}

	if !u.RenderCompany(rec) {
		u.RenderNoData()
	}
	return nil
}

func runLookup(ctx context.Context, input string, asJSON bool, out io.Writer) error {
	p, logger, err := newProvider()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	u := ui.New(out)

	rec, err := p.FindCompany(ctx, input)
	if err != nil {
		u.RenderLookupError(input, err)
		return errNoData
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	if !u.RenderCompany(rec) {
		u.RenderNoData()
		return errNoData
	}
	return nil
}
