package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pfrederiksen/gdc-vault/internal/config"
	"github.com/pfrederiksen/gdc-vault/internal/logger"
	"github.com/pfrederiksen/gdc-vault/internal/scraper"
	"github.com/pfrederiksen/gdc-vault/internal/storage"
	"github.com/pfrederiksen/gdc-vault/internal/vault"
	"github.com/spf13/cobra"
)

// ExitError is the process exit code of a failed run.
const ExitError = 1

var (
	flagConfig       string
	flagYear         int
	flagDataDir      string
	flagFormat       string
	flagTracks       []string
	flagVerbose      bool
	flagWithOverview bool
)

// session holds everything a command needs once flags and config are merged
type session struct {
	cfg    *config.Config
	store  *storage.Storage
	year   int
	tracks []string
	format OutputFormat
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gdcvault",
		Short: "Scrape and analyse the free GDC Vault talks",
		Long: `A CLI tool to scrape the free GDC Vault listing for a conference year.
Without a subcommand it loads the saved vault list, prints how many talks each
track has and writes the talks of the configured tracks to GDC{YY}_filtered.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDefault,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to config file (default ~/.config/gdcvault/config.toml or ./gdcvault.toml)")
	flags.IntVar(&flagYear, "year", 0, "Conference year, e.g. 23 or 2023 (default from config)")
	flags.StringVar(&flagDataDir, "data-dir", "", "Directory for the JSON files (default from config)")
	flags.StringVar(&flagFormat, "format", "text", "Tally output format: text, json or table")
	flags.StringArrayVar(&flagTracks, "track", nil, "Track to keep in the filtered export (repeatable, default from config)")
	flags.BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newDumpCmd(), newTallyCmd(), newFilterCmd())

	return cmd
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Scrape the listing page and save GDC{YY}_vault_list.json",
		Args:  cobra.NoArgs,
		RunE:  runDump,
	}
	cmd.Flags().BoolVar(&flagWithOverview, "with-overview", false, "Also fetch each talk's overview from its own page")
	return cmd
}

func newTallyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tally",
		Short: "Print the number of saved talks per track",
		Args:  cobra.NoArgs,
		RunE:  runTally,
	}
}

func newFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter",
		Short: "Write the saved talks of the selected tracks to GDC{YY}_filtered.json",
		Args:  cobra.NoArgs,
		RunE:  runFilter,
	}
}

// newSession merges config file values with command-line flags
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, cfgPath, cfgExists, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("year") {
		if flagYear < 0 {
			return nil, fmt.Errorf("invalid year: %d", flagYear)
		}
		cfg.Analysis.Year = flagYear
	}
	if flags.Changed("data-dir") {
		dataDir, err := config.ExpandPath(flagDataDir)
		if err != nil {
			return nil, fmt.Errorf("resolving data directory: %w", err)
		}
		cfg.Paths.DataDir = dataDir
	}
	if flags.Changed("track") {
		cfg.Analysis.Tracks = flagTracks
	}

	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	format := OutputFormat(strings.ToLower(strings.TrimSpace(flagFormat)))
	if !format.Valid() {
		return nil, fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'table')", flagFormat)
	}

	store, err := storage.New(cfg.Paths.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	logger.Debug("Loaded configuration", logger.Fields{
		"path":     cfgPath,
		"exists":   cfgExists,
		"year":     cfg.Analysis.Year,
		"data_dir": cfg.Paths.DataDir,
	})

	return &session{
		cfg:    cfg,
		store:  store,
		year:   cfg.Analysis.Year,
		tracks: cfg.Analysis.Tracks,
		format: format,
	}, nil
}

// runDefault loads, tallies and filters, in that order
func runDefault(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer logMetrics()

	collection, tally, err := s.loadAndClassify()
	if err != nil {
		return err
	}

	if err := WriteClassifications(cmd.OutOrStdout(), tally, s.format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return s.exportFiltered(collection)
}

func runDump(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer logMetrics()

	withOverview := s.cfg.Scrape.WithOverview
	if cmd.Flags().Changed("with-overview") {
		withOverview = flagWithOverview
	}

	sc := scraper.New(
		scraper.WithBaseURL(s.cfg.Scrape.BaseURL),
		scraper.WithTimeout(s.cfg.Timeout()),
		scraper.WithUserAgent(s.cfg.Scrape.UserAgent),
		scraper.WithConcurrency(s.cfg.Scrape.Concurrency),
	)

	logger.Info("Fetching listing", logger.Fields{"url": sc.ListingURL(s.year)})

	collection, err := sc.FetchVaults(cmd.Context(), s.year)
	if err != nil {
		return fmt.Errorf("fetching vaults: %w", err)
	}
	if collection.Len() == 0 {
		logger.Warn("Listing has no vaults", logger.Fields{"url": sc.ListingURL(s.year)})
	}

	if withOverview && collection.Len() > 0 {
		bar := newProgressBar(collection.Len(), cmd.ErrOrStderr())
		err := sc.EnrichOverviews(cmd.Context(), collection, func(*vault.Vault) {
			_ = bar.Add(1)
		})
		_ = bar.Finish()
		if err != nil {
			logger.Error("Overview enrichment failed", logger.Fields{"vaults": collection.Len()}, err)
			return err
		}
	}

	if err := s.store.SaveVaultList(s.year, collection); err != nil {
		return fmt.Errorf("saving vaults: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d vaults to %s\n", collection.Len(), s.store.VaultListPath(s.year))
	return nil
}

func runTally(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer logMetrics()

	_, tally, err := s.loadAndClassify()
	if err != nil {
		return err
	}

	if err := WriteClassifications(cmd.OutOrStdout(), tally, s.format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer logMetrics()

	collection, err := s.store.LoadVaultList(s.year)
	if err != nil {
		return fmt.Errorf("loading vaults: %w", err)
	}

	return s.exportFiltered(collection)
}

func (s *session) loadAndClassify() (*vault.Collection, []vault.Classification, error) {
	collection, err := s.store.LoadVaultList(s.year)
	if err != nil {
		return nil, nil, fmt.Errorf("loading vaults: %w", err)
	}

	logger.Debug("Loaded vault list", logger.Fields{
		"path":   s.store.VaultListPath(s.year),
		"vaults": collection.Len(),
	})

	tally, err := vault.Classify(collection)
	if err != nil {
		return nil, nil, err
	}

	return collection, tally, nil
}

func (s *session) exportFiltered(collection *vault.Collection) error {
	filtered, err := vault.Filter(collection, s.tracks)
	if err != nil {
		return err
	}

	if err := s.store.SaveFiltered(s.year, filtered); err != nil {
		return fmt.Errorf("saving filtered vaults: %w", err)
	}

	logger.Info("Wrote filtered vaults", logger.Fields{
		"path":   s.store.FilteredPath(s.year),
		"vaults": filtered.Len(),
		"tracks": s.tracks,
	})
	return nil
}

func logMetrics() {
	logger.Debug("Run metrics", logger.Fields(logger.GetMetricsSnapshot()))
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
