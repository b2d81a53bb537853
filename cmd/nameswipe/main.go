package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ehrlich-b/nameswipe/internal/config"
	"github.com/ehrlich-b/nameswipe/internal/embedding"
	"github.com/ehrlich-b/nameswipe/internal/logger"
	"github.com/ehrlich-b/nameswipe/internal/profile"
	"github.com/ehrlich-b/nameswipe/internal/samples"
	"github.com/ehrlich-b/nameswipe/internal/selector"
	"github.com/ehrlich-b/nameswipe/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	a := &app{in: os.Stdin}
	err := a.rootCmd().Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root pre-run has loaded
// configuration.
type app struct {
	configPath string
	profileRef string

	in     io.Reader
	random selector.RandomSource

	cfg    *config.Config
	store  *store.Store
	lib    *samples.Library
	oracle *embedding.Oracle
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "nameswipe",
		Short:        "nameswipe: try out names and pronouns one sample at a time",
		Long:         "Shows sample sentences using a name and pronoun set, records whether they felt right, and picks the most informative sample to show next.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ~/.nameswipe/config.yaml)")
	root.PersistentFlags().StringVarP(&a.profileRef, "profile", "p", "", "profile name or id (default: current profile)")

	root.AddCommand(
		profileCmd(a),
		nextCmd(a),
		judgeCmd(a),
		trialCmd(a),
		embedCmd(a),
		samplesCmd(a),
		configCmd(a),
	)
	return root
}

func (a *app) resolveConfigPath() error {
	if a.configPath != "" {
		return nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("locate config: %w", err)
	}
	a.configPath = path
	return nil
}

func (a *app) setup() error {
	if err := a.resolveConfigPath(); err != nil {
		return err
	}
	// .env files never override variables already set.
	_ = godotenv.Load()
	_ = godotenv.Load(filepath.Join(filepath.Dir(a.configPath), ".env"))

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if cfg.Samples.Path != "" {
		a.lib, err = samples.Load(cfg.Samples.Path)
	} else {
		a.lib, err = samples.Default()
	}
	if err != nil {
		return err
	}

	if cfg.Database.Path != ":memory:" {
		if err := config.EnsureConfigDir(filepath.Dir(cfg.Database.Path)); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	a.store, err = store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	logger.Debug("nameswipe: ready", "config", a.configPath, "db", cfg.Database.Path)
	return nil
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
}

// distanceOracle builds the embedding oracle on first use, backed by the
// store's vector cache.
func (a *app) distanceOracle() (*embedding.Oracle, error) {
	if a.oracle != nil {
		return a.oracle, nil
	}
	ec := a.cfg.Embedding
	emb, err := embedding.NewFromProvider(ec.Provider, ec.Model, ec.BaseURL)
	if err != nil {
		return nil, err
	}
	emb = embedding.Remote(emb, ec.RatePerSecond, int(ec.MaxRetries))
	a.oracle = embedding.NewOracle(emb, a.store)
	logger.Debug("nameswipe: embedder selected", "model", a.oracle.Name())
	return a.oracle, nil
}

func (a *app) selector() (*selector.Selector, error) {
	oracle, err := a.distanceOracle()
	if err != nil {
		return nil, err
	}
	random := a.random
	if random == nil {
		random = selector.NewEntropyRandom()
	}
	var opts []selector.Option
	if a.cfg.Samples.Legacy {
		opts = append(opts, selector.WithLegacyCategorySampling())
	}
	return selector.New(oracle, random, opts...), nil
}

// profile resolves --profile, falling back to the current profile.
func (a *app) profile() (*profile.Profile, error) {
	if a.profileRef != "" {
		p, err := a.store.FindProfile(a.profileRef)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("no profile matches %q", a.profileRef)
		}
		return p, nil
	}
	p, err := a.store.Current()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("no profile selected: run 'nameswipe profile add' or pass --profile")
	}
	return p, nil
}

// findProfile resolves a positional profile argument.
func (a *app) findProfile(ref string) (*profile.Profile, error) {
	p, err := a.store.FindProfile(ref)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("no profile matches %q", ref)
	}
	return p, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
