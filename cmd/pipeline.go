package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/inovacc/ghprofile/internal/config"
	"github.com/inovacc/ghprofile/internal/core"
	"github.com/inovacc/ghprofile/internal/git"
	"github.com/inovacc/ghprofile/internal/publish"
	"github.com/inovacc/ghprofile/internal/render"
	"github.com/inovacc/ghprofile/internal/security"
	"github.com/inovacc/ghprofile/internal/source"
	"github.com/inovacc/ghprofile/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type pipelineOptions struct {
	publish bool
	dryRun  bool
}

// loadConfig resolves configuration for cmd and builds the logger it asks for.
// requireUser is false for commands that never contact GitHub.
func loadConfig(cmd *cobra.Command, requireUser bool) (*config.Config, *slog.Logger, error) {
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		EnvFile:    envFile,
		Flags:      cmd.Flags(),

		AllowMissingUser: !requireUser,
	})
	if err != nil {
		return nil, nil, err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), term.IsTerminal(int(os.Stderr.Fd())), level, cfg.LogFormat)

	logger.Debug("configuration loaded",
		slog.String("user", cfg.Username),
		slog.String("config_file", cfg.ConfigFile),
		slog.String("token_source", string(cfg.TokenSource)),
		slog.Int("page_size", cfg.PageSize),
	)

	if requireUser && cfg.Token == "" {
		logger.Warn("no GitHub token found, using unauthenticated requests with a low rate limit")
	}

	return cfg, logger, nil
}

// newGenerator wires source, resolver, renderer and, when requested, the publisher
func newGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts pipelineOptions) (*core.Generator, error) {
	client, err := source.NewClient(ctx, cfg.Token, cfg.APIURL)
	if err != nil {
		return nil, err
	}

	src := source.NewSource(client, cfg.Username, cfg.PageSize, logger)

	var languages core.LanguageLookup
	if cfg.LanguageStats {
		languages = src
	}

	resolver := core.NewResolver(languages, src, logger)
	renderer := render.NewRenderer(render.DefaultBadges().With(cfg.Languages), cfg.WebURL)

	preamble, err := render.LoadPreamble(cfg.PreambleFile)
	if err != nil {
		return nil, err
	}

	var publisher core.Publisher

	if opts.publish {
		p, err := newPublisher(ctx, cfg, logger, opts.dryRun)
		if err != nil {
			return nil, err
		}

		publisher = p
	}

	return core.NewGenerator(src, resolver, renderer, publisher, core.Options{
		User:         cfg.Username,
		PageSize:     cfg.PageSize,
		Preamble:     preamble,
		AllowPartial: cfg.AllowPartial,
	}, logger), nil
}

func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger, dryRun bool) (*publish.Publisher, error) {
	var vcs publish.VCS

	if !dryRun {
		gc, err := openWorkTree(ctx, cfg.RepoDir, logger)
		if err != nil {
			return nil, err
		}

		vcs = gc
	}

	var scanner publish.Scanner

	if cfg.ScanSecrets {
		s, err := security.NewLeakScanner()
		if err != nil {
			return nil, err
		}

		scanner = s
	}

	return publish.New(vcs, scanner, publish.Options{
		RepoDir:       cfg.RepoDir,
		OutputFile:    cfg.OutputFile,
		Remote:        cfg.Remote,
		Branch:        cfg.Branch,
		CommitMessage: cfg.CommitMessage,
		DryRun:        dryRun,
	}, logger)
}

// errNotWorkTree is returned when repo_dir is outside any git checkout
var errNotWorkTree = errors.New("not a git repository")

// openWorkTree returns a git client for repoDir, failing when it is not a checkout
func openWorkTree(ctx context.Context, repoDir string, logger *slog.Logger) (*git.Client, error) {
	gc, err := git.NewClient(repoDir)
	if err != nil {
		return nil, err
	}

	top, err := gc.TopLevel(ctx)
	if err != nil {
		if git.IsNotRepository(err) {
			return nil, fmt.Errorf("%s: %w", repoDir, errNotWorkTree)
		}

		return nil, fmt.Errorf("failed to inspect %s: %w", repoDir, err)
	}

	logger.Debug("publishing into work tree", slog.String("top_level", top))

	return gc, nil
}

// recordRun appends run to the ledger. Failures are logged, never returned.
func recordRun(path string, run *store.Run, logger *slog.Logger) {
	history, err := store.OpenHistory(path)
	if err != nil {
		logger.Warn("history unavailable", slog.String("path", path), slog.Any("error", err))
		return
	}

	defer func() {
		if err := history.Close(); err != nil {
			logger.Warn("failed to close history", slog.Any("error", err))
		}
	}()

	if err := history.Record(run); err != nil {
		logger.Warn("failed to record run", slog.Any("error", err))
		return
	}

	logger.Debug("run recorded", slog.String("id", run.ID))
}
