package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inovacc/ghprofile/internal/application"
	"github.com/inovacc/ghprofile/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Publish a Markdown index of a GitHub account's repositories",
	Long: `ghprofile lists every public repository of a GitHub account, resolves
each repository's primary language and fork parent, and renders a paginated
Markdown document newest first. The document is written into a local git
checkout, committed and pushed.

Configuration is read from ghprofile.yaml (working directory or the
application directory), GHPROFILE_* environment variables and flags.

Examples:
  ghprofile --user octocat                 # Generate, commit and push
  ghprofile --user octocat --dry-run       # Write the file only
  ghprofile preview --user octocat         # Print the document
  ghprofile history --limit 5              # Show recent runs`,
	SilenceUsage: true,
	RunE:         runGenerate,
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ghprofile.yaml in . or the application directory)")
	flags.String("env-file", ".env", "Env file loaded before reading the environment")
	flags.String("user", "", "GitHub account to list")
	flags.Int("page-size", 0, "Repositories per document page (default 30)")
	flags.String("repo-dir", "", "Git checkout the document is written into (default .)")
	flags.String("output", "", "Document path relative to --repo-dir (default README.md)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().Bool("dry-run", false, "Render and write the document without running git")
	rootCmd.Flags().Bool("no-history", false, "Do not record this run in the history ledger")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	cfg, logger, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	started := time.Now()

	gen, err := newGenerator(ctx, cfg, logger, pipelineOptions{publish: true, dryRun: dryRun})
	if err != nil {
		return err
	}

	result, runErr := gen.Run(ctx)

	if !noHistory {
		run := store.NewRun(started, result, runErr)
		run.DryRun = dryRun

		if run.User == "" {
			run.User = cfg.Username
		}

		recordRun(cfg.HistoryFile, run, logger)
	}

	if runErr != nil {
		return runErr
	}

	printRunSummary(cmd.OutOrStdout(), result, dryRun)

	return nil
}
