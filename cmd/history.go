package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/ghprofile/internal/encoding"
	"github.com/inovacc/ghprofile/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs",
	Long: `List previous runs from the history ledger, newest first.

Examples:
  ghprofile history              # Last 10 runs
  ghprofile history --limit 0    # Every run
  ghprofile history --json       # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 10, "Maximum runs to show (0 for all)")
	historyCmd.Flags().Bool("json", false, "Output as JSON")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, _, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}

	if !encoding.FileExists(cfg.HistoryFile) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	history, err := store.OpenHistory(cfg.HistoryFile)
	if err != nil {
		return err
	}

	defer func() { _ = history.Close() }()

	runs, err := history.Recent(limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := encoding.ToJSONIndent(runs)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))

		return err
	}

	if len(runs) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	printRunsTable(cmd.OutOrStdout(), runs)

	return nil
}

func printRunsTable(w io.Writer, runs []store.Run) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	maxUser := 8

	for _, r := range runs {
		maxUser = max(maxUser, min(len(r.User), 20))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n",
		headerStyle.Render(padRight("STARTED", 19)),
		headerStyle.Render(padRight("USER", maxUser)),
		headerStyle.Render(padRight("REPOS", 6)),
		headerStyle.Render(padRight("PAGES", 6)),
		headerStyle.Render(padRight("STATUS", 10)),
		headerStyle.Render("DETAIL"),
	)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", maxUser+60))

	for _, r := range runs {
		status, detail := runStatus(r)

		styled := okStyle.Render(padRight(status, 10))
		if !r.Succeeded() {
			styled = failStyle.Render(padRight(status, 10))
		}

		_, _ = fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			padRight(truncateString(r.User, maxUser), maxUser),
			padRight(strconv.Itoa(r.Repositories), 6),
			padRight(strconv.Itoa(r.Pages), 6),
			styled,
			dimStyle.Render(truncateString(detail, 50)),
		)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Total: %d runs\n", len(runs))
}

// runStatus summarizes a run as a short status and a detail line
func runStatus(r store.Run) (string, string) {
	switch {
	case !r.Succeeded():
		return "failed", r.ErrorKind + ": " + r.Error
	case r.DryRun:
		return "dry-run", changedDetail(r.Changed)
	case r.Pushed:
		return "pushed", partialDetail(r)
	case r.Committed:
		return "committed", partialDetail(r)
	default:
		return "unchanged", partialDetail(r)
	}
}

func changedDetail(changed bool) string {
	if changed {
		return "document changed"
	}

	return "document unchanged"
}

func partialDetail(r store.Run) string {
	if r.Partial {
		return "partial listing"
	}

	if r.UnknownParents > 0 {
		return fmt.Sprintf("%d unknown fork parent(s)", r.UnknownParents)
	}

	return ""
}
