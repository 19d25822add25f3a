package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/inovacc/ghprofile/internal/config"
	"github.com/inovacc/ghprofile/internal/core"
)

// newLogger picks the slog handler for format. auto means text on a
// terminal and JSON otherwise.
func newLogger(w io.Writer, isTerminal bool, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	useJSON := format == config.LogFormatJSON || (format == config.LogFormatAuto && !isTerminal)
	if useJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// printRunSummary prints what a run produced and what it did with it
func printRunSummary(w io.Writer, result *core.RunResult, dryRun bool) {
	if result == nil || result.Document == nil {
		return
	}

	s := result.Document.Summary
	items := map[string]string{
		"User":           s.User,
		"Repositories":   strconv.Itoa(s.Repositories),
		"Pages":          strconv.Itoa(s.Pages),
		"Forks":          strconv.Itoa(s.Forks),
		"Unknown parent": strconv.Itoa(s.UnknownParents),
	}
	order := []string{"User", "Repositories", "Pages", "Forks", "Unknown parent"}

	if s.Partial {
		items["Partial"] = "yes"
		order = append(order, "Partial")
	}

	if p := result.Publish; p != nil {
		items["Output"] = p.Path
		items["Changed"] = yesNo(p.Changed)
		order = append(order, "Output", "Changed")

		if !dryRun {
			items["Committed"] = yesNo(p.Committed)
			items["Pushed"] = yesNo(p.Pushed)
			order = append(order, "Committed", "Pushed")
		}
	}

	title := "Repository index updated"
	if dryRun {
		title = "Repository index (dry run)"
	}

	printInfoBox(w, title, items, order)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

// padRight pads s with spaces to length
func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}

	return s + strings.Repeat(" ", length-len(s))
}

// centerString centers a string in a field of given width
func centerString(s string, width int) string {
	if len(s) >= width {
		return s
	}

	padding := (width - len(s)) / 2

	return fmt.Sprintf("%*s%s%*s", padding, "", s, width-len(s)-padding, "")
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}

// boxWidth is the standard width for info boxes
const boxWidth = 64

// printInfoBox prints a boxed title followed by key-value lines
func printInfoBox(w io.Writer, title string, items map[string]string, order []string) {
	_, _ = fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════╗")
	_, _ = fmt.Fprintf(w, "║%s║\n", centerString(title, boxWidth-2))
	_, _ = fmt.Fprintln(w, "╠══════════════════════════════════════════════════════════════╣")

	for _, key := range order {
		val, ok := items[key]
		if !ok {
			continue
		}

		content := truncateString(fmt.Sprintf("  %s: %s", key, val), boxWidth-2)
		_, _ = fmt.Fprintf(w, "║%s%*s║\n", content, boxWidth-2-len(content), "")
	}

	_, _ = fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════╝")
}
