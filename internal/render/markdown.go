// Package render turns paginated repository entries into the profile
// Markdown document.
package render

import (
	"fmt"
	"strings"

	"github.com/inovacc/ghprofile/internal/model"
)

const (
	// DateLayout renders creation dates as MM-DD-YYYY
	DateLayout = "01-02-2006"

	// DefaultWebURL is the web root used to link fork parents
	DefaultWebURL = "https://github.com"

	topAnchor = "repositories"
	endAnchor = "repositories-end"
)

// Renderer emits the profile document
type Renderer struct {
	Badges Badges

	// WebURL is prefixed to owner/name to link fork parents
	WebURL string
}

// NewRenderer creates a renderer with the given symbol table
func NewRenderer(badges Badges, webURL string) *Renderer {
	if webURL == "" {
		webURL = DefaultWebURL
	}

	return &Renderer{
		Badges: badges,
		WebURL: strings.TrimSuffix(webURL, "/"),
	}
}

// Render produces the full document: the preamble, every page with its
// navigation heading, and the closing section. The same pages and
// preamble always render to the same bytes.
func (r *Renderer) Render(pages []model.Page, preamble string) []byte {
	var sb strings.Builder

	if p := strings.TrimSpace(preamble); p != "" {
		sb.WriteString(p)
		sb.WriteString("\n\n")
	}

	writeAnchor(&sb, topAnchor)

	if len(pages) == 0 {
		sb.WriteString("_No public repositories yet._\n\n")
	}

	for _, page := range pages {
		r.writePage(&sb, page)
	}

	writeAnchor(&sb, endAnchor)
	_, _ = fmt.Fprintf(&sb, "[Back to top](#%s)\n", topAnchor)

	return []byte(sb.String())
}

// NavigationLine returns the heading listing every page number, with the
// current page as plain text and the others linked to their anchors.
func NavigationLine(page model.Page) string {
	parts := make([]string, 0, page.Total)

	for n := 1; n <= page.Total; n++ {
		if n == page.Number() {
			parts = append(parts, fmt.Sprintf("%d", n))
			continue
		}

		parts = append(parts, fmt.Sprintf("[%d](#%s)", n, model.PageAnchor(n)))
	}

	return "### Pages: " + strings.Join(parts, " | ")
}

func (r *Renderer) writePage(sb *strings.Builder, page model.Page) {
	writeAnchor(sb, page.Anchor())
	sb.WriteString(NavigationLine(page))
	sb.WriteString("\n\n")

	for i, entry := range page.Entries {
		r.writeEntry(sb, entry)

		if i < len(page.Entries)-1 {
			sb.WriteString("---\n\n")
		}
	}
}

func (r *Renderer) writeEntry(sb *strings.Builder, entry model.Entry) {
	_, _ = fmt.Fprintf(sb, "#### [%s](%s)\n\n", entry.Name, entry.URL)
	sb.WriteString(r.BadgeLine(entry))
	sb.WriteString("\n\n")

	if entry.Fork {
		sb.WriteString(r.ProvenanceLine(entry))
		sb.WriteString("\n\n")
	}
}

// BadgeLine returns the language badge and creation date of an entry
func (r *Renderer) BadgeLine(entry model.Entry) string {
	lang := entry.Language
	if lang == "" {
		lang = model.NoLanguage
	}

	label := lang
	if symbol := r.Badges.Symbol(lang); symbol != "" {
		label = symbol + " " + lang
	}

	return fmt.Sprintf("%s · Created %s", label, entry.CreatedAt.UTC().Format(DateLayout))
}

// ProvenanceLine returns the fork origin line of an entry
func (r *Renderer) ProvenanceLine(entry model.Entry) string {
	parent := entry.ForkParent
	if parent == "" || parent == model.UnknownParent {
		return "🍴 Forked from " + model.UnknownParent
	}

	return fmt.Sprintf("🍴 Forked from [%s](%s/%s)", parent, r.WebURL, parent)
}

func writeAnchor(sb *strings.Builder, name string) {
	_, _ = fmt.Fprintf(sb, "<a id=\"%s\"></a>\n\n", name)
}
