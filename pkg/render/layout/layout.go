// Package layout writes an entity's fields next to its avatar art.
//
// Every entity kind has a table of rows. Rows are written one per canvas
// line starting at the kind's top margin; an optional row whose value is
// absent takes no line, so later rows move up. Absent values in required
// rows are shown as "None".
package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ghfetch/ghfetch/pkg/integrations/github"
	"github.com/ghfetch/ghfetch/pkg/render"
)

const (
	// MaxValueLen is the longest text value written unabridged.
	MaxValueLen = 50

	// None stands in for absent values.
	None = "None"

	ellipsis = "..."
)

// row is one line of a layout table.
type row struct {
	label string
	value string
	// draw renders rows that are not "label: value" pairs.
	draw func(Styles) string
	// omit drops the row and shifts the following rows up.
	omit bool
}

func (r row) render(st Styles) string {
	if r.draw != nil {
		return r.draw(st)
	}
	return st.Title.Render(r.label) + ": " + st.Text.Render(r.value)
}

// Layout is the table of rows for one entity.
type Layout struct {
	Margin int
	rows   []row
}

// Rows returns the number of canvas lines the layout writes, margin included.
func (l Layout) Rows() int {
	n := l.Margin
	for _, r := range l.rows {
		if !r.omit {
			n++
		}
	}
	return n
}

// For returns the layout of e.
func For(e github.Entity) Layout {
	switch v := e.(type) {
	case *github.User:
		return userLayout(v)
	case *github.Organization:
		return organizationLayout(v)
	case *github.Repository:
		return repositoryLayout(v)
	}
	return Layout{}
}

// Compose appends e's rows to c. The canvas is padded first if the layout
// needs more lines than it has.
func Compose(c *render.Canvas, e github.Entity, st Styles) {
	l := For(e)
	c.Pad(l.Rows())

	line := l.Margin
	for _, r := range l.rows {
		if r.omit {
			continue
		}
		c.Append(line, r.render(st))
		line++
	}
}

func userLayout(u *github.User) Layout {
	return Layout{rows: []row{
		heading(u.Login),
		underline(u.Login),
		field("Name", u.Name),
		field("Description", u.Bio),
		field("Location", u.Location),
		field("Email", u.Email),
		field("Company", u.Company),
		field("Personal Website", u.Website),
		count("Following", u.Following),
		count("Followers", u.Followers),
		count("Public repos", u.PublicRepos),
		count("Public gists", u.PublicGists),
		plain("Joined at", u.CreatedAt),
		plain("GitHub URL", u.URL),
	}}
}

func organizationLayout(o *github.Organization) Layout {
	return Layout{Margin: 1, rows: []row{
		heading(o.Login),
		underline(o.Login),
		field("Name", o.Name),
		field("Description", o.Bio),
		field("Location", o.Location),
		field("E-mail", o.Email),
		field("Personal Website", o.Website),
		count("Following", o.Following),
		count("Followers", o.Followers),
		count("Public repos", o.PublicRepos),
		count("Public gists", o.PublicGists),
		plain("Joined at", o.CreatedAt),
		plain("GitHub URL", o.URL),
	}}
}

const archivedMarker = "[Archived] "

func repositoryLayout(r *github.Repository) Layout {
	name := r.FullName()
	title := func(st Styles) string {
		s := st.Title.Render(name)
		if r.Archived {
			s = st.Archived.Render(archivedMarker) + s
		}
		return s
	}
	underlined := name
	if r.Archived {
		underlined = archivedMarker + name
	}

	commits := None
	if r.Commits != nil {
		commits = strconv.Itoa(*r.Commits)
	}

	first, second := splitLanguages(r.Languages)
	rows := []row{
		{draw: title},
		underline(underlined),
		{label: "Forked from", value: orNone(r.ForkParent), omit: r.ForkParent == nil},
		plain("Owner", r.Owner),
		field("Description", r.Description),
		field("License", r.License),
		count("Stars", r.Stars),
		count("Watchers", r.Watchers),
		count("Forks", r.Forks),
		plain("Commits", commits),
		plain("Created at", r.CreatedAt),
		plain("GitHub URL", r.URL),
		{draw: func(st Styles) string {
			if len(first) == 0 {
				return st.Title.Render("Langs") + ": " + st.Text.Render(None)
			}
			return st.Title.Render("Langs") + ": " + languageList(st, first)
		}},
		{draw: func(st Styles) string { return languageList(st, second) }, omit: len(second) == 0},
		{draw: func(st Styles) string { return Bar(st, r.Languages) }},
	}
	return Layout{rows: rows}
}

// splitLanguages puts the first two entries on the Langs row and any others
// on the row below.
func splitLanguages(l github.Languages) (first, second github.Languages) {
	if len(l) > 2 {
		return l[:2], l[2:]
	}
	return l, nil
}

func languageList(st Styles, l github.Languages) string {
	parts := make([]string, 0, len(l))
	for _, share := range l {
		parts = append(parts, st.Title.Render(share.Name)+": "+st.Text.Render(share.String()))
	}
	return strings.Join(parts, ", ")
}

// Bar draws BarLength(percent) glyphs per language in the language's color.
func Bar(st Styles, l github.Languages) string {
	var sb strings.Builder
	for _, share := range l {
		n := BarLength(share.Percent)
		if n == 0 {
			continue
		}
		sb.WriteString(st.Language(share.Name).Render(strings.Repeat(render.Glyph, n)))
	}
	return sb.String()
}

// BarLength is ceil(percent / 3): 100% is 34 glyphs.
func BarLength(percent float64) int {
	if percent <= 0 {
		return 0
	}
	return int(math.Ceil(percent / 3))
}

// Truncate shortens s to MaxValueLen characters plus "..." when it is longer.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxValueLen {
		return s
	}
	return string(runes[:MaxValueLen]) + ellipsis
}

func orNone(s *string) string {
	if s == nil {
		return None
	}
	return *s
}

func heading(text string) row {
	return row{draw: func(st Styles) string { return st.Title.Render(text) }}
}

func underline(text string) row {
	return row{draw: func(st Styles) string {
		return st.Text.Render(strings.Repeat("-", lipgloss.Width(text)))
	}}
}

// field is a free-text value: truncated, "None" when absent.
func field(label string, v *string) row {
	return row{label: label, value: Truncate(orNone(v))}
}

func count(label string, n int) row {
	return row{label: label, value: strconv.Itoa(n)}
}

func plain(label, value string) row {
	if value == "" {
		value = None
	}
	return row{label: label, value: value}
}
