package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal, in which case
// output is styled.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// styles are bound to the renderer of one output stream.
type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	unused  lipgloss.Style
	summary lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	info    lipgloss.Style
}

func newStyles(w io.Writer, styled bool) styles {
	r := lipgloss.NewRenderer(w)
	if !styled {
		r.SetColorProfile(termenv.Ascii)
	}

	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB")),
		cell:    r.NewStyle(),
		unused:  r.NewStyle().Faint(true).Italic(true),
		summary: r.NewStyle().Foreground(lipgloss.Color("#666666")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFD166")),
		err:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		info:    r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
	}
}

// Render writes reports as aligned tables, separated by blank lines.
func Render(w io.Writer, reports []*Report, styled bool) error {
	st := newStyles(w, styled)

	var b strings.Builder

	for i, rep := range reports {
		if i > 0 {
			b.WriteString("\n")
		}

		renderOne(&b, st, rep)
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func renderOne(b *strings.Builder, st styles, rep *Report) {
	title := fmt.Sprintf(" %s ", rep.Decl)
	fmt.Fprintf(b, "%s %s\n", st.title.Render(title),
		st.summary.Render(fmt.Sprintf("%s, convention %s, %d table entries", rep.File, rep.Convention, rep.TableSize)))

	slots := [][]string{{"SLOT", "MEMBER", "SIGNATURE", "ALIASES"}}
	unused := make(map[int]bool)

	for _, s := range rep.Slots {
		if s.Unused() {
			unused[len(slots)] = true
			slots = append(slots, []string{strconv.Itoa(s.Index), "-", "(unused)", ""})

			continue
		}

		slots = append(slots, []string{strconv.Itoa(s.Index), s.Member, s.Signature, strings.Join(s.Aliases, ", ")})
	}

	writeTable(b, st, slots, unused)

	data := [][]string{{"FIELD", "TYPE", "OFFSET", "SIZE"}}
	for _, d := range rep.Data {
		data = append(data, []string{d.Name, d.Type, optional(d.Offset), optional(d.Size)})
	}

	writeTable(b, st, data, nil)

	if rep.Layout != nil {
		fmt.Fprintf(b, "%s\n", st.summary.Render(fmt.Sprintf("size %d, align %d (%s)", rep.Layout.Size, rep.Layout.Align, rep.Layout.Arch)))
	}

	for _, line := range rep.Diagnostics {
		style := st.info

		switch {
		case strings.HasPrefix(line, "error:"):
			style = st.err
		case strings.HasPrefix(line, "warning:"):
			style = st.warning
		}

		fmt.Fprintf(b, "%s\n", style.Render(line))
	}
}

// writeTable pads every column but the last to its widest cell. Columns
// that are empty in every row are dropped.
func writeTable(b *strings.Builder, st styles, rows [][]string, faint map[int]bool) {
	if len(rows) < 2 {
		return
	}

	cols := len(rows[0])
	widths := make([]int, cols)
	used := make([]bool, cols)

	for r, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], lipgloss.Width(cell))

			if r > 0 && cell != "" {
				used[c] = true
			}
		}
	}

	last := 0
	for c := range cols {
		if used[c] {
			last = c
		}
	}

	for r, row := range rows {
		style := st.cell

		switch {
		case r == 0:
			style = st.header
		case faint[r]:
			style = st.unused
		}

		var line strings.Builder

		line.WriteString("  ")

		for c, cell := range row {
			if !used[c] {
				continue
			}

			if c == last {
				line.WriteString(style.Render(cell))
				break
			}

			line.WriteString(style.Width(widths[c] + 2).Render(cell))
		}

		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}
}

func optional(v *int64) string {
	if v == nil {
		return "?"
	}

	return strconv.FormatInt(*v, 10)
}
