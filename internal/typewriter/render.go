package typewriter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Renderer turns a styled run of text into output for a sink.
// The same Segment func renders partial and committed frames, so escaping
// is identical between "still typing" and "committed".
type Renderer interface {
	Segment(class, text string) string
	Cursor() string
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeMarkup escapes the five characters with meaning in HTML markup.
func EscapeMarkup(s string) string { return markupEscaper.Replace(s) }

// MarkupRenderer emits HTML spans, one per segment.
type MarkupRenderer struct{}

func (MarkupRenderer) Segment(class, text string) string {
	if text == "" {
		return ""
	}
	return `<span class="` + EscapeMarkup(class) + `">` + EscapeMarkup(text) + `</span>`
}

func (MarkupRenderer) Cursor() string { return `<span class="cursor" aria-hidden="true"></span>` }

// PlainRenderer drops styling entirely.
type PlainRenderer struct{}

func (PlainRenderer) Segment(_, text string) string { return stripControl(text) }
func (PlainRenderer) Cursor() string                { return "_" }

// ANSIRenderer styles segments with lipgloss styles keyed by class.
// Unknown classes fall back to Default.
type ANSIRenderer struct {
	Styles      map[string]lipgloss.Style
	Default     lipgloss.Style
	CursorStyle lipgloss.Style
	CursorGlyph string
}

func (r ANSIRenderer) Segment(class, text string) string {
	text = stripControl(text)
	if text == "" {
		return ""
	}
	st, ok := r.Styles[class]
	if !ok {
		st = r.Default
	}
	return st.Render(text)
}

func (r ANSIRenderer) Cursor() string {
	g := r.CursorGlyph
	if g == "" {
		g = "█"
	}
	return r.CursorStyle.Render(g)
}

// stripControl removes escape sequences and C0 controls so segment text
// cannot move the terminal cursor or change colors on its own.
func stripControl(s string) string {
	s = xansi.Strip(s)
	if strings.IndexFunc(s, isControl) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isControl(r) {
			return -1
		}
		return r
	}, s)
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}
