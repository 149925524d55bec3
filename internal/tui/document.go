package tui

import (
	"fmt"
	"strings"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/motion"
)

// Cell size in engine units. Engine thresholds are tuned in CSS pixels, so
// the terminal reports positions as if each cell were this many pixels.
const (
	cellW = 8
	cellH = 16
)

type role uint8

const (
	roleBody role = iota
	roleTitle
	roleHeading
	roleAccent
	roleMuted
	roleTyping
	roleStat
)

// Line is one document row. Stat and Card are 1-based indexes into the
// content's stats and projects, zero when the row is neither.
type Line struct {
	Text string
	Role role
	Stat int
	Card int
}

// Block is a run of rows revealed together.
type Block struct {
	Section string
	Top     int
	Height  int
	Card    int
}

type Span struct {
	ID     string
	Top    int
	Height int
}

// Document is the portfolio laid out for a fixed width.
type Document struct {
	Width    int
	Lines    []Line
	Sections []Span
	Blocks   []Block
	Hero     Span
}

// Layout wraps c to width columns. The hero is padded to fill heroRows,
// the way a full-height landing section would.
func Layout(c *content.Content, width, heroRows int) *Document {
	width = max(width, 20)
	d := &Document{Width: width}
	inner := width - 4

	section := func(id string, build func()) {
		top := len(d.Lines)
		build()
		d.blank()
		d.Sections = append(d.Sections, Span{ID: id, Top: top, Height: len(d.Lines) - top})
	}

	section("home", func() {
		d.blank()
		d.block("home", 0, func() {
			d.add(Line{Text: c.Profile.Name, Role: roleTitle})
			d.add(Line{Role: roleTyping})
			d.wrap(c.Profile.Tagline, inner, roleBody)
			if c.Profile.Location != "" {
				d.add(Line{Text: c.Profile.Location, Role: roleMuted})
			}
		})
		for len(d.Lines) < heroRows-1 {
			d.blank()
		}
		d.Hero = Span{ID: "home", Top: 0, Height: len(d.Lines)}
	})

	section("about", func() {
		d.heading("About")
		d.block("about", 0, func() { d.wrap(c.About, inner, roleBody) })
		if len(c.Stats) > 0 {
			d.blank()
			d.block("about", 0, func() {
				for i := range c.Stats {
					d.add(Line{Role: roleStat, Stat: i + 1})
				}
			})
		}
	})

	section("skills", func() {
		d.heading("Skills")
		for _, g := range c.Skills {
			d.block("skills", 0, func() {
				d.add(Line{Text: g.Name, Role: roleAccent})
				d.wrap(strings.Join(g.Items, " · "), inner, roleBody)
			})
		}
	})

	section("projects", func() {
		d.heading("Projects")
		for i, p := range c.Projects {
			d.block("projects", i+1, func() {
				d.add(Line{Text: p.Title, Role: roleAccent, Card: i + 1})
				for _, l := range wrapText(p.Summary, inner-2) {
					d.add(Line{Text: l, Card: i + 1})
				}
				if len(p.Tags) > 0 {
					d.add(Line{Text: strings.Join(p.Tags, " · "), Role: roleMuted, Card: i + 1})
				}
			})
			d.blank()
		}
	})

	section("experience", func() {
		d.heading("Experience")
		for _, e := range append(append([]content.Entry(nil), c.Experience...), c.Education...) {
			d.block("experience", 0, func() {
				d.add(Line{Text: fmt.Sprintf("%s, %s", e.Title, e.Org), Role: roleAccent})
				d.add(Line{Text: fmt.Sprintf("%s to %s", e.Start, e.End), Role: roleMuted})
				for _, b := range e.Bullets {
					for j, l := range wrapText(b, inner-2) {
						prefix := "  "
						if j == 0 {
							prefix = "• "
						}
						d.add(Line{Text: prefix + l})
					}
				}
			})
			d.blank()
		}
	})

	section("contact", func() {
		d.heading("Contact")
		d.block("contact", 0, func() {
			if c.Contact.Email != "" {
				d.add(Line{Text: "Email   " + c.Contact.Email})
			}
			if c.Contact.GitHub != "" {
				d.add(Line{Text: "GitHub  github.com/" + c.Contact.GitHub})
			}
			if c.Contact.Phone != "" {
				d.add(Line{Text: "Phone   " + c.Contact.Phone})
			}
			d.blank()
			d.add(Line{Text: "t theme · 1-6 jump · q quit", Role: roleMuted})
		})
	})
	return d
}

func (d *Document) add(l Line) { d.Lines = append(d.Lines, l) }

func (d *Document) blank() { d.add(Line{}) }

func (d *Document) heading(s string) {
	d.add(Line{Text: s, Role: roleHeading})
	d.blank()
}

func (d *Document) wrap(s string, width int, r role) {
	for _, l := range wrapText(s, width) {
		d.add(Line{Text: l, Role: r})
	}
}

func (d *Document) block(section string, card int, build func()) {
	top := len(d.Lines)
	build()
	d.Blocks = append(d.Blocks, Block{Section: section, Top: top, Height: len(d.Lines) - top, Card: card})
}

// Height is the number of rows.
func (d *Document) Height() int { return len(d.Lines) }

// Section returns the span for id.
func (d *Document) Section(id string) (Span, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Span{}, false
}

// BlockAt returns the index of the block covering row, or -1.
func (d *Document) BlockAt(row int) int {
	for i, b := range d.Blocks {
		if row >= b.Top && row < b.Top+b.Height {
			return i
		}
	}
	return -1
}

// rowsRect converts a row span to engine units in document space.
func (d *Document) rowsRect(top, height int) motion.Rect {
	return motion.Rect{X: 0, Y: float64(top * cellH), W: float64(d.Width * cellW), H: float64(height * cellH)}
}

func wrapText(s string, width int) []string {
	width = max(width, 1)
	var out []string
	var line []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		switch {
		case len(line) == 0:
			line = w
		case len(line)+1+len(w) <= width:
			line = append(append(line, ' '), w...)
		default:
			out = append(out, string(line))
			line = w
		}
		for len(line) > width {
			out = append(out, string(line[:width]))
			line = line[width:]
		}
	}
	if len(line) > 0 {
		out = append(out, string(line))
	}
	return out
}
