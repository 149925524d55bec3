package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/folio/internal/motion"
)

const contentIndent = 2

func (v *view) draw() {
	s := v.screen
	s.SetStyle(v.pal.base)
	s.Clear()

	v.drawNav()
	fade := motion.HeroFadeAt(float64(v.scroll * cellH))
	shift := int(math.Round(fade.Offset / cellH))
	for y := navRows; y < v.height; y++ {
		row := v.scroll + y - navRows
		if row < v.doc.Hero.Height {
			v.drawHeroRow(y, row-shift, fade)
			continue
		}
		if row >= v.doc.Height() || !v.revealed(row) {
			continue
		}
		v.drawLine(y, v.doc.Lines[row], v.pal.style(v.doc.Lines[row].Role))
	}
	v.drawParallax()
	v.drawTrail()
	v.drawCursor()
	if !v.loading.Done {
		v.drawPreloader()
	}
}

func (v *view) drawNav() {
	style := v.pal.nav
	if v.inView.Scrolled {
		style = style.Bold(true)
	}
	x := 1
	for i, s := range v.doc.Sections {
		label := fmt.Sprintf("%d %s", i+1, s.ID)
		st := style
		if s.ID == v.inView.Active {
			st = v.pal.navOn
		}
		x = v.text(x, 0, st, label) + 2
	}
	if v.inView.ShowBackToTop {
		hint := "↑ Home"
		v.text(v.width-len([]rune(hint))-1, 0, v.pal.muted, hint)
	}
	if v.inView.ShowIndicator && navRows > 0 {
		filled := int(math.Round(v.inView.Progress * float64(v.width)))
		for x := range filled {
			r, comb, st, _ := v.screen.GetContent(x, 0)
			v.screen.SetContent(x, 0, r, comb, st.Underline(true).Foreground(v.pal.accentFg))
		}
	}
}

// drawHeroRow draws hero source row src on screen row y, faded and pushed
// down as the page scrolls away.
func (v *view) drawHeroRow(y, src int, fade motion.HeroFade) {
	if src < 0 || src >= v.doc.Hero.Height || fade.Opacity < 0.05 || !v.revealed(src) {
		return
	}
	l := v.doc.Lines[src]
	style := v.pal.style(l.Role)
	if fade.Opacity < 0.5 {
		style = v.pal.muted
	}
	// scale shrinks toward the centre: indent grows as it drops
	indent := int(math.Round((1 - fade.Scale) * float64(v.width) / 2))
	if l.Role == roleTyping {
		v.text(contentIndent+indent, y, style, v.typer.Text()+"▌")
		return
	}
	v.text(contentIndent+indent, y, style, l.Text)
}

func (v *view) drawLine(y int, l Line, style tcell.Style) {
	switch {
	case l.Stat > 0:
		st := v.c.Stats[l.Stat-1]
		v.text(contentIndent, y, style, fmt.Sprintf("%d%s", v.counts[l.Stat-1], st.Suffix))
		v.text(contentIndent+12, y, v.pal.muted, st.Label)
	case l.Card > 0:
		t := v.tiltStates[l.Card-1]
		dx := 0
		if i := v.fx.Tilt.Intensity; i > 0 {
			dx = int(math.Round(t.RotateY / i * 2))
		}
		edge := v.pal.muted
		if v.tilts[l.Card-1].Hovering() {
			edge = v.pal.card
		}
		v.text(contentIndent+dx, y, edge, "│")
		v.text(contentIndent+2+dx, y, style, l.Text)
	default:
		v.text(contentIndent, y, style, l.Text)
	}
}

// drawParallax places a marker per section that drifts against the scroll.
func (v *view) drawParallax() {
	vp := motion.Rect{Y: float64(v.scroll * cellH), W: float64(v.width * cellW), H: float64(v.viewportRows() * cellH)}
	for _, s := range v.doc.Sections[1:] {
		el := v.doc.rowsRect(s.Top, s.Height)
		off := v.parallax.Offset(motion.ScrollProgress(el, vp))
		row := s.Top + int(math.Round(off/cellH))
		y := row - v.scroll + navRows
		x := v.width - 3
		if y < navRows || y >= v.height || x < 0 {
			continue
		}
		if r, _, _, _ := v.screen.GetContent(x, y); r == ' ' || r == 0 {
			v.screen.SetContent(x, y, '◆', nil, v.pal.muted)
		}
	}
}

func (v *view) drawTrail() {
	n := len(v.particles)
	for i, p := range v.particles {
		x, y := toCell(p.Pos)
		if !v.inside(x, y) {
			continue
		}
		r := '·'
		if i >= n/2 {
			r = '•'
		}
		v.screen.SetContent(x, y, r, nil, v.pal.trail)
	}
}

func (v *view) drawCursor() {
	cs := v.cursorState
	if !cs.Shown() {
		return
	}
	v.drawGlow(cs)
	ring := '○'
	if cs.Scale > 1.2 {
		ring = '◎'
	}
	if x, y := toCell(cs.Ring); v.inside(x, y) {
		v.screen.SetContent(x, y, ring, nil, v.pal.cursor)
	}
	if x, y := toCell(cs.Dot); v.inside(x, y) {
		v.screen.SetContent(x, y, '•', nil, v.pal.cursor)
	}
}

// drawGlow tints the cells within the glow radius of the ring, keeping
// whatever is drawn there.
func (v *view) drawGlow(cs motion.CursorState) {
	if cs.Glow <= 0 {
		return
	}
	cx, cy := toCell(cs.Ring)
	cols, rows := cs.Glow/cellW, cs.Glow/cellH
	rx, ry := int(math.Ceil(cols)), int(math.Ceil(rows))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			fx, fy := float64(dx)/cols, float64(dy)/rows
			x, y := cx+dx, cy+dy
			if fx*fx+fy*fy > 1 || !v.inside(x, y) {
				continue
			}
			r, comb, st, _ := v.screen.GetContent(x, y)
			v.screen.SetContent(x, y, r, comb, st.Background(v.pal.glowBg))
		}
	}
}

func (v *view) drawPreloader() {
	w := min(40, v.width-4)
	if w < 10 || v.height < 5 {
		return
	}
	x0, y0 := (v.width-w)/2, v.height/2-2
	for y := y0; y < y0+4; y++ {
		v.text(x0, y, v.pal.base, strings.Repeat(" ", w))
	}
	v.text(x0+1, y0, v.pal.title, v.c.Profile.Name)
	bar := w - 8
	filled := v.loading.Progress * bar / 100
	v.text(x0+1, y0+1, v.pal.accent, strings.Repeat("█", filled)+strings.Repeat("░", bar-filled))
	v.text(x0+bar+2, y0+1, v.pal.muted, fmt.Sprintf("%3d%%", v.loading.Progress))
	v.text(x0+1, y0+2, v.pal.muted, v.loading.Message)
}

func (v *view) inside(x, y int) bool {
	return x >= 0 && x < v.width && y >= navRows && y < v.height
}

// text draws s from column x and returns the column after it.
func (v *view) text(x, y int, style tcell.Style, s string) int {
	for _, r := range s {
		if x >= v.width {
			break
		}
		if x >= 0 {
			v.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}
