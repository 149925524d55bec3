package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/folio/internal/content"
)

type palette struct {
	accentFg tcell.Color
	glowBg   tcell.Color

	base    tcell.Style
	title   tcell.Style
	heading tcell.Style
	accent  tcell.Style
	muted   tcell.Style
	nav     tcell.Style
	navOn   tcell.Style
	cursor  tcell.Style
	trail   tcell.Style
	card    tcell.Style
}

func paletteFor(t content.Theme) palette {
	bg, fg := tcell.NewHexColor(0x0b0d12), tcell.NewHexColor(0xe6e6e6)
	accent, muted := tcell.NewHexColor(0x7aa2f7), tcell.NewHexColor(0x6b7089)
	glow := tcell.NewHexColor(0x1a2238)
	if t == content.ThemeLight {
		bg, fg = tcell.NewHexColor(0xfafafa), tcell.NewHexColor(0x1b1b1f)
		accent, muted = tcell.NewHexColor(0x3451b2), tcell.NewHexColor(0x8a8f98)
		glow = tcell.NewHexColor(0xe3e8f8)
	}
	base := tcell.StyleDefault.Background(bg).Foreground(fg)
	return palette{
		accentFg: accent,
		glowBg:   glow,
		base:     base,
		title:    base.Bold(true),
		heading:  base.Foreground(accent).Bold(true).Underline(true),
		accent:   base.Foreground(accent),
		muted:    base.Foreground(muted),
		nav:      base.Foreground(muted),
		navOn:    base.Foreground(accent).Bold(true),
		cursor:   base.Foreground(accent).Bold(true),
		trail:    base.Foreground(muted),
		card:     base.Foreground(accent).Dim(true),
	}
}

func (p palette) style(r role) tcell.Style {
	switch r {
	case roleTitle:
		return p.title
	case roleHeading:
		return p.heading
	case roleAccent, roleTyping:
		return p.accent
	case roleMuted:
		return p.muted
	case roleStat:
		return p.base.Bold(true)
	}
	return p.base
}
