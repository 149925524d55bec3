package content

import "errors"

var ErrUnknownTheme = errors.New("content: unknown theme")

// ThemeKey is the preference key a theme is persisted under.
const ThemeKey = "theme"

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" or "light". The empty string means dark.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case "", ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return ThemeDark, ErrUnknownTheme
}

func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
