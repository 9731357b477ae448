package layouts

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	defaultThemePrimary   = "#1f2937"
	defaultThemeSecondary = "#e5e7eb"
	defaultThemeAccent    = "#16a34a"
	defaultThemeError     = "#d32f2f"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Theme colors for the booking card page.
type Theme struct {
	PrimaryColor   string
	SecondaryColor string
	AccentColor    string
	ErrorColor     string
}

func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   defaultThemePrimary,
		SecondaryColor: defaultThemeSecondary,
		AccentColor:    defaultThemeAccent,
		ErrorColor:     defaultThemeError,
	}
}

func getThemeCssVars(theme *Theme) string {
	defaultTheme := DefaultTheme()
	primary := defaultTheme.PrimaryColor
	secondary := defaultTheme.SecondaryColor
	accent := defaultTheme.AccentColor
	errColor := defaultTheme.ErrorColor

	if theme != nil {
		primary = themeColorOrDefault(theme.PrimaryColor, primary)
		secondary = themeColorOrDefault(theme.SecondaryColor, secondary)
		accent = themeColorOrDefault(theme.AccentColor, accent)
		errColor = themeColorOrDefault(theme.ErrorColor, errColor)
	}

	return fmt.Sprintf(
		":root{--theme-primary:%s;--theme-secondary:%s;--theme-accent:%s;--theme-error:%s;}",
		primary,
		secondary,
		accent,
		errColor,
	)
}

func themeColorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	if !hexColorRegex.MatchString(trimmed) {
		return fallback
	}
	return trimmed
}
