// Package prefs holds the two visitor preferences of the site, theme and
// language, and the service that reads and toggles them.
package prefs

import (
	"golang.org/x/text/language"
)

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// DefaultTheme is used when nothing was stored.
const DefaultTheme = Dark

// ParseTheme returns the theme named by s, or DefaultTheme.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case Dark, Light:
		return Theme(s)
	}
	return DefaultTheme
}

func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

func (t Theme) IsDark() bool { return t != Light }

func (t Theme) String() string { return string(t) }

type Language string

const (
	Portuguese Language = "pt"
	English    Language = "en"
)

// DefaultLanguage is used when nothing was stored and negotiation fails.
const DefaultLanguage = Portuguese

// ParseLanguage returns the language named by s, or DefaultLanguage.
func ParseLanguage(s string) Language {
	switch Language(s) {
	case Portuguese, English:
		return Language(s)
	}
	return DefaultLanguage
}

func (l Language) Toggle() Language {
	if l == English {
		return Portuguese
	}
	return English
}

func (l Language) String() string { return string(l) }

// Tag is the BCP 47 tag used for the page's lang attribute.
func (l Language) Tag() language.Tag {
	if l == English {
		return language.AmericanEnglish
	}
	return language.BrazilianPortuguese
}

var matcher = language.NewMatcher([]language.Tag{
	language.BrazilianPortuguese,
	language.AmericanEnglish,
})

// Negotiate picks a language from an Accept-Language header value.
func Negotiate(acceptLanguage string) Language {
	if acceptLanguage == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	if idx == 1 {
		return English
	}
	return Portuguese
}

// Preferences is the full set of visitor preferences.
type Preferences struct {
	Theme    Theme    `json:"theme"`
	Language Language `json:"language"`
}

// Defaults returns the preferences of a first-time visitor.
func Defaults() Preferences {
	return Preferences{Theme: DefaultTheme, Language: DefaultLanguage}
}

// Normalize replaces unknown values by their defaults.
func (p Preferences) Normalize() Preferences {
	return Preferences{
		Theme:    ParseTheme(string(p.Theme)),
		Language: ParseLanguage(string(p.Language)),
	}
}
