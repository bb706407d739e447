package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PedroHSSoares-Dev/portfolio/prefs"
)

const (
	visitorCookie  = "vid"
	themeCookie    = "theme"
	languageCookie = "language"

	cookieMaxAge = 365 * 24 * 3600

	visitorKey = "visitor"
	prefsKey   = "prefs"
)

// visitor makes sure the request has a visitor id and resolves its
// preferences: stored ones first, then the preference cookies, then the
// Accept-Language header.
func (a *App) visitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetCookie(visitorCookie, id, cookieMaxAge, "/", "", false, true)
		}

		fallback := prefs.Preferences{
			Theme:    prefs.DefaultTheme,
			Language: prefs.Negotiate(c.GetHeader("Accept-Language")),
		}
		if v, err := c.Cookie(themeCookie); err == nil {
			fallback.Theme = prefs.ParseTheme(v)
		}
		if v, err := c.Cookie(languageCookie); err == nil {
			fallback.Language = prefs.ParseLanguage(v)
		}

		p, err := a.prefs.Get(c.Request.Context(), id, fallback)
		if err != nil {
			a.logger.Warn("using fallback preferences", zap.String("visitor", id), zap.Error(err))
		}

		c.Set(visitorKey, id)
		c.Set(prefsKey, p)
		c.Next()
	}
}

func visitorID(c *gin.Context) string { return c.GetString(visitorKey) }

func currentPrefs(c *gin.Context) prefs.Preferences {
	if p, ok := c.Get(prefsKey); ok {
		return p.(prefs.Preferences)
	}
	return prefs.Defaults()
}

// rememberPrefs mirrors p into cookies, like the browser's local storage.
func rememberPrefs(c *gin.Context, p prefs.Preferences) {
	c.SetCookie(themeCookie, p.Theme.String(), cookieMaxAge, "/", "", false, false)
	c.SetCookie(languageCookie, p.Language.String(), cookieMaxAge, "/", "", false, false)
	c.Set(prefsKey, p)
}

func (a *App) getPrefs(c *gin.Context) {
	c.JSON(http.StatusOK, currentPrefs(c))
}

func (a *App) toggleTheme(c *gin.Context) {
	p, err := a.prefs.ToggleTheme(c.Request.Context(), visitorID(c), currentPrefs(c))
	a.answerToggle(c, p, err)
}

func (a *App) toggleLanguage(c *gin.Context) {
	p, err := a.prefs.ToggleLanguage(c.Request.Context(), visitorID(c), currentPrefs(c))
	if err == nil && c.GetHeader("HX-Request") == "true" {
		// every string on the page changes
		c.Header("HX-Refresh", "true")
	}
	a.answerToggle(c, p, err)
}

// answerToggle replies with the resulting preferences and mirrors them into
// cookies.
func (a *App) answerToggle(c *gin.Context, p prefs.Preferences, err error) {
	if err != nil {
		a.logger.Error("saving preferences failed", zap.String("visitor", visitorID(c)), zap.Error(err))
	}
	rememberPrefs(c, p)
	c.JSON(http.StatusOK, p)
}
