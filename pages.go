package main

import (
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PedroHSSoares-Dev/portfolio/stream"
)

// sections maps the fragment names served under /sections to templates.
var sections = map[string]string{
	"experience": "section-experience.html",
	"education":  "section-education.html",
	"projects":   "section-projects.html",
	"skills":     "section-skills.html",
	"contact":    "section-contact.html",
}

// pageData is what every page and fragment template receives.
func (a *App) pageData(c *gin.Context) (gin.H, error) {
	p := currentPrefs(c)
	now := a.now()
	dict := a.catalog.For(p.Language)

	jobs, err := dict.Jobs(now)
	if err != nil {
		return nil, err
	}
	courses, err := dict.Courses(now)
	if err != nil {
		return nil, err
	}
	showAll := c.Query("all") == "1"

	return gin.H{
		"T":        dict,
		"Prefs":    p,
		"HTMLLang": p.Language.Tag().String(),
		"Dark":     p.Theme.IsDark(),
		"Jobs":     jobs,
		"Courses":  courses,
		"Projects": dict.Projects.Visible(showAll),
		"ShowAll":  showAll,
		"HasMore":  dict.Projects.HasMore(),
		"Rights":   dict.Footer.RightsFor(now.Year()),
		"Contact":  a.cfg.Contact,
	}, nil
}

func (a *App) index(c *gin.Context) {
	data, err := a.pageData(c)
	if err != nil {
		a.logger.Error("building page", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// sectionETag changes whenever the fragment could: language, the query and
// the month, which moves durations and semester progress.
func (a *App) sectionETag(c *gin.Context, name string) string {
	p := currentPrefs(c)
	key := fmt.Sprintf("%s|%s|%s|%s", name, p.Language, c.Request.URL.RawQuery, a.now().Format("2006-01"))
	return fmt.Sprintf(`W/"%016x"`, xxhash.Sum64String(key))
}

func (a *App) section(c *gin.Context) {
	name := c.Param("name")
	tmpl, ok := sections[name]
	if !ok {
		c.String(http.StatusNotFound, "unknown section %q", name)
		return
	}

	etag := a.sectionETag(c, name)
	c.Header("ETag", etag)
	c.Header("Vary", "Cookie")
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	data, err := a.pageData(c)
	if err != nil {
		a.logger.Error("building section", zap.String("section", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.HTML(http.StatusOK, tmpl, data)
}

func (a *App) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title":     "Privacy Policy",
		"Retention": int(a.cfg.VisitorRetention.Hours() / 24),
	})
}

func (a *App) fieldStream(c *gin.Context) {
	a.stream.Serve(c.Writer, c.Request, stream.Session{
		VisitorID: visitorID(c),
		Theme:     currentPrefs(c).Theme,
	})
}
