// Package content holds the text of the portfolio in every supported
// language and the date helpers used to present it.
package content

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PedroHSSoares-Dev/portfolio/prefs"
)

//go:embed locales/*.yaml
var locales embed.FS

type Nav struct {
	About      string `yaml:"about"`
	Experience string `yaml:"experience"`
	Education  string `yaml:"education"`
	Projects   string `yaml:"projects"`
	Skills     string `yaml:"skills"`
	Contact    string `yaml:"contact"`
}

// NavItem pairs a section anchor with its label.
type NavItem struct {
	ID    string
	Label string
}

// Items returns the navigation entries in page order. Anchors are the
// Portuguese section ids regardless of language, so links survive a switch.
func (n Nav) Items() []NavItem {
	return []NavItem{
		{"sobre", n.About},
		{"experiencia", n.Experience},
		{"formacao", n.Education},
		{"projetos", n.Projects},
		{"habilidades", n.Skills},
		{"contato", n.Contact},
	}
}

type Hero struct {
	Name         string `yaml:"name"`
	Role         string `yaml:"role"`
	Title        string `yaml:"title"`
	Impact       string `yaml:"impact"`
	Description  string `yaml:"description"`
	ViewProjects string `yaml:"view_projects"`
	Contact      string `yaml:"contact"`
}

type Job struct {
	Role        string   `yaml:"role"`
	Company     string   `yaml:"company"`
	Start       string   `yaml:"start"`
	End         string   `yaml:"end"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

// Current reports whether the job has no end date.
func (j Job) Current() bool { return j.End == "" }

type Experience struct {
	Title   string `yaml:"title"`
	Current string `yaml:"current"`
	Items   []Job  `yaml:"items"`
}

type Course struct {
	Institution string `yaml:"institution"`
	Course      string `yaml:"course"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Semesters   int    `yaml:"semesters"`
}

type Education struct {
	Title    string            `yaml:"title"`
	Status   map[string]string `yaml:"status"`
	Semester string            `yaml:"semester"`
	Items    []Course          `yaml:"items"`
}

type Project struct {
	Title        string   `yaml:"title"`
	Badge        string   `yaml:"badge"`
	BadgeTooltip string   `yaml:"badge_tooltip"`
	Description  string   `yaml:"description"`
	Impact       string   `yaml:"impact"`
	Tags         []string `yaml:"tags"`
	URL          string   `yaml:"url"`
}

// FeaturedProjects is how many projects are shown before "show more".
const FeaturedProjects = 3

type Projects struct {
	Title       string    `yaml:"title"`
	ViewCode    string    `yaml:"view_code"`
	ImpactLabel string    `yaml:"impact_label"`
	ShowMore    string    `yaml:"show_more"`
	ShowLess    string    `yaml:"show_less"`
	Items       []Project `yaml:"items"`
}

// Visible returns the projects to render; all of them when showAll is set,
// otherwise the featured ones.
func (p Projects) Visible(showAll bool) []Project {
	if showAll || len(p.Items) <= FeaturedProjects {
		return p.Items
	}
	return p.Items[:FeaturedProjects]
}

// HasMore reports whether some projects are hidden by default.
func (p Projects) HasMore() bool { return len(p.Items) > FeaturedProjects }

type SkillCategory struct {
	Title  string   `yaml:"title"`
	Color  string   `yaml:"color"`
	Skills []string `yaml:"skills"`
}

type Skills struct {
	Title      string          `yaml:"title"`
	Categories []SkillCategory `yaml:"categories"`
}

type Contact struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Email       string `yaml:"email"`
	WhatsApp    string `yaml:"whatsapp"`
	FormTitle   string `yaml:"form_title"`
	Name        string `yaml:"name"`
	Message     string `yaml:"message"`
	Send        string `yaml:"send"`
	Sent        string `yaml:"sent"`
	Failed      string `yaml:"failed"`
}

type Footer struct {
	Rights string `yaml:"rights"`
}

// RightsFor fills the copyright year.
func (f Footer) RightsFor(year int) string {
	return strings.ReplaceAll(f.Rights, "{{year}}", strconv.Itoa(year))
}

type Toggles struct {
	Theme    string `yaml:"theme"`
	Language string `yaml:"language"`
}

// Dictionary is every string of the page in one language.
type Dictionary struct {
	Lang       prefs.Language `yaml:"-"`
	Nav        Nav            `yaml:"nav"`
	Hero       Hero           `yaml:"hero"`
	Experience Experience     `yaml:"experience"`
	Education  Education      `yaml:"education"`
	Projects   Projects       `yaml:"projects"`
	Skills     Skills         `yaml:"skills"`
	Contact    Contact        `yaml:"contact"`
	Footer     Footer         `yaml:"footer"`
	Toggles    Toggles        `yaml:"toggles"`
}

// Catalog maps languages to dictionaries.
type Catalog struct {
	dicts map[prefs.Language]*Dictionary
}

// Load parses the embedded dictionaries.
func Load() (*Catalog, error) {
	c := &Catalog{dicts: make(map[prefs.Language]*Dictionary)}
	for _, lang := range []prefs.Language{prefs.Portuguese, prefs.English} {
		raw, err := locales.ReadFile("locales/" + string(lang) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		d := &Dictionary{Lang: lang}
		if err := yaml.Unmarshal(raw, d); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		c.dicts[lang] = d
	}
	return c, nil
}

// MustLoad is Load for package initialisation and tests.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// For returns the dictionary of lang, falling back to Portuguese.
func (c *Catalog) For(lang prefs.Language) *Dictionary {
	if d, ok := c.dicts[lang]; ok {
		return d
	}
	return c.dicts[prefs.DefaultLanguage]
}

// CourseView is a course with its period, status and progress resolved for
// one language at one moment.
type CourseView struct {
	Course
	Period   string
	Status   string
	Progress Progress
}

// Courses resolves the education entries at now.
func (d *Dictionary) Courses(now time.Time) ([]CourseView, error) {
	out := make([]CourseView, 0, len(d.Education.Items))
	for _, c := range d.Education.Items {
		period, err := FormatPeriod(c.Start, c.End, d.Lang)
		if err != nil {
			return nil, fmt.Errorf("course %s: %w", c.Institution, err)
		}
		progress, err := SemesterProgress(c.Start, c.End, c.Semesters, now)
		if err != nil {
			return nil, fmt.Errorf("course %s: %w", c.Institution, err)
		}
		status := "ongoing"
		switch {
		case progress.Percent >= 100:
			status = "completed"
		case progress.Current == 0:
			status = "upcoming"
		}
		out = append(out, CourseView{
			Course:   c,
			Period:   period,
			Status:   d.Education.Status[status],
			Progress: progress,
		})
	}
	return out, nil
}

// JobView is a job with its period and tenure resolved.
type JobView struct {
	Job
	Period   string
	Duration string
}

// Jobs resolves the experience entries at now.
func (d *Dictionary) Jobs(now time.Time) ([]JobView, error) {
	out := make([]JobView, 0, len(d.Experience.Items))
	for _, j := range d.Experience.Items {
		period, err := FormatPeriod(j.Start, j.End, d.Lang)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", j.Company, err)
		}
		dur, err := FormatDuration(j.Start, j.End, d.Lang, now)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", j.Company, err)
		}
		out = append(out, JobView{Job: j, Period: period, Duration: dur})
	}
	return out, nil
}
