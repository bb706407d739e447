package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PedroHSSoares-Dev/portfolio/config"
	"github.com/PedroHSSoares-Dev/portfolio/content"
	"github.com/PedroHSSoares-Dev/portfolio/logging"
	"github.com/PedroHSSoares-Dev/portfolio/prefs"
	"github.com/PedroHSSoares-Dev/portfolio/store"
	"github.com/PedroHSSoares-Dev/portfolio/stream"
)

// App holds everything the handlers need.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *store.DB
	prefs   *prefs.Service
	catalog *content.Catalog
	stream  *stream.Server
	mailer  Mailer

	// adminToken authenticates the admin cookie; hashingSalt keys visitor
	// IP hashes. Both live for one process.
	adminToken  string
	hashingSalt string

	now      func() time.Time
	tracking sync.WaitGroup
}

func newApp(cfg *config.Config, logger *zap.Logger, db *store.DB, svc *prefs.Service,
	catalog *content.Catalog, streamer *stream.Server, mailer Mailer) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		prefs:       svc,
		catalog:     catalog,
		stream:      streamer,
		mailer:      mailer,
		adminToken:  generateToken(),
		hashingSalt: generateToken(),
		now:         time.Now,
	}
}

func provideDB(ctx context.Context, cfg *config.Config) (*store.DB, func(), error) {
	db, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

func providePrefs(db *store.DB) *prefs.Service {
	return prefs.NewService(db)
}

func provideStream(cfg *config.Config, logger *zap.Logger) *stream.Server {
	return stream.New(stream.Config{
		Params:     cfg.Field,
		FPS:        cfg.FieldFPS,
		MaxClients: cfg.MaxClients,
	}, logger.Named("stream"))
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generate token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

var templateFuncs = template.FuncMap{
	"ago":   humanize.Time,
	"comma": humanize.Comma,
	"dict":  dict,
}

// dict builds a map from alternating keys and values, for passing several
// values to a nested template.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// Router builds the gin engine. templates is a glob of HTML templates.
func (a *App) Router(templates string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Gin(a.logger))
	r.SetFuncMap(templateFuncs)
	r.LoadHTMLGlob(templates)

	r.Static("/static", "./static")

	r.GET("/healthz", a.healthz)
	r.GET("/ws/field", a.visitor(), a.fieldStream)

	site := r.Group("/", a.visitor(), a.visitorTracking())
	site.GET("/", a.index)
	site.GET("/sections/:name", a.section)
	site.GET("/prefs", a.getPrefs)
	site.POST("/prefs/theme", a.toggleTheme)
	site.POST("/prefs/language", a.toggleLanguage)
	site.POST("/contact", a.contact)
	site.GET("/privacy", a.privacy)

	a.setupAdminRoutes(r)
	return r
}

func (a *App) healthz(c *gin.Context) {
	if err := a.db.Ping(c.Request.Context()); err != nil {
		a.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "streams": a.stream.Clients()})
}

// cleanupVisitors deletes visitor records past the retention window every
// interval until ctx ends.
func (a *App) cleanupVisitors(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		a.cleanupOnce(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (a *App) cleanupOnce(ctx context.Context) {
	removed, err := a.db.CleanupVisitors(ctx, a.now().Add(-a.cfg.VisitorRetention))
	if err != nil {
		a.logger.Error("visitor cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		a.logger.Info("privacy cleanup removed old visitor records", zap.Int64("removed", removed))
	}
}
