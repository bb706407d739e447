// admin.go - privacy-conscious visitor log and admin dashboard
package main

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PedroHSSoares-Dev/portfolio/store"
)

const (
	adminCookie       = "admin_token"
	defaultAdminUser  = "admin"
	devAdminPassword  = "admin123"
	trackTimeout      = 5 * time.Second
	visitorPageLimit  = 200
	messagesPageLimit = 100
)

// hashIP hashes an address with the process salt so visits can be counted
// without storing the address.
func (a *App) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *App) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// visitorTracking records page views with hashed addresses. Static files,
// admin pages and visitors sending DNT are skipped.
func (a *App) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") ||
			c.Request.Method != http.MethodGet ||
			c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		v := store.Visitor{
			HashedIP:  a.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Language:  currentPrefs(c).Language.String(),
			Timestamp: a.now(),
		}
		a.tracking.Add(1)
		go func() {
			defer a.tracking.Done()
			ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
			defer cancel()
			if err := a.db.TrackVisitor(ctx, v); err != nil {
				a.logger.Warn("recording visitor failed", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// adminCredentials returns the configured login. Without a password the
// development default is used in debug mode and login is refused otherwise.
func (a *App) adminCredentials() (user, password string, ok bool) {
	user, password = a.cfg.Admin.Username, a.cfg.Admin.Password
	if user == "" {
		user = defaultAdminUser
	}
	if password == "" {
		if !a.cfg.Development() {
			return "", "", false
		}
		password = devAdminPassword
	}
	return user, password, true
}

func (a *App) stats(c *gin.Context) (*store.Stats, bool) {
	stats, err := a.db.Stats(c.Request.Context(), a.now())
	if err != nil {
		a.logger.Error("loading admin stats", zap.Error(err))
		return nil, false
	}
	return stats, true
}

func (a *App) setupAdminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		user, password, enabled := a.adminCredentials()
		if !enabled {
			a.logger.Warn("admin login refused, ADMIN_PASSWORD not set")
		}
		gotUser := []byte(c.PostForm("username"))
		gotPassword := []byte(c.PostForm("password"))
		if enabled &&
			subtle.ConstantTimeCompare(gotUser, []byte(user)) == 1 &&
			subtle.ConstantTimeCompare(gotPassword, []byte(password)) == 1 {
			c.SetCookie(adminCookie, a.adminToken, 3600*24, "/admin", "", false, true)
			a.logger.Info("admin login", zap.String("from", a.hashIP(c.ClientIP())))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		a.logger.Warn("failed admin login", zap.String("from", a.hashIP(c.ClientIP())))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		a.logger.Info("admin logout", zap.String("from", a.hashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin", a.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, ok := a.stats(c)
		if !ok {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":   stats,
			"streams": a.stream.Clients(),
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, ok := a.stats(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.db.RecentVisitors(c.Request.Context(), visitorPageLimit)
		if err != nil {
			a.logger.Error("loading visitors", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	admin.GET("/messages", func(c *gin.Context) {
		messages, err := a.db.Messages(c.Request.Context(), messagesPageLimit)
		if err != nil {
			a.logger.Error("loading messages", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load messages"})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": messages})
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		removed, err := a.db.CleanupVisitors(c.Request.Context(), a.now().Add(-a.cfg.VisitorRetention))
		if err != nil {
			a.logger.Error("privacy cleanup", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, ok := a.stats(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		name := "admin-stats-" + strconv.FormatInt(a.now().Unix(), 10) + ".json"
		c.Header("Content-Disposition", "attachment; filename="+name)
		a.logger.Info("admin stats exported", zap.String("by", a.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})
}
