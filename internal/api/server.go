// Package api exposes the catalog, schedule board and user preferences over HTTP.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"animeschedule/internal/apiclient"
	"animeschedule/internal/livewatch"
	"animeschedule/internal/models"
	"animeschedule/internal/router"
	"animeschedule/internal/schedule"
	"animeschedule/internal/state"
)

// SessionHeader carries the navigation session a client reuses across requests.
const SessionHeader = "X-Session-ID"

const maxSessions = 1024

// Catalog is the upstream surface the server needs beyond the page routes.
type Catalog interface {
	router.Catalog
	Server(ctx context.Context, serverID string) (*models.ServerData, error)
	ClearCache()
	CacheStats() apiclient.CacheStats
}

// LiveReporter is satisfied by *livewatch.Watcher.
type LiveReporter interface {
	Last() *livewatch.Report
}

type Server struct {
	catalog Catalog
	prefs   *state.Manager
	table   *router.Table
	live    LiveReporter

	mu       sync.Mutex
	sessions map[string]*router.Navigator
}

func NewServer(catalog Catalog, prefs *state.Manager, table *router.Table, live LiveReporter) *Server {
	return &Server{
		catalog:  catalog,
		prefs:    prefs,
		table:    table,
		live:     live,
		sessions: make(map[string]*router.Navigator),
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.health)
	r.GET("/stats", s.stats)
	r.POST("/cache/clear", s.clearCache)

	r.GET("/pages/*fragment", s.page)
	r.POST("/reload", s.reload)

	r.GET("/schedule", s.board)
	r.GET("/search", s.search)
	r.GET("/servers/:id", s.server)

	r.GET("/favorites", s.favorites)
	r.POST("/favorites/:id/toggle", s.toggleFavorite)

	r.GET("/settings", s.settings)
	r.PUT("/settings", s.updateSettings)
	r.POST("/settings/clear", s.clearSettings)

	if s.live != nil {
		r.GET("/live", s.liveReport)
	}
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.CacheStats())
}

func (s *Server) clearCache(c *gin.Context) {
	s.catalog.ClearCache()
	log.Printf("Response cache cleared")
	c.Status(http.StatusNoContent)
}

// navigator returns the client's session navigator, creating one when the
// session header is absent or unknown.
func (s *Server) navigator(c *gin.Context) *router.Navigator {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.GetHeader(SessionHeader)
	nav, ok := s.sessions[id]
	if !ok {
		if len(s.sessions) >= maxSessions {
			for k := range s.sessions {
				delete(s.sessions, k)
				break
			}
		}
		id = uuid.NewString()
		nav = router.NewNavigator(s.table)
		s.sessions[id] = nav
	}
	c.Header(SessionHeader, id)
	return nav
}

// pageFragment accepts both /pages/anime?id=x and /pages/page=anime&id=x.
func pageFragment(c *gin.Context) string {
	p := strings.TrimPrefix(c.Param("fragment"), "/")
	if p != "" && !strings.Contains(p, "=") {
		// the page name comes first so a query page=N stays the page number
		values := url.Values{"page": {p}}
		for key, vs := range c.Request.URL.Query() {
			for _, v := range vs {
				values.Add(key, v)
			}
		}
		return "#" + values.Encode()
	}
	if raw := c.Request.URL.RawQuery; raw != "" {
		if p != "" {
			p += "&"
		}
		p += raw
	}
	return "#" + p
}

func (s *Server) page(c *gin.Context) {
	fragment := pageFragment(c)
	result, err := s.navigator(c).Navigate(c.Request.Context(), fragment)
	if err != nil {
		writeError(c, err, fragment)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) reload(c *gin.Context) {
	result, err := s.navigator(c).Reload(c.Request.Context())
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) board(c *gin.Context) {
	day := c.Query("day")
	board, err := s.table.Board(c.Request.Context(), day)
	if err != nil {
		writeError(c, err, router.Fragment(router.PageSchedule, router.Params{Day: day}))
		return
	}
	c.JSON(http.StatusOK, board)
}

func (s *Server) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	data, err := s.catalog.Search(c.Request.Context(), q)
	if err != nil {
		writeError(c, err, router.Fragment(router.PageSearch, router.Params{Query: q}))
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) server(c *gin.Context) {
	data, err := s.catalog.Server(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) favorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"favorites": s.prefs.Favorites()})
}

func (s *Server) toggleFavorite(c *gin.Context) {
	id := c.Param("id")
	added, err := s.prefs.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"animeId": id, "favorite": added})
}

func (s *Server) settings(c *gin.Context) {
	c.JSON(http.StatusOK, s.prefs.Snapshot())
}

func (s *Server) updateSettings(c *gin.Context) {
	var patch state.Settings
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.CurrentDay != nil && *patch.CurrentDay != "" {
		bucket, ok := schedule.ParseDayBucket(*patch.CurrentDay)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown day " + *patch.CurrentDay})
			return
		}
		day := string(bucket)
		patch.CurrentDay = &day
	}

	if err := s.prefs.ApplySettings(c.Request.Context(), patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.prefs.Snapshot())
}

func (s *Server) clearSettings(c *gin.Context) {
	if err := s.prefs.ClearPreferences(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.prefs.Snapshot())
}

func (s *Server) liveReport(c *gin.Context) {
	report := s.live.Last()
	if report == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, report)
}

// writeError maps upstream failures to status codes. retry is the fragment
// that re-runs the failed load.
func writeError(c *gin.Context, err error, retry string) {
	status := http.StatusInternalServerError
	switch {
	case apiclient.IsNetworkError(err):
		status = http.StatusBadGateway
	case apiclient.IsDomainError(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, router.ErrStaleNavigation):
		status = http.StatusConflict
	}

	log.Printf("Request %s failed with %d: %v", c.Request.URL.Path, status, err)
	c.JSON(status, gin.H{"error": err.Error(), "retry": retry})
}
