// Package web serves the browsing UI: a schema listing, a table detail
// page and a search page. It is a thin presentation wrapper around the
// catalog; all semantics live below it.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tordrt/ookcatalog"
	"github.com/tordrt/ookcatalog/internal/catalog"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server handles the catalog's HTTP routes.
type Server struct {
	cat *ookcatalog.Catalog
	log *logrus.Logger
}

// NewServer creates a server over the given catalog.
func NewServer(cat *ookcatalog.Catalog, log *logrus.Logger) *Server {
	return &Server{cat: cat, log: log}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.home)
	router.GET("/table/:schema/:name", s.table)
	router.GET("/search", s.search)

	return router
}

func (s *Server) home(c *gin.Context) {
	overview, err := s.cat.Overview(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{"Schemas": overview})
}

func (s *Server) table(c *gin.Context) {
	schema := c.Param("schema")
	name := c.Param("name")

	t, err := s.cat.Table(c.Request.Context(), schema, name)
	if errors.Is(err, catalog.ErrNotFound) {
		c.String(http.StatusNotFound, "no such table: %s.%s", schema, name)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "table.html", gin.H{"Table": t})
}

func (s *Server) search(c *gin.Context) {
	query := c.Query("q")
	results, err := s.cat.Search(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "search.html", gin.H{"Query": query, "Results": results})
}

// fail reports a read failure as a hard 500. There is no partial or
// cached fallback to fall through to.
func (s *Server) fail(c *gin.Context, err error) {
	s.log.WithError(err).Error("request failed")
	c.String(http.StatusInternalServerError, "internal error")
}
