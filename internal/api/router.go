package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/LJTian/HeadlineHub/internal/collector"
	"github.com/LJTian/HeadlineHub/internal/export"
	"github.com/LJTian/HeadlineHub/internal/service"
	"github.com/gin-gonic/gin"
)

type Server struct {
	svc *service.Service
}

func NewServer(svc *service.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/sources", s.listSources)
		v1.GET("/headlines", s.listHeadlines)
		v1.GET("/headlines.csv", s.exportCSV)
		v1.POST("/refresh", s.refresh)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type sourceView struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Rules int    `json:"rules"`
}

func (s *Server) listSources(c *gin.Context) {
	srcs := s.svc.Registry().Sources()
	out := make([]sourceView, 0, len(srcs))
	for _, src := range srcs {
		out = append(out, sourceView{Name: src.Name, URL: src.URL, Rules: len(src.Rules)})
	}
	ok(c, out)
}

func (s *Server) listHeadlines(c *gin.Context) {
	res, err := s.svc.Headlines(c.Request.Context(), selectedSources(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, res)
}

func (s *Server) exportCSV(c *gin.Context) {
	res, err := s.svc.Headlines(c.Request.Context(), selectedSources(c))
	if err != nil {
		fail(c, err)
		return
	}

	header := export.SpanishHeader
	filename := "titulares.csv"
	if c.Query("lang") == "en" {
		header = export.EnglishHeader
		filename = "headlines.csv"
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, res.Headlines, header); err != nil {
		_ = c.Error(err)
	}
}

func (s *Server) refresh(c *gin.Context) {
	if err := s.svc.Refresh(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// selectedSources 同时支持 ?sources=a,b 与 ?sources=a&sources=b
func selectedSources(c *gin.Context) []string {
	var names []string
	for _, v := range c.QueryArray("sources") {
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}
	return names
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}

func fail(c *gin.Context, err error) {
	if errors.Is(err, collector.ErrUnknownSource) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": err.Error(),
		})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "internal_error",
		"message": "internal server error",
	})
}
