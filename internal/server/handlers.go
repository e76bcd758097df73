package server

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-deckgen/internal/fileutil"
	"github.com/alnah/go-deckgen/internal/history"
	"github.com/alnah/go-deckgen/internal/pptx"
)

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// download serves a rendered deck from the output directory. Only plain
// .pptx file names are accepted.
func (s *Server) download(c *gin.Context) {
	name := c.Param("name")
	if !fileutil.IsSafeName(name) || !strings.EqualFold(filepath.Ext(name), ".pptx") {
		c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Error: "invalid file name"})
		return
	}
	path := filepath.Join(s.renderer.OutputDir(), name)
	if !fileutil.FileExists(path) {
		c.JSON(http.StatusNotFound, errorResponse{Status: "error", Error: "file not found"})
		return
	}
	c.Header("Content-Type", pptx.MediaType)
	c.FileAttachment(path, name)
}

type themeView struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Template    string   `json:"template"`
	ChartKinds  []string `json:"chart_kinds"`
	Kinds       []string `json:"kinds"`
	Default     bool     `json:"default"`
}

func (s *Server) themes(c *gin.Context) {
	catalog := s.renderer.Catalog()
	out := make([]themeView, 0, len(catalog.Names()))
	for _, name := range catalog.Names() {
		th, _ := catalog.Theme(name)
		v := themeView{
			Name:        th.Name,
			Description: th.Description,
			Template:    th.Template,
			Default:     name == catalog.DefaultTheme(),
		}
		for _, k := range th.ChartKinds {
			v.ChartKinds = append(v.ChartKinds, string(k))
		}
		for _, k := range th.Kinds {
			v.Kinds = append(v.Kinds, string(k))
		}
		out = append(out, v)
	}
	c.JSON(http.StatusOK, gin.H{"themes": out})
}

func (s *Server) renders(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusOK, gin.H{"renders": []history.Entry{}})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := s.history.List(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"renders": entries})
}
