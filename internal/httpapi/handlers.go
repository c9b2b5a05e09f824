package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/chuanjin/toonbench/internal/parser"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "JSON vs TOON parsing comparison API",
		"endpoints": gin.H{
			"POST /parse-json":    "Parse content in JSON format",
			"POST /parse-toon":    "Parse content in TOON format",
			"POST /parse/:format": "Parse content in any registered format",
			"GET /formats":        "List registered formats",
			"GET /example":        "Show the same payload in TOON and JSON",
		},
	})
}

func (s *Server) handleExample(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"example": gin.H{
			"json": json.RawMessage(parser.ExampleJSON),
			"toon": parser.ExampleTOON,
		},
	})
}

func (s *Server) handleFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"formats": s.registry.Formats()})
}

func (s *Server) handleParseFixed(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.parse(c, format)
	}
}

func (s *Server) handleParse(c *gin.Context) {
	s.parse(c, c.Param("format"))
}

func (s *Server) parse(c *gin.Context, format string) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == nil {
		s.log.Debug("Rejected request", zap.String("format", format), zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidRequest})
		return
	}

	res, err := s.registry.Parse(format, *req.Content)
	if errors.Is(err, parser.ErrUnknownFormat) {
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	s.log.Info("Parsed",
		zap.String("format", format),
		zap.Bool("success", res.Success),
		zap.Float64("elapsed_ms", res.ElapsedMs()),
	)
	c.JSON(http.StatusOK, newParseResponse(format, *req.Content, res))
}
