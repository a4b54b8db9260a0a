package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pricewatch/pricewatch/internal/logger"
	"github.com/pricewatch/pricewatch/internal/output"
)

// compareRequest is the POST /api/v1/compare payload.
type compareRequest struct {
	OwnURL         string   `json:"own_url" binding:"required,url"`
	CompetitorURLs []string `json:"competitor_urls" binding:"required,min=1,dive,required,url"`
}

func (s *Server) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	logger.Info("comparison requested",
		"own_url", req.OwnURL,
		"competitors", len(req.CompetitorURLs))

	report := s.engine.Compare(c.Request.Context(), req.OwnURL, req.CompetitorURLs)
	c.JSON(http.StatusOK, output.View(report))
}

// bindErrorMessage flattens validation failures into a readable reason.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
		return strings.Join(msgs, "; ")
	}
	return err.Error()
}
